package actions

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/entry"
)

// UpdateEntry replaces all mutable fields of an existing entry. The
// uniqueness check excludes the entry's own id so an unchanged triple
// still passes.
type UpdateEntry struct {
	ID          int64
	Name        string
	Value       decimal.Decimal
	Description string
	OccurredOn  time.Time
	SubjectID   null.Val[int64]
	CategoryID  null.Val[int64]

	// Updated carries the stored entry back to the caller.
	Updated *entry.Entry
}

func (a *UpdateEntry) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Entries.FindByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.ErrNotFound
	}

	blocked, err := constraintBlockade(ctx, writer, a.Name, existing.WalletID, a.OccurredOn, a.ID)
	if err != nil {
		return err
	}
	if blocked {
		return apperror.ErrAlreadyExists
	}

	updated, err := writer.Entries.Update(ctx, a.ID, &entry.Mutation{
		Name:        a.Name,
		Value:       a.Value,
		Description: a.Description,
		OccurredOn:  a.OccurredOn,
		SubjectID:   a.SubjectID,
		CategoryID:  a.CategoryID,
	})
	if err != nil {
		return err
	}

	a.Updated = updated
	return nil
}

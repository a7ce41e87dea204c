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

// CreateEntry inserts one ledger entry after checking the
// (name, wallet, date) uniqueness constraint inside the same transaction.
type CreateEntry struct {
	Name        string
	Value       decimal.Decimal
	Kind        entry.Kind
	Description string
	OccurredOn  time.Time
	UserID      int64
	WalletID    int64
	SubjectID   null.Val[int64]
	CategoryID  null.Val[int64]

	// Created carries the stored entry back to the caller.
	Created *entry.Entry
}

func (a *CreateEntry) Perform(ctx context.Context, writer *storage.Writer) error {
	blocked, err := constraintBlockade(ctx, writer, a.Name, a.WalletID, a.OccurredOn, 0)
	if err != nil {
		return err
	}
	if blocked {
		return apperror.ErrAlreadyExists
	}

	created, err := writer.Entries.Insert(ctx, &entry.Create{
		Name:        a.Name,
		Value:       a.Value,
		Kind:        a.Kind,
		Description: a.Description,
		OccurredOn:  a.OccurredOn,
		IsTransfer:  false,
		UserID:      a.UserID,
		WalletID:    a.WalletID,
		SubjectID:   a.SubjectID,
		CategoryID:  a.CategoryID,
	})
	if err != nil {
		return err
	}

	a.Created = created
	return nil
}

// constraintBlockade reports whether another entry already occupies the
// (name, wallet, date) slot. excludedID skips the entry being updated so an
// update to its own unchanged triple passes; zero excludes nothing.
func constraintBlockade(ctx context.Context, writer *storage.Writer, name string, walletID int64, occurredOn time.Time, excludedID int64) (bool, error) {
	existing, err := writer.Entries.FindByNameWalletDate(ctx, name, walletID, occurredOn)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	if existing.ID == excludedID {
		return false, nil
	}
	return true, nil
}

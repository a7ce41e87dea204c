package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteEntry removes an entry permanently.
type DeleteEntry struct {
	ID int64
}

func (a *DeleteEntry) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Entries.FindByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.ErrNotFound
	}

	return writer.Entries.Delete(ctx, a.ID)
}

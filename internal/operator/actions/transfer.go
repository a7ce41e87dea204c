package actions

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/entry"
)

// Transfer moves an amount between two wallets of the same user by writing
// two linked legs: an expense in the sender wallet and an income in the
// receiver wallet, both flagged as transfers. Both legs run in the same
// transaction, so a conflict on either leg rolls back the whole transfer.
//
// There is no duplicate pre-check across wallets: the two legs share name
// and date but differ in wallet, so the uniqueness triple still tells them
// apart. A collision within either wallet surfaces from the unique index.
type Transfer struct {
	SenderWalletID   int64
	ReceiverWalletID int64
	UserID           int64
	Name             string
	Value            decimal.Decimal
	Description      string
	OccurredOn       time.Time
}

func (a *Transfer) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := a.makeLeg(ctx, writer, a.SenderWalletID, entry.KindExpense); err != nil {
		return err
	}

	return a.makeLeg(ctx, writer, a.ReceiverWalletID, entry.KindIncome)
}

func (a *Transfer) makeLeg(ctx context.Context, writer *storage.Writer, walletID int64, kind entry.Kind) error {
	_, err := writer.Entries.Insert(ctx, &entry.Create{
		Name:        a.Name,
		Value:       a.Value,
		Kind:        kind,
		Description: a.Description,
		OccurredOn:  a.OccurredOn,
		IsTransfer:  true,
		UserID:      a.UserID,
		WalletID:    walletID,
	})
	return err
}

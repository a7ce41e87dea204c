package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/storage/entry"
	"github.com/carson-networks/ledger-server/internal/storage/subject"
	"github.com/carson-networks/ledger-server/internal/storage/wallet"
)

// Writer bundles per-table writers bound to a single transaction. Either
// Commit or Rollback must be called exactly once.
type Writer struct {
	tx       bob.Tx
	Entries  entry.IEntryWriter
	Wallets  wallet.IWalletWriter
	Subjects subject.ISubjectWriter
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:       tx,
		Entries:  entry.NewWriter(tx),
		Wallets:  wallet.NewWriter(tx),
		Subjects: subject.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}

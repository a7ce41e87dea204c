package storage

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/storage/entry"
	"github.com/carson-networks/ledger-server/internal/storage/subject"
	"github.com/carson-networks/ledger-server/internal/storage/wallet"
)

// Storage owns the database handle and exposes the read side of each table.
// Writes go through Write, which binds a Writer to one transaction.
type Storage struct {
	DB       *sql.DB
	bdb      bob.DB
	Entries  entry.IEntryReader
	Wallets  wallet.IWalletReader
	Subjects subject.ISubjectReader
}

func NewStorage(env *config.Config) *Storage {
	db, err := sql.Open("postgres", env.ConnectionString())
	if err != nil {
		log.Fatal(err)
	}

	bdb := bob.NewDB(db)

	return &Storage{
		DB:       db,
		bdb:      bdb,
		Entries:  entry.NewReader(bdb),
		Wallets:  wallet.NewReader(bdb),
		Subjects: subject.NewReader(bdb),
	}
}

// Write opens a transaction and returns a Writer bound to it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bdb.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}

// InTx runs fn inside one transaction, committing on success and rolling
// back on any error.
func (s *Storage) InTx(ctx context.Context, fn func(w *Writer) error) error {
	writer, err := s.Write(ctx)
	if err != nil {
		return err
	}

	if err := fn(writer); err != nil {
		_ = writer.Rollback()
		return err
	}

	return writer.Commit()
}

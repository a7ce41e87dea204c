package wallet

import (
	"context"
	"time"
)

// Wallet represents a wallet record: a named money container owned by one
// user. Ledger entries reference wallets by id.
type Wallet struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	UserID      int64     `db:"user_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Create is the input for creating a new wallet.
type Create struct {
	Name        string
	Description string
	UserID      int64
}

// IWalletReader defines the read-side interface for wallet storage.
// FindByID returns nil (no error) when no row matches.
type IWalletReader interface {
	FindByID(ctx context.Context, id int64) (*Wallet, error)
	ListByUser(ctx context.Context, userID int64) ([]*Wallet, error)
}

// IWalletWriter extends the read side with mutations.
type IWalletWriter interface {
	IWalletReader
	Insert(ctx context.Context, create *Create) (*Wallet, error)
	Update(ctx context.Context, id int64, name, description string) (*Wallet, error)
	Delete(ctx context.Context, id int64) error
}

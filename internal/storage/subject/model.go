package subject

import (
	"context"
	"time"
)

// Subject represents a counterparty attached to ledger entries.
type Subject struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ISubjectReader defines the read-side interface for subject storage.
// FindByID returns nil (no error) when no row matches.
type ISubjectReader interface {
	FindByID(ctx context.Context, id int64) (*Subject, error)
	ListByUser(ctx context.Context, userID int64) ([]*Subject, error)
}

// ISubjectWriter extends the read side with mutations.
type ISubjectWriter interface {
	ISubjectReader
	Insert(ctx context.Context, name string, userID int64) (*Subject, error)
	Update(ctx context.Context, id int64, name string) (*Subject, error)
	Delete(ctx context.Context, id int64) error
}

package entry

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"
)

// Kind distinguishes the two directions money can move.
type Kind string

const (
	KindIncome  Kind = "INCOME"
	KindExpense Kind = "EXPENSE"
)

// Entry represents one ledger entry record. The (Name, WalletID, OccurredOn)
// triple is unique among stored entries; the database enforces this with a
// unique index so concurrent writers cannot slip past the service-level check.
type Entry struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Value       decimal.Decimal `db:"value"`
	Kind        Kind            `db:"kind"`
	Description string          `db:"description"`
	OccurredOn  time.Time       `db:"occurred_on"`
	IsTransfer  bool            `db:"is_transfer"`
	UserID      int64           `db:"user_id"`
	WalletID    int64           `db:"wallet_id"`
	SubjectID   null.Val[int64] `db:"subject_id"`
	CategoryID  null.Val[int64] `db:"category_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// Create is the input for inserting a new ledger entry.
type Create struct {
	Name        string
	Value       decimal.Decimal
	Kind        Kind
	Description string
	OccurredOn  time.Time
	IsTransfer  bool
	UserID      int64
	WalletID    int64
	SubjectID   null.Val[int64]
	CategoryID  null.Val[int64]
}

// Mutation carries the full replacement set of mutable entry fields.
// Kind and WalletID are immutable after creation and deliberately absent.
type Mutation struct {
	Name        string
	Value       decimal.Decimal
	Description string
	OccurredOn  time.Time
	SubjectID   null.Val[int64]
	CategoryID  null.Val[int64]
}

// DateWindow is an inclusive [Start, End] date filter; a nil bound leaves
// that side unbounded.
type DateWindow struct {
	Start *time.Time
	End   *time.Time
}

// ValueSums holds per-kind value sums over some scope. All fields are
// zero-valued decimals when no rows match, never absent. The transfer
// sub-sums are populated only by wallet-scoped aggregation.
type ValueSums struct {
	Incomes          decimal.Decimal `db:"incomes"`
	Expenses         decimal.Decimal `db:"expenses"`
	TransferIncomes  decimal.Decimal `db:"transfer_incomes"`
	TransferExpenses decimal.Decimal `db:"transfer_expenses"`
}

// IEntryReader defines the read-side interface for entry storage.
// Find methods return nil (no error) when no row matches.
type IEntryReader interface {
	FindByID(ctx context.Context, id int64) (*Entry, error)
	FindByNameWalletDate(ctx context.Context, name string, walletID int64, occurredOn time.Time) (*Entry, error)
	ListByUser(ctx context.Context, userID int64, window DateWindow) ([]*Entry, error)
	ListByWallet(ctx context.Context, walletID int64, window DateWindow) ([]*Entry, error)
	ListBySubject(ctx context.Context, subjectID int64, window DateWindow) ([]*Entry, error)
	SumByUser(ctx context.Context, userID int64, window DateWindow) (*ValueSums, error)
	SumByWallet(ctx context.Context, walletID int64, window DateWindow) (*ValueSums, error)
}

// IEntryWriter extends the read side with mutations. Implementations are
// bound to a transaction; commit and rollback are the caller's concern.
type IEntryWriter interface {
	IEntryReader
	Insert(ctx context.Context, create *Create) (*Entry, error)
	Update(ctx context.Context, id int64, mutation *Mutation) (*Entry, error)
	Delete(ctx context.Context, id int64) error
}

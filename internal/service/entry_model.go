package service

import (
	"fmt"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/entry"
)

// Kind represents the direction of a ledger entry in the service layer.
type Kind string

const (
	KindIncome  Kind = "INCOME"
	KindExpense Kind = "EXPENSE"
)

// ParseKind validates a wire-format kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindIncome, KindExpense:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown entry kind %q", s)
}

// Entry represents a ledger entry in the service layer.
type Entry struct {
	ID          int64
	Name        string
	Value       decimal.Decimal
	Kind        Kind
	Description string
	OccurredOn  time.Time
	IsTransfer  bool
	UserID      int64
	WalletID    int64
	SubjectID   *int64
	CategoryID  *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateEntryRequest is the input for creating a ledger entry.
type CreateEntryRequest struct {
	WalletID    int64
	UserID      int64
	Name        string
	Value       decimal.Decimal
	Kind        Kind
	Description string
	OccurredOn  time.Time
	SubjectID   *int64
	CategoryID  *int64
}

// UpdateEntryRequest carries the full replacement set of mutable entry
// fields. Kind and wallet are immutable after creation and absent here.
type UpdateEntryRequest struct {
	Name        string
	Value       decimal.Decimal
	Description string
	OccurredOn  time.Time
	SubjectID   *int64
	CategoryID  *int64
}

func kindToStorage(k Kind) entry.Kind {
	return entry.Kind(k)
}

func kindFromStorage(k entry.Kind) Kind {
	return Kind(k)
}

func entryFromStorage(row *entry.Entry) *Entry {
	return &Entry{
		ID:          row.ID,
		Name:        row.Name,
		Value:       row.Value,
		Kind:        kindFromStorage(row.Kind),
		Description: row.Description,
		OccurredOn:  row.OccurredOn,
		IsTransfer:  row.IsTransfer,
		UserID:      row.UserID,
		WalletID:    row.WalletID,
		SubjectID:   row.SubjectID.Ptr(),
		CategoryID:  row.CategoryID.Ptr(),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func entriesFromStorage(rows []*entry.Entry) []*Entry {
	converted := make([]*Entry, len(rows))
	for i, row := range rows {
		converted[i] = entryFromStorage(row)
	}
	return converted
}

func optionalID(p *int64) null.Val[int64] {
	return null.FromPtr(p)
}

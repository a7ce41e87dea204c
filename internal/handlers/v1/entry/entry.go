// Package entry exposes the ledger entry endpoints. Identity arrives in the
// X-User-ID header, resolved by the authenticating proxy in front of this
// service.
package entry

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/service"
)

const dateFormat = "2006-01-02"

// Entry is the wire representation of a ledger entry.
type Entry struct {
	ID          int64  `json:"id" doc:"Entry id"`
	Name        string `json:"name" doc:"Short label"`
	Value       string `json:"value" doc:"Decimal value"`
	Kind        string `json:"kind" doc:"INCOME or EXPENSE"`
	Description string `json:"description" doc:"Free text description"`
	OccurredOn  string `json:"occurredOn" doc:"Calendar date the entry applies to"`
	IsTransfer  bool   `json:"isTransfer" doc:"True for transfer legs"`
	WalletID    int64  `json:"walletID" doc:"Owning wallet id"`
	SubjectID   *int64 `json:"subjectID,omitempty" doc:"Optional subject id"`
	CategoryID  *int64 `json:"categoryID,omitempty" doc:"Optional category id"`
	CreatedAt   string `json:"createdAt" doc:"Creation timestamp"`
	UpdatedAt   string `json:"updatedAt" doc:"Last update timestamp"`
}

func entryToWire(e *service.Entry) Entry {
	return Entry{
		ID:          e.ID,
		Name:        e.Name,
		Value:       e.Value.String(),
		Kind:        string(e.Kind),
		Description: e.Description,
		OccurredOn:  e.OccurredOn.Format(dateFormat),
		IsTransfer:  e.IsTransfer,
		WalletID:    e.WalletID,
		SubjectID:   e.SubjectID,
		CategoryID:  e.CategoryID,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}

func entriesToWire(entries []*service.Entry) []Entry {
	converted := make([]Entry, len(entries))
	for i, e := range entries {
		converted[i] = entryToWire(e)
	}
	return converted
}

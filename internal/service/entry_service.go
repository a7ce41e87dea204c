package service

import (
	"context"
	"time"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/entry"
)

// EntryService handles ledger entry reads and single-entry writes. Every
// write runs as one action inside one transaction, which also revalidates
// the uniqueness constraint.
type EntryService struct {
	entries  entry.IEntryReader
	operator actionProcessor
}

// NewEntryService creates a new EntryService.
func NewEntryService(store *storage.Storage, processor actionProcessor) *EntryService {
	return &EntryService{
		entries:  store.Entries,
		operator: processor,
	}
}

// Create stores a new non-transfer entry and returns it with its id.
func (s *EntryService) Create(ctx context.Context, req CreateEntryRequest) (*Entry, error) {
	action := &actions.CreateEntry{
		Name:        req.Name,
		Value:       req.Value,
		Kind:        kindToStorage(req.Kind),
		Description: req.Description,
		OccurredOn:  req.OccurredOn,
		UserID:      req.UserID,
		WalletID:    req.WalletID,
		SubjectID:   optionalID(req.SubjectID),
		CategoryID:  optionalID(req.CategoryID),
	}

	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	return entryFromStorage(action.Created), nil
}

// Update fully replaces the mutable fields of an entry.
func (s *EntryService) Update(ctx context.Context, entryID int64, req UpdateEntryRequest) (*Entry, error) {
	action := &actions.UpdateEntry{
		ID:          entryID,
		Name:        req.Name,
		Value:       req.Value,
		Description: req.Description,
		OccurredOn:  req.OccurredOn,
		SubjectID:   optionalID(req.SubjectID),
		CategoryID:  optionalID(req.CategoryID),
	}

	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	return entryFromStorage(action.Updated), nil
}

// Delete removes an entry permanently.
func (s *EntryService) Delete(ctx context.Context, entryID int64) error {
	return s.operator.Process(ctx, &actions.DeleteEntry{ID: entryID})
}

// GetByID fetches one entry.
func (s *EntryService) GetByID(ctx context.Context, entryID int64) (*Entry, error) {
	row, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperror.ErrNotFound
	}
	return entryFromStorage(row), nil
}

// GetOwnedByID fetches one entry and confirms the caller owns it.
func (s *EntryService) GetOwnedByID(ctx context.Context, userID, entryID int64) (*Entry, error) {
	found, err := s.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if found.UserID != userID {
		return nil, apperror.ErrPermissionDenied
	}
	return found, nil
}

// ListByUser returns a user's entries, optionally bounded by an inclusive
// date window.
func (s *EntryService) ListByUser(ctx context.Context, userID int64, start, end *time.Time) ([]*Entry, error) {
	rows, err := s.entries.ListByUser(ctx, userID, entry.DateWindow{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	return entriesFromStorage(rows), nil
}

// ListByWallet returns a wallet's entries, optionally bounded by an
// inclusive date window.
func (s *EntryService) ListByWallet(ctx context.Context, walletID int64, start, end *time.Time) ([]*Entry, error) {
	rows, err := s.entries.ListByWallet(ctx, walletID, entry.DateWindow{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	return entriesFromStorage(rows), nil
}

// ListBySubject returns a subject's entries, optionally bounded by an
// inclusive date window.
func (s *EntryService) ListBySubject(ctx context.Context, subjectID int64, start, end *time.Time) ([]*Entry, error) {
	rows, err := s.entries.ListBySubject(ctx, subjectID, entry.DateWindow{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	return entriesFromStorage(rows), nil
}

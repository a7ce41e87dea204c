package service

import (
	"context"
	"time"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/subject"
)

// Subject represents a counterparty in the service layer.
type Subject struct {
	ID        int64
	Name      string
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubjectService handles subject CRUD.
type SubjectService struct {
	storage *storage.Storage
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(store *storage.Storage) *SubjectService {
	return &SubjectService{storage: store}
}

func (s *SubjectService) Create(ctx context.Context, userID int64, name string) (*Subject, error) {
	var created *subject.Subject

	err := s.storage.InTx(ctx, func(w *storage.Writer) error {
		row, err := w.Subjects.Insert(ctx, name, userID)
		if err != nil {
			return err
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	return subjectFromStorage(created), nil
}

func (s *SubjectService) Update(ctx context.Context, subjectID int64, name string) (*Subject, error) {
	var updated *subject.Subject

	err := s.storage.InTx(ctx, func(w *storage.Writer) error {
		existing, err := w.Subjects.FindByID(ctx, subjectID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.ErrNotFound
		}

		row, err := w.Subjects.Update(ctx, subjectID, name)
		if err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	return subjectFromStorage(updated), nil
}

func (s *SubjectService) Delete(ctx context.Context, subjectID int64) error {
	return s.storage.InTx(ctx, func(w *storage.Writer) error {
		existing, err := w.Subjects.FindByID(ctx, subjectID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.ErrNotFound
		}

		return w.Subjects.Delete(ctx, subjectID)
	})
}

func (s *SubjectService) GetByID(ctx context.Context, subjectID int64) (*Subject, error) {
	row, err := s.storage.Subjects.FindByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperror.ErrNotFound
	}
	return subjectFromStorage(row), nil
}

func (s *SubjectService) ListByUser(ctx context.Context, userID int64) ([]*Subject, error) {
	rows, err := s.storage.Subjects.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	converted := make([]*Subject, len(rows))
	for i, row := range rows {
		converted[i] = subjectFromStorage(row)
	}
	return converted, nil
}

func subjectFromStorage(row *subject.Subject) *Subject {
	return &Subject{
		ID:        row.ID,
		Name:      row.Name,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

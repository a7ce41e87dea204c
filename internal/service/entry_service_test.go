package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/entry"
)

// memoryEntryStore is an in-memory entry.IEntryWriter backing both the
// service's read side and a synchronous action processor.
type memoryEntryStore struct {
	rows    map[int64]*entry.Entry
	nextID  int64
	windows []entry.DateWindow
}

func newMemoryEntryStore() *memoryEntryStore {
	return &memoryEntryStore{rows: map[int64]*entry.Entry{}, nextID: 1}
}

func (m *memoryEntryStore) FindByID(_ context.Context, id int64) (*entry.Entry, error) {
	return m.rows[id], nil
}

func (m *memoryEntryStore) FindByNameWalletDate(_ context.Context, name string, walletID int64, occurredOn time.Time) (*entry.Entry, error) {
	for _, row := range m.rows {
		if row.Name == name && row.WalletID == walletID && row.OccurredOn.Equal(occurredOn) {
			return row, nil
		}
	}
	return nil, nil
}

func (m *memoryEntryStore) ListByUser(_ context.Context, userID int64, window entry.DateWindow) ([]*entry.Entry, error) {
	m.windows = append(m.windows, window)
	var matched []*entry.Entry
	for _, row := range m.rows {
		if row.UserID == userID {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func (m *memoryEntryStore) ListByWallet(_ context.Context, walletID int64, window entry.DateWindow) ([]*entry.Entry, error) {
	m.windows = append(m.windows, window)
	var matched []*entry.Entry
	for _, row := range m.rows {
		if row.WalletID == walletID {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func (m *memoryEntryStore) ListBySubject(_ context.Context, subjectID int64, window entry.DateWindow) ([]*entry.Entry, error) {
	m.windows = append(m.windows, window)
	var matched []*entry.Entry
	for _, row := range m.rows {
		if row.SubjectID.GetOrZero() == subjectID {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func (m *memoryEntryStore) SumByUser(context.Context, int64, entry.DateWindow) (*entry.ValueSums, error) {
	return &entry.ValueSums{}, nil
}

func (m *memoryEntryStore) SumByWallet(context.Context, int64, entry.DateWindow) (*entry.ValueSums, error) {
	return &entry.ValueSums{}, nil
}

func (m *memoryEntryStore) Insert(_ context.Context, create *entry.Create) (*entry.Entry, error) {
	row := &entry.Entry{
		ID:          m.nextID,
		Name:        create.Name,
		Value:       create.Value,
		Kind:        create.Kind,
		Description: create.Description,
		OccurredOn:  create.OccurredOn,
		IsTransfer:  create.IsTransfer,
		UserID:      create.UserID,
		WalletID:    create.WalletID,
		SubjectID:   create.SubjectID,
		CategoryID:  create.CategoryID,
	}
	m.rows[row.ID] = row
	m.nextID++
	return row, nil
}

func (m *memoryEntryStore) Update(_ context.Context, id int64, mutation *entry.Mutation) (*entry.Entry, error) {
	row := m.rows[id]
	row.Name = mutation.Name
	row.Value = mutation.Value
	row.Description = mutation.Description
	row.OccurredOn = mutation.OccurredOn
	row.SubjectID = mutation.SubjectID
	row.CategoryID = mutation.CategoryID
	return row, nil
}

func (m *memoryEntryStore) Delete(_ context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

// syncProcessor runs actions inline against a writer over the same store,
// standing in for the operator queue.
type syncProcessor struct {
	writer *storage.Writer
}

func (p *syncProcessor) Process(ctx context.Context, action actions.IAction) error {
	return action.Perform(ctx, p.writer)
}

func newTestEntryService() (*EntryService, *memoryEntryStore) {
	store := newMemoryEntryStore()
	svc := &EntryService{
		entries:  store,
		operator: &syncProcessor{writer: &storage.Writer{Entries: store}},
	}
	return svc, store
}

var entryDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func int64Ptr(v int64) *int64 { return &v }

// -- Create tests --

func TestCreateEntry_Success(t *testing.T) {
	svc, _ := newTestEntryService()

	created, err := svc.Create(context.Background(), CreateEntryRequest{
		WalletID:    3,
		UserID:      7,
		Name:        "Groceries",
		Value:       decimal.RequireFromString("42.50"),
		Kind:        KindExpense,
		Description: "weekly shop",
		OccurredOn:  entryDate,
		SubjectID:   int64Ptr(11),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, KindExpense, created.Kind)
	assert.False(t, created.IsTransfer)
	if assert.NotNil(t, created.SubjectID) {
		assert.Equal(t, int64(11), *created.SubjectID)
	}
	assert.Nil(t, created.CategoryID)
}

func TestCreateEntry_DuplicateTriple(t *testing.T) {
	svc, _ := newTestEntryService()

	req := CreateEntryRequest{
		WalletID:   3,
		UserID:     7,
		Name:       "Groceries",
		Value:      decimal.RequireFromString("42.50"),
		Kind:       KindExpense,
		OccurredOn: entryDate,
	}

	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, apperror.ErrAlreadyExists)
}

// -- Update tests --

func TestUpdateEntry_FullReplace(t *testing.T) {
	svc, _ := newTestEntryService()

	created, err := svc.Create(context.Background(), CreateEntryRequest{
		WalletID:    3,
		UserID:      7,
		Name:        "Groceries",
		Value:       decimal.RequireFromString("42.50"),
		Kind:        KindExpense,
		Description: "weekly shop",
		OccurredOn:  entryDate,
		SubjectID:   int64Ptr(11),
	})
	assert.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateEntryRequest{
		Name:       "Monthly groceries",
		Value:      decimal.RequireFromString("120.00"),
		OccurredOn: entryDate.AddDate(0, 0, 2),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Monthly groceries", updated.Name)
	assert.Empty(t, updated.Description, "omitted fields are cleared, not kept")
	assert.Nil(t, updated.SubjectID, "omitted subject is cleared")
	assert.Equal(t, KindExpense, updated.Kind, "kind survives the replace")
}

func TestUpdateEntry_NotFound(t *testing.T) {
	svc, _ := newTestEntryService()

	_, err := svc.Update(context.Background(), 99, UpdateEntryRequest{
		Name:       "Missing",
		OccurredOn: entryDate,
	})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

// -- Get tests --

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestEntryService()

	found, err := svc.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Nil(t, found)
}

func TestGetOwnedByID_WrongUser(t *testing.T) {
	svc, _ := newTestEntryService()

	created, err := svc.Create(context.Background(), CreateEntryRequest{
		WalletID:   3,
		UserID:     7,
		Name:       "Groceries",
		Value:      decimal.RequireFromString("42.50"),
		Kind:       KindExpense,
		OccurredOn: entryDate,
	})
	assert.NoError(t, err)

	found, err := svc.GetOwnedByID(context.Background(), 8, created.ID)

	assert.ErrorIs(t, err, apperror.ErrPermissionDenied)
	assert.Nil(t, found)
}

// -- List tests --

func TestListByWallet_WindowPassthrough(t *testing.T) {
	svc, store := newTestEntryService()

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	_, err := svc.ListByWallet(context.Background(), 3, &start, &end)

	assert.NoError(t, err)
	assert.Len(t, store.windows, 1)
	assert.Equal(t, &start, store.windows[0].Start)
	assert.Equal(t, &end, store.windows[0].End)
}

func TestListByUser_Unbounded(t *testing.T) {
	svc, store := newTestEntryService()

	_, err := svc.ListByUser(context.Background(), 7, nil, nil)

	assert.NoError(t, err)
	assert.Len(t, store.windows, 1)
	assert.Nil(t, store.windows[0].Start)
	assert.Nil(t, store.windows[0].End)
}

// -- Delete tests --

func TestDeleteEntry_RemovesRow(t *testing.T) {
	svc, store := newTestEntryService()

	created, err := svc.Create(context.Background(), CreateEntryRequest{
		WalletID:   3,
		UserID:     7,
		Name:       "Groceries",
		Value:      decimal.RequireFromString("42.50"),
		Kind:       KindExpense,
		OccurredOn: entryDate,
	})
	assert.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID)

	assert.NoError(t, err)
	assert.Empty(t, store.rows)
}

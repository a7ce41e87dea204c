package actions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/entry"
)

// fakeEntryStore is an in-memory entry.IEntryWriter. Inserted rows get
// sequential ids and the (name, wallet, date) lookup mirrors the real index.
type fakeEntryStore struct {
	rows      map[int64]*entry.Entry
	nextID    int64
	insertErr error
	// failAfterInserts makes Insert fail once this many inserts succeeded.
	failAfterInserts int
	inserts          int
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{
		rows:             map[int64]*entry.Entry{},
		nextID:           1,
		failAfterInserts: -1,
	}
}

func (f *fakeEntryStore) FindByID(_ context.Context, id int64) (*entry.Entry, error) {
	return f.rows[id], nil
}

func (f *fakeEntryStore) FindByNameWalletDate(_ context.Context, name string, walletID int64, occurredOn time.Time) (*entry.Entry, error) {
	for _, row := range f.rows {
		if row.Name == name && row.WalletID == walletID && row.OccurredOn.Equal(occurredOn) {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeEntryStore) ListByUser(context.Context, int64, entry.DateWindow) ([]*entry.Entry, error) {
	return nil, nil
}

func (f *fakeEntryStore) ListByWallet(context.Context, int64, entry.DateWindow) ([]*entry.Entry, error) {
	return nil, nil
}

func (f *fakeEntryStore) ListBySubject(context.Context, int64, entry.DateWindow) ([]*entry.Entry, error) {
	return nil, nil
}

func (f *fakeEntryStore) SumByUser(context.Context, int64, entry.DateWindow) (*entry.ValueSums, error) {
	return &entry.ValueSums{}, nil
}

func (f *fakeEntryStore) SumByWallet(context.Context, int64, entry.DateWindow) (*entry.ValueSums, error) {
	return &entry.ValueSums{}, nil
}

func (f *fakeEntryStore) Insert(_ context.Context, create *entry.Create) (*entry.Entry, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	if f.failAfterInserts >= 0 && f.inserts >= f.failAfterInserts {
		return nil, apperror.ErrAlreadyExists
	}
	f.inserts++

	row := &entry.Entry{
		ID:          f.nextID,
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
	f.rows[row.ID] = row
	f.nextID++
	return row, nil
}

func (f *fakeEntryStore) Update(_ context.Context, id int64, mutation *entry.Mutation) (*entry.Entry, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, errors.New("update on missing row")
	}
	row.Name = mutation.Name
	row.Value = mutation.Value
	row.Description = mutation.Description
	row.OccurredOn = mutation.OccurredOn
	row.SubjectID = mutation.SubjectID
	row.CategoryID = mutation.CategoryID
	return row, nil
}

func (f *fakeEntryStore) Delete(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

func newTestWriter(store *fakeEntryStore) *storage.Writer {
	return &storage.Writer{Entries: store}
}

func seedEntry(store *fakeEntryStore, name string, walletID int64, occurredOn time.Time) *entry.Entry {
	row, _ := store.Insert(context.Background(), &entry.Create{
		Name:       name,
		Value:      decimal.RequireFromString("10.00"),
		Kind:       entry.KindExpense,
		OccurredOn: occurredOn,
		UserID:     7,
		WalletID:   walletID,
	})
	return row
}

var testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// -- CreateEntry tests --

func TestCreateEntry_Success(t *testing.T) {
	store := newFakeEntryStore()
	action := &CreateEntry{
		Name:       "Groceries",
		Value:      decimal.RequireFromString("42.50"),
		Kind:       entry.KindExpense,
		OccurredOn: testDate,
		UserID:     7,
		WalletID:   3,
		SubjectID:  null.From(int64(11)),
	}

	err := action.Perform(context.Background(), newTestWriter(store))

	assert.NoError(t, err)
	if assert.NotNil(t, action.Created) {
		assert.Equal(t, "Groceries", action.Created.Name)
		assert.Equal(t, entry.KindExpense, action.Created.Kind)
		assert.False(t, action.Created.IsTransfer)
		assert.Equal(t, int64(3), action.Created.WalletID)
		assert.Equal(t, null.From(int64(11)), action.Created.SubjectID)
	}
}

func TestCreateEntry_DuplicateTriple(t *testing.T) {
	store := newFakeEntryStore()
	seedEntry(store, "Groceries", 3, testDate)

	action := &CreateEntry{
		Name:       "Groceries",
		Value:      decimal.RequireFromString("5.00"),
		Kind:       entry.KindIncome,
		OccurredOn: testDate,
		UserID:     7,
		WalletID:   3,
	}

	err := action.Perform(context.Background(), newTestWriter(store))

	assert.ErrorIs(t, err, apperror.ErrAlreadyExists)
	assert.Nil(t, action.Created)
	assert.Len(t, store.rows, 1, "no second row written")
}

func TestCreateEntry_SameNameOtherWallet(t *testing.T) {
	store := newFakeEntryStore()
	seedEntry(store, "Groceries", 3, testDate)

	action := &CreateEntry{
		Name:       "Groceries",
		Value:      decimal.RequireFromString("5.00"),
		Kind:       entry.KindExpense,
		OccurredOn: testDate,
		UserID:     7,
		WalletID:   4,
	}

	err := action.Perform(context.Background(), newTestWriter(store))

	assert.NoError(t, err)
	assert.Len(t, store.rows, 2)
}

// -- UpdateEntry tests --

func TestUpdateEntry_Success(t *testing.T) {
	store := newFakeEntryStore()
	existing := seedEntry(store, "Groceries", 3, testDate)

	action := &UpdateEntry{
		ID:         existing.ID,
		Name:       "Weekly groceries",
		Value:      decimal.RequireFromString("55.00"),
		OccurredOn: testDate.AddDate(0, 0, 1),
	}

	err := action.Perform(context.Background(), newTestWriter(store))

	assert.NoError(t, err)
	if assert.NotNil(t, action.Updated) {
		assert.Equal(t, "Weekly groceries", action.Updated.Name)
		assert.True(t, action.Updated.Value.Equal(decimal.RequireFromString("55.00")))
		assert.Equal(t, entry.KindExpense, action.Updated.Kind, "kind is immutable")
	}
}

func TestUpdateEntry_NotFound(t *testing.T) {
	store := newFakeEntryStore()

	action := &UpdateEntry{ID: 99, Name: "Missing", OccurredOn: testDate}
	err := action.Perform(context.Background(), newTestWriter(store))

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateEntry_DuplicateTriple(t *testing.T) {
	store := newFakeEntryStore()
	seedEntry(store, "Rent", 3, testDate)
	target := seedEntry(store, "Groceries", 3, testDate)

	action := &UpdateEntry{
		ID:         target.ID,
		Name:       "Rent",
		OccurredOn: testDate,
	}

	err := action.Perform(context.Background(), newTestWriter(store))

	assert.ErrorIs(t, err, apperror.ErrAlreadyExists)
	assert.Equal(t, "Groceries", store.rows[target.ID].Name, "target unchanged")
}

func TestUpdateEntry_OwnTriplePasses(t *testing.T) {
	store := newFakeEntryStore()
	existing := seedEntry(store, "Groceries", 3, testDate)

	// Same name, wallet and date; only the value changes. The blockade must
	// not trip on the entry's own row.
	action := &UpdateEntry{
		ID:         existing.ID,
		Name:       "Groceries",
		Value:      decimal.RequireFromString("99.00"),
		OccurredOn: testDate,
	}

	err := action.Perform(context.Background(), newTestWriter(store))

	assert.NoError(t, err)
	assert.True(t, store.rows[existing.ID].Value.Equal(decimal.RequireFromString("99.00")))
}

// -- DeleteEntry tests --

func TestDeleteEntry_Success(t *testing.T) {
	store := newFakeEntryStore()
	existing := seedEntry(store, "Groceries", 3, testDate)

	err := (&DeleteEntry{ID: existing.ID}).Perform(context.Background(), newTestWriter(store))

	assert.NoError(t, err)
	assert.Empty(t, store.rows)
}

func TestDeleteEntry_NotFound(t *testing.T) {
	store := newFakeEntryStore()

	err := (&DeleteEntry{ID: 99}).Perform(context.Background(), newTestWriter(store))

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

// -- Transfer tests --

func TestTransfer_WritesBothLegs(t *testing.T) {
	store := newFakeEntryStore()

	action := &Transfer{
		SenderWalletID:   3,
		ReceiverWalletID: 4,
		UserID:           7,
		Name:             "Savings top-up",
		Value:            decimal.RequireFromString("250.00"),
		Description:      "monthly",
		OccurredOn:       testDate,
	}

	err := action.Perform(context.Background(), newTestWriter(store))

	assert.NoError(t, err)
	assert.Len(t, store.rows, 2)

	var sender, receiver *entry.Entry
	for _, row := range store.rows {
		switch row.WalletID {
		case 3:
			sender = row
		case 4:
			receiver = row
		}
	}

	if assert.NotNil(t, sender) {
		assert.Equal(t, entry.KindExpense, sender.Kind)
		assert.True(t, sender.IsTransfer)
	}
	if assert.NotNil(t, receiver) {
		assert.Equal(t, entry.KindIncome, receiver.Kind)
		assert.True(t, receiver.IsTransfer)
	}

	// Both legs share the payload.
	assert.Equal(t, sender.Name, receiver.Name)
	assert.True(t, sender.Value.Equal(receiver.Value))
	assert.Equal(t, sender.OccurredOn, receiver.OccurredOn)
	assert.Equal(t, sender.UserID, receiver.UserID)
}

func TestTransfer_SecondLegConflict(t *testing.T) {
	store := newFakeEntryStore()
	store.failAfterInserts = 1

	action := &Transfer{
		SenderWalletID:   3,
		ReceiverWalletID: 4,
		UserID:           7,
		Name:             "Savings top-up",
		Value:            decimal.RequireFromString("250.00"),
		OccurredOn:       testDate,
	}

	err := action.Perform(context.Background(), newTestWriter(store))

	assert.ErrorIs(t, err, apperror.ErrAlreadyExists)
}

package service

import (
	"context"
	"time"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/wallet"
)

// Wallet represents a wallet in the service layer.
type Wallet struct {
	ID          int64
	Name        string
	Description string
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WalletService handles wallet CRUD.
type WalletService struct {
	storage *storage.Storage
}

// NewWalletService creates a new WalletService.
func NewWalletService(store *storage.Storage) *WalletService {
	return &WalletService{storage: store}
}

func (s *WalletService) Create(ctx context.Context, userID int64, name, description string) (*Wallet, error) {
	var created *wallet.Wallet

	err := s.storage.InTx(ctx, func(w *storage.Writer) error {
		row, err := w.Wallets.Insert(ctx, &wallet.Create{
			Name:        name,
			Description: description,
			UserID:      userID,
		})
		if err != nil {
			return err
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	return walletFromStorage(created), nil
}

func (s *WalletService) Update(ctx context.Context, walletID int64, name, description string) (*Wallet, error) {
	var updated *wallet.Wallet

	err := s.storage.InTx(ctx, func(w *storage.Writer) error {
		existing, err := w.Wallets.FindByID(ctx, walletID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.ErrNotFound
		}

		row, err := w.Wallets.Update(ctx, walletID, name, description)
		if err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	return walletFromStorage(updated), nil
}

func (s *WalletService) Delete(ctx context.Context, walletID int64) error {
	return s.storage.InTx(ctx, func(w *storage.Writer) error {
		existing, err := w.Wallets.FindByID(ctx, walletID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.ErrNotFound
		}

		return w.Wallets.Delete(ctx, walletID)
	})
}

func (s *WalletService) GetByID(ctx context.Context, walletID int64) (*Wallet, error) {
	row, err := s.storage.Wallets.FindByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperror.ErrNotFound
	}
	return walletFromStorage(row), nil
}

func (s *WalletService) ListByUser(ctx context.Context, userID int64) ([]*Wallet, error) {
	rows, err := s.storage.Wallets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	converted := make([]*Wallet, len(rows))
	for i, row := range rows {
		converted[i] = walletFromStorage(row)
	}
	return converted, nil
}

func walletFromStorage(row *wallet.Wallet) *Wallet {
	return &Wallet{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		UserID:      row.UserID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

package service

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// actionProcessor runs one action inside one database transaction.
// *operator.OperatorDelegator is the production implementation.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Entries    *EntryService
	Statistics *StatisticsService
	Transfers  *TransferService
	Wallets    *WalletService
	Subjects   *SubjectService
}

// NewService creates a new Service with the given storage and operator.
func NewService(store *storage.Storage, delegator *operator.OperatorDelegator) *Service {
	return &Service{
		Entries:    NewEntryService(store, delegator),
		Statistics: NewStatisticsService(store),
		Transfers:  NewTransferService(delegator),
		Wallets:    NewWalletService(store),
		Subjects:   NewSubjectService(store),
	}
}

package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// TransferRequest describes a wallet-to-wallet transfer. Both legs share
// the payload; only kind and wallet differ between them.
type TransferRequest struct {
	SenderWalletID   int64
	ReceiverWalletID int64
	UserID           int64
	Name             string
	Value            decimal.Decimal
	Description      string
	OccurredOn       time.Time
}

// TransferService moves money between two wallets of one user as a pair of
// transfer-flagged entries written atomically.
type TransferService struct {
	operator actionProcessor
}

// NewTransferService creates a new TransferService.
func NewTransferService(processor actionProcessor) *TransferService {
	return &TransferService{operator: processor}
}

// Transfer writes the expense leg in the sender wallet and the income leg
// in the receiver wallet inside one transaction, then echoes the request
// back as acknowledgment. If either leg conflicts, neither is kept.
func (s *TransferService) Transfer(ctx context.Context, req TransferRequest) (*TransferRequest, error) {
	action := &actions.Transfer{
		SenderWalletID:   req.SenderWalletID,
		ReceiverWalletID: req.ReceiverWalletID,
		UserID:           req.UserID,
		Name:             req.Name,
		Value:            req.Value,
		Description:      req.Description,
		OccurredOn:       req.OccurredOn,
	}

	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	return &req, nil
}

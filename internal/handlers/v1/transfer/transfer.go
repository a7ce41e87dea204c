// Package transfer exposes the wallet-to-wallet transfer endpoint.
package transfer

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperror"
	"github.com/carson-networks/ledger-server/internal/service"
)

const dateFormat = "2006-01-02"

// TransferBody is the request body for a transfer.
type TransferBody struct {
	SenderWalletID   int64  `json:"senderWalletID" required:"true" doc:"Wallet the money leaves"`
	ReceiverWalletID int64  `json:"receiverWalletID" required:"true" doc:"Wallet the money enters"`
	Name             string `json:"name" required:"true" minLength:"2" maxLength:"50" doc:"Label shared by both legs"`
	Value            string `json:"value" required:"true" doc:"Positive decimal amount"`
	Description      string `json:"description" maxLength:"2000" doc:"Free text description"`
	OccurredOn       string `json:"occurredOn" required:"true" doc:"Calendar date, YYYY-MM-DD"`
}

// TransferInput is the Huma input for a transfer.
type TransferInput struct {
	UserID int64 `header:"X-User-ID" doc:"Resolved caller identity"`
	Body   TransferBody
}

// TransferOutput echoes the transfer payload back as acknowledgment.
type TransferOutput struct {
	Body TransferBody
}

// transferrer is the interface for executing transfers.
type transferrer interface {
	Transfer(ctx context.Context, req service.TransferRequest) (*service.TransferRequest, error)
}

// walletResolver confirms wallet ownership before the transfer runs.
type walletResolver interface {
	GetByID(ctx context.Context, walletID int64) (*service.Wallet, error)
}

// Handler handles POST /v1/transfer.
type Handler struct {
	TransferService transferrer
	WalletService   walletResolver
}

// NewHandler creates a new transfer Handler.
func NewHandler(transfers transferrer, wallets walletResolver) *Handler {
	return &Handler{TransferService: transfers, WalletService: wallets}
}

// Register registers the transfer endpoint with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfer",
		Summary:     "Transfer between wallets",
		Description: "Moves an amount between two wallets of the caller as a linked expense/income pair.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func parseTransferInput(input *TransferInput) (service.TransferRequest, error) {
	value, err := decimal.NewFromString(input.Body.Value)
	if err != nil {
		return service.TransferRequest{}, huma.NewError(http.StatusBadRequest, "invalid value", err)
	}

	occurredOn, err := time.Parse(dateFormat, input.Body.OccurredOn)
	if err != nil {
		return service.TransferRequest{}, huma.NewError(http.StatusBadRequest, "invalid occurredOn", err)
	}

	return service.TransferRequest{
		SenderWalletID:   input.Body.SenderWalletID,
		ReceiverWalletID: input.Body.ReceiverWalletID,
		UserID:           input.UserID,
		Name:             input.Body.Name,
		Value:            value,
		Description:      input.Body.Description,
		OccurredOn:       occurredOn,
	}, nil
}

// assertWalletOwner resolves a wallet and confirms the caller owns it.
func (h *Handler) assertWalletOwner(ctx context.Context, userID, walletID int64) error {
	found, err := h.WalletService.GetByID(ctx, walletID)
	if err != nil {
		return httperror.FromService(err, "failed to resolve wallet")
	}
	if found.UserID != userID {
		return httperror.FromService(apperror.ErrPermissionDenied, "wallet not owned by caller")
	}
	return nil
}

func (h *Handler) handle(ctx context.Context, input *TransferInput) (*TransferOutput, error) {
	req, err := parseTransferInput(input)
	if err != nil {
		return nil, err
	}

	if err := h.assertWalletOwner(ctx, input.UserID, req.SenderWalletID); err != nil {
		return nil, err
	}
	if err := h.assertWalletOwner(ctx, input.UserID, req.ReceiverWalletID); err != nil {
		return nil, err
	}

	if _, err := h.TransferService.Transfer(ctx, req); err != nil {
		return nil, httperror.FromService(err, "failed to transfer")
	}

	return &TransferOutput{Body: input.Body}, nil
}

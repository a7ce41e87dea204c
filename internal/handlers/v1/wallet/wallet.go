// Package wallet exposes the wallet CRUD endpoints.
package wallet

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperror"
	"github.com/carson-networks/ledger-server/internal/service"
)

// Wallet is the wire representation of a wallet.
type Wallet struct {
	ID          int64  `json:"id" doc:"Wallet id"`
	Name        string `json:"name" doc:"Wallet name"`
	Description string `json:"description" doc:"Free text description"`
	CreatedAt   string `json:"createdAt" doc:"Creation timestamp"`
	UpdatedAt   string `json:"updatedAt" doc:"Last update timestamp"`
}

// WalletBody is the request body for creating or updating a wallet.
type WalletBody struct {
	Name        string `json:"name" required:"true" minLength:"2" maxLength:"50" doc:"Wallet name"`
	Description string `json:"description" maxLength:"2000" doc:"Free text description"`
}

// CreateWalletInput is the Huma input for creating a wallet.
type CreateWalletInput struct {
	UserID int64 `header:"X-User-ID" doc:"Resolved caller identity"`
	Body   WalletBody
}

// UpdateWalletInput is the Huma input for updating a wallet.
type UpdateWalletInput struct {
	WalletID int64 `path:"walletID" doc:"Wallet id"`
	UserID   int64 `header:"X-User-ID" doc:"Resolved caller identity"`
	Body     WalletBody
}

// WalletIDInput is the Huma input for fetching or deleting one wallet.
type WalletIDInput struct {
	WalletID int64 `path:"walletID" doc:"Wallet id"`
	UserID   int64 `header:"X-User-ID" doc:"Resolved caller identity"`
}

// ListWalletsInput is the Huma input for listing the caller's wallets.
type ListWalletsInput struct {
	UserID int64 `header:"X-User-ID" doc:"Resolved caller identity"`
}

// WalletOutput is the Huma output for single-wallet endpoints.
type WalletOutput struct {
	Body Wallet
}

// ListWalletsOutput is the Huma output for the wallet listing.
type ListWalletsOutput struct {
	Body struct {
		Wallets []Wallet `json:"wallets" doc:"The caller's wallets"`
	}
}

// DeleteWalletOutput is the Huma output for deleting a wallet.
type DeleteWalletOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// walletService is the interface for wallet CRUD.
type walletService interface {
	Create(ctx context.Context, userID int64, name, description string) (*service.Wallet, error)
	Update(ctx context.Context, walletID int64, name, description string) (*service.Wallet, error)
	Delete(ctx context.Context, walletID int64) error
	GetByID(ctx context.Context, walletID int64) (*service.Wallet, error)
	ListByUser(ctx context.Context, userID int64) ([]*service.Wallet, error)
}

// Handler registers the wallet endpoints.
type Handler struct {
	WalletService walletService
}

// NewHandler creates a new wallet Handler.
func NewHandler(svc walletService) *Handler {
	return &Handler{WalletService: svc}
}

// Register registers the wallet endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-wallet",
		Method:      http.MethodPost,
		Path:        "/v1/wallet",
		Summary:     "Create wallet",
		Tags:        []string{"Wallets"},
	}, h.handleCreate)

	huma.Register(api, huma.Operation{
		OperationID: "get-wallet",
		Method:      http.MethodGet,
		Path:        "/v1/wallet/{walletID}",
		Summary:     "Get wallet",
		Tags:        []string{"Wallets"},
	}, h.handleGet)

	huma.Register(api, huma.Operation{
		OperationID: "list-wallets",
		Method:      http.MethodGet,
		Path:        "/v1/wallet",
		Summary:     "List wallets",
		Tags:        []string{"Wallets"},
	}, h.handleList)

	huma.Register(api, huma.Operation{
		OperationID: "update-wallet",
		Method:      http.MethodPut,
		Path:        "/v1/wallet/{walletID}",
		Summary:     "Update wallet",
		Tags:        []string{"Wallets"},
	}, h.handleUpdate)

	huma.Register(api, huma.Operation{
		OperationID: "delete-wallet",
		Method:      http.MethodDelete,
		Path:        "/v1/wallet/{walletID}",
		Summary:     "Delete wallet",
		Tags:        []string{"Wallets"},
	}, h.handleDelete)
}

func walletToWire(w *service.Wallet) Wallet {
	return Wallet{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		CreatedAt:   w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   w.UpdatedAt.Format(time.RFC3339),
	}
}

// resolveOwned fetches a wallet and confirms the caller owns it.
func (h *Handler) resolveOwned(ctx context.Context, userID, walletID int64) (*service.Wallet, error) {
	found, err := h.WalletService.GetByID(ctx, walletID)
	if err != nil {
		return nil, httperror.FromService(err, "failed to resolve wallet")
	}
	if found.UserID != userID {
		return nil, httperror.FromService(apperror.ErrPermissionDenied, "wallet not owned by caller")
	}
	return found, nil
}

func (h *Handler) handleCreate(ctx context.Context, input *CreateWalletInput) (*WalletOutput, error) {
	created, err := h.WalletService.Create(ctx, input.UserID, input.Body.Name, input.Body.Description)
	if err != nil {
		return nil, httperror.FromService(err, "failed to create wallet")
	}
	return &WalletOutput{Body: walletToWire(created)}, nil
}

func (h *Handler) handleGet(ctx context.Context, input *WalletIDInput) (*WalletOutput, error) {
	found, err := h.resolveOwned(ctx, input.UserID, input.WalletID)
	if err != nil {
		return nil, err
	}
	return &WalletOutput{Body: walletToWire(found)}, nil
}

func (h *Handler) handleList(ctx context.Context, input *ListWalletsInput) (*ListWalletsOutput, error) {
	wallets, err := h.WalletService.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, httperror.FromService(err, "failed to list wallets")
	}

	output := &ListWalletsOutput{}
	output.Body.Wallets = make([]Wallet, len(wallets))
	for i, w := range wallets {
		output.Body.Wallets[i] = walletToWire(w)
	}
	return output, nil
}

func (h *Handler) handleUpdate(ctx context.Context, input *UpdateWalletInput) (*WalletOutput, error) {
	if _, err := h.resolveOwned(ctx, input.UserID, input.WalletID); err != nil {
		return nil, err
	}

	updated, err := h.WalletService.Update(ctx, input.WalletID, input.Body.Name, input.Body.Description)
	if err != nil {
		return nil, httperror.FromService(err, "failed to update wallet")
	}
	return &WalletOutput{Body: walletToWire(updated)}, nil
}

func (h *Handler) handleDelete(ctx context.Context, input *WalletIDInput) (*DeleteWalletOutput, error) {
	if _, err := h.resolveOwned(ctx, input.UserID, input.WalletID); err != nil {
		return nil, err
	}

	if err := h.WalletService.Delete(ctx, input.WalletID); err != nil {
		return nil, httperror.FromService(err, "failed to delete wallet")
	}
	return &DeleteWalletOutput{Status: http.StatusOK}, nil
}

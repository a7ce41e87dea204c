package entry

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

// CreateEntryBody is the request body for creating a ledger entry.
type CreateEntryBody struct {
	Name        string `json:"name" required:"true" minLength:"2" maxLength:"50" doc:"Short label"`
	Value       string `json:"value" required:"true" doc:"Positive decimal value"`
	Kind        string `json:"kind" required:"true" enum:"INCOME,EXPENSE" doc:"Entry kind"`
	Description string `json:"description" maxLength:"2000" doc:"Free text description"`
	OccurredOn  string `json:"occurredOn" required:"true" doc:"Calendar date, YYYY-MM-DD"`
	SubjectID   *int64 `json:"subjectID,omitempty" doc:"Optional subject id"`
	CategoryID  *int64 `json:"categoryID,omitempty" doc:"Optional category id"`
}

// CreateEntryInput is the Huma input for creating a ledger entry.
type CreateEntryInput struct {
	WalletID int64 `path:"walletID" doc:"Target wallet id"`
	UserID   int64 `header:"X-User-ID" doc:"Resolved caller identity"`
	Body     CreateEntryBody
}

// CreateEntryOutput is the Huma output for creating a ledger entry.
type CreateEntryOutput struct {
	Body Entry
}

// entryCreator is the interface for creating entries.
type entryCreator interface {
	Create(ctx context.Context, req service.CreateEntryRequest) (*service.Entry, error)
}

// walletResolver confirms wallet ownership before the entry is written.
type walletResolver interface {
	GetByID(ctx context.Context, walletID int64) (*service.Wallet, error)
}

// CreateEntryHandler handles POST /v1/wallet/{walletID}/entry.
type CreateEntryHandler struct {
	EntryService  entryCreator
	WalletService walletResolver
}

// NewCreateEntryHandler creates a new CreateEntryHandler.
func NewCreateEntryHandler(svc entryCreator, wallets walletResolver) *CreateEntryHandler {
	return &CreateEntryHandler{EntryService: svc, WalletService: wallets}
}

// Register registers the create entry endpoint with the Huma API.
func (h *CreateEntryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-entry",
		Method:      http.MethodPost,
		Path:        "/v1/wallet/{walletID}/entry",
		Summary:     "Create ledger entry",
		Description: "Creates a new ledger entry in the wallet.",
		Tags:        []string{"Entries"},
	}, h.handle)
}

// parseCreateEntryInput validates and converts the API input.
func parseCreateEntryInput(input *CreateEntryInput) (service.CreateEntryRequest, error) {
	value, err := decimal.NewFromString(input.Body.Value)
	if err != nil {
		return service.CreateEntryRequest{}, huma.NewError(http.StatusBadRequest, "invalid value", err)
	}

	kind, err := service.ParseKind(input.Body.Kind)
	if err != nil {
		return service.CreateEntryRequest{}, huma.NewError(http.StatusBadRequest, "invalid kind", err)
	}

	occurredOn, err := time.Parse(dateFormat, input.Body.OccurredOn)
	if err != nil {
		return service.CreateEntryRequest{}, huma.NewError(http.StatusBadRequest, "invalid occurredOn", err)
	}

	return service.CreateEntryRequest{
		WalletID:    input.WalletID,
		UserID:      input.UserID,
		Name:        input.Body.Name,
		Value:       value,
		Kind:        kind,
		Description: input.Body.Description,
		OccurredOn:  occurredOn,
		SubjectID:   input.Body.SubjectID,
		CategoryID:  input.Body.CategoryID,
	}, nil
}

func (h *CreateEntryHandler) handle(ctx context.Context, input *CreateEntryInput) (*CreateEntryOutput, error) {
	req, err := parseCreateEntryInput(input)
	if err != nil {
		return nil, err
	}

	found, err := h.WalletService.GetByID(ctx, input.WalletID)
	if err != nil {
		return nil, httperror.FromService(err, "failed to resolve wallet")
	}
	if found.UserID != input.UserID {
		return nil, httperror.FromService(apperror.ErrPermissionDenied, "wallet not owned by caller")
	}

	created, err := h.EntryService.Create(ctx, req)
	if err != nil {
		return nil, httperror.FromService(err, "failed to create entry")
	}

	return &CreateEntryOutput{Body: entryToWire(created)}, nil
}

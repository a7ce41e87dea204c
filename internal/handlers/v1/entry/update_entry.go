package entry

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperror"
	"github.com/carson-networks/ledger-server/internal/service"
)

// UpdateEntryBody is the request body for updating an entry. All mutable
// fields are required: the update is a full replace, not a patch.
type UpdateEntryBody struct {
	Name        string `json:"name" required:"true" minLength:"2" maxLength:"50" doc:"Short label"`
	Value       string `json:"value" required:"true" doc:"Positive decimal value"`
	Description string `json:"description" maxLength:"2000" doc:"Free text description"`
	OccurredOn  string `json:"occurredOn" required:"true" doc:"Calendar date, YYYY-MM-DD"`
	SubjectID   *int64 `json:"subjectID,omitempty" doc:"Optional subject id"`
	CategoryID  *int64 `json:"categoryID,omitempty" doc:"Optional category id"`
}

// UpdateEntryInput is the Huma input for updating an entry.
type UpdateEntryInput struct {
	EntryID int64 `path:"entryID" doc:"Entry id"`
	UserID  int64 `header:"X-User-ID" doc:"Resolved caller identity"`
	Body    UpdateEntryBody
}

// UpdateEntryOutput is the Huma output for updating an entry.
type UpdateEntryOutput struct {
	Body Entry
}

// entryUpdater is the interface for updating entries with an ownership gate.
type entryUpdater interface {
	GetOwnedByID(ctx context.Context, userID, entryID int64) (*service.Entry, error)
	Update(ctx context.Context, entryID int64, req service.UpdateEntryRequest) (*service.Entry, error)
}

// UpdateEntryHandler handles PUT /v1/entry/{entryID}.
type UpdateEntryHandler struct {
	EntryService entryUpdater
}

// NewUpdateEntryHandler creates a new UpdateEntryHandler.
func NewUpdateEntryHandler(svc entryUpdater) *UpdateEntryHandler {
	return &UpdateEntryHandler{EntryService: svc}
}

// Register registers the update entry endpoint with the Huma API.
func (h *UpdateEntryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-entry",
		Method:      http.MethodPut,
		Path:        "/v1/entry/{entryID}",
		Summary:     "Update ledger entry",
		Description: "Replaces the mutable fields of a ledger entry.",
		Tags:        []string{"Entries"},
	}, h.handle)
}

func parseUpdateEntryInput(input *UpdateEntryInput) (service.UpdateEntryRequest, error) {
	value, err := decimal.NewFromString(input.Body.Value)
	if err != nil {
		return service.UpdateEntryRequest{}, huma.NewError(http.StatusBadRequest, "invalid value", err)
	}

	occurredOn, err := time.Parse(dateFormat, input.Body.OccurredOn)
	if err != nil {
		return service.UpdateEntryRequest{}, huma.NewError(http.StatusBadRequest, "invalid occurredOn", err)
	}

	return service.UpdateEntryRequest{
		Name:        input.Body.Name,
		Value:       value,
		Description: input.Body.Description,
		OccurredOn:  occurredOn,
		SubjectID:   input.Body.SubjectID,
		CategoryID:  input.Body.CategoryID,
	}, nil
}

func (h *UpdateEntryHandler) handle(ctx context.Context, input *UpdateEntryInput) (*UpdateEntryOutput, error) {
	req, err := parseUpdateEntryInput(input)
	if err != nil {
		return nil, err
	}

	if _, err := h.EntryService.GetOwnedByID(ctx, input.UserID, input.EntryID); err != nil {
		return nil, httperror.FromService(err, "failed to resolve entry")
	}

	updated, err := h.EntryService.Update(ctx, input.EntryID, req)
	if err != nil {
		return nil, httperror.FromService(err, "failed to update entry")
	}

	return &UpdateEntryOutput{Body: entryToWire(updated)}, nil
}

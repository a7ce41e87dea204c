package entry

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperror"
	"github.com/carson-networks/ledger-server/internal/service"
)

// GetEntryInput is the Huma input for fetching one entry.
type GetEntryInput struct {
	EntryID int64 `path:"entryID" doc:"Entry id"`
	UserID  int64 `header:"X-User-ID" doc:"Resolved caller identity"`
}

// GetEntryOutput is the Huma output for fetching one entry.
type GetEntryOutput struct {
	Body Entry
}

// entryGetter is the interface for fetching owned entries.
type entryGetter interface {
	GetOwnedByID(ctx context.Context, userID, entryID int64) (*service.Entry, error)
}

// GetEntryHandler handles GET /v1/entry/{entryID}.
type GetEntryHandler struct {
	EntryService entryGetter
}

// NewGetEntryHandler creates a new GetEntryHandler.
func NewGetEntryHandler(svc entryGetter) *GetEntryHandler {
	return &GetEntryHandler{EntryService: svc}
}

// Register registers the get entry endpoint with the Huma API.
func (h *GetEntryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-entry",
		Method:      http.MethodGet,
		Path:        "/v1/entry/{entryID}",
		Summary:     "Get ledger entry",
		Description: "Returns one ledger entry owned by the caller.",
		Tags:        []string{"Entries"},
	}, h.handle)
}

func (h *GetEntryHandler) handle(ctx context.Context, input *GetEntryInput) (*GetEntryOutput, error) {
	found, err := h.EntryService.GetOwnedByID(ctx, input.UserID, input.EntryID)
	if err != nil {
		return nil, httperror.FromService(err, "failed to get entry")
	}

	return &GetEntryOutput{Body: entryToWire(found)}, nil
}

package entry

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperror"
	"github.com/carson-networks/ledger-server/internal/service"
)

// DeleteEntryInput is the Huma input for deleting an entry.
type DeleteEntryInput struct {
	EntryID int64 `path:"entryID" doc:"Entry id"`
	UserID  int64 `header:"X-User-ID" doc:"Resolved caller identity"`
}

// DeleteEntryOutput is the Huma output for deleting an entry.
type DeleteEntryOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// entryDeleter is the interface for deleting owned entries.
type entryDeleter interface {
	GetOwnedByID(ctx context.Context, userID, entryID int64) (*service.Entry, error)
	Delete(ctx context.Context, entryID int64) error
}

// DeleteEntryHandler handles DELETE /v1/entry/{entryID}.
type DeleteEntryHandler struct {
	EntryService entryDeleter
}

// NewDeleteEntryHandler creates a new DeleteEntryHandler.
func NewDeleteEntryHandler(svc entryDeleter) *DeleteEntryHandler {
	return &DeleteEntryHandler{EntryService: svc}
}

// Register registers the delete entry endpoint with the Huma API.
func (h *DeleteEntryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-entry",
		Method:      http.MethodDelete,
		Path:        "/v1/entry/{entryID}",
		Summary:     "Delete ledger entry",
		Description: "Permanently deletes a ledger entry owned by the caller.",
		Tags:        []string{"Entries"},
	}, h.handle)
}

func (h *DeleteEntryHandler) handle(ctx context.Context, input *DeleteEntryInput) (*DeleteEntryOutput, error) {
	if _, err := h.EntryService.GetOwnedByID(ctx, input.UserID, input.EntryID); err != nil {
		return nil, httperror.FromService(err, "failed to resolve entry")
	}

	if err := h.EntryService.Delete(ctx, input.EntryID); err != nil {
		return nil, httperror.FromService(err, "failed to delete entry")
	}

	return &DeleteEntryOutput{Status: http.StatusOK}, nil
}

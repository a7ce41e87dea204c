package entry

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperror"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ListEntriesInput is the Huma input for the wallet and subject listing
// endpoints. Date bounds are optional and inclusive on both ends.
type ListEntriesInput struct {
	ID        int64  `path:"id" doc:"Wallet or subject id"`
	StartDate string `query:"startDate" doc:"Optional inclusive lower bound, YYYY-MM-DD"`
	EndDate   string `query:"endDate" doc:"Optional inclusive upper bound, YYYY-MM-DD"`
}

// ListUserEntriesInput is the Huma input for listing the caller's entries.
type ListUserEntriesInput struct {
	UserID    int64  `header:"X-User-ID" doc:"Resolved caller identity"`
	StartDate string `query:"startDate" doc:"Optional inclusive lower bound, YYYY-MM-DD"`
	EndDate   string `query:"endDate" doc:"Optional inclusive upper bound, YYYY-MM-DD"`
}

// ListEntriesResponseBody is the response body for the listing endpoints.
type ListEntriesResponseBody struct {
	Entries []Entry `json:"entries" doc:"Matching ledger entries"`
}

// ListEntriesOutput is the Huma output for the listing endpoints.
type ListEntriesOutput struct {
	Body ListEntriesResponseBody
}

// entryLister is the interface for range-filtered entry listings.
type entryLister interface {
	ListByUser(ctx context.Context, userID int64, start, end *time.Time) ([]*service.Entry, error)
	ListByWallet(ctx context.Context, walletID int64, start, end *time.Time) ([]*service.Entry, error)
	ListBySubject(ctx context.Context, subjectID int64, start, end *time.Time) ([]*service.Entry, error)
}

// ListEntriesHandler handles the wallet, subject, and user entry listings.
type ListEntriesHandler struct {
	EntryService entryLister
}

// NewListEntriesHandler creates a new ListEntriesHandler.
func NewListEntriesHandler(svc entryLister) *ListEntriesHandler {
	return &ListEntriesHandler{EntryService: svc}
}

// Register registers the listing endpoints with the Huma API.
func (h *ListEntriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-wallet-entries",
		Method:      http.MethodGet,
		Path:        "/v1/wallet/{id}/entries",
		Summary:     "List wallet entries",
		Description: "Returns the wallet's entries, optionally date bounded.",
		Tags:        []string{"Entries"},
	}, h.handleWallet)

	huma.Register(api, huma.Operation{
		OperationID: "list-subject-entries",
		Method:      http.MethodGet,
		Path:        "/v1/subject/{id}/entries",
		Summary:     "List subject entries",
		Description: "Returns the subject's entries, optionally date bounded.",
		Tags:        []string{"Entries"},
	}, h.handleSubject)

	huma.Register(api, huma.Operation{
		OperationID: "list-user-entries",
		Method:      http.MethodGet,
		Path:        "/v1/user/entries",
		Summary:     "List own entries",
		Description: "Returns the caller's entries, optionally date bounded.",
		Tags:        []string{"Entries"},
	}, h.handleUser)
}

// parseDateWindow parses the optional query bounds. Empty strings mean
// unbounded on that side.
func parseDateWindow(startDate, endDate string) (start, end *time.Time, err error) {
	if startDate != "" {
		parsed, parseErr := time.Parse(dateFormat, startDate)
		if parseErr != nil {
			return nil, nil, huma.NewError(http.StatusBadRequest, "invalid startDate", parseErr)
		}
		start = &parsed
	}

	if endDate != "" {
		parsed, parseErr := time.Parse(dateFormat, endDate)
		if parseErr != nil {
			return nil, nil, huma.NewError(http.StatusBadRequest, "invalid endDate", parseErr)
		}
		end = &parsed
	}

	return start, end, nil
}

func (h *ListEntriesHandler) respond(ctx context.Context, entries []*service.Entry, err error) (*ListEntriesOutput, error) {
	if err != nil {
		return nil, httperror.FromService(err, "failed to list entries")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("entryCount", len(entries))
	}

	return &ListEntriesOutput{Body: ListEntriesResponseBody{Entries: entriesToWire(entries)}}, nil
}

func (h *ListEntriesHandler) handleWallet(ctx context.Context, input *ListEntriesInput) (*ListEntriesOutput, error) {
	start, end, err := parseDateWindow(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	entries, err := h.EntryService.ListByWallet(ctx, input.ID, start, end)
	return h.respond(ctx, entries, err)
}

func (h *ListEntriesHandler) handleSubject(ctx context.Context, input *ListEntriesInput) (*ListEntriesOutput, error) {
	start, end, err := parseDateWindow(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	entries, err := h.EntryService.ListBySubject(ctx, input.ID, start, end)
	return h.respond(ctx, entries, err)
}

func (h *ListEntriesHandler) handleUser(ctx context.Context, input *ListUserEntriesInput) (*ListEntriesOutput, error) {
	start, end, err := parseDateWindow(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	entries, err := h.EntryService.ListByUser(ctx, input.UserID, start, end)
	return h.respond(ctx, entries, err)
}

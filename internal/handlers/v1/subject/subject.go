// Package subject exposes the subject CRUD endpoints.
package subject

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperror"
	"github.com/carson-networks/ledger-server/internal/service"
)

// Subject is the wire representation of a subject.
type Subject struct {
	ID        int64  `json:"id" doc:"Subject id"`
	Name      string `json:"name" doc:"Subject name"`
	CreatedAt string `json:"createdAt" doc:"Creation timestamp"`
	UpdatedAt string `json:"updatedAt" doc:"Last update timestamp"`
}

// SubjectBody is the request body for creating or updating a subject.
type SubjectBody struct {
	Name string `json:"name" required:"true" minLength:"2" maxLength:"50" doc:"Subject name"`
}

// CreateSubjectInput is the Huma input for creating a subject.
type CreateSubjectInput struct {
	UserID int64 `header:"X-User-ID" doc:"Resolved caller identity"`
	Body   SubjectBody
}

// UpdateSubjectInput is the Huma input for updating a subject.
type UpdateSubjectInput struct {
	SubjectID int64 `path:"subjectID" doc:"Subject id"`
	UserID    int64 `header:"X-User-ID" doc:"Resolved caller identity"`
	Body      SubjectBody
}

// SubjectIDInput is the Huma input for fetching or deleting one subject.
type SubjectIDInput struct {
	SubjectID int64 `path:"subjectID" doc:"Subject id"`
	UserID    int64 `header:"X-User-ID" doc:"Resolved caller identity"`
}

// ListSubjectsInput is the Huma input for listing the caller's subjects.
type ListSubjectsInput struct {
	UserID int64 `header:"X-User-ID" doc:"Resolved caller identity"`
}

// SubjectOutput is the Huma output for single-subject endpoints.
type SubjectOutput struct {
	Body Subject
}

// ListSubjectsOutput is the Huma output for the subject listing.
type ListSubjectsOutput struct {
	Body struct {
		Subjects []Subject `json:"subjects" doc:"The caller's subjects"`
	}
}

// DeleteSubjectOutput is the Huma output for deleting a subject.
type DeleteSubjectOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// subjectService is the interface for subject CRUD.
type subjectService interface {
	Create(ctx context.Context, userID int64, name string) (*service.Subject, error)
	Update(ctx context.Context, subjectID int64, name string) (*service.Subject, error)
	Delete(ctx context.Context, subjectID int64) error
	GetByID(ctx context.Context, subjectID int64) (*service.Subject, error)
	ListByUser(ctx context.Context, userID int64) ([]*service.Subject, error)
}

// Handler registers the subject endpoints.
type Handler struct {
	SubjectService subjectService
}

// NewHandler creates a new subject Handler.
func NewHandler(svc subjectService) *Handler {
	return &Handler{SubjectService: svc}
}

// Register registers the subject endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-subject",
		Method:      http.MethodPost,
		Path:        "/v1/subject",
		Summary:     "Create subject",
		Tags:        []string{"Subjects"},
	}, h.handleCreate)

	huma.Register(api, huma.Operation{
		OperationID: "get-subject",
		Method:      http.MethodGet,
		Path:        "/v1/subject/{subjectID}",
		Summary:     "Get subject",
		Tags:        []string{"Subjects"},
	}, h.handleGet)

	huma.Register(api, huma.Operation{
		OperationID: "list-subjects",
		Method:      http.MethodGet,
		Path:        "/v1/subject",
		Summary:     "List subjects",
		Tags:        []string{"Subjects"},
	}, h.handleList)

	huma.Register(api, huma.Operation{
		OperationID: "update-subject",
		Method:      http.MethodPut,
		Path:        "/v1/subject/{subjectID}",
		Summary:     "Update subject",
		Tags:        []string{"Subjects"},
	}, h.handleUpdate)

	huma.Register(api, huma.Operation{
		OperationID: "delete-subject",
		Method:      http.MethodDelete,
		Path:        "/v1/subject/{subjectID}",
		Summary:     "Delete subject",
		Tags:        []string{"Subjects"},
	}, h.handleDelete)
}

func subjectToWire(s *service.Subject) Subject {
	return Subject{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) resolveOwned(ctx context.Context, userID, subjectID int64) (*service.Subject, error) {
	found, err := h.SubjectService.GetByID(ctx, subjectID)
	if err != nil {
		return nil, httperror.FromService(err, "failed to resolve subject")
	}
	if found.UserID != userID {
		return nil, httperror.FromService(apperror.ErrPermissionDenied, "subject not owned by caller")
	}
	return found, nil
}

func (h *Handler) handleCreate(ctx context.Context, input *CreateSubjectInput) (*SubjectOutput, error) {
	created, err := h.SubjectService.Create(ctx, input.UserID, input.Body.Name)
	if err != nil {
		return nil, httperror.FromService(err, "failed to create subject")
	}
	return &SubjectOutput{Body: subjectToWire(created)}, nil
}

func (h *Handler) handleGet(ctx context.Context, input *SubjectIDInput) (*SubjectOutput, error) {
	found, err := h.resolveOwned(ctx, input.UserID, input.SubjectID)
	if err != nil {
		return nil, err
	}
	return &SubjectOutput{Body: subjectToWire(found)}, nil
}

func (h *Handler) handleList(ctx context.Context, input *ListSubjectsInput) (*ListSubjectsOutput, error) {
	subjects, err := h.SubjectService.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, httperror.FromService(err, "failed to list subjects")
	}

	output := &ListSubjectsOutput{}
	output.Body.Subjects = make([]Subject, len(subjects))
	for i, s := range subjects {
		output.Body.Subjects[i] = subjectToWire(s)
	}
	return output, nil
}

func (h *Handler) handleUpdate(ctx context.Context, input *UpdateSubjectInput) (*SubjectOutput, error) {
	if _, err := h.resolveOwned(ctx, input.UserID, input.SubjectID); err != nil {
		return nil, err
	}

	updated, err := h.SubjectService.Update(ctx, input.SubjectID, input.Body.Name)
	if err != nil {
		return nil, httperror.FromService(err, "failed to update subject")
	}
	return &SubjectOutput{Body: subjectToWire(updated)}, nil
}

func (h *Handler) handleDelete(ctx context.Context, input *SubjectIDInput) (*DeleteSubjectOutput, error) {
	if _, err := h.resolveOwned(ctx, input.UserID, input.SubjectID); err != nil {
		return nil, err
	}

	if err := h.SubjectService.Delete(ctx, input.SubjectID); err != nil {
		return nil, httperror.FromService(err, "failed to delete subject")
	}
	return &DeleteSubjectOutput{Status: http.StatusOK}, nil
}

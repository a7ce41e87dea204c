// Package httperror maps the service error taxonomy onto HTTP statuses so
// every handler reports conflicts, missing objects, and ownership failures
// the same way.
package httperror

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/apperror"
)

// FromService converts a service layer error into a huma status error.
func FromService(err error, message string) error {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return huma.NewError(http.StatusNotFound, message, err)
	case errors.Is(err, apperror.ErrAlreadyExists):
		return huma.NewError(http.StatusConflict, message, err)
	case errors.Is(err, apperror.ErrPermissionDenied):
		return huma.NewError(http.StatusForbidden, message, err)
	}
	return huma.NewError(http.StatusInternalServerError, message, err)
}

// Package apperror holds the error taxonomy shared by the storage, service,
// and handler layers. Handlers map each sentinel to a stable status code.
package apperror

import "errors"

var (
	// ErrNotFound is returned when an id does not resolve to a row.
	ErrNotFound = errors.New("object does not exist")

	// ErrAlreadyExists is returned when a write collides with the
	// (name, wallet_id, occurred_on) uniqueness constraint.
	ErrAlreadyExists = errors.New("object already exists")

	// ErrPermissionDenied is returned when the caller does not own the
	// target object.
	ErrPermissionDenied = errors.New("permission denied")
)

package entry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/ledger-server/internal/apperror"
)

func TestTranslateConstraint_UniqueViolation(t *testing.T) {
	pqErr := &pq.Error{Code: uniqueViolation, Constraint: "ledger_entries_name_wallet_date_key"}

	err := translateConstraint(pqErr)

	assert.ErrorIs(t, err, apperror.ErrAlreadyExists)
}

func TestTranslateConstraint_WrappedUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pq.Error{Code: uniqueViolation})

	err := translateConstraint(wrapped)

	assert.ErrorIs(t, err, apperror.ErrAlreadyExists)
}

func TestTranslateConstraint_OtherPqError(t *testing.T) {
	pqErr := &pq.Error{Code: "23503"} // foreign key violation

	err := translateConstraint(pqErr)

	assert.Equal(t, pqErr, err)
	assert.NotErrorIs(t, err, apperror.ErrAlreadyExists)
}

func TestTranslateConstraint_PlainError(t *testing.T) {
	plain := errors.New("connection refused")

	err := translateConstraint(plain)

	assert.Equal(t, plain, err)
}

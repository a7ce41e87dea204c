package entry

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
	"github.com/stretchr/testify/assert"
)

var errQueryCaptured = errors.New("query captured")

// captureExecutor records the SQL handed to it and fails the call, so query
// shapes can be asserted without a database.
type captureExecutor struct {
	query string
	args  []any
}

func (c *captureExecutor) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	c.query, c.args = query, args
	return nil, errQueryCaptured
}

func (c *captureExecutor) QueryContext(_ context.Context, query string, args ...any) (scan.Rows, error) {
	c.query, c.args = query, args
	return nil, errQueryCaptured
}

func buildWindowSQL(t *testing.T, window DateWindow) (string, []any) {
	t.Helper()
	queryMods := append(windowMods(window), sm.Columns("id"), sm.From(table))
	query, queryArgs, err := psql.Select(queryMods...).Build(context.Background())
	assert.NoError(t, err)
	return query, queryArgs
}

func TestWindowMods_InclusiveBounds(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	query, args := buildWindowSQL(t, DateWindow{Start: &start, End: &end})

	// Both bounds land inside the window, so the comparisons must not be
	// strict.
	assert.Contains(t, query, `"occurred_on" >= $1`)
	assert.Contains(t, query, `"occurred_on" <= $2`)
	assert.NotContains(t, query, `"occurred_on" > $`)
	assert.NotContains(t, query, `"occurred_on" < $`)
	assert.Equal(t, []any{start, end}, args)
}

func TestWindowMods_OpenStart(t *testing.T) {
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	query, args := buildWindowSQL(t, DateWindow{End: &end})

	assert.NotContains(t, query, ">=")
	assert.Contains(t, query, `"occurred_on" <= $1`)
	assert.Equal(t, []any{end}, args)
}

func TestWindowMods_Unbounded(t *testing.T) {
	query, args := buildWindowSQL(t, DateWindow{})

	assert.NotContains(t, query, "occurred_on")
	assert.Empty(t, args)
}

func TestSumByUser_QueryShape(t *testing.T) {
	exec := &captureExecutor{}
	reader := NewReader(exec)
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	_, err := reader.SumByUser(context.Background(), 7, DateWindow{Start: &start, End: &end})
	assert.Error(t, err)

	assert.Contains(t, exec.query, "FILTER (WHERE kind = 'INCOME')")
	assert.Contains(t, exec.query, "FILTER (WHERE kind = 'EXPENSE')")
	assert.Contains(t, exec.query, `"occurred_on" >= $1`)
	assert.Contains(t, exec.query, `"occurred_on" <= $2`)
	assert.Contains(t, exec.query, `"user_id" = $3`)
	assert.Contains(t, exec.query, `"is_transfer" = $4`)
	assert.Equal(t, []any{start, end, int64(7), false}, exec.args)
}

func TestSumByWallet_QueryShape(t *testing.T) {
	exec := &captureExecutor{}
	reader := NewReader(exec)
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	_, err := reader.SumByWallet(context.Background(), 3, DateWindow{Start: &start, End: &end})
	assert.Error(t, err)

	assert.Contains(t, exec.query, "FILTER (WHERE kind = 'INCOME'), 0) AS incomes")
	assert.Contains(t, exec.query, "FILTER (WHERE kind = 'EXPENSE'), 0) AS expenses")
	assert.Contains(t, exec.query, "kind = 'INCOME' AND is_transfer), 0) AS transfer_incomes")
	assert.Contains(t, exec.query, "kind = 'EXPENSE' AND is_transfer), 0) AS transfer_expenses")
	assert.Contains(t, exec.query, `"occurred_on" >= $1`)
	assert.Contains(t, exec.query, `"occurred_on" <= $2`)
	assert.Contains(t, exec.query, `"wallet_id" = $3`)
	// The main sums cover transfer and non-transfer rows alike; only the
	// sub-sums filter on the transfer flag.
	assert.NotContains(t, exec.query, `"is_transfer" =`)
	assert.Equal(t, []any{start, end, int64(3)}, exec.args)
}

func TestListByWallet_AppliesWindow(t *testing.T) {
	exec := &captureExecutor{}
	reader := NewReader(exec)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := reader.ListByWallet(context.Background(), 3, DateWindow{Start: &start})
	assert.Error(t, err)

	assert.Contains(t, exec.query, `"occurred_on" >= $1`)
	assert.Contains(t, exec.query, `"wallet_id" = $2`)
	assert.Contains(t, exec.query, "ORDER BY")
	assert.Contains(t, exec.query, "occurred_on ASC")
	assert.Contains(t, exec.query, "id ASC")
	assert.Equal(t, []any{start, int64(3)}, exec.args)
}

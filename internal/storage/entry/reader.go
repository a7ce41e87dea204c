package entry

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const table = "ledger_entries"

var columns = []any{
	"id", "name", "value", "kind", "description", "occurred_on",
	"is_transfer", "user_id", "wallet_id", "subject_id", "category_id",
	"created_at", "updated_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// windowMods translates an inclusive date window into select filters. Each
// call returns a fresh mod slice, so windows are never shared mutable state
// between queries.
func windowMods(window DateWindow) []bob.Mod[*dialect.SelectQuery] {
	var queryMods []bob.Mod[*dialect.SelectQuery]
	if window.Start != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("occurred_on").GTE(psql.Arg(*window.Start))))
	}
	if window.End != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("occurred_on").LTE(psql.Arg(*window.End))))
	}
	return queryMods
}

func (r *Reader) one(ctx context.Context, queryMods ...bob.Mod[*dialect.SelectQuery]) (*Entry, error) {
	queryMods = append(queryMods, sm.Columns(columns...), sm.From(table))

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Entry]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Reader) all(ctx context.Context, queryMods ...bob.Mod[*dialect.SelectQuery]) ([]*Entry, error) {
	queryMods = append(queryMods,
		sm.Columns(columns...),
		sm.From(table),
		sm.OrderBy("occurred_on").Asc(),
		sm.OrderBy("id").Asc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Entry]())
	if err != nil {
		return nil, err
	}

	result := make([]*Entry, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (r *Reader) FindByID(ctx context.Context, id int64) (*Entry, error) {
	return r.one(ctx, sm.Where(psql.Quote("id").EQ(psql.Arg(id))))
}

// FindByNameWalletDate resolves the uniqueness triple to an existing entry,
// if any. Backs the conflict pre-check on create and update.
func (r *Reader) FindByNameWalletDate(ctx context.Context, name string, walletID int64, occurredOn time.Time) (*Entry, error) {
	return r.one(ctx,
		sm.Where(psql.Quote("name").EQ(psql.Arg(name))),
		sm.Where(psql.Quote("wallet_id").EQ(psql.Arg(walletID))),
		sm.Where(psql.Quote("occurred_on").EQ(psql.Arg(occurredOn))),
	)
}

func (r *Reader) ListByUser(ctx context.Context, userID int64, window DateWindow) ([]*Entry, error) {
	queryMods := append(windowMods(window), sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))))
	return r.all(ctx, queryMods...)
}

func (r *Reader) ListByWallet(ctx context.Context, walletID int64, window DateWindow) ([]*Entry, error) {
	queryMods := append(windowMods(window), sm.Where(psql.Quote("wallet_id").EQ(psql.Arg(walletID))))
	return r.all(ctx, queryMods...)
}

func (r *Reader) ListBySubject(ctx context.Context, subjectID int64, window DateWindow) ([]*Entry, error) {
	queryMods := append(windowMods(window), sm.Where(psql.Quote("subject_id").EQ(psql.Arg(subjectID))))
	return r.all(ctx, queryMods...)
}

// SumByUser sums non-transfer entries by kind for a user. Transfer legs are
// excluded: both legs of a transfer belong to the same user and would
// otherwise distort the user-level totals. The sums run server side.
func (r *Reader) SumByUser(ctx context.Context, userID int64, window DateWindow) (*ValueSums, error) {
	queryMods := append(windowMods(window),
		sm.Columns(
			psql.Raw("COALESCE(SUM(value) FILTER (WHERE kind = 'INCOME'), 0) AS incomes"),
			psql.Raw("COALESCE(SUM(value) FILTER (WHERE kind = 'EXPENSE'), 0) AS expenses"),
		),
		sm.From(table),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("is_transfer").EQ(psql.Arg(false))),
	)

	sums, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[ValueSums]())
	if err != nil {
		return nil, err
	}
	return &sums, nil
}

// SumByWallet sums all entries by kind for a wallet and separately sums the
// transfer-only subset, in a single aggregate query.
func (r *Reader) SumByWallet(ctx context.Context, walletID int64, window DateWindow) (*ValueSums, error) {
	queryMods := append(windowMods(window),
		sm.Columns(
			psql.Raw("COALESCE(SUM(value) FILTER (WHERE kind = 'INCOME'), 0) AS incomes"),
			psql.Raw("COALESCE(SUM(value) FILTER (WHERE kind = 'EXPENSE'), 0) AS expenses"),
			psql.Raw("COALESCE(SUM(value) FILTER (WHERE kind = 'INCOME' AND is_transfer), 0) AS transfer_incomes"),
			psql.Raw("COALESCE(SUM(value) FILTER (WHERE kind = 'EXPENSE' AND is_transfer), 0) AS transfer_expenses"),
		),
		sm.From(table),
		sm.Where(psql.Quote("wallet_id").EQ(psql.Arg(walletID))),
	)

	sums, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[ValueSums]())
	if err != nil {
		return nil, err
	}
	return &sums, nil
}

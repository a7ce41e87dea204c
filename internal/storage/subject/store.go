package subject

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const table = "subjects"

var columns = []any{"id", "name", "user_id", "created_at", "updated_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id int64) (*Subject, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(table),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Subject]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Reader) ListByUser(ctx context.Context, userID int64) ([]*Subject, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(table),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy("name").Asc(),
	)

	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[Subject]())
	if err != nil {
		return nil, err
	}

	result := make([]*Subject, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

type Writer struct {
	exec bob.Executor
	Reader
}

func NewWriter(exec bob.Executor) *Writer {
	return &Writer{
		exec: exec,
		Reader: Reader{
			exec: exec,
		},
	}
}

func (w *Writer) Insert(ctx context.Context, name string, userID int64) (*Subject, error) {
	q := psql.Insert(
		im.Into(table, "name", "user_id"),
		im.Values(psql.Arg(name, userID)),
		im.Returning(columns...),
	)

	row, err := bob.One(ctx, w.exec, q, scan.StructMapper[Subject]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (w *Writer) Update(ctx context.Context, id int64, name string) (*Subject, error) {
	q := psql.Update(
		um.Table(table),
		um.SetCol("name").ToArg(name),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)

	row, err := bob.One(ctx, w.exec, q, scan.StructMapper[Subject]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (w *Writer) Delete(ctx context.Context, id int64) error {
	q := psql.Delete(
		dm.From(table),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	_, err := bob.Exec(ctx, w.exec, q)
	return err
}

package wallet

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

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

func (w *Writer) Insert(ctx context.Context, create *Create) (*Wallet, error) {
	q := psql.Insert(
		im.Into(table, "name", "description", "user_id"),
		im.Values(psql.Arg(create.Name, create.Description, create.UserID)),
		im.Returning(columns...),
	)

	row, err := bob.One(ctx, w.exec, q, scan.StructMapper[Wallet]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (w *Writer) Update(ctx context.Context, id int64, name, description string) (*Wallet, error) {
	q := psql.Update(
		um.Table(table),
		um.SetCol("name").ToArg(name),
		um.SetCol("description").ToArg(description),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)

	row, err := bob.One(ctx, w.exec, q, scan.StructMapper[Wallet]())
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

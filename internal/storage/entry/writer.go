package entry

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/apperror"
)

const uniqueViolation = "23505"

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

// translateConstraint maps a postgres unique violation on the
// (name, wallet_id, occurred_on) index to the conflict error. The index is
// what actually closes the race between two concurrent writers that both
// passed the service-level pre-check.
func translateConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return apperror.ErrAlreadyExists
	}
	return err
}

// Insert stores a new entry and returns it with the generated id and
// timestamps filled in.
func (w *Writer) Insert(ctx context.Context, create *Create) (*Entry, error) {
	q := psql.Insert(
		im.Into(table,
			"name", "value", "kind", "description", "occurred_on",
			"is_transfer", "user_id", "wallet_id", "subject_id", "category_id",
		),
		im.Values(psql.Arg(
			create.Name, create.Value, create.Kind, create.Description,
			create.OccurredOn, create.IsTransfer, create.UserID,
			create.WalletID, create.SubjectID, create.CategoryID,
		)),
		im.Returning(columns...),
	)

	row, err := bob.One(ctx, w.exec, q, scan.StructMapper[Entry]())
	if err != nil {
		return nil, translateConstraint(err)
	}
	return &row, nil
}

// Update replaces the mutable fields of an entry. Kind and wallet are left
// untouched; updated_at is bumped server side.
func (w *Writer) Update(ctx context.Context, id int64, mutation *Mutation) (*Entry, error) {
	q := psql.Update(
		um.Table(table),
		um.SetCol("name").ToArg(mutation.Name),
		um.SetCol("value").ToArg(mutation.Value),
		um.SetCol("description").ToArg(mutation.Description),
		um.SetCol("occurred_on").ToArg(mutation.OccurredOn),
		um.SetCol("subject_id").ToArg(mutation.SubjectID),
		um.SetCol("category_id").ToArg(mutation.CategoryID),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)

	row, err := bob.One(ctx, w.exec, q, scan.StructMapper[Entry]())
	if err != nil {
		return nil, translateConstraint(err)
	}
	return &row, nil
}

// Delete removes an entry permanently. Deleting an id that no longer exists
// is not an error here; callers fetch first and surface NotFound themselves.
func (w *Writer) Delete(ctx context.Context, id int64) error {
	q := psql.Delete(
		dm.From(table),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	_, err := bob.Exec(ctx, w.exec, q)
	return err
}

package ioimport

import (
	"context"
	"slices"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/ipnidb/pkg/db"
	"github.com/gnames/ipnidb/pkg/schema"
	"github.com/jackc/pgx/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxPlaceholders keeps multi-row INSERT statements under the bind
// parameter limits of MySQL and SQLite.
const maxPlaceholders = 30000

// batch is a slice of rows of one table.
type batch struct {
	table   string
	columns []string

	// rows returns values for COPY.
	rows func() [][]any

	// models is a pointer to a slice of models for GORM.
	models any
}

// writer performs all inserts of an import inside one transaction.
type writer interface {
	// clear deletes rows of the given tables in the given order.
	clear(ctx context.Context, tables []string) error
	write(ctx context.Context, b batch) (int64, error)
	commit(ctx context.Context) error
	rollback(ctx context.Context) error
}

// newWriter starts a transaction. Postgres gets COPY, other drivers
// use GORM batched inserts.
func newWriter(ctx context.Context, op db.Operator) (writer, error) {
	if pool := op.Pool(); pool != nil {
		tx, err := pool.Begin(ctx)
		if err != nil {
			return nil, err
		}
		return &pgxWriter{tx: tx}, nil
	}

	tx := op.GORM().WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormWriter{tx: tx}, nil
}

type pgxWriter struct {
	tx pgx.Tx
}

func (w *pgxWriter) clear(ctx context.Context, tables []string) error {
	for _, t := range tables {
		q := "DELETE FROM " + pgx.Identifier{t}.Sanitize()
		if _, err := w.tx.Exec(ctx, q); err != nil {
			return InsertError(t, err)
		}
	}
	return nil
}

func (w *pgxWriter) write(ctx context.Context, b batch) (int64, error) {
	n, err := w.tx.CopyFrom(
		ctx,
		pgx.Identifier{b.table},
		b.columns,
		pgx.CopyFromRows(b.rows()),
	)
	if err != nil {
		return 0, InsertError(b.table, err)
	}
	return n, nil
}

func (w *pgxWriter) commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *pgxWriter) rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}

type gormWriter struct {
	tx *gorm.DB
}

func (w *gormWriter) clear(_ context.Context, tables []string) error {
	for _, t := range tables {
		res := w.tx.Exec("DELETE FROM ?", clause.Table{Name: t})
		if res.Error != nil {
			return InsertError(t, res.Error)
		}
	}
	return nil
}

func (w *gormWriter) write(_ context.Context, b batch) (int64, error) {
	size := max(maxPlaceholders/len(b.columns), 1)
	res := w.tx.Omit(clause.Associations).CreateInBatches(b.models, size)
	if res.Error != nil {
		return 0, InsertError(b.table, res.Error)
	}
	return res.RowsAffected, nil
}

func (w *gormWriter) commit(_ context.Context) error {
	return w.tx.Commit().Error
}

func (w *gormWriter) rollback(_ context.Context) error {
	return w.tx.Rollback().Error
}

// writeTable inserts items in batches of size rows and returns the
// number of inserted rows.
func writeTable[T schema.Copier](
	ctx context.Context,
	w writer,
	items []T,
	size int,
	bar *pb.ProgressBar,
) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	var zero T
	table, columns := zero.TableName(), zero.CopyColumns()

	var total int64
	for chunk := range slices.Chunk(items, max(size, 1)) {
		if err := ctx.Err(); err != nil {
			return total, CancelledError(err)
		}
		b := batch{
			table:   table,
			columns: columns,
			rows: func() [][]any {
				res := make([][]any, len(chunk))
				for i := range chunk {
					res[i] = chunk[i].CopyValues()
				}
				return res
			},
			models: &chunk,
		}
		n, err := w.write(ctx, b)
		if err != nil {
			return total, err
		}
		total += n
		bar.Add(len(chunk))
	}
	return total, nil
}

package iostore

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gnames/ipnidb/pkg/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gschema "gorm.io/gorm/schema"
)

// repo implements store.Repository for one model.
type repo[T any, K comparable] struct {
	db      *gorm.DB
	table   string
	columns map[string]*gschema.Field

	keyOf func(*T) K

	// validate checks a row before it is inserted.
	validate func(tx *gorm.DB, row *T) error

	// refs counts rows of other tables that point to id.
	refs func(tx *gorm.DB, id K) (int64, error)
}

func newRepo[T any, K comparable](
	gdb *gorm.DB,
	keyOf func(*T) K,
) (*repo[T, K], error) {
	stmt := &gorm.Statement{DB: gdb}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, err
	}

	cols := make(map[string]*gschema.Field, len(stmt.Schema.DBNames))
	for _, v := range stmt.Schema.DBNames {
		cols[v] = stmt.Schema.LookUpField(v)
	}

	res := repo[T, K]{
		db:      gdb,
		table:   stmt.Schema.Table,
		columns: cols,
		keyOf:   keyOf,
	}
	return &res, nil
}

var idColumn = clause.Column{Name: "id"}

func (r *repo[T, K]) List(
	ctx context.Context,
	q store.Query,
) (*store.Page[T], error) {
	q, err := normalizeQuery(q)
	if err != nil {
		return nil, err
	}

	conds, err := r.conditions(q.Filters)
	if err != nil {
		return nil, err
	}
	filter := func(tx *gorm.DB) *gorm.DB {
		for _, v := range conds {
			tx = tx.Where(v)
		}
		return tx
	}

	res := store.Page[T]{Offset: q.Offset, Limit: q.Limit}
	err = r.db.WithContext(ctx).Model(new(T)).Scopes(filter).
		Count(&res.Total).Error
	if err != nil {
		return nil, QueryError(r.table, err)
	}

	err = r.db.WithContext(ctx).Scopes(filter).
		Order(clause.OrderByColumn{Column: idColumn}).
		Offset(q.Offset).Limit(q.Limit).
		Find(&res.Results).Error
	if err != nil {
		return nil, QueryError(r.table, err)
	}
	if res.Results == nil {
		res.Results = []T{}
	}
	return &res, nil
}

// conditions converts query filters to WHERE expressions. Unknown
// columns are ignored, boolean columns take strconv.ParseBool values.
func (r *repo[T, K]) conditions(
	filters map[string]string,
) ([]clause.Expression, error) {
	var res []clause.Expression
	for col, val := range filters {
		field, ok := r.columns[col]
		if !ok {
			continue
		}
		c := clause.Column{Name: col}
		if field != nil && field.DataType == gschema.Bool {
			b, err := strconv.ParseBool(val)
			if err != nil {
				return nil, ValidationError(
					"Filter <em>%s</em> needs true or false, got <em>%s</em>",
					col, val,
				)
			}
			res = append(res, clause.Eq{Column: c, Value: b})
			continue
		}
		if strings.Contains(val, "%") {
			res = append(res, clause.Like{Column: c, Value: val})
		} else {
			res = append(res, clause.Eq{Column: c, Value: val})
		}
	}
	return res, nil
}

func (r *repo[T, K]) Get(ctx context.Context, id K) (*T, error) {
	var res T
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: idColumn, Value: id}).
		Take(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundError(r.table, id)
	}
	if err != nil {
		return nil, QueryError(r.table, err)
	}
	return &res, nil
}

func (r *repo[T, K]) Create(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.validate != nil {
			if err := r.validate(tx, row); err != nil {
				return err
			}
		}

		var zero K
		if id := r.keyOf(row); id != zero {
			ok, err := exists(tx, r.table, "id", id)
			if err != nil {
				return QueryError(r.table, err)
			}
			if ok {
				return ConflictError(
					"Record <em>%v</em> already exists in <em>%s</em>",
					id, r.table,
				)
			}
		}

		if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
			return insertError(r.table, r.keyOf(row), err)
		}
		return nil
	})
}

func (r *repo[T, K]) Delete(ctx context.Context, id K) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, r.table, "id", id)
		if err != nil {
			return QueryError(r.table, err)
		}
		if !ok {
			return NotFoundError(r.table, id)
		}

		if r.refs != nil {
			n, err := r.refs(tx, id)
			if err != nil {
				return QueryError(r.table, err)
			}
			if n > 0 {
				return ConflictError(
					"Record <em>%v</em> of <em>%s</em> is referenced by "+
						"<em>%d</em> other records",
					id, r.table, n,
				)
			}
		}

		err = tx.Where(clause.Eq{Column: idColumn, Value: id}).
			Delete(new(T)).Error
		if err != nil {
			return QueryError(r.table, err)
		}
		return nil
	})
}

func normalizeQuery(q store.Query) (store.Query, error) {
	if q.Limit == 0 {
		q.Limit = store.DefaultLimit
	}
	if q.Offset < 0 {
		return q, ValidationError("Offset cannot be negative: <em>%d</em>", q.Offset)
	}
	if q.Limit < 0 || q.Limit > store.MaxLimit {
		return q, ValidationError(
			"Limit has to be between 1 and %d: <em>%d</em>",
			store.MaxLimit, q.Limit,
		)
	}
	return q, nil
}

// exists checks if table has a row where col equals val.
func exists(tx *gorm.DB, table, col string, val any) (bool, error) {
	var n int64
	err := tx.Table(table).
		Where(clause.Eq{Column: clause.Column{Name: col}, Value: val}).
		Count(&n).Error
	return n > 0, err
}

// count returns the number of rows of table where any of cols equals val.
func count(tx *gorm.DB, table string, val any, cols ...string) (int64, error) {
	exprs := make([]clause.Expression, len(cols))
	for i, col := range cols {
		exprs[i] = clause.Eq{Column: clause.Column{Name: col}, Value: val}
	}
	var n int64
	err := tx.Table(table).Where(clause.Or(exprs...)).Count(&n).Error
	return n, err
}

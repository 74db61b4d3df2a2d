// Package iostore implements store.Store with GORM. It works with every
// driver supported by iodb.
package iostore

import (
	"context"
	"errors"

	"github.com/gnames/ipnidb/pkg/db"
	"github.com/gnames/ipnidb/pkg/schema"
	"github.com/gnames/ipnidb/pkg/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gschema "gorm.io/gorm/schema"
)

type dbStore struct {
	db *gorm.DB

	names         *repo[schema.Name, string]
	references    *repo[schema.Reference, string]
	taxa          *repo[schema.Taxon, string]
	nameRelations *repo[schema.NameRelation, int]
	typeMaterials *repo[schema.TypeMaterial, int]
}

// New creates a Store on top of a connected operator.
func New(op db.Operator) (store.Store, error) {
	gdb := op.GORM()
	if gdb == nil {
		return nil, errors.New("store requires a connected database")
	}

	var err error
	res := dbStore{db: gdb}

	if res.names, err = newRepo(gdb, func(n *schema.Name) string {
		return n.ID
	}); err != nil {
		return nil, err
	}
	res.names.validate = validateName
	res.names.refs = func(tx *gorm.DB, id string) (int64, error) {
		var total int64
		for _, v := range []struct {
			table string
			cols  []string
		}{
			{schema.TaxonTable, []string{"name_id"}},
			{schema.NameRelationTable, []string{"name_id", "related_name_id"}},
			{schema.TypeMaterialTable, []string{"name_id"}},
		} {
			n, err := count(tx, v.table, id, v.cols...)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	}

	if res.references, err = newRepo(gdb, func(r *schema.Reference) string {
		return r.ID
	}); err != nil {
		return nil, err
	}
	res.references.validate = func(_ *gorm.DB, r *schema.Reference) error {
		return required("id", r.ID)
	}
	res.references.refs = func(tx *gorm.DB, id string) (int64, error) {
		return count(tx, schema.NameTable, id, "reference_id")
	}

	if res.taxa, err = newRepo(gdb, func(t *schema.Taxon) string {
		return t.ID
	}); err != nil {
		return nil, err
	}
	res.taxa.validate = func(tx *gorm.DB, t *schema.Taxon) error {
		if err := required("id", t.ID); err != nil {
			return err
		}
		return nameExists(tx, "name_id", t.NameID)
	}

	if res.nameRelations, err = newRepo(gdb, func(r *schema.NameRelation) int {
		return r.ID
	}); err != nil {
		return nil, err
	}
	res.nameRelations.validate = func(tx *gorm.DB, r *schema.NameRelation) error {
		if err := required("type", string(r.Type)); err != nil {
			return err
		}
		if err := nameExists(tx, "name_id", r.NameID); err != nil {
			return err
		}
		return nameExists(tx, "related_name_id", r.RelatedNameID)
	}

	if res.typeMaterials, err = newRepo(gdb, func(t *schema.TypeMaterial) int {
		return t.ID
	}); err != nil {
		return nil, err
	}
	res.typeMaterials.validate = func(tx *gorm.DB, t *schema.TypeMaterial) error {
		return nameExists(tx, "name_id", t.NameID)
	}

	return &res, nil
}

func (s *dbStore) Names() store.Repository[schema.Name, string] {
	return s.names
}

func (s *dbStore) References() store.Repository[schema.Reference, string] {
	return s.references
}

func (s *dbStore) Taxa() store.Repository[schema.Taxon, string] {
	return s.taxa
}

func (s *dbStore) NameRelations() store.Repository[schema.NameRelation, int] {
	return s.nameRelations
}

func (s *dbStore) TypeMaterials() store.Repository[schema.TypeMaterial, int] {
	return s.typeMaterials
}

// NameMetadata loads a name with its reference and all rows pointing
// to it.
func (s *dbStore) NameMetadata(
	ctx context.Context,
	id string,
) (*store.NameMetadata, error) {
	byID := func(tx *gorm.DB) *gorm.DB {
		return tx.Order(clause.OrderByColumn{Column: idColumn})
	}

	var name schema.Name
	err := s.db.WithContext(ctx).
		Preload("Reference").
		Preload("Taxa", byID).
		Preload("TypeMaterials", byID).
		Preload("Relations", byID).
		Where(clause.Eq{Column: idColumn, Value: id}).
		Take(&name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundError(schema.NameTable, id)
	}
	if err != nil {
		return nil, QueryError(schema.NameTable, err)
	}

	res := store.NameMetadata{
		Name:          name,
		Reference:     name.Reference,
		Taxa:          nonNil(name.Taxa),
		TypeMaterials: nonNil(name.TypeMaterials),
		Relations:     nonNil(name.Relations),
	}
	res.Name.Reference = nil
	res.Name.Taxa = nil
	res.Name.TypeMaterials = nil
	res.Name.Relations = nil
	return &res, nil
}

// Distinct returns sorted non-empty values of a column. Only columns of
// IPNI tables are allowed.
func (s *dbStore) Distinct(
	ctx context.Context,
	table, column string,
) ([]string, error) {
	if !s.hasColumn(table, column) {
		return nil, ValidationError(
			"Unknown column <em>%s.%s</em>", table, column,
		)
	}

	col := clause.Column{Name: column}
	res := []string{}
	err := s.db.WithContext(ctx).Table(table).
		Distinct().
		Where(clause.Neq{Column: col, Value: ""}).
		Where(clause.Expr{SQL: "? IS NOT NULL", Vars: []any{col}}).
		Order(clause.OrderByColumn{Column: col}).
		Pluck(column, &res).Error
	if err != nil {
		return nil, QueryError(table, err)
	}
	return res, nil
}

func (s *dbStore) hasColumn(table, column string) bool {
	var cols map[string]*gschema.Field
	switch table {
	case schema.NameTable:
		cols = s.names.columns
	case schema.ReferenceTable:
		cols = s.references.columns
	case schema.TaxonTable:
		cols = s.taxa.columns
	case schema.NameRelationTable:
		cols = s.nameRelations.columns
	case schema.TypeMaterialTable:
		cols = s.typeMaterials.columns
	}
	_, ok := cols[column]
	return ok
}

func validateName(tx *gorm.DB, n *schema.Name) error {
	if err := required("id", n.ID); err != nil {
		return err
	}
	if err := required("scientific_name", n.ScientificName); err != nil {
		return err
	}
	if n.ReferenceID != nil && *n.ReferenceID == "" {
		n.ReferenceID = nil
	}
	if n.ReferenceID == nil {
		return nil
	}
	ok, err := exists(tx, schema.ReferenceTable, "id", *n.ReferenceID)
	if err != nil {
		return QueryError(schema.ReferenceTable, err)
	}
	if !ok {
		return ValidationError(
			"reference_id <em>%s</em> does not exist", *n.ReferenceID,
		)
	}
	return nil
}

func nameExists(tx *gorm.DB, field, id string) error {
	if err := required(field, id); err != nil {
		return err
	}
	ok, err := exists(tx, schema.NameTable, "id", id)
	if err != nil {
		return QueryError(schema.NameTable, err)
	}
	if !ok {
		return ValidationError("%s <em>%s</em> does not exist", field, id)
	}
	return nil
}

func required(field, val string) error {
	if val == "" {
		return ValidationError("Field <em>%s</em> is required", field)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

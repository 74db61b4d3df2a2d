// Package store defines read and write access to IPNI tables used by
// the REST API.
package store

import (
	"context"

	"github.com/gnames/ipnidb/pkg/schema"
)

const (
	// DefaultLimit is the page size when a query does not set one.
	DefaultLimit = 10

	// MaxLimit is the largest allowed page size.
	MaxLimit = 100
)

// Query selects a page of rows.
type Query struct {
	Offset int
	Limit  int

	// Filters maps column names to values. A value with '%' is matched
	// with LIKE, others with equality. Unknown columns are ignored.
	Filters map[string]string
}

// Page is a slice of rows with pagination data.
type Page[T any] struct {
	Offset  int   `json:"offset"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Results []T   `json:"results"`
}

// Repository gives CRUD access to one table. K is the type of the
// primary key.
type Repository[T any, K comparable] interface {
	// List returns rows ordered by primary key.
	List(ctx context.Context, q Query) (*Page[T], error)

	// Get returns a row or a not-found error.
	Get(ctx context.Context, id K) (*T, error)

	// Create validates and inserts a row. Duplicate keys give a conflict
	// error, missing referenced rows give a validation error.
	Create(ctx context.Context, row *T) error

	// Delete removes a row. Rows still referenced by other tables are
	// not deleted and a conflict error is returned.
	Delete(ctx context.Context, id K) error
}

// NameMetadata joins a name with everything that refers to it.
type NameMetadata struct {
	Name          schema.Name           `json:"name"`
	Reference     *schema.Reference     `json:"reference"`
	Taxa          []schema.Taxon        `json:"taxa"`
	TypeMaterials []schema.TypeMaterial `json:"type_materials"`
	Relations     []schema.NameRelation `json:"relations"`
}

// Store is the handle request handlers use to reach the database.
type Store interface {
	Names() Repository[schema.Name, string]
	References() Repository[schema.Reference, string]
	Taxa() Repository[schema.Taxon, string]
	NameRelations() Repository[schema.NameRelation, int]
	TypeMaterials() Repository[schema.TypeMaterial, int]

	// NameMetadata returns a name with its reference, taxa, type
	// materials and relations. Absent names give a not-found error.
	NameMetadata(ctx context.Context, id string) (*NameMetadata, error)

	// Distinct returns sorted non-empty values of a column.
	Distinct(ctx context.Context, table, column string) ([]string, error)
}

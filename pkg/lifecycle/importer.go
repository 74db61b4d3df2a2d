package lifecycle

import (
	"context"
	"time"
)

// Importer loads IPNI TSV files into the database.
//
// The insert phase runs in one transaction: either every table receives
// its rows or the database stays exactly as it was before the call.
type Importer interface {
	// Import reads, cleans and inserts all five tables.
	Import(ctx context.Context) (*ImportReport, error)
}

// ImportReport summarizes a successful import.
type ImportReport struct {
	// Tables lists inserted rows per table in insertion order.
	Tables []TableCount `json:"tables" yaml:"tables"`

	// SkippedRelations is the number of name relations dropped because
	// one of their names was absent from the Name file.
	SkippedRelations int `json:"skipped_relations" yaml:"skipped_relations"`

	// UnknownRelationTypes and UnknownTypeStatuses count values that
	// were stored but not recognized.
	UnknownRelationTypes int `json:"unknown_relation_types" yaml:"unknown_relation_types"`
	UnknownTypeStatuses  int `json:"unknown_type_statuses" yaml:"unknown_type_statuses"`

	Duration time.Duration `json:"duration" yaml:"duration"`
}

// TableCount is the number of rows inserted into a table.
type TableCount struct {
	Table string `json:"table" yaml:"table"`
	Rows  int64  `json:"rows" yaml:"rows"`
}

// Rows returns the count for a table, or 0.
func (r *ImportReport) Rows(table string) int64 {
	for _, v := range r.Tables {
		if v.Table == table {
			return v.Rows
		}
	}
	return 0
}

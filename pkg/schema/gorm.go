package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
// Parents go before children.
func AllModels() []any {
	return []any{
		&Reference{},
		&Name{},
		&Taxon{},
		&NameRelation{},
		&TypeMaterial{},
	}
}

// Tables returns table names in insertion order.
// Deletion has to go in the reverse order.
func Tables() []string {
	return []string{
		ReferenceTable,
		NameTable,
		TaxonTable,
		NameRelationTable,
		TypeMaterialTable,
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

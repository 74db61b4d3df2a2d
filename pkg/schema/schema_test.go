package schema_test

import (
	"reflect"
	"testing"

	"github.com/gnames/ipnidb/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestRelationTypeKind(t *testing.T) {
	tests := []struct {
		msg  string
		typ  schema.RelationType
		kind schema.RelationKind
		str  string
	}{
		{"basionym", "basionym", schema.Basionym, "basionym"},
		{"case and spaces", " Later Homonym ", schema.LaterHomonym, "later-homonym"},
		{"underscores", "spelling_correction", schema.SpellingCorrection,
			"spelling-correction"},
		{"validation", "validation of", schema.ValidationOf, "validation-of"},
		{"unknown", "replaced synonym", schema.RelationOther, "other"},
		{"empty", "", schema.RelationOther, "other"},
		{"literal other", "other", schema.RelationOther, "other"},
	}

	for _, v := range tests {
		kind := v.typ.Kind()
		assert.Equal(t, v.kind, kind, v.msg)
		assert.Equal(t, v.str, kind.String(), v.msg)
	}
}

func TestTypeStatusKind(t *testing.T) {
	tests := []struct {
		msg    string
		status schema.TypeStatus
		kind   schema.TypeStatusKind
	}{
		{"holotype", "holotype", schema.Holotype},
		{"capitalized", "Isolectotype", schema.Isolectotype},
		{"spirit", "spirit", schema.Spirit},
		{"null literal", "null", schema.TypeStatusNull},
		{"unknown literal", "unknown", schema.TypeStatusUnknown},
		{"unrecognized", "syntype", schema.TypeStatusOther},
	}

	for _, v := range tests {
		assert.Equal(t, v.kind, v.status.Kind(), v.msg)
	}
	assert.Equal(t, "other", schema.TypeStatusKind(100).String())
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "ipni_name", schema.Name{}.TableName())
	assert.Equal(t, "ipni_reference", schema.Reference{}.TableName())
	assert.Equal(t, "ipni_taxon", schema.Taxon{}.TableName())
	assert.Equal(t, "ipni_name_relation", schema.NameRelation{}.TableName())
	assert.Equal(t, "ipni_type_material", schema.TypeMaterial{}.TableName())

	tables := schema.Tables()
	assert.Equal(t, schema.ReferenceTable, tables[0])
	assert.Equal(t, schema.TypeMaterialTable, tables[len(tables)-1])
	assert.Len(t, schema.AllModels(), len(tables))
}

func TestCopyValuesMatchColumns(t *testing.T) {
	copiers := []schema.Copier{
		schema.Reference{}, schema.Name{}, schema.Taxon{},
		schema.NameRelation{}, schema.TypeMaterial{},
	}
	for _, v := range copiers {
		assert.Len(t, v.CopyValues(), len(v.CopyColumns()), v.TableName())
	}
}

func TestCopyValuesNulls(t *testing.T) {
	status := schema.TypeStatus("holotype")
	tm := schema.TypeMaterial{NameID: "1-1", Status: &status}
	vals := tm.CopyValues()
	assert.Equal(t, "1-1", vals[0])

	s, ok := vals[2].(*string)
	assert.True(t, ok)
	assert.Equal(t, "holotype", *s)

	cit, ok := vals[1].(*string)
	assert.True(t, ok)
	assert.True(t, reflect.ValueOf(cit).IsNil())
}

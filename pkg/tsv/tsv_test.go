package tsv_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/ipnidb/pkg/errcode"
	"github.com/gnames/ipnidb/pkg/tsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardColumnName(t *testing.T) {
	tests := []struct {
		msg, inp, res string
	}{
		{"id", "col:ID", "id"},
		{"camel case", "col:scientificName", "scientific_name"},
		{"trailing ID", "col:nameID", "name_id"},
		{"inner ID", "col:relatedNameID", "related_name_id"},
		{"three words", "col:publishedInYear", "published_in_year"},
		{"no prefix", "family", "family"},
		{"several colons", "a:b:institutionCode", "institution_code"},
		{"spaces", "col: remarks ", "remarks"},
		{"digits dropped", "col:field2", "field"},
		{"no letters", "col:123", ""},
	}

	valid := regexp.MustCompile(`^[a-z0-9_]*$`)
	for _, v := range tests {
		res := tsv.StandardColumnName(v.inp)
		assert.Equal(t, v.res, res, v.msg)
		assert.Regexp(t, valid, res, v.msg)
	}
}

func TestCleanValue(t *testing.T) {
	tests := []struct {
		msg, inp, res string
	}{
		{"collapses spaces", "Abies  alba", "Abies alba"},
		{"trims", "  Abies alba ", "Abies alba"},
		{"mixed whitespace", "Abies \t\t alba", "Abies alba"},
		{"single tab stays", "a\tb", "a\tb"},
		{"empty", "   ", ""},
		{"clean", "Abies", "Abies"},
		{"no-break spaces", "Abies\u00a0\u00a0alba", "Abies alba"},
		{"space and no-break space", "Abies \u00a0alba", "Abies alba"},
		{"em spaces", "Abies\u2003\u2003alba", "Abies alba"},
		{"vertical tabs", "Abies\v\valba", "Abies alba"},
		{"ideographic space trimmed", "\u3000Abies alba\u00a0", "Abies alba"},
		{"single no-break space stays", "Abies\u00a0alba", "Abies\u00a0alba"},
	}

	for _, v := range tests {
		res := tsv.CleanValue(v.inp)
		assert.Equal(t, v.res, res, v.msg)
		assert.Equal(t, res, tsv.CleanValue(res), v.msg+" idempotent")
	}
}

func TestRead(t *testing.T) {
	assert := assert.New(t)
	data := "\ufeffcol:ID\tcol:scientificName\tcol:rank\r\n" +
		"1-1\tAbies alba\tspec.\r\n" +
		"\n" +
		"2-1\t\"Pinus\" sp.\n" +
		"3-1\tPicea\tgen.\textra\n"

	tbl, err := tsv.Read(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal([]string{"col:ID", "col:scientificName", "col:rank"}, tbl.Columns)
	require.Len(t, tbl.Rows, 3)
	assert.Equal([]string{"1-1", "Abies alba", "spec."}, tbl.Rows[0])
	assert.Equal([]string{"2-1", `"Pinus" sp.`, ""}, tbl.Rows[1])
	assert.Equal([]string{"3-1", "Picea", "gen."}, tbl.Rows[2])
}

func TestReadHeaderOnly(t *testing.T) {
	tbl, err := tsv.Read(strings.NewReader("col:ID\tcol:rank\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"col:ID", "col:rank"}, tbl.Columns)
	assert.Empty(t, tbl.Rows)
}

func TestReadMalformed(t *testing.T) {
	for _, inp := range []string{"", "\n1-1\tAbies\n"} {
		_, err := tsv.Read(strings.NewReader(inp))
		require.Error(t, err)
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr))
		assert.Equal(t, errcode.ImportMalformedFileError, gnErr.Code)
	}
}

func TestClean(t *testing.T) {
	assert := assert.New(t)
	data := "col:ID\tcol:scientificName\tcol:123\n" +
		"1-1\tAbies  alba \tx\n" +
		"1-1\tAbies alba\tx\n" +
		"2-1\tPinus\ty\n" +
		" 2-1\tPinus\ty\n"

	tbl, err := tsv.Read(strings.NewReader(data))
	require.NoError(t, err)
	tbl.Clean()

	assert.Equal([]string{"id", "scientific_name", "column_3"}, tbl.Columns)
	assert.Equal([][]string{
		{"1-1", "Abies alba", "x"},
		{"2-1", "Pinus", "y"},
	}, tbl.Rows)

	// idempotent
	cols := append([]string(nil), tbl.Columns...)
	tbl.Clean()
	assert.Equal(cols, tbl.Columns)
	assert.Len(tbl.Rows, 2)
}

func TestTableAccess(t *testing.T) {
	assert := assert.New(t)
	data := "col:ID\tcol:nameID\tcol:citation\n" +
		"5\t1-1\tK\n" +
		"6\t2-1\tBM\n"
	tbl, err := tsv.Read(strings.NewReader(data))
	require.NoError(t, err)
	tbl.Clean().Drop("id", "unknown")

	assert.Equal([]string{"name_id", "citation"}, tbl.Columns)
	assert.Equal([]string{"1-1", "2-1"}, tbl.Column("name_id"))
	assert.Nil(tbl.Column("id"))
	assert.Equal(-1, tbl.Index("id"))
	assert.Equal([]string{"status"}, tbl.MissingColumns("name_id", "status"))

	recs := tbl.Records()
	require.Len(t, recs, 2)
	assert.Equal("BM", recs[1].Get("citation"))
	assert.Equal("", recs[1].Get("status"))
}

// Package tsv reads tab-separated exports and normalizes them before
// import. All values stay text: no type inference happens here.
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// maxLine is the longest line the reader accepts.
const maxLine = 64 << 20

var (
	wordRe  = regexp.MustCompile(`[A-Za-z][a-z]*`)
	// any Unicode space, RE2 \s alone covers ASCII only
	spaceRe = regexp.MustCompile(`[\s\v\x{85}\p{Z}]{2,}`)
)

// Table is a TSV file held in memory. Every row has exactly
// len(Columns) values.
type Table struct {
	Columns []string
	Rows    [][]string

	// standard is true when column names are already standardized.
	standard bool
}

// Record gives access to values of one row by column name.
type Record struct {
	idx  map[string]int
	vals []string
}

// Get returns the value of a column, or an empty string if the table
// has no such column.
func (r Record) Get(col string) string {
	if i, ok := r.idx[col]; ok {
		return r.vals[i]
	}
	return ""
}

// StandardColumnName converts source headers like "col:publishedInYear"
// to "published_in_year".
func StandardColumnName(s string) string {
	if i := strings.LastIndex(s, ":"); i > -1 {
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "ID", "Id")
	words := wordRe.FindAllString(s, -1)
	return strings.ToLower(strings.Join(words, "_"))
}

// CleanValue collapses runs of whitespace and trims the value.
func CleanValue(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// Read loads tab-separated data. The first line is the header. Quotes
// have no special meaning. Short rows are padded with empty values,
// long rows are truncated to the header width.
func Read(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var res Table
	var lineNum int
	for sc.Scan() {
		lineNum++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
			if strings.TrimSpace(line) == "" {
				return nil, MalformedError(lineNum, "empty header")
			}
			res.Columns = strings.Split(line, "\t")
			continue
		}
		if line == "" {
			continue
		}
		res.Rows = append(res.Rows, fitRow(strings.Split(line, "\t"), len(res.Columns)))
	}
	if err := sc.Err(); err != nil {
		return nil, MalformedError(lineNum+1, err.Error())
	}

	if len(res.Columns) == 0 {
		return nil, MalformedError(0, "no header")
	}
	return &res, nil
}

func fitRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	res := make([]string, width)
	copy(res, row)
	return res
}

// Clean standardizes column names, cleans all values and removes
// duplicate rows keeping the first occurrence. Running it twice gives
// the same table.
func (t *Table) Clean() *Table {
	for i := range t.Columns {
		if t.standard {
			break
		}
		name := StandardColumnName(t.Columns[i])
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		t.Columns[i] = name
	}
	t.standard = true

	seen := make(map[string]struct{}, len(t.Rows))
	rows := t.Rows[:0]
	for _, row := range t.Rows {
		for i := range row {
			row[i] = CleanValue(row[i])
		}
		key := strings.Join(row, "\x00")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, row)
	}
	t.Rows = rows
	return t
}

// Drop removes columns by name. Unknown names are ignored. Rows that
// become duplicates are kept, call Clean again to remove them.
func (t *Table) Drop(cols ...string) *Table {
	for _, col := range cols {
		i := t.Index(col)
		if i < 0 {
			continue
		}
		t.Columns = append(t.Columns[:i:i], t.Columns[i+1:]...)
		for j, row := range t.Rows {
			t.Rows[j] = append(row[:i:i], row[i+1:]...)
		}
	}
	return t
}

// Index returns the position of a column or -1.
func (t *Table) Index(col string) int {
	for i, v := range t.Columns {
		if v == col {
			return i
		}
	}
	return -1
}

// MissingColumns returns those of cols that the table lacks.
func (t *Table) MissingColumns(cols ...string) []string {
	var res []string
	for _, v := range cols {
		if t.Index(v) < 0 {
			res = append(res, v)
		}
	}
	return res
}

// Column returns all values of a column, nil if the column is absent.
func (t *Table) Column(col string) []string {
	i := t.Index(col)
	if i < 0 {
		return nil
	}
	res := make([]string, len(t.Rows))
	for j, row := range t.Rows {
		res[j] = row[i]
	}
	return res
}

// Records returns rows with by-name access to values.
func (t *Table) Records() []Record {
	idx := make(map[string]int, len(t.Columns))
	for i, v := range t.Columns {
		idx[v] = i
	}
	res := make([]Record, len(t.Rows))
	for i, row := range t.Rows {
		res[i] = Record{idx: idx, vals: row}
	}
	return res
}

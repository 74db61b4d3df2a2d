package cmd

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/ipnidb/internal/iotesting"
	"github.com/gnames/ipnidb/pkg/errcode"
	"github.com/gnames/ipnidb/pkg/lifecycle"
	"github.com/gnames/ipnidb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetImportCmd(t *testing.T) {
	cmd := getImportCmd()
	assert.Equal(t, "import", cmd.Use)

	tests := []struct {
		flag, short, def string
	}{
		{"data-dir", "d", ""},
		{"force-download", "", "false"},
		{"keep-files", "k", "false"},
		{"append", "a", "false"},
		{"batch-size", "b", "0"},
	}
	for _, v := range tests {
		f := cmd.Flags().Lookup(v.flag)
		require.NotNil(t, f, v.flag)
		assert.Equal(t, v.short, f.Shorthand, v.flag)
		assert.Equal(t, v.def, f.DefValue, v.flag)
	}
}

func TestImportOptions(t *testing.T) {
	home := t.TempDir()
	t.Setenv("IPNIDB_LOG_DESTINATION", "stderr")
	dir := iotesting.NewFixture().Write(t)

	_, err := runCmd(t, home,
		"import", "--driver", "sqlite", "-d", dir, "-b", "1", "-k",
	)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Import.DataDir)
	assert.Equal(t, 1, cfg.Database.BatchSize)
	assert.True(t, cfg.Import.KeepFiles)
	assert.True(t, cfg.Import.Replace)
	assert.False(t, cfg.Import.ForceDownload)
}

// TestImportSQLite imports the fixture twice, then fails to append
// the same rows again.
func TestImportSQLite(t *testing.T) {
	home := t.TempDir()
	t.Setenv("IPNIDB_LOG_DESTINATION", "stderr")
	dir := iotesting.NewFixture().Write(t)

	for range 2 {
		out, err := runCmd(t, home,
			"import", "--driver", "sqlite", "--data-dir", dir, "-b", "2",
		)
		require.NoError(t, err)
		assert.Contains(t, out, "type_material")
		assert.Contains(t, out, "skipped name relations: 1")
		assert.Contains(t, out, "Import finished in")
	}

	_, err := runCmd(t, home,
		"import", "--driver", "sqlite", "--data-dir", dir, "--append",
	)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.ImportInsertError, gnErr.Code)
}

func TestPrintReport(t *testing.T) {
	rep := &lifecycle.ImportReport{
		Tables: []lifecycle.TableCount{
			{Table: schema.ReferenceTable, Rows: 1200},
			{Table: schema.NameTable, Rows: 1_500_000},
			{Table: schema.TypeMaterialTable, Rows: 42},
		},
		UnknownTypeStatuses: 3,
		Duration:            90 * time.Second,
	}

	var sb strings.Builder
	printReport(&sb, rep)
	out := sb.String()
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "1,500,000")
	assert.Contains(t, out, "unknown type statuses:  3")
	assert.NotContains(t, out, "skipped")
	assert.Contains(t, out, "Import finished in")

	lines := strings.Split(out, "\n")[1:]
	for i, v := range rep.Tables {
		assert.True(t, strings.HasPrefix(lines[i], v.Table+" "), lines[i])
		assert.Len(t, lines[i], 33, "counts must stay aligned: %q", lines[i])
	}
}

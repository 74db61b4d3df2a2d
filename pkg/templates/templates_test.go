package templates_test

import (
	"strings"
	"testing"

	"github.com/gnames/ipnidb/pkg/config"
	"github.com/gnames/ipnidb/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// The template must describe the same settings as the defaults.
func TestConfigYAML(t *testing.T) {
	var got config.Config
	dec := yaml.NewDecoder(strings.NewReader(templates.ConfigYAML))
	dec.KnownFields(true)
	require.NoError(t, dec.Decode(&got))

	def := config.New()
	assert.Equal(t, def.Database.Driver, got.Database.Driver)
	assert.Equal(t, def.Database.Database, got.Database.Database)
	assert.Equal(t, def.Database.BatchSize, got.Database.BatchSize)
	assert.Equal(t, def.Import.URL, got.Import.URL)
	assert.Equal(t, def.Server, got.Server)
	assert.Equal(t, def.Log, got.Log)
}

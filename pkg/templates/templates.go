// Package templates provides embedded YAML configuration templates.
package templates

import _ "embed"

// ConfigYAML is written to ~/.config/ipnidb/config.yaml on first run.
//
//go:embed config.yaml
var ConfigYAML string

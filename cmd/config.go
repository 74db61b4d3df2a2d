/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"regexp"

	"github.com/gnames/ipnidb/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const mask = "****"

var dsnPassword = regexp.MustCompile(`(:[^:@/]*)@|(password=)\S+`)

// getConfigCmd returns the config command.
func getConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long: `Config prints the configuration that results from config.yaml,
IPNIDB_* environment variables and flags. Passwords are masked.

Examples:
  ipnidb config
  IPNIDB_DATABASE_DRIVER=mysql ipnidb config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(masked(cfg)); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	return configCmd
}

// masked returns a copy of the config safe for printing.
func masked(c *config.Config) config.Config {
	res := *c
	if res.Database.Password != "" {
		res.Database.Password = mask
	}
	if res.Server.Password != "" {
		res.Server.Password = mask
	}
	res.Database.DSN = dsnPassword.ReplaceAllStringFunc(
		res.Database.DSN, maskDSN,
	)
	return res
}

func maskDSN(s string) string {
	if s[0] == ':' {
		return ":" + mask + "@"
	}
	return "password=" + mask
}

package cmd

import (
	"github.com/gnames/ipnidb/pkg/config"
	"github.com/spf13/cobra"
)

// flagOptions converts persistent flags set by the user into config
// options. Flags win over environment variables and config.yaml.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()

	if flags.Changed("driver") {
		s, _ := flags.GetString("driver")
		res = append(res, config.OptDatabaseDriver(s))
	}
	if flags.Changed("dsn") {
		s, _ := flags.GetString("dsn")
		res = append(res, config.OptDatabaseDSN(s))
	}
	if flags.Changed("jobs") {
		i, _ := flags.GetInt("jobs")
		res = append(res, config.OptJobsNumber(i))
	}

	return res
}

// connectionInfo describes the database without exposing passwords.
func connectionInfo(c *config.DatabaseConfig) string {
	switch {
	case c.DSN != "":
		return c.Driver + " (dsn)"
	case c.Driver == "sqlite":
		return "sqlite " + c.Database
	default:
		return c.Driver + " " + c.User + "@" + c.Host + "/" + c.Database
	}
}

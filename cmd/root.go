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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/ipnidb/internal/iofs"
	"github.com/gnames/ipnidb/internal/iologger"
	app "github.com/gnames/ipnidb/pkg"
	"github.com/gnames/ipnidb/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd builds the whole command tree. Every call returns a fresh
// tree, so tests can execute commands independently.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "ipnidb",
		Short:   "Imports IPNI plant names into a relational database",
		Long: `ipnidb downloads the International Plant Names Index export,
cleans it, parses scientific names and stores everything in
PostgreSQL, MySQL or SQLite. The data can then be browsed through
a small REST API.

Configuration is read from ~/.config/ipnidb/config.yaml and can be
overridden by IPNIDB_* environment variables and command flags.`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "ipnidb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for ipnidb")

	pf := rootCmd.PersistentFlags()
	pf.String("driver", "", "database driver: postgres, mysql or sqlite")
	pf.String("dsn", "", "database connection string, overrides other settings")
	pf.IntP("jobs", "j", 0, "number of concurrent name parsers")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getImportCmd(),
		getServeCmd(),
		getConfigCmd(),
	)

	return rootCmd
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// the server keeps writing to the same log between restarts
	appendLog := cmd.Name() == "serve"

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, appendLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	created, err := iofs.EnsureConfigFile(homeDir)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if created {
		gn.Info(
			"Created default configuration at <em>%s</em>",
			config.ConfigFilePath(homeDir),
		)
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	opts = append(opts, flagOptions(cmd)...)
	opts = append(opts, config.OptHomeDir(homeDir))
	cfg.Update(opts)

	if cfg.Database.Driver == "sqlite" && cfg.Database.DSN == "" {
		path := config.SQLitePath(homeDir, cfg.Database.Database)
		cfg.Update([]config.Option{config.OptDatabaseDatabase(path)})
	}

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, appendLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
		"driver", cfg.Database.Driver,
	)

	return nil
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Only persistent settings that can be stored in config.yaml are
	// bound, so the list shows clearly which variables are allowed.
	v.SetEnvPrefix("IPNIDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.driver", "IPNIDB_DATABASE_DRIVER")
	v.BindEnv("database.dsn", "IPNIDB_DATABASE_DSN")
	v.BindEnv("database.host", "IPNIDB_DATABASE_HOST")
	v.BindEnv("database.port", "IPNIDB_DATABASE_PORT")
	v.BindEnv("database.user", "IPNIDB_DATABASE_USER")
	v.BindEnv("database.password", "IPNIDB_DATABASE_PASSWORD")
	v.BindEnv("database.database", "IPNIDB_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "IPNIDB_DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "IPNIDB_DATABASE_BATCH_SIZE")

	v.BindEnv("import.url", "IPNIDB_IMPORT_URL")

	// Server configuration
	v.BindEnv("server.port", "IPNIDB_SERVER_PORT")
	v.BindEnv("server.user", "IPNIDB_SERVER_USER")
	v.BindEnv("server.password", "IPNIDB_SERVER_PASSWORD")

	// Log configuration
	v.BindEnv("log.level", "IPNIDB_LOG_LEVEL")
	v.BindEnv("log.format", "IPNIDB_LOG_FORMAT")
	v.BindEnv("log.destination", "IPNIDB_LOG_DESTINATION")

	v.BindEnv("jobs_number", "IPNIDB_JOBS_NUMBER")

	v.AutomaticEnv()
}

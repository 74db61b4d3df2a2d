package iodb

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gnames/ipnidb/pkg/config"
	"github.com/gnames/ipnidb/pkg/db"
)

// DSN builds the connection string for the configured driver.
// A non-empty cfg.DSN is returned unchanged.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}

	switch cfg.Driver {
	case db.Postgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     fmt.Sprintf("%s:%d", cfg.Host, port(cfg)),
			Path:     cfg.Database,
			RawQuery: "sslmode=" + cfg.SSLMode,
		}
		return u.String()
	case db.MySQL:
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, port(cfg), cfg.Database,
		)
	case db.SQLite:
		sep := "?"
		if strings.Contains(cfg.Database, "?") {
			sep = "&"
		}
		return cfg.Database + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	return ""
}

func port(cfg *config.DatabaseConfig) int {
	if cfg.Port > 0 {
		return cfg.Port
	}
	if cfg.Driver == db.MySQL {
		return 3306
	}
	return 5432
}

// Package dsn builds Data Source Names for the configured database engines.
package dsn

import (
	"fmt"
	"net/url"

	"github.com/adcu-admin/adcu-admin/internal/config"
)

// Create builds the mysql Data Source Name from the configuration.
func Create(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Name,
		cfg.DB.Extras,
	)
}

// Postgres builds a postgres connection URI from the configuration.
func Postgres(cfg *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.DB.User, cfg.DB.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.DB.Host, cfg.DB.Port),
		Path:     "/" + cfg.DB.Name,
		RawQuery: cfg.DB.Extras,
	}

	return u.String()
}

// SQLite returns the database file path, defaulting to an in-memory database.
func SQLite(cfg *config.Config) string {
	if cfg.DB.Path == "" {
		return ":memory:"
	}

	return cfg.DB.Path
}

// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
)

// Create builds the gorm Data Source Name for the configured SQL engine.
// MongoDB uses the connection string from DB.URI directly and is not handled here.
func Create(cfg *config.Config) string {
	db := cfg.DB

	switch store.Engine(db.Engine) {
	case store.EngineSQLite:
		return db.Path
	case store.EnginePostgres:
		out := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d",
			db.Host,
			db.User,
			db.Password,
			db.Name,
			db.Port,
		)
		if db.Extras != "" {
			out += " " + db.Extras
		}

		return out
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
			db.Extras,
		)
	}
}

// PostgresURL builds a postgres:// connection URL, as expected by the session storage.
func PostgresURL(cfg *config.Config) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.DB.User, cfg.DB.Password),
		Host:   net.JoinHostPort(cfg.DB.Host, strconv.Itoa(cfg.DB.Port)),
		Path:   "/" + cfg.DB.Name,
	}

	return u.String()
}

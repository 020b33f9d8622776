// Package db opens the managed Postgres instance the migration and
// seed commands run against.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/voyalab/backplane/internal/config"
	"github.com/voyalab/backplane/internal/logging"
)

// Open connects to Postgres using DATABASE_URL. In production the
// connection string is forced to sslmode=require unless it already
// carries an explicit sslmode.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	dsn, err := ConnString(cfg.DatabaseURL, cfg.Production())
	if err != nil {
		return nil, err
	}

	pool, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	// Single-operator tools: one connection is all any command uses.
	pool.SetMaxOpenConns(2)
	pool.SetConnMaxIdleTime(time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logging.Debugf("connected to postgres (production=%v)", cfg.Production())
	return pool, nil
}

// ConnString normalizes a Postgres URL, appending sslmode=require in
// production when the URL does not already specify one.
func ConnString(raw string, production bool) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}

	q := u.Query()
	if production && strings.TrimSpace(q.Get("sslmode")) == "" {
		q.Set("sslmode", "require")
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

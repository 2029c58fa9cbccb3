package app

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/itp-onboarding/internal/config"
)

const (
	maxTracedQueryLength = 512
	dbPingTimeout        = 5 * time.Second
)

var queryWhitespace = regexp.MustCompile(`\s+`)

// openPostgres opens a traced connection pool and checks it is reachable.
func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := withPreparedBinaryFlag(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(databaseName(dsn)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// withPreparedBinaryFlag adds disable_prepared_binary_result=yes for
// poolers that cannot pass binary results through. An explicit value wins.
func withPreparedBinaryFlag(raw string, enabled bool) string {
	if !enabled {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// databaseName reads the database from URL or key=value connection strings.
func databaseName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}
	for _, token := range strings.Fields(trimmed) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

// traceQuery collapses whitespace and truncates long statements for span
// attributes.
func traceQuery(query string) string {
	normalized := queryWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}

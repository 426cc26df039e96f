package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
)

// trace logs a query once it returns.
func trace(l *log.Logger, start time.Time, query string, args []interface{}) {
	if l == nil {
		return
	}
	query = strings.Join(strings.Fields(query), " ")
	if len(args) > 8 {
		l.Debug("trace", "query", query, "args", len(args), "took", time.Since(start))
		return
	}
	l.Debug("trace", "query", query, "args", args, "took", time.Since(start))
}

// SelectContext traces sqlx.SelectContext.
func (d *DB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer trace(d.logger, time.Now(), query, args)
	return d.DB.SelectContext(ctx, dest, query, args...)
}

// GetContext traces sqlx.GetContext.
func (d *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer trace(d.logger, time.Now(), query, args)
	return d.DB.GetContext(ctx, dest, query, args...)
}

// QueryxContext traces sqlx.QueryxContext.
func (d *DB) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	defer trace(d.logger, time.Now(), query, args)
	return d.DB.QueryxContext(ctx, query, args...)
}

// ExecContext traces sqlx.ExecContext.
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer trace(d.logger, time.Now(), query, args)
	return d.DB.ExecContext(ctx, query, args...)
}

// SelectContext traces sqlx.SelectContext.
func (t *Tx) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer trace(t.logger, time.Now(), query, args)
	return t.Tx.SelectContext(ctx, dest, query, args...)
}

// GetContext traces sqlx.GetContext.
func (t *Tx) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer trace(t.logger, time.Now(), query, args)
	return t.Tx.GetContext(ctx, dest, query, args...)
}

// QueryxContext traces sqlx.QueryxContext.
func (t *Tx) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	defer trace(t.logger, time.Now(), query, args)
	return t.Tx.QueryxContext(ctx, query, args...)
}

// ExecContext traces sqlx.ExecContext.
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer trace(t.logger, time.Now(), query, args)
	return t.Tx.ExecContext(ctx, query, args...)
}

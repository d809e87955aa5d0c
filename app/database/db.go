package database

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"aparecida-web/app/config"
	"aparecida-web/app/dates"
)

// ErrNotFound is returned when a lookup by id or key matches no row.
var ErrNotFound = errors.New("record not found")

// DB pairs a connection pool with the SQL dialect it speaks. Queries in this
// package are written with ? placeholders and rebound for PostgreSQL.
type DB struct {
	*sql.DB
	Driver string
}

// New wraps an open pool. driver is "postgres" or "sqlite".
func New(db *sql.DB, driver string) *DB {
	return &DB{DB: db, Driver: driver}
}

// Open connects with cfg and wraps the pool.
func Open(cfg config.DatabaseConfig) (*DB, error) {
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	return New(db, cfg.Driver), nil
}

// now is the clock used for server-assigned timestamps.
var now = dates.Now

func (db *DB) rebind(query string) string {
	if db.Driver != config.DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (db *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.ExecContext(ctx, db.rebind(query), args...)
}

func (db *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.QueryContext(ctx, db.rebind(query), args...)
}

func (db *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.QueryRowContext(ctx, db.rebind(query), args...)
}

// deleteByID removes one row and reports ErrNotFound when nothing matched.
func (db *DB) deleteByID(ctx context.Context, table, id string) error {
	res, err := db.exec(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

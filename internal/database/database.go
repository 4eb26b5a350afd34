package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// utcTimeFormat is how next_run_utc is persisted: ISO-8601 UTC with the Z
// suffix, never naive local time. The fixed width also makes lexicographic
// ordering chronological.
const utcTimeFormat = time.RFC3339

// dbConn interface allows repositories to work with both *sql.DB and *sql.Tx
type dbConn interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type DB struct {
	conn *sql.DB
}

func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{conn: conn}, nil
}

func (db *DB) DB() *sql.DB {
	return db.conn
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Begin() (*sql.Tx, error) {
	return db.conn.Begin()
}

func formatUTC(t time.Time) string {
	return t.UTC().Format(utcTimeFormat)
}

func parseUTC(s string) (time.Time, error) {
	t, err := time.Parse(utcTimeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored instant %q: %w", s, err)
	}
	return t.UTC(), nil
}

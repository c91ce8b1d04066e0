package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ashureev/ledgerbot/internal/domain"
	"github.com/ashureev/ledgerbot/internal/shared"
	_ "modernc.org/sqlite"
)

const (
	recordAttempts  = 3
	recordBaseDelay = 50 * time.Millisecond
)

// SQLiteArchive implements Archive using SQLite.
type SQLiteArchive struct {
	db *sql.DB
}

// NewSQLiteArchive opens (creating if needed) the archive database at dbPath.
func NewSQLiteArchive(dbPath string) (*SQLiteArchive, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	archive := &SQLiteArchive{db: db}
	if err := archive.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return archive, nil
}

func (a *SQLiteArchive) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		activity TEXT NOT NULL,
		entry_date TEXT NOT NULL,
		rendered TEXT NOT NULL,
		fields_json TEXT NOT NULL,
		finished_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_finished ON entries(finished_at);
	`
	if _, err := a.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (a *SQLiteArchive) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// Record inserts a finished entry, retrying while the database is locked.
func (a *SQLiteArchive) Record(ctx context.Context, e Entry) error {
	query := `
	INSERT INTO entries (id, session_id, activity, entry_date, rendered, fields_json, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	fields := string(e.Fields)
	if fields == "" {
		fields = "{}"
	}

	err := shared.RetryOnConflict(ctx, recordAttempts, recordBaseDelay, "record entry", func() error {
		_, err := a.db.ExecContext(ctx, query,
			e.ID, e.SessionID, string(e.Activity), e.Date, e.Text, fields, e.FinishedAt.UnixMilli(),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert entry %s: %w", e.ID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (a *SQLiteArchive) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, session_id, activity, entry_date, rendered, fields_json, finished_at
		FROM entries ORDER BY finished_at DESC, id DESC LIMIT ?`

	rows, err := a.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close entry rows", "error", closeErr)
		}
	}()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var activity, fields string
		var finishedAt int64
		if err := rows.Scan(&e.ID, &e.SessionID, &activity, &e.Date, &e.Text, &fields, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan entry row: %w", err)
		}
		e.Activity = domain.Activity(activity)
		e.Fields = []byte(fields)
		e.FinishedAt = time.UnixMilli(finishedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// Close closes the database connection.
func (a *SQLiteArchive) Close() error {
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

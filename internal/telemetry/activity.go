// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

// Package telemetry records backend call outcomes in a local SQLite
// database. The activity log is local-only and feeds the dashboard
// footer; nothing here leaves the machine.
package telemetry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const activityFile = "activity.db"

// Entry is one recorded gateway call.
type Entry struct {
	ID         int64
	Resource   string
	OK         bool
	DurationMS int64
	At         time.Time
}

// Store is the SQLite-backed activity log. It implements the gateway's
// Observer interface.
type Store struct {
	db *sql.DB
}

// Open creates or opens the activity database in the given directory.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, activityFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open activity database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %s: %w", pragma, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS activity (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		resource    TEXT NOT NULL,
		ok          INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		at          INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_activity_at ON activity(at DESC);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create activity schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Observe records one gateway call outcome. Errors are swallowed: the
// activity log must never break a data fetch.
func (s *Store) Observe(resource string, ok bool, duration time.Duration) {
	okInt := 0
	if ok {
		okInt = 1
	}
	_, _ = s.db.Exec(
		"INSERT INTO activity (resource, ok, duration_ms, at) VALUES (?, ?, ?, ?)",
		resource, okInt, duration.Milliseconds(), time.Now().Unix(),
	)
}

// Recent returns the latest n entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		"SELECT id, resource, ok, duration_ms, at FROM activity ORDER BY at DESC, id DESC LIMIT ?", n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var okInt int
		var at int64
		if err := rows.Scan(&e.ID, &e.Resource, &okInt, &e.DurationMS, &at); err != nil {
			return nil, err
		}
		e.OK = okInt == 1
		e.At = time.Unix(at, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// FailureCount returns the number of failed calls since the given time.
func (s *Store) FailureCount(since time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM activity WHERE ok = 0 AND at >= ?", since.Unix()).Scan(&count)
	return count, err
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

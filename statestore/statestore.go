// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: statestore/statestore.go
// Summary: Persistence layer: a one-row table recording first-map time,
// last clean-shutdown time, and the last-known state/rotation, so a restart
// can tell whether the prior session ended cleanly.

package statestore

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/android-808/hildon-desktop/internal/rlog"
)

// Store owns the desktop_state table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and ensures
// the desktop_state table exists with its single row.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("statestore: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite is not safe for concurrent writers

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS desktop_state (
			id                     INTEGER PRIMARY KEY CHECK (id = 0),
			first_mapped_at        INTEGER,
			last_clean_shutdown_at INTEGER,
			last_state             TEXT,
			last_rotation          INTEGER
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("statestore: create table: %w", err)
	}
	if _, err := db.Exec(`INSERT OR IGNORE INTO desktop_state (id) VALUES (0)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("statestore: seed row: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Snapshot is the row's current contents.
type Snapshot struct {
	FirstMappedAt       time.Time
	LastCleanShutdownAt time.Time
	LastState           string
	LastRotation        int
	HasFirstMap         bool
	HasCleanShutdown    bool
}

// Read loads the current row.
func (s *Store) Read() (Snapshot, error) {
	var snap Snapshot
	var firstMapped, lastShutdown sql.NullInt64
	var lastState sql.NullString
	var lastRotation sql.NullInt64

	row := s.db.QueryRow(`SELECT first_mapped_at, last_clean_shutdown_at, last_state, last_rotation FROM desktop_state WHERE id = 0`)
	if err := row.Scan(&firstMapped, &lastShutdown, &lastState, &lastRotation); err != nil {
		return snap, fmt.Errorf("statestore: read row: %w", err)
	}
	if firstMapped.Valid {
		snap.FirstMappedAt = time.Unix(firstMapped.Int64, 0)
		snap.HasFirstMap = true
	}
	if lastShutdown.Valid {
		snap.LastCleanShutdownAt = time.Unix(lastShutdown.Int64, 0)
		snap.HasCleanShutdown = true
	}
	snap.LastState = lastState.String
	snap.LastRotation = int(lastRotation.Int64)
	return snap, nil
}

// MarkFirstMap records the first successful map, once; subsequent calls
// are no-ops.
func (s *Store) MarkFirstMap(now time.Time) error {
	res, err := s.db.Exec(`UPDATE desktop_state SET first_mapped_at = ? WHERE id = 0 AND first_mapped_at IS NULL`, now.Unix())
	if err != nil {
		return fmt.Errorf("statestore: mark first map: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		rlog.Infof("statestore: desktop started at %s", now)
	}
	return nil
}

// MarkCleanShutdown records a graceful exit; a Read() on the next startup
// whose HasCleanShutdown lags behind HasFirstMap (or is absent) indicates the
// prior session crashed mid-transition.
func (s *Store) MarkCleanShutdown(now time.Time) error {
	_, err := s.db.Exec(`UPDATE desktop_state SET last_clean_shutdown_at = ? WHERE id = 0`, now.Unix())
	if err != nil {
		return fmt.Errorf("statestore: mark clean shutdown: %w", err)
	}
	return nil
}

// SaveState records the last-known state/rotation so a post-crash restart
// can log what it was doing, even though it never restores into it blindly
// (the state machine always starts from StateUndefined).
func (s *Store) SaveState(state string, rotation int) error {
	_, err := s.db.Exec(`UPDATE desktop_state SET last_state = ?, last_rotation = ? WHERE id = 0`, state, rotation)
	if err != nil {
		return fmt.Errorf("statestore: save state: %w", err)
	}
	return nil
}

// CrashedPreviously reports whether the last session's shutdown mark is
// missing or predates its first map, meaning it never cleanly recorded exit.
func (snap Snapshot) CrashedPreviously() bool {
	if !snap.HasFirstMap {
		return false
	}
	if !snap.HasCleanShutdown {
		return true
	}
	return snap.LastCleanShutdownAt.Before(snap.FirstMappedAt)
}

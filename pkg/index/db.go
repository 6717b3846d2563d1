// Copyright © 2025 Clawbook
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package index maintains the off-chain search index: a SQLite database with
// FTS5 shadow tables mirroring the on-chain accounts. The database is a
// read-optimized copy, never the source of truth; every row can be rebuilt
// from chain state by a full sync.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrIndexUnavailable signals that the search index is not configured or not
// reachable. Callers are expected to match it with errors.Is and fall back
// to live on-chain decoding instead of treating it as a generic failure.
var ErrIndexUnavailable = errors.New("search index unavailable")

// DB wraps the index database connection. Safe for concurrent use.
type DB struct {
	db *sqlx.DB

	schemaMu   sync.Mutex
	schemaDone bool
}

// Open connects to the SQLite index at path. An empty path means the index
// is not configured and yields ErrIndexUnavailable. Use ":memory:" in tests.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no database path configured", ErrIndexUnavailable)
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	// modernc.org/sqlite serializes writes internally; a single connection
	// avoids SQLITE_BUSY between the writer and query paths.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: set WAL mode: %v", ErrIndexUnavailable, err)
	}
	return &DB{db: db}, nil
}

// Close releases the underlying connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Stats exposes connection pool statistics for the metrics collector.
func (d *DB) Stats() sql.DBStats {
	return d.db.Stats()
}

// EnsureSchema creates all tables, shadow tables and auxiliary indexes if
// they do not exist. The statements are individually idempotent; success is
// cached per DB so repeated calls are free, while a failure leaves the flag
// unset and the next caller retries.
func (d *DB) EnsureSchema(ctx context.Context) error {
	d.schemaMu.Lock()
	defer d.schemaMu.Unlock()
	if d.schemaDone {
		return nil
	}
	if err := d.createSchema(ctx); err != nil {
		return err
	}
	d.schemaDone = true
	return nil
}

func (d *DB) createSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema init: %w", err)
		}
	}
	return nil
}

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

// Package export dumps the search index to newline-delimited JSON files,
// one per table. The dumps are plain row objects, so they can be diffed
// across syncs or loaded into another store without this codebase.
package export

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/metasal1/clawbook-indexer/pkg/index"
)

// Service reads the index and writes table dumps.
type Service struct {
	db *index.DB
}

// NewExportService creates &export.Service. The index must be configured;
// there is nothing to export without one.
func NewExportService(db *index.DB) (*Service, error) {
	if db == nil {
		return nil, index.ErrIndexUnavailable
	}
	return &Service{db: db}, nil
}

// Export writes one <table>.ndjson file per configured table into the
// output directory, creating it if needed. It returns the number of rows
// written per table. Any table failure aborts the whole export.
func (s *Service) Export(ctx context.Context, conf *Config) (map[string]int, error) {
	if err := s.db.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(conf.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	written := make(map[string]int, len(conf.Tables))
	for _, table := range conf.Tables {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, err := s.exportTable(ctx, conf.OutputDir, table)
		if err != nil {
			return written, fmt.Errorf("export %s: %w", table, err)
		}
		log.WithFields(log.Fields{"table": table, "rows": n}).Info("exported table")
		written[table] = n
	}
	return written, nil
}

func (s *Service) exportTable(ctx context.Context, dir, table string) (int, error) {
	rows, err := s.tableRows(ctx, table)
	if err != nil {
		return 0, err
	}
	path := filepath.Join(dir, table+".ndjson")
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return 0, err
		}
	}
	if err := w.Flush(); err != nil {
		return 0, err
	}
	return len(rows), f.Sync()
}

// tableRows returns the table contents as a uniform slice for encoding.
func (s *Service) tableRows(ctx context.Context, table string) ([]interface{}, error) {
	switch table {
	case "profiles":
		rows, err := s.db.AllProfiles(ctx)
		return generalize(rows), err
	case "posts":
		rows, err := s.db.AllPosts(ctx)
		return generalize(rows), err
	case "follows":
		rows, err := s.db.AllFollows(ctx)
		return generalize(rows), err
	case "likes":
		rows, err := s.db.AllLikes(ctx)
		return generalize(rows), err
	case "referrals":
		rows, err := s.db.AllReferrals(ctx)
		return generalize(rows), err
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
}

func generalize[T any](rows []T) []interface{} {
	out := make([]interface{}, len(rows))
	for i := range rows {
		out[i] = rows[i]
	}
	return out
}

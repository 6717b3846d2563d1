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

// Package sync reconciles the search index with on-chain program state.
// Three entry points share one ingest loop: a full backfill that enumerates
// every program account, an incremental path fed by webhook events, and a
// manual trigger that is a full backfill behind an authenticated endpoint.
package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"

	"github.com/metasal1/clawbook-indexer/pkg/codec"
	"github.com/metasal1/clawbook-indexer/pkg/index"
	"github.com/metasal1/clawbook-indexer/pkg/ledger"
	"github.com/metasal1/clawbook-indexer/pkg/prom"
)

// Results summarizes one sync pass. Per-account failures are absorbed into
// Errors; a pass only fails as a whole when account enumeration itself does.
type Results struct {
	Total    int `json:"total"`
	Profiles int `json:"profiles"`
	Posts    int `json:"posts"`
	Follows  int `json:"follows"`
	Likes    int `json:"likes"`
	Errors   int `json:"errors"`
}

// Status reports the service state for the sync status endpoint.
type Status struct {
	InProgress bool         `json:"inProgress"`
	LastSync   int64        `json:"lastSync,omitempty"`
	LastResult *Results     `json:"lastResult,omitempty"`
	Counts     index.Counts `json:"counts"`
}

// Service drives all index writes. The index handle may be nil when no
// database is configured; sync entry points then fail with
// index.ErrIndexUnavailable and reads fall back to live decoding.
type Service struct {
	ledger   ledger.Client
	db       *index.DB
	program  solana.PublicKey
	resolver *codec.Resolver

	mu         gosync.Mutex
	inProgress int
	lastSync   time.Time
	lastResult *Results
}

func NewService(lc ledger.Client, db *index.DB, program solana.PublicKey) *Service {
	return &Service{
		ledger:   lc,
		db:       db,
		program:  program,
		resolver: codec.NewResolver(program),
	}
}

// Program returns the indexed program's address.
func (s *Service) Program() solana.PublicKey {
	return s.program
}

func (s *Service) index() (*index.DB, error) {
	if s.db == nil {
		return nil, fmt.Errorf("%w: no database configured", index.ErrIndexUnavailable)
	}
	return s.db, nil
}

// FullSync enumerates every program account in one scan and ingests each
// one; accounts with unrecognized shapes fall out of classification.
// Enumeration failure aborts the pass; individual account failures do not.
// Concurrent passes are allowed, upserts are idempotent and convergent.
func (s *Service) FullSync(ctx context.Context) (*Results, error) {
	db, err := s.index()
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", index.ErrIndexUnavailable, err)
	}

	s.markStart()
	defer s.markEnd()

	start := time.Now()
	res := &Results{}
	accounts, err := s.ledger.GetProgramAccounts(ctx, s.program)
	if err != nil {
		return nil, fmt.Errorf("enumerate program accounts: %w", err)
	}
	for i := range accounts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.ingestAccount(ctx, accounts[i].Pubkey, accounts[i].Data, true, res)
	}

	prom.IncSyncCount()
	prom.ObserveSyncDuration(time.Since(start).Seconds())
	s.recordResult(res)
	log.WithFields(log.Fields{
		"total":    res.Total,
		"profiles": res.Profiles,
		"posts":    res.Posts,
		"follows":  res.Follows,
		"likes":    res.Likes,
		"errors":   res.Errors,
		"elapsed":  time.Since(start).String(),
	}).Info("full sync complete")
	return res, nil
}

func (s *Service) markStart() {
	s.mu.Lock()
	s.inProgress++
	s.mu.Unlock()
	prom.SetSyncInProgress(true)
}

func (s *Service) markEnd() {
	s.mu.Lock()
	s.inProgress--
	running := s.inProgress > 0
	s.mu.Unlock()
	prom.SetSyncInProgress(running)
}

func (s *Service) recordResult(res *Results) {
	s.mu.Lock()
	s.lastSync = time.Now()
	s.lastResult = res
	s.mu.Unlock()
}

// Stats reports sync state and index row counts.
func (s *Service) Stats(ctx context.Context) (*Status, error) {
	st := &Status{}
	s.mu.Lock()
	st.InProgress = s.inProgress > 0
	if !s.lastSync.IsZero() {
		st.LastSync = s.lastSync.Unix()
	}
	st.LastResult = s.lastResult
	s.mu.Unlock()

	db, err := s.index()
	if err != nil {
		return nil, err
	}
	counts, err := db.TableCounts(ctx)
	if err != nil {
		return nil, err
	}
	st.Counts = counts
	return st, nil
}

// CompressedPost is a post stored as a compression-tree leaf instead of a
// discrete account. It has no raw account bytes, so account enumeration
// never sees it; callers submit it directly from the transaction that
// created it.
type CompressedPost struct {
	Address   string `json:"address"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	PostID    uint64 `json:"postId"`
	CreatedAt int64  `json:"createdAt"`
}

// IndexCompressedPost writes a compressed post into the index through the
// same upsert path as account-backed posts.
func (s *Service) IndexCompressedPost(ctx context.Context, p *CompressedPost) error {
	if p.Address == "" || p.Author == "" {
		return fmt.Errorf("compressed post requires address and author")
	}
	if _, err := solana.PublicKeyFromBase58(p.Author); err != nil {
		return fmt.Errorf("invalid author %q: %w", p.Author, err)
	}
	db, err := s.index()
	if err != nil {
		return err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("%w: %v", index.ErrIndexUnavailable, err)
	}
	row := &index.PostRow{
		Address:    p.Address,
		Author:     p.Author,
		Content:    p.Content,
		CreatedAt:  p.CreatedAt,
		PostID:     p.PostID,
		Compressed: true,
		IndexedAt:  time.Now().Unix(),
	}
	if err := db.UpsertPost(ctx, row); err != nil {
		return err
	}
	prom.IncPostCount()
	return nil
}

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

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"

	"github.com/metasal1/clawbook-indexer/pkg/index"
	clawsync "github.com/metasal1/clawbook-indexer/pkg/sync"
)

const maxWebhookBody = 10 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  "ok",
		"program": s.svc.Program().String(),
	})
}

func intParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// handleSearch serves tabbed search over profiles or posts. When the index
// is unavailable it degrades to live on-chain decoding: the full decoded
// set is returned for the caller to filter, marked with source "onchain".
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tab := q.Get("tab")
	if tab == "" {
		tab = "profiles"
	}
	limit, offset := index.ClampPage(intParam(r, "limit", 0), intParam(r, "offset", 0))

	switch tab {
	case "profiles":
		pq := index.ProfileQuery{
			Term:   q.Get("q"),
			Sort:   q.Get("sort"),
			Limit:  limit,
			Offset: offset,
		}
		if t := q.Get("type"); t != "" && t != "all" {
			pq.Type = t
		}
		// both spellings are in the wild
		if v := q.Get("verified"); v == "true" || v == "1" {
			t := true
			pq.Verified = &t
		}
		rows, total, err := s.searchProfiles(r, pq)
		if errors.Is(err, index.ErrIndexUnavailable) {
			s.liveProfileFallback(w, r)
			return
		}
		if err != nil {
			log.WithError(err).Error("profile search failed")
			respondError(w, http.StatusInternalServerError, "search failed")
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"source":   "index",
			"total":    total,
			"profiles": rows,
			"limit":    limit,
			"offset":   offset,
		})

	case "posts":
		rows, total, err := s.searchPosts(r, index.PostQuery{
			Term:   q.Get("q"),
			Author: q.Get("author"),
			Sort:   q.Get("sort"),
			Limit:  limit,
			Offset: offset,
		})
		if errors.Is(err, index.ErrIndexUnavailable) {
			s.livePostFallback(w, r)
			return
		}
		if err != nil {
			log.WithError(err).Error("post search failed")
			respondError(w, http.StatusInternalServerError, "search failed")
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"source":  "index",
			"total":   total,
			"posts":   rows,
			"limit":   limit,
			"offset":  offset,
		})

	default:
		respondError(w, http.StatusBadRequest, "unknown tab "+tab)
	}
}

func (s *Server) searchProfiles(r *http.Request, pq index.ProfileQuery) ([]index.ProfileRow, int64, error) {
	if s.db == nil {
		return nil, 0, index.ErrIndexUnavailable
	}
	if err := s.db.EnsureSchema(r.Context()); err != nil {
		return nil, 0, index.ErrIndexUnavailable
	}
	return s.db.SearchProfiles(r.Context(), pq)
}

func (s *Server) searchPosts(r *http.Request, pq index.PostQuery) ([]index.PostResult, int64, error) {
	if s.db == nil {
		return nil, 0, index.ErrIndexUnavailable
	}
	if err := s.db.EnsureSchema(r.Context()); err != nil {
		return nil, 0, index.ErrIndexUnavailable
	}
	return s.db.SearchPosts(r.Context(), pq)
}

func (s *Server) liveProfileFallback(w http.ResponseWriter, r *http.Request) {
	rows, err := s.svc.LiveProfiles(r.Context())
	if err != nil {
		log.WithError(err).Error("live profile fallback failed")
		respondError(w, http.StatusBadGateway, "ledger query failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"source":   "onchain",
		"total":    len(rows),
		"profiles": rows,
	})
}

func (s *Server) livePostFallback(w http.ResponseWriter, r *http.Request) {
	rows, err := s.svc.LivePosts(r.Context(), r.URL.Query().Get("author"))
	if err != nil {
		log.WithError(err).Error("live post fallback failed")
		respondError(w, http.StatusBadGateway, "ledger query failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"source":  "onchain",
		"total":   len(rows),
		"posts":   rows,
	})
}

// handlePosts is the feed read: all posts or one author's, paginated.
func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset := index.ClampPage(intParam(r, "limit", 0), intParam(r, "offset", 0))
	rows, total, err := s.searchPosts(r, index.PostQuery{
		Author: q.Get("author"),
		Sort:   q.Get("sort"),
		Limit:  limit,
		Offset: offset,
	})
	if errors.Is(err, index.ErrIndexUnavailable) {
		s.livePostFallback(w, r)
		return
	}
	if err != nil {
		log.WithError(err).Error("posts read failed")
		respondError(w, http.StatusInternalServerError, "posts read failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"source":  "index",
		"total":   total,
		"posts":   rows,
		"limit":   limit,
		"offset":  offset,
	})
}

// handleStats reports account counts read directly from the ledger, so it
// works whether or not an index is configured.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.OnChainStats(r.Context())
	if err != nil {
		log.WithError(err).Error("chain stats read failed")
		respondError(w, http.StatusBadGateway, "ledger query failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"source":  "onchain",
		"stats":   st,
	})
}

func (s *Server) handleResolveUsername(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		respondError(w, http.StatusBadRequest, "username required")
		return
	}
	row, err := s.resolveUsername(r, username)
	if errors.Is(err, index.ErrIndexUnavailable) {
		s.liveResolveUsername(w, r, username)
		return
	}
	if err != nil {
		log.WithError(err).Error("resolve username failed")
		respondError(w, http.StatusInternalServerError, "resolve failed")
		return
	}
	if row == nil {
		respondError(w, http.StatusNotFound, "username not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"source":  "index",
		"profile": row,
	})
}

func (s *Server) resolveUsername(r *http.Request, username string) (*index.ProfileRow, error) {
	if s.db == nil {
		return nil, index.ErrIndexUnavailable
	}
	if err := s.db.EnsureSchema(r.Context()); err != nil {
		return nil, index.ErrIndexUnavailable
	}
	return s.db.ResolveUsername(r.Context(), username)
}

func (s *Server) liveResolveUsername(w http.ResponseWriter, r *http.Request, username string) {
	rows, err := s.svc.LiveProfiles(r.Context())
	if err != nil {
		log.WithError(err).Error("live resolve fallback failed")
		respondError(w, http.StatusBadGateway, "ledger query failed")
		return
	}
	for i := range rows {
		if strings.EqualFold(rows[i].Username, username) {
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"success": true,
				"source":  "onchain",
				"profile": rows[i],
			})
			return
		}
	}
	respondError(w, http.StatusNotFound, "username not found")
}

func (s *Server) handleRecentSignups(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit", 0)
	rows, err := s.recentSignups(r, limit)
	if errors.Is(err, index.ErrIndexUnavailable) {
		s.liveProfileFallback(w, r)
		return
	}
	if err != nil {
		log.WithError(err).Error("recent signups failed")
		respondError(w, http.StatusInternalServerError, "signups read failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"source":  "index",
		"signups": rows,
	})
}

// signupWindow bounds the recent-signups feed to the last day.
const signupWindow = 24 * time.Hour

func (s *Server) recentSignups(r *http.Request, limit int) ([]index.Signup, error) {
	if s.db == nil {
		return nil, index.ErrIndexUnavailable
	}
	if err := s.db.EnsureSchema(r.Context()); err != nil {
		return nil, index.ErrIndexUnavailable
	}
	since := time.Now().Add(-signupWindow).Unix()
	return s.db.RecentSignups(r.Context(), since, limit)
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Stats(r.Context())
	if errors.Is(err, index.ErrIndexUnavailable) {
		respondError(w, http.StatusServiceUnavailable, "index unavailable")
		return
	}
	if err != nil {
		log.WithError(err).Error("sync status failed")
		respondError(w, http.StatusInternalServerError, "status read failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  st,
	})
}

// handleSyncTrigger runs a full backfill inline and reports its summary.
func (s *Server) handleSyncTrigger(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.FullSync(r.Context())
	if errors.Is(err, index.ErrIndexUnavailable) {
		respondError(w, http.StatusServiceUnavailable, "index unavailable")
		return
	}
	if err != nil {
		log.WithError(err).Error("full sync failed")
		respondError(w, http.StatusBadGateway, "sync failed: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"results":  res,
		"syncedAt": time.Now().Unix(),
	})
}

// handleRefresh reindexes one account by address, for repairing a single
// stale row without a full backfill.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		respondError(w, http.StatusBadRequest, "address required")
		return
	}
	if _, err := solana.PublicKeyFromBase58(address); err != nil {
		respondError(w, http.StatusBadRequest, "invalid address "+address)
		return
	}
	res, err := s.svc.RefreshAccount(r.Context(), address)
	if errors.Is(err, index.ErrIndexUnavailable) {
		respondError(w, http.StatusServiceUnavailable, "index unavailable")
		return
	}
	if errors.Is(err, clawsync.ErrAccountNotFound) {
		respondError(w, http.StatusNotFound, "account not found")
		return
	}
	if err != nil {
		log.WithError(err).WithField("account", address).Error("account refresh failed")
		respondError(w, http.StatusBadGateway, "refresh failed: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"address": address,
		"results": res,
	})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	events, err := clawsync.ParseEvents(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.svc.IngestEvents(r.Context(), events)
	if errors.Is(err, index.ErrIndexUnavailable) {
		respondError(w, http.StatusServiceUnavailable, "index unavailable")
		return
	}
	if err != nil {
		log.WithError(err).Error("webhook ingest failed")
		respondError(w, http.StatusInternalServerError, "ingest failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"indexed":   res.Total,
		"results":   res,
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleCompressedPost(w http.ResponseWriter, r *http.Request) {
	var post clawsync.CompressedPost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		respondError(w, http.StatusBadRequest, "malformed body")
		return
	}
	err := s.svc.IndexCompressedPost(r.Context(), &post)
	if errors.Is(err, index.ErrIndexUnavailable) {
		respondError(w, http.StatusServiceUnavailable, "index unavailable")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"address": post.Address,
	})
}

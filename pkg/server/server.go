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

// Package server exposes the index over HTTP: search and feed reads, the
// sync trigger and webhook ingestion endpoints, and a health check.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/metasal1/clawbook-indexer/pkg/index"
	clawsync "github.com/metasal1/clawbook-indexer/pkg/sync"
)

// Server routes HTTP requests to the sync service and the index.
type Server struct {
	svc    *clawsync.Service
	db     *index.DB
	secret string
}

// New wires the handler set. db may be nil when no index is configured;
// reads then serve from live on-chain decoding.
func New(svc *clawsync.Service, db *index.DB, secret string) *Server {
	return &Server{svc: svc, db: db, secret: secret}
}

// Router builds the HTTP router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/health", s.handleHealth)

	r.Get("/api/search", s.handleSearch)
	r.Get("/api/posts", s.handlePosts)
	r.Get("/api/stats", s.handleStats)
	r.Get("/api/resolve-username", s.handleResolveUsername)
	r.Get("/api/recent-signups", s.handleRecentSignups)

	r.Get("/api/sync", s.handleSyncStatus)
	r.With(s.auth).Post("/api/sync", s.handleSyncTrigger)
	r.With(s.auth).Post("/api/refresh", s.handleRefresh)
	r.Get("/api/webhook", s.handleHealth)
	r.With(s.auth).Post("/api/webhook", s.handleWebhook)
	r.With(s.auth).Post("/api/compressed-post", s.handleCompressedPost)

	return r
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

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

package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Sort orders accepted by the query layer. Unknown values fall back to the
// first entry of each set.
const (
	SortFollowers = "followers"
	SortPosts     = "posts"
	SortAlpha     = "alpha"
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortLikes     = "likes"
)

// ProfileQuery filters and orders a profile search.
type ProfileQuery struct {
	Term     string
	Type     string // "", "human" or "bot"
	Verified *bool
	Sort     string
	Limit    int
	Offset   int
}

// PostQuery filters and orders a post search or feed read.
type PostQuery struct {
	Term   string // empty means "all posts", newest first
	Author string
	Sort   string
	Limit  int
	Offset int
}

const defaultPageSize = 20

// ClampPage normalizes a requested page to the bounds the query layer
// enforces, so callers can report the page size actually applied.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ftsPrefix renders a user-supplied term as a quoted FTS5 prefix query.
// Quoting keeps FTS operators ("AND", "*", NEAR) inert inside the term.
func ftsPrefix(term string) string {
	return `"` + strings.ReplaceAll(term, `"`, `""`) + `"*`
}

// SearchProfiles runs a full-text prefix search over usernames, bios and
// authority keys, with optional account-type and verified filters. An empty
// term lists all profiles. It returns the matching page and the total match
// count.
func (d *DB) SearchProfiles(ctx context.Context, q ProfileQuery) ([]ProfileRow, int64, error) {
	limit, offset := ClampPage(q.Limit, q.Offset)

	join := ""
	where := []string{}
	args := []interface{}{}
	if q.Term != "" {
		join = " JOIN profiles_fts ON profiles_fts.rowid = p.rowid"
		where = append(where, "profiles_fts MATCH ?")
		args = append(args, ftsPrefix(q.Term))
	}
	if q.Type != "" {
		where = append(where, "p.account_type = ?")
		args = append(args, q.Type)
	}
	if q.Verified != nil {
		where = append(where, "p.verified = ?")
		args = append(args, *q.Verified)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var order string
	switch q.Sort {
	case SortPosts:
		order = "p.post_count DESC, p.username ASC"
	case SortAlpha:
		order = "p.username COLLATE NOCASE ASC"
	case SortNewest:
		order = "p.created_at DESC"
	default:
		order = "p.follower_count DESC, p.username ASC"
	}

	var total int64
	countStmt := "SELECT COUNT(*) FROM profiles p" + join + cond
	if err := d.db.GetContext(ctx, &total, countStmt, args...); err != nil {
		return nil, 0, fmt.Errorf("count profiles: %w", err)
	}

	stmt := fmt.Sprintf("SELECT p.* FROM profiles p%s%s ORDER BY %s LIMIT ? OFFSET ?", join, cond, order)
	rows := []ProfileRow{}
	if err := d.db.SelectContext(ctx, &rows, stmt, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("search profiles: %w", err)
	}
	return rows, total, nil
}

const postJoin = `
	SELECT t.address, t.author, t.content, t.likes, t.created_at, t.post_id, t.compressed, t.indexed_at,
	       COALESCE(p.username, '') AS username,
	       COALESCE(p.pfp, '') AS pfp,
	       COALESCE(p.account_type, 'human') AS account_type,
	       COALESCE(p.verified, 0) AS verified
	FROM posts t LEFT JOIN profiles p ON p.authority = t.author`

func postOrder(sort string) string {
	switch sort {
	case SortOldest:
		return "t.created_at ASC"
	case SortLikes:
		return "t.likes DESC, t.created_at DESC"
	default:
		return "t.created_at DESC"
	}
}

// SearchPosts runs a full-text prefix search over post content and author
// keys, joining each hit with its author's profile. An empty term reads the
// feed instead: all posts, optionally filtered by author.
func (d *DB) SearchPosts(ctx context.Context, q PostQuery) ([]PostResult, int64, error) {
	limit, offset := ClampPage(q.Limit, q.Offset)

	where := []string{}
	args := []interface{}{}
	if q.Term != "" {
		where = append(where, "t.rowid IN (SELECT rowid FROM posts_fts WHERE posts_fts MATCH ?)")
		args = append(args, ftsPrefix(q.Term))
	}
	if q.Author != "" {
		where = append(where, "t.author = ?")
		args = append(args, q.Author)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	countStmt := `SELECT COUNT(*) FROM posts t` + cond
	if err := d.db.GetContext(ctx, &total, countStmt, args...); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	stmt := postJoin + cond + " ORDER BY " + postOrder(q.Sort) + " LIMIT ? OFFSET ?"
	rows := []PostResult{}
	if err := d.db.SelectContext(ctx, &rows, stmt, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("search posts: %w", err)
	}
	return rows, total, nil
}

// GetPost returns a single post with its author join, or nil when the
// address is not indexed.
func (d *DB) GetPost(ctx context.Context, address string) (*PostResult, error) {
	var row PostResult
	err := d.db.GetContext(ctx, &row, postJoin+" WHERE t.address = ?", address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", address, err)
	}
	return &row, nil
}

// GetProfile returns the profile owned by an authority, or nil when not
// indexed.
func (d *DB) GetProfile(ctx context.Context, authority string) (*ProfileRow, error) {
	var row ProfileRow
	err := d.db.GetContext(ctx, &row, `SELECT * FROM profiles WHERE authority = ?`, authority)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", authority, err)
	}
	return &row, nil
}

// ResolveUsername maps an exact username, case-insensitively, to its
// profile. Returns nil when no profile holds the name.
func (d *DB) ResolveUsername(ctx context.Context, username string) (*ProfileRow, error) {
	var row ProfileRow
	err := d.db.GetContext(ctx, &row,
		`SELECT * FROM profiles WHERE username = ? COLLATE NOCASE LIMIT 1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve username %q: %w", username, err)
	}
	return &row, nil
}

// RecentSignups returns the newest profiles by on-chain creation time,
// created at or after since. A zero since disables the window. Profiles with
// an unknown creation time (created_at 0, written by the incremental path
// before any backfill) are never listed.
func (d *DB) RecentSignups(ctx context.Context, since int64, limit int) ([]Signup, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	rows := []Signup{}
	err := d.db.SelectContext(ctx, &rows,
		`SELECT username, account_type, pfp, created_at FROM profiles
		 WHERE created_at <> 0 AND created_at >= ? ORDER BY created_at DESC LIMIT ?`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("recent signups: %w", err)
	}
	return rows, nil
}

// TableCounts reports the row count of each primary table.
func (d *DB) TableCounts(ctx context.Context) (Counts, error) {
	var c Counts
	for _, t := range []struct {
		name string
		dst  *int64
	}{
		{"profiles", &c.Profiles},
		{"posts", &c.Posts},
		{"follows", &c.Follows},
		{"likes", &c.Likes},
	} {
		if err := d.db.GetContext(ctx, t.dst, "SELECT COUNT(*) FROM "+t.name); err != nil {
			return Counts{}, fmt.Errorf("count %s: %w", t.name, err)
		}
	}
	return c, nil
}

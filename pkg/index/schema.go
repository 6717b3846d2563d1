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

// schemaStatements declares the full index schema. All statements use
// IF NOT EXISTS so the set can be replayed on every startup. The *_fts
// shadow tables are ordinary FTS5 tables keyed to the primary table's rowid
// and maintained by the writer with delete-then-reinsert on every upsert;
// external-content FTS would require the pre-update column values to delete,
// which is exactly the drift the writer is designed to rule out.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		authority TEXT PRIMARY KEY,
		address TEXT NOT NULL,
		username TEXT NOT NULL,
		bio TEXT NOT NULL DEFAULT '',
		pfp TEXT NOT NULL DEFAULT '',
		account_type TEXT NOT NULL DEFAULT 'human',
		verified INTEGER NOT NULL DEFAULT 0,
		post_count INTEGER NOT NULL DEFAULT 0,
		follower_count INTEGER NOT NULL DEFAULT 0,
		following_count INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL DEFAULT 0,
		indexed_at INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE VIRTUAL TABLE IF NOT EXISTS profiles_fts USING fts5(
		username, bio, authority
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		address TEXT PRIMARY KEY,
		author TEXT NOT NULL,
		content TEXT NOT NULL,
		likes INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL DEFAULT 0,
		post_id INTEGER NOT NULL DEFAULT 0,
		compressed INTEGER NOT NULL DEFAULT 0,
		indexed_at INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE VIRTUAL TABLE IF NOT EXISTS posts_fts USING fts5(
		content, author
	)`,
	`CREATE TABLE IF NOT EXISTS follows (
		address TEXT PRIMARY KEY,
		follower TEXT NOT NULL,
		following TEXT NOT NULL,
		created_at INTEGER NOT NULL DEFAULT 0,
		indexed_at INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		address TEXT PRIMARY KEY,
		user_pubkey TEXT NOT NULL,
		post_address TEXT NOT NULL,
		created_at INTEGER NOT NULL DEFAULT 0,
		indexed_at INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS referrals (
		address TEXT PRIMARY KEY,
		referred TEXT NOT NULL,
		referrer TEXT NOT NULL,
		created_at INTEGER NOT NULL DEFAULT 0,
		indexed_at INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_likes ON posts(likes DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_follows_follower ON follows(follower)`,
	`CREATE INDEX IF NOT EXISTS idx_follows_following ON follows(following)`,
	`CREATE INDEX IF NOT EXISTS idx_likes_post ON likes(post_address)`,
	`CREATE INDEX IF NOT EXISTS idx_likes_user ON likes(user_pubkey)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_username ON profiles(username)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_type ON profiles(account_type)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_followers ON profiles(follower_count DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_posts ON profiles(post_count DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_created ON profiles(created_at DESC)`,
}

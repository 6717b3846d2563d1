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

// Typed row structs for every table. Rows are decoded once at the store
// boundary by sqlx and used as concrete structs everywhere above it.

// ProfileRow mirrors one profiles row. Authority is the natural key; a
// CreatedAt of 0 on upsert means "preserve whatever the index already has".
type ProfileRow struct {
	Authority      string `db:"authority" json:"authority"`
	Address        string `db:"address" json:"address"`
	Username       string `db:"username" json:"username"`
	Bio            string `db:"bio" json:"bio"`
	Pfp            string `db:"pfp" json:"pfp"`
	AccountType    string `db:"account_type" json:"accountType"`
	Verified       bool   `db:"verified" json:"verified"`
	PostCount      uint64 `db:"post_count" json:"postCount"`
	FollowerCount  uint64 `db:"follower_count" json:"followerCount"`
	FollowingCount uint64 `db:"following_count" json:"followingCount"`
	CreatedAt      int64  `db:"created_at" json:"createdAt"`
	IndexedAt      int64  `db:"indexed_at" json:"-"`
}

// PostRow mirrors one posts row.
type PostRow struct {
	Address    string `db:"address" json:"address"`
	Author     string `db:"author" json:"author"`
	Content    string `db:"content" json:"content"`
	Likes      uint64 `db:"likes" json:"likes"`
	CreatedAt  int64  `db:"created_at" json:"createdAt"`
	PostID     uint64 `db:"post_id" json:"postId"`
	Compressed bool   `db:"compressed" json:"compressed"`
	IndexedAt  int64  `db:"indexed_at" json:"-"`
}

// PostResult is a posts row joined with its author's profile, the shape the
// search and feed endpoints return. The author may not be indexed yet, so
// the queries COALESCE the profile columns to defaults before scanning.
type PostResult struct {
	PostRow
	Username   string `db:"username" json:"username"`
	Pfp        string `db:"pfp" json:"pfp"`
	AuthorType string `db:"account_type" json:"accountType"`
	Verified   bool   `db:"verified" json:"verified"`
}

// FollowRow mirrors one follows row.
type FollowRow struct {
	Address   string `db:"address" json:"address"`
	Follower  string `db:"follower" json:"follower"`
	Following string `db:"following" json:"following"`
	CreatedAt int64  `db:"created_at" json:"createdAt"`
	IndexedAt int64  `db:"indexed_at" json:"-"`
}

// LikeRow mirrors one likes row.
type LikeRow struct {
	Address     string `db:"address" json:"address"`
	UserPubkey  string `db:"user_pubkey" json:"userPubkey"`
	PostAddress string `db:"post_address" json:"postAddress"`
	CreatedAt   int64  `db:"created_at" json:"createdAt"`
	IndexedAt   int64  `db:"indexed_at" json:"-"`
}

// ReferralRow mirrors one referrals row.
type ReferralRow struct {
	Address   string `db:"address" json:"address"`
	Referred  string `db:"referred" json:"referred"`
	Referrer  string `db:"referrer" json:"referrer"`
	CreatedAt int64  `db:"created_at" json:"createdAt"`
	IndexedAt int64  `db:"indexed_at" json:"-"`
}

// Counts summarizes table sizes for the sync status endpoint.
type Counts struct {
	Profiles int64 `json:"profiles"`
	Posts    int64 `json:"posts"`
	Follows  int64 `json:"follows"`
	Likes    int64 `json:"likes"`
}

// Signup is the trimmed profile shape returned by the recent-signups feed.
type Signup struct {
	Username    string `db:"username" json:"username"`
	AccountType string `db:"account_type" json:"type"`
	Pfp         string `db:"pfp" json:"pfp"`
	CreatedAt   int64  `db:"created_at" json:"createdAt"`
}

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
	"fmt"

	log "github.com/sirupsen/logrus"
)

// The writer upserts decoded records keyed by their natural identity and
// keeps the FTS shadow rows in lockstep: every profile/post upsert deletes
// and reinserts the shadow entry inside the same call, so no caller can
// leave a shadow row stale. Each upsert (primary row plus shadow refresh) is
// the unit of atomicity; batches above this layer are not transactional.

// UpsertProfile inserts or refreshes a profile row keyed by authority, then
// refreshes its full-text shadow. A zero CreatedAt preserves the stored
// value, so webhook passes cannot clobber a timestamp a full sync populated.
func (d *DB) UpsertProfile(ctx context.Context, row *ProfileRow) error {
	_, err := d.db.ExecContext(ctx, TableProfiles.ToUpsertStatement(),
		row.Authority, row.Address, row.Username, row.Bio, row.Pfp,
		row.AccountType, row.Verified, row.PostCount, row.FollowerCount,
		row.FollowingCount, row.CreatedAt, row.IndexedAt)
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", row.Authority, err)
	}
	d.refreshShadow(ctx, "profiles_fts",
		`DELETE FROM profiles_fts WHERE rowid = (SELECT rowid FROM profiles WHERE authority = ?)`,
		[]interface{}{row.Authority},
		`INSERT INTO profiles_fts(rowid, username, bio, authority)
		 VALUES ((SELECT rowid FROM profiles WHERE authority = ?), ?, ?, ?)`,
		[]interface{}{row.Authority, row.Username, row.Bio, row.Authority})
	return nil
}

// UpsertPost inserts or refreshes a post row keyed by its account address.
// Post content is immutable on chain, so a conflict only refreshes the like
// counter and ingestion time.
func (d *DB) UpsertPost(ctx context.Context, row *PostRow) error {
	_, err := d.db.ExecContext(ctx, TablePosts.ToUpsertStatement(),
		row.Address, row.Author, row.Content, row.Likes, row.CreatedAt,
		row.PostID, row.Compressed, row.IndexedAt)
	if err != nil {
		return fmt.Errorf("upsert post %s: %w", row.Address, err)
	}
	d.refreshShadow(ctx, "posts_fts",
		`DELETE FROM posts_fts WHERE rowid = (SELECT rowid FROM posts WHERE address = ?)`,
		[]interface{}{row.Address},
		`INSERT INTO posts_fts(rowid, content, author)
		 VALUES ((SELECT rowid FROM posts WHERE address = ?), ?, ?)`,
		[]interface{}{row.Address, row.Content, row.Author})
	return nil
}

// refreshShadow applies delete-then-reinsert to a full-text shadow table. A
// failed delete (no shadow row yet) must not abort the upsert that already
// succeeded; a failed insert leaves the shadow catch-up-able by the next
// upsert, so both are logged and swallowed.
func (d *DB) refreshShadow(ctx context.Context, table, delStmt string, delArgs []interface{}, insStmt string, insArgs []interface{}) {
	if _, err := d.db.ExecContext(ctx, delStmt, delArgs...); err != nil {
		log.WithError(err).Debugf("delete from %s", table)
	}
	if _, err := d.db.ExecContext(ctx, insStmt, insArgs...); err != nil {
		log.WithError(err).Warnf("insert into %s", table)
	}
}

// UpsertFollow records a follow edge keyed by its account address. Follow
// records are immutable; conflicts are ignored.
func (d *DB) UpsertFollow(ctx context.Context, row *FollowRow) error {
	_, err := d.db.ExecContext(ctx, TableFollows.ToUpsertStatement(),
		row.Address, row.Follower, row.Following, row.CreatedAt, row.IndexedAt)
	if err != nil {
		return fmt.Errorf("upsert follow %s: %w", row.Address, err)
	}
	return nil
}

// UpsertLike records a like keyed by its account address.
func (d *DB) UpsertLike(ctx context.Context, row *LikeRow) error {
	_, err := d.db.ExecContext(ctx, TableLikes.ToUpsertStatement(),
		row.Address, row.UserPubkey, row.PostAddress, row.CreatedAt, row.IndexedAt)
	if err != nil {
		return fmt.Errorf("upsert like %s: %w", row.Address, err)
	}
	return nil
}

// UpsertReferral records a referral keyed by its account address.
func (d *DB) UpsertReferral(ctx context.Context, row *ReferralRow) error {
	_, err := d.db.ExecContext(ctx, TableReferrals.ToUpsertStatement(),
		row.Address, row.Referred, row.Referrer, row.CreatedAt, row.IndexedAt)
	if err != nil {
		return fmt.Errorf("upsert referral %s: %w", row.Address, err)
	}
	return nil
}

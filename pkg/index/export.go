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
)

// Full-table reads used by the export command. Rows come back in insertion
// order so repeated exports of an unchanged index are byte-identical.

func (d *DB) AllProfiles(ctx context.Context) ([]ProfileRow, error) {
	rows := []ProfileRow{}
	if err := d.db.SelectContext(ctx, &rows, `SELECT * FROM profiles ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	return rows, nil
}

func (d *DB) AllPosts(ctx context.Context) ([]PostRow, error) {
	rows := []PostRow{}
	if err := d.db.SelectContext(ctx, &rows, `SELECT * FROM posts ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("read posts: %w", err)
	}
	return rows, nil
}

func (d *DB) AllFollows(ctx context.Context) ([]FollowRow, error) {
	rows := []FollowRow{}
	if err := d.db.SelectContext(ctx, &rows, `SELECT * FROM follows ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("read follows: %w", err)
	}
	return rows, nil
}

func (d *DB) AllLikes(ctx context.Context) ([]LikeRow, error) {
	rows := []LikeRow{}
	if err := d.db.SelectContext(ctx, &rows, `SELECT * FROM likes ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("read likes: %w", err)
	}
	return rows, nil
}

func (d *DB) AllReferrals(ctx context.Context) ([]ReferralRow, error) {
	rows := []ReferralRow{}
	if err := d.db.SelectContext(ctx, &rows, `SELECT * FROM referrals ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("read referrals: %w", err)
	}
	return rows, nil
}

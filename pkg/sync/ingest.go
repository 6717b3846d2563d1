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

package sync

import (
	"context"
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"

	"github.com/metasal1/clawbook-indexer/pkg/codec"
	"github.com/metasal1/clawbook-indexer/pkg/index"
	"github.com/metasal1/clawbook-indexer/pkg/prom"
)

// ingestAccount classifies, decodes and writes a single account. All entry
// points funnel through here. Failures are absorbed into res.Errors; an
// account with an unrecognized shape is skipped without counting at all.
//
// backfill distinguishes the full-backfill path from the webhook path in two
// spots. Backfilled accounts come from a program-scoped enumeration, so an
// 80-byte record that derives from no known seed combination is a real
// error; a webhook payload can carry accounts of unrelated programs, so the
// same failure there just filters the account out. And only backfill
// refreshes a profile's stored created_at: the webhook path writes a zero so
// the upsert preserves whatever creation time the index already holds.
func (s *Service) ingestAccount(ctx context.Context, pubkey solana.PublicKey, data []byte, backfill bool, res *Results) {
	kind := codec.Classify(len(data))
	if kind == codec.KindUnknown {
		return
	}
	res.Total++

	fail := func(err error) {
		res.Errors++
		prom.IncDecodeErrorCount()
		log.WithError(err).WithFields(log.Fields{
			"account": pubkey,
			"kind":    kind,
		}).Warn("skipping account")
	}

	now := time.Now().Unix()
	switch kind {
	case codec.KindProfile:
		p, err := codec.DecodeProfile(data)
		if err != nil {
			fail(err)
			return
		}
		createdAt := p.CreatedAt
		if !backfill {
			createdAt = 0
		}
		row := &index.ProfileRow{
			Authority:      p.Authority.String(),
			Address:        pubkey.String(),
			Username:       p.Username,
			Bio:            p.Bio,
			Pfp:            p.Pfp,
			AccountType:    p.AccountType.String(),
			Verified:       p.Verified,
			PostCount:      p.PostCount,
			FollowerCount:  p.FollowerCount,
			FollowingCount: p.FollowingCount,
			CreatedAt:      createdAt,
			IndexedAt:      now,
		}
		if err := s.db.UpsertProfile(ctx, row); err != nil {
			fail(err)
			return
		}
		prom.IncProfileCount()
		res.Profiles++

	case codec.KindPost:
		p, err := codec.DecodePost(data)
		if err != nil {
			fail(err)
			return
		}
		row := &index.PostRow{
			Address:   pubkey.String(),
			Author:    p.Author.String(),
			Content:   p.Content,
			Likes:     p.Likes,
			CreatedAt: p.CreatedAt,
			PostID:    p.PostID,
			IndexedAt: now,
		}
		if err := s.db.UpsertPost(ctx, row); err != nil {
			fail(err)
			return
		}
		prom.IncPostCount()
		res.Posts++

	case codec.KindRelation:
		rec, err := codec.DecodeRelation(data)
		if err != nil {
			fail(err)
			return
		}
		relKind, err := s.resolver.Resolve(pubkey, rec)
		if errors.Is(err, codec.ErrAmbiguousRecord) && !backfill {
			res.Total--
			return
		}
		if err != nil {
			fail(err)
			return
		}
		s.ingestRelation(ctx, pubkey, rec, relKind, now, res, fail)
	}
}

func (s *Service) ingestRelation(ctx context.Context, pubkey solana.PublicKey, rec *codec.Relation, kind codec.RelationKind, now int64, res *Results, fail func(error)) {
	switch kind {
	case codec.RelationFollow:
		row := &index.FollowRow{
			Address:   pubkey.String(),
			Follower:  rec.Key1.String(),
			Following: rec.Key2.String(),
			CreatedAt: rec.CreatedAt,
			IndexedAt: now,
		}
		if err := s.db.UpsertFollow(ctx, row); err != nil {
			fail(err)
			return
		}
		prom.IncFollowCount()
		res.Follows++

	case codec.RelationLike:
		row := &index.LikeRow{
			Address:     pubkey.String(),
			UserPubkey:  rec.Key1.String(),
			PostAddress: rec.Key2.String(),
			CreatedAt:   rec.CreatedAt,
			IndexedAt:   now,
		}
		if err := s.db.UpsertLike(ctx, row); err != nil {
			fail(err)
			return
		}
		prom.IncLikeCount()
		res.Likes++

	case codec.RelationReferral:
		row := &index.ReferralRow{
			Address:   pubkey.String(),
			Referred:  rec.Key1.String(),
			Referrer:  rec.Key2.String(),
			CreatedAt: rec.CreatedAt,
			IndexedAt: now,
		}
		if err := s.db.UpsertReferral(ctx, row); err != nil {
			fail(err)
			return
		}
		prom.IncReferralCount()
	}
}

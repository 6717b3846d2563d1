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
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/metasal1/clawbook-indexer/pkg/codec"
	"github.com/metasal1/clawbook-indexer/pkg/index"
)

// The live path bypasses the index entirely: it enumerates program accounts
// and decodes them on the spot, writing nothing. It serves reads whenever
// the index is unavailable, at the cost of degraded pagination; the result
// set is whatever one enumeration returned, there is no true total beyond
// it.

var profileSizes = []uint64{
	codec.ProfileSizeV1,
	codec.ProfileSizeV2,
	codec.ProfileSizeV3,
}

// LiveProfiles enumerates and decodes every profile account directly from
// the ledger, newest first. Undecodable accounts are logged and dropped.
func (s *Service) LiveProfiles(ctx context.Context) ([]index.ProfileRow, error) {
	rows := []index.ProfileRow{}
	for _, size := range profileSizes {
		accounts, err := s.ledger.GetProgramAccountsBySize(ctx, s.program, size)
		if err != nil {
			return nil, fmt.Errorf("enumerate %d-byte accounts: %w", size, err)
		}
		for i := range accounts {
			p, err := codec.DecodeProfile(accounts[i].Data)
			if err != nil {
				log.WithError(err).WithField("account", accounts[i].Pubkey).Debug("dropping undecodable profile")
				continue
			}
			rows = append(rows, index.ProfileRow{
				Authority:      p.Authority.String(),
				Address:        accounts[i].Pubkey.String(),
				Username:       p.Username,
				Bio:            p.Bio,
				Pfp:            p.Pfp,
				AccountType:    p.AccountType.String(),
				Verified:       p.Verified,
				PostCount:      p.PostCount,
				FollowerCount:  p.FollowerCount,
				FollowingCount: p.FollowingCount,
				CreatedAt:      p.CreatedAt,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt > rows[j].CreatedAt })
	return rows, nil
}

// LivePosts enumerates and decodes every post account directly from the
// ledger, newest first. A non-empty author restricts the result to that
// author's posts.
func (s *Service) LivePosts(ctx context.Context, author string) ([]index.PostResult, error) {
	accounts, err := s.ledger.GetProgramAccountsBySize(ctx, s.program, codec.PostSize)
	if err != nil {
		return nil, fmt.Errorf("enumerate %d-byte accounts: %w", codec.PostSize, err)
	}
	rows := []index.PostResult{}
	for i := range accounts {
		p, err := codec.DecodePost(accounts[i].Data)
		if err != nil {
			log.WithError(err).WithField("account", accounts[i].Pubkey).Debug("dropping undecodable post")
			continue
		}
		if author != "" && p.Author.String() != author {
			continue
		}
		rows = append(rows, index.PostResult{
			PostRow: index.PostRow{
				Address:   accounts[i].Pubkey.String(),
				Author:    p.Author.String(),
				Content:   p.Content,
				Likes:     p.Likes,
				CreatedAt: p.CreatedAt,
				PostID:    p.PostID,
			},
			AuthorType: codec.AccountTypeHuman.String(),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt > rows[j].CreatedAt })
	return rows, nil
}

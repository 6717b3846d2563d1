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

	log "github.com/sirupsen/logrus"

	"github.com/metasal1/clawbook-indexer/pkg/codec"
)

// ChainStats are account counts read straight from the ledger, independent
// of the index. Profiles are split by account type; the relation count lumps
// follows, likes and referrals together since splitting them would mean
// resolving every record.
type ChainStats struct {
	Profiles  int `json:"profiles"`
	Humans    int `json:"humans"`
	Bots      int `json:"bots"`
	Posts     int `json:"posts"`
	Relations int `json:"relations"`
}

// OnChainStats counts program accounts by shape with dataSize-filtered
// enumerations. Undecodable profiles still count toward the total but not
// toward either type bucket.
func (s *Service) OnChainStats(ctx context.Context) (*ChainStats, error) {
	st := &ChainStats{}
	for _, size := range profileSizes {
		accounts, err := s.ledger.GetProgramAccountsBySize(ctx, s.program, size)
		if err != nil {
			return nil, fmt.Errorf("enumerate %d-byte accounts: %w", size, err)
		}
		st.Profiles += len(accounts)
		for i := range accounts {
			p, err := codec.DecodeProfile(accounts[i].Data)
			if err != nil {
				log.WithError(err).WithField("account", accounts[i].Pubkey).Debug("uncounted undecodable profile")
				continue
			}
			if p.AccountType == codec.AccountTypeBot {
				st.Bots++
			} else {
				st.Humans++
			}
		}
	}

	posts, err := s.ledger.GetProgramAccountsBySize(ctx, s.program, codec.PostSize)
	if err != nil {
		return nil, fmt.Errorf("enumerate %d-byte accounts: %w", codec.PostSize, err)
	}
	st.Posts = len(posts)

	relations, err := s.ledger.GetProgramAccountsBySize(ctx, s.program, codec.RelationSize)
	if err != nil {
		return nil, fmt.Errorf("enumerate %d-byte accounts: %w", codec.RelationSize, err)
	}
	st.Relations = len(relations)
	return st, nil
}

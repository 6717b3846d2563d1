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
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/metasal1/clawbook-indexer/pkg/index"
)

// ErrAccountNotFound reports a refresh target that does not exist on the
// ledger.
var ErrAccountNotFound = errors.New("account not found")

// RefreshAccount reindexes a single account by address, the targeted
// counterpart of FullSync for when one account is known to be stale. The
// account must exist and be owned by the indexed program.
func (s *Service) RefreshAccount(ctx context.Context, address string) (*Results, error) {
	key, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", address, err)
	}
	db, err := s.index()
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", index.ErrIndexUnavailable, err)
	}

	acct, err := s.ledger.GetAccountInfo(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetch account %s: %w", address, err)
	}
	if acct == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
	}
	if !acct.Owner.Equals(s.program) {
		return nil, fmt.Errorf("account %s is owned by %s, not %s", address, acct.Owner, s.program)
	}

	res := &Results{}
	s.ingestAccount(ctx, key, acct.Data, true, res)
	return res, nil
}

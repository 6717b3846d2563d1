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

package codec

import (
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// RelationKind is the resolved identity of an 80-byte record.
type RelationKind int

const (
	RelationFollow RelationKind = iota + 1
	RelationLike
	RelationReferral
)

func (k RelationKind) String() string {
	switch k {
	case RelationFollow:
		return "follow"
	case RelationLike:
		return "like"
	case RelationReferral:
		return "referral"
	default:
		return "unknown"
	}
}

// Resolver settles the follow/like/referral ambiguity for 80-byte accounts.
// The three layouts are byte-identical, but each account's own address is a
// program-derived address with a distinct seed prefix, so re-deriving the
// candidate addresses from the record's keys and comparing against the
// actual address identifies the kind exactly. Derivation results are cached:
// FindProgramAddress costs a handful of sha256 rounds per call and full
// backfills revisit the same records every pass.
type Resolver struct {
	program solana.PublicKey

	mu    sync.RWMutex
	cache map[solana.PublicKey]RelationKind
}

// NewResolver creates a Resolver for accounts owned by program.
func NewResolver(program solana.PublicKey) *Resolver {
	return &Resolver{
		program: program,
		cache:   make(map[solana.PublicKey]RelationKind),
	}
}

// Resolve determines whether the record at address is a follow, like or
// referral. It returns ErrAmbiguousRecord when no derivation matches, which
// happens for other 80-byte account types the index does not track.
func (r *Resolver) Resolve(address solana.PublicKey, rec *Relation) (RelationKind, error) {
	r.mu.RLock()
	kind, ok := r.cache[address]
	r.mu.RUnlock()
	if ok {
		return kind, nil
	}

	switch {
	case r.derives(address, FollowSeed, rec.Key1.Bytes(), rec.Key2.Bytes()):
		kind = RelationFollow
	case r.derives(address, LikeSeed, rec.Key1.Bytes(), rec.Key2.Bytes()):
		kind = RelationLike
	case r.derives(address, ReferralSeed, rec.Key1.Bytes()):
		kind = RelationReferral
	default:
		return 0, fmt.Errorf("%w: %s matches no follow/like/referral derivation", ErrAmbiguousRecord, address)
	}

	r.mu.Lock()
	r.cache[address] = kind
	r.mu.Unlock()
	return kind, nil
}

func (r *Resolver) derives(address solana.PublicKey, seed string, keys ...[]byte) bool {
	seeds := append([][]byte{[]byte(seed)}, keys...)
	addr, _, err := solana.FindProgramAddress(seeds, r.program)
	return err == nil && addr.Equals(address)
}

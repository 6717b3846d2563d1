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

// Package codec decodes and encodes the binary layouts of Clawbook program
// accounts. All functions are pure; classification is by data length, field
// presence by layout version, and timestamps are signed 64-bit throughout.
package codec

import "github.com/gagliardetto/solana-go"

// AccountType distinguishes human-operated profiles from bots.
type AccountType byte

const (
	AccountTypeHuman AccountType = 0
	AccountTypeBot   AccountType = 1
)

func (t AccountType) String() string {
	if t == AccountTypeBot {
		return "bot"
	}
	return "human"
}

// ParseAccountType maps the textual form back to the on-chain byte.
func ParseAccountType(s string) AccountType {
	if s == "bot" {
		return AccountTypeBot
	}
	return AccountTypeHuman
}

// Profile is a decoded profile account. Fields introduced by later layout
// versions hold their zero values when decoded from an older layout; Version
// records which layout the bytes carried.
type Profile struct {
	Authority      solana.PublicKey
	Username       string
	Bio            string
	Pfp            string // v3 only
	AccountType    AccountType
	BotProofHash   [32]byte // v2+, opaque
	Verified       bool     // v2+
	PostCount      uint64
	FollowerCount  uint64
	FollowingCount uint64
	CreatedAt      int64
	Version        ProfileVersion
}

// Post is a decoded post account.
type Post struct {
	Author    solana.PublicKey
	Content   string
	Likes     uint64
	CreatedAt int64
	PostID    uint64
}

// Relation is a decoded 80-byte record before follow/like/referral
// resolution. For a follow, Key1 is the follower and Key2 the followed
// authority; for a like, Key1 is the user and Key2 the post address; for a
// referral, Key1 is the referred authority and Key2 the referrer.
type Relation struct {
	Key1      solana.PublicKey
	Key2      solana.PublicKey
	CreatedAt int64
}

// DecodeProfile decodes any of the three profile layouts, branching on the
// total byte length. Lengths that are not an exact version size still decode
// with the behavior of the largest version they can hold, so a truncated
// account never reads optional fields it does not have.
func DecodeProfile(data []byte) (*Profile, error) {
	c, err := newCursor(data)
	if err != nil {
		return nil, err
	}

	p := &Profile{Version: VersionForSize(len(data))}
	hasPfp := len(data) >= ProfileSizeV3
	hasTypeFields := len(data) >= ProfileSizeV2

	if p.Authority, err = c.pubkey(); err != nil {
		return nil, err
	}
	if p.Username, err = c.str(); err != nil {
		return nil, err
	}
	if p.Bio, err = c.str(); err != nil {
		return nil, err
	}
	if hasPfp {
		if p.Pfp, err = c.str(); err != nil {
			return nil, err
		}
	}
	if hasTypeFields {
		typeByte, err := c.u8()
		if err != nil {
			return nil, err
		}
		p.AccountType = AccountType(typeByte)
		hash, err := c.bytes(32)
		if err != nil {
			return nil, err
		}
		copy(p.BotProofHash[:], hash)
		verified, err := c.u8()
		if err != nil {
			return nil, err
		}
		p.Verified = verified == 1
	}
	if p.PostCount, err = c.u64(); err != nil {
		return nil, err
	}
	if p.FollowerCount, err = c.u64(); err != nil {
		return nil, err
	}
	if p.FollowingCount, err = c.u64(); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = c.i64(); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodePost decodes a 348-byte post account. The content length is read
// from its own prefix, never assumed from the padded allocation.
func DecodePost(data []byte) (*Post, error) {
	c, err := newCursor(data)
	if err != nil {
		return nil, err
	}

	p := &Post{}
	if p.Author, err = c.pubkey(); err != nil {
		return nil, err
	}
	if p.Content, err = c.str(); err != nil {
		return nil, err
	}
	if p.Likes, err = c.u64(); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = c.i64(); err != nil {
		return nil, err
	}
	if p.PostID, err = c.u64(); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeRelation decodes the shared 80-byte layout of follow, like and
// referral accounts: two 32-byte keys and a signed timestamp.
func DecodeRelation(data []byte) (*Relation, error) {
	c, err := newCursor(data)
	if err != nil {
		return nil, err
	}

	r := &Relation{}
	if r.Key1, err = c.pubkey(); err != nil {
		return nil, err
	}
	if r.Key2, err = c.pubkey(); err != nil {
		return nil, err
	}
	if r.CreatedAt, err = c.i64(); err != nil {
		return nil, err
	}
	return r, nil
}

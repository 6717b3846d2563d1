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
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Field capacity limits enforced by the on-chain program. The fixed account
// sizes are the sum of these maxima; shorter strings leave zero padding at
// the tail of the account.
const (
	MaxUsernameLen = 32
	MaxBioLen      = 256
	MaxPfpLen      = 128
	MaxContentLen  = 280
)

type accountWriter struct {
	buf []byte
}

func (w *accountWriter) discriminator() {
	w.buf = append(w.buf, make([]byte, DiscriminatorLen)...)
}

func (w *accountWriter) pubkey(key solana.PublicKey) {
	w.buf = append(w.buf, key.Bytes()...)
}

func (w *accountWriter) str(s string) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *accountWriter) u64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *accountWriter) i64(v int64) {
	w.u64(uint64(v))
}

func (w *accountWriter) u8(b byte) {
	w.buf = append(w.buf, b)
}

// pad extends the buffer with zeros to the fixed account size.
func (w *accountWriter) pad(size int) ([]byte, error) {
	if len(w.buf) > size {
		return nil, fmt.Errorf("encoded %d bytes exceeds account size %d", len(w.buf), size)
	}
	return append(w.buf, make([]byte, size-len(w.buf))...), nil
}

// EncodeProfile serializes a profile into the account layout of its Version,
// zero discriminator included, padded to the version's fixed size. It is the
// exact inverse of DecodeProfile for every field the version carries.
func EncodeProfile(p *Profile) ([]byte, error) {
	var size int
	switch p.Version {
	case ProfileV1:
		size = ProfileSizeV1
	case ProfileV2:
		size = ProfileSizeV2
	case ProfileV3:
		size = ProfileSizeV3
	default:
		return nil, fmt.Errorf("cannot encode profile with unknown version %d", p.Version)
	}
	if len(p.Username) > MaxUsernameLen {
		return nil, fmt.Errorf("username exceeds %d bytes", MaxUsernameLen)
	}
	if len(p.Bio) > MaxBioLen {
		return nil, fmt.Errorf("bio exceeds %d bytes", MaxBioLen)
	}
	if len(p.Pfp) > MaxPfpLen {
		return nil, fmt.Errorf("pfp exceeds %d bytes", MaxPfpLen)
	}

	w := &accountWriter{}
	w.discriminator()
	w.pubkey(p.Authority)
	w.str(p.Username)
	w.str(p.Bio)
	if p.Version >= ProfileV3 {
		w.str(p.Pfp)
	}
	if p.Version >= ProfileV2 {
		w.u8(byte(p.AccountType))
		w.buf = append(w.buf, p.BotProofHash[:]...)
		if p.Verified {
			w.u8(1)
		} else {
			w.u8(0)
		}
	}
	w.u64(p.PostCount)
	w.u64(p.FollowerCount)
	w.u64(p.FollowingCount)
	w.i64(p.CreatedAt)
	return w.pad(size)
}

// EncodePost serializes a post into the fixed 348-byte account layout.
func EncodePost(p *Post) ([]byte, error) {
	if len(p.Content) > MaxContentLen {
		return nil, fmt.Errorf("content exceeds %d bytes", MaxContentLen)
	}
	w := &accountWriter{}
	w.discriminator()
	w.pubkey(p.Author)
	w.str(p.Content)
	w.u64(p.Likes)
	w.i64(p.CreatedAt)
	w.u64(p.PostID)
	return w.pad(PostSize)
}

// EncodeRelation serializes a follow/like/referral record into the shared
// 80-byte layout.
func EncodeRelation(r *Relation) ([]byte, error) {
	w := &accountWriter{}
	w.discriminator()
	w.pubkey(r.Key1)
	w.pubkey(r.Key2)
	w.i64(r.CreatedAt)
	return w.pad(RelationSize)
}

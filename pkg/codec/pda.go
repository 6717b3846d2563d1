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

	"github.com/gagliardetto/solana-go"
)

// Program-derived address seeds, matching the on-chain program.
const (
	ProfileSeed       = "profile"
	PostSeed          = "post"
	FollowSeed        = "follow"
	LikeSeed          = "like"
	ReferralSeed      = "referral"
	ReferrerStatsSeed = "referrer_stats"
)

// ProfileAddress derives the profile account for a wallet authority.
func ProfileAddress(program, authority solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(ProfileSeed), authority.Bytes()}, program)
	return addr, err
}

// PostAddress derives the post account for an author and per-author post id.
func PostAddress(program, author solana.PublicKey, postID uint64) (solana.PublicKey, error) {
	id := make([]byte, 8)
	binary.LittleEndian.PutUint64(id, postID)
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(PostSeed), author.Bytes(), id}, program)
	return addr, err
}

// FollowAddress derives the follow account between two wallet authorities.
func FollowAddress(program, follower, following solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(FollowSeed), follower.Bytes(), following.Bytes()}, program)
	return addr, err
}

// LikeAddress derives the like account for a user and a post account.
func LikeAddress(program, user, post solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(LikeSeed), user.Bytes(), post.Bytes()}, program)
	return addr, err
}

// ReferralAddress derives the referral account for a referred authority.
func ReferralAddress(program, referred solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(ReferralSeed), referred.Bytes()}, program)
	return addr, err
}

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
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// InstructionDiscriminator derives the 8-byte Anchor-style instruction tag:
// sha256("global:<name>")[0:8].
func InstructionDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("global:" + name))
	return hash[:DiscriminatorLen]
}

func appendStr(buf []byte, s string) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

// CreateProfileData builds the instruction payload for create_profile:
// discriminator followed by three length-prefixed strings.
func CreateProfileData(username, bio, pfp string) ([]byte, error) {
	return profileArgs("create_profile", username, bio, pfp)
}

// UpdateProfileData builds the instruction payload for update_profile. Same
// argument layout as create_profile.
func UpdateProfileData(username, bio, pfp string) ([]byte, error) {
	return profileArgs("update_profile", username, bio, pfp)
}

func profileArgs(name, username, bio, pfp string) ([]byte, error) {
	if len(username) > MaxUsernameLen {
		return nil, fmt.Errorf("username exceeds %d bytes", MaxUsernameLen)
	}
	if len(bio) > MaxBioLen {
		return nil, fmt.Errorf("bio exceeds %d bytes", MaxBioLen)
	}
	if len(pfp) > MaxPfpLen {
		return nil, fmt.Errorf("pfp exceeds %d bytes", MaxPfpLen)
	}
	data := InstructionDiscriminator(name)
	data = appendStr(data, username)
	data = appendStr(data, bio)
	return appendStr(data, pfp), nil
}

// CreatePostData builds the instruction payload for create_post.
func CreatePostData(content string) ([]byte, error) {
	if len(content) > MaxContentLen {
		return nil, fmt.Errorf("content exceeds %d bytes", MaxContentLen)
	}
	return appendStr(InstructionDiscriminator("create_post"), content), nil
}

// Argument-free instructions carry only their discriminator.
var (
	FollowData         = func() []byte { return InstructionDiscriminator("follow") }
	UnfollowData       = func() []byte { return InstructionDiscriminator("unfollow") }
	LikePostData       = func() []byte { return InstructionDiscriminator("like_post") }
	UnlikePostData     = func() []byte { return InstructionDiscriminator("unlike_post") }
	RecordReferralData = func() []byte { return InstructionDiscriminator("record_referral") }
	MigrateProfileData = func() []byte { return InstructionDiscriminator("migrate_profile") }
)

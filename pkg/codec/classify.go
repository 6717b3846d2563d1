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

// Account byte layout constants. These are wire-compatibility requirements
// against the deployed program: do not change them without a migration.
const (
	DiscriminatorLen = 8
	StringPrefixLen  = 4

	ProfileSizeV1 = 368 // authority + username + bio + counters
	ProfileSizeV2 = 402 // v1 + account_type + bot_proof_hash + verified
	ProfileSizeV3 = 534 // v2 + pfp
	PostSize      = 348
	RelationSize  = 80 // follow, like and referral share this size
)

// Kind is the coarse account classification derived from data length alone.
type Kind int

const (
	KindUnknown Kind = iota
	KindProfile
	KindPost
	// KindRelation covers follow, like and referral accounts, which are
	// byte-indistinguishable at 80 bytes. A Resolver settles which one it
	// actually is by re-deriving the account address from seeds.
	KindRelation
)

func (k Kind) String() string {
	switch k {
	case KindProfile:
		return "profile"
	case KindPost:
		return "post"
	case KindRelation:
		return "relation"
	default:
		return "unknown"
	}
}

// ProfileVersion identifies which layout revision a profile account uses.
type ProfileVersion int

const (
	ProfileVersionUnknown ProfileVersion = 0
	ProfileV1             ProfileVersion = 1
	ProfileV2             ProfileVersion = 2
	ProfileV3             ProfileVersion = 3
)

// Classify maps an account's data length to its kind. Accounts owned by
// other programs must be filtered out before calling this; anything with an
// unrecognized length is KindUnknown and should be skipped silently.
func Classify(length int) Kind {
	switch length {
	case ProfileSizeV1, ProfileSizeV2, ProfileSizeV3:
		return KindProfile
	case PostSize:
		return KindPost
	case RelationSize:
		return KindRelation
	default:
		return KindUnknown
	}
}

// VersionForSize returns the profile layout version for an exact account
// size, or ProfileVersionUnknown for any other length.
func VersionForSize(length int) ProfileVersion {
	switch length {
	case ProfileSizeV1:
		return ProfileV1
	case ProfileSizeV2:
		return ProfileV2
	case ProfileSizeV3:
		return ProfileV3
	default:
		return ProfileVersionUnknown
	}
}

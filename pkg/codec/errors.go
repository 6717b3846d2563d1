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

import "errors"

var (
	// ErrMalformedAccount indicates a decode would read past the end of the
	// account data, typically because a string length prefix is implausible.
	// Callers skip the record and continue with its siblings.
	ErrMalformedAccount = errors.New("malformed account data")

	// ErrAmbiguousRecord indicates an 80-byte record whose address matches
	// none of the known relation derivations (follow, like, referral).
	ErrAmbiguousRecord = errors.New("ambiguous relation record")
)

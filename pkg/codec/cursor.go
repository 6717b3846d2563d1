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

// cursor walks account data with bounds-checked reads. Every read advances
// the offset by the width consumed; any overrun fails with
// ErrMalformedAccount rather than panicking.
type cursor struct {
	data []byte
	off  int
}

// newCursor positions the cursor past the 8-byte discriminator prefix.
func newCursor(data []byte) (*cursor, error) {
	if len(data) < DiscriminatorLen {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d for discriminator", ErrMalformedAccount, len(data), DiscriminatorLen)
	}
	return &cursor{data: data, off: DiscriminatorLen}, nil
}

func (c *cursor) require(n int) error {
	if c.off+n > len(c.data) {
		return fmt.Errorf("%w: read of %d bytes at offset %d exceeds %d-byte account", ErrMalformedAccount, n, c.off, len(c.data))
	}
	return nil
}

func (c *cursor) pubkey() (solana.PublicKey, error) {
	if err := c.require(solana.PublicKeyLength); err != nil {
		return solana.PublicKey{}, err
	}
	key := solana.PublicKeyFromBytes(c.data[c.off : c.off+solana.PublicKeyLength])
	c.off += solana.PublicKeyLength
	return key, nil
}

// str reads a u32 little-endian length prefix followed by that many UTF-8
// bytes.
func (c *cursor) str() (string, error) {
	if err := c.require(StringPrefixLen); err != nil {
		return "", err
	}
	n := int(binary.LittleEndian.Uint32(c.data[c.off:]))
	c.off += StringPrefixLen
	if err := c.require(n); err != nil {
		return "", err
	}
	s := string(c.data[c.off : c.off+n])
	c.off += n
	return s, nil
}

func (c *cursor) u64() (uint64, error) {
	if err := c.require(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.data[c.off:])
	c.off += 8
	return v, nil
}

func (c *cursor) i64() (int64, error) {
	v, err := c.u64()
	return int64(v), err
}

func (c *cursor) u8() (byte, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	b := c.data[c.off]
	c.off++
	return b, nil
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

// Package fixture holds hand-built account byte blobs shared by tests. The
// blobs are assembled with a local builder, independent of the production
// encoder, so codec tests exercise real decoding rather than a round-trip
// through the same code.
package fixture

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// Deterministic well-formed public keys for tests. The values are arbitrary
// valid base58 keys; only their distinctness matters.
var (
	Program = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

	PubkeyA = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	PubkeyB = solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
	PubkeyC = solana.MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111")
	PubkeyD = solana.MustPublicKeyFromBase58("Stake11111111111111111111111111111111111111")
)

type builder struct {
	buf []byte
}

func newBuilder() *builder {
	// any discriminator works, decoding skips it
	return &builder{buf: []byte{1, 2, 3, 4, 5, 6, 7, 8}}
}

func (b *builder) key(k solana.PublicKey) *builder {
	b.buf = append(b.buf, k.Bytes()...)
	return b
}

func (b *builder) str(s string) *builder {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(len(s)))
	b.buf = append(b.buf, s...)
	return b
}

func (b *builder) u64(v uint64) *builder {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, v)
	return b
}

func (b *builder) i64(v int64) *builder {
	return b.u64(uint64(v))
}

func (b *builder) u8(v byte) *builder {
	b.buf = append(b.buf, v)
	return b
}

// pad zero-fills to the account's allocated size.
func (b *builder) pad(size int) []byte {
	for len(b.buf) < size {
		b.buf = append(b.buf, 0)
	}
	return b.buf
}

// ProfileV1Account builds a 368-byte v1 profile allocation.
func ProfileV1Account(authority solana.PublicKey, username, bio string, posts, followers, following uint64, createdAt int64) []byte {
	return newBuilder().
		key(authority).str(username).str(bio).
		u64(posts).u64(followers).u64(following).i64(createdAt).
		pad(368)
}

// ProfileV2Account builds a 402-byte v2 profile allocation.
func ProfileV2Account(authority solana.PublicKey, username, bio string, accountType byte, proof [32]byte, verified bool, posts, followers, following uint64, createdAt int64) []byte {
	b := newBuilder().key(authority).str(username).str(bio).u8(accountType)
	b.buf = append(b.buf, proof[:]...)
	v := byte(0)
	if verified {
		v = 1
	}
	return b.u8(v).u64(posts).u64(followers).u64(following).i64(createdAt).pad(402)
}

// ProfileV3Account builds a 534-byte v3 profile allocation.
func ProfileV3Account(authority solana.PublicKey, username, bio, pfp string, accountType byte, proof [32]byte, verified bool, posts, followers, following uint64, createdAt int64) []byte {
	b := newBuilder().key(authority).str(username).str(bio).str(pfp).u8(accountType)
	b.buf = append(b.buf, proof[:]...)
	v := byte(0)
	if verified {
		v = 1
	}
	return b.u8(v).u64(posts).u64(followers).u64(following).i64(createdAt).pad(534)
}

// PostAccount builds a 348-byte post allocation.
func PostAccount(author solana.PublicKey, content string, likes uint64, createdAt int64, postID uint64) []byte {
	return newBuilder().
		key(author).str(content).u64(likes).i64(createdAt).u64(postID).
		pad(348)
}

// RelationAccount builds the shared 80-byte follow/like/referral layout.
func RelationAccount(key1, key2 solana.PublicKey, createdAt int64) []byte {
	return newBuilder().key(key1).key(key2).i64(createdAt).pad(80)
}

// BotProfileAccount is the canonical decode test vector: a v3 bot profile
// for PubkeyA named "solanabot".
func BotProfileAccount() []byte {
	var proof [32]byte
	for i := range proof {
		proof[i] = byte(i)
	}
	return ProfileV3Account(PubkeyA, "solanabot", "hi", "https://x/y.png", 1, proof, true, 3, 10, 2, 1700000000)
}

// GmPostAccount is a minimal post by PubkeyA with content "gm".
func GmPostAccount() []byte {
	return PostAccount(PubkeyA, "gm", 0, 1700000100, 0)
}

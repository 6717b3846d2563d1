package codec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	fixt "github.com/metasal1/clawbook-indexer/fixture"
	"github.com/metasal1/clawbook-indexer/pkg/codec"
)

func TestResolveFollow(t *testing.T) {
	r := codec.NewResolver(fixt.Program)

	addr, err := codec.FollowAddress(fixt.Program, fixt.PubkeyA, fixt.PubkeyB)
	require.NoError(t, err)

	rec := &codec.Relation{Key1: fixt.PubkeyA, Key2: fixt.PubkeyB}
	kind, err := r.Resolve(addr, rec)
	require.NoError(t, err)
	require.Equal(t, codec.RelationFollow, kind)
}

func TestResolveLike(t *testing.T) {
	r := codec.NewResolver(fixt.Program)

	post, err := codec.PostAddress(fixt.Program, fixt.PubkeyA, 0)
	require.NoError(t, err)
	addr, err := codec.LikeAddress(fixt.Program, fixt.PubkeyB, post)
	require.NoError(t, err)

	rec := &codec.Relation{Key1: fixt.PubkeyB, Key2: post}
	kind, err := r.Resolve(addr, rec)
	require.NoError(t, err)
	require.Equal(t, codec.RelationLike, kind)
}

func TestResolveReferral(t *testing.T) {
	r := codec.NewResolver(fixt.Program)

	addr, err := codec.ReferralAddress(fixt.Program, fixt.PubkeyC)
	require.NoError(t, err)

	// a referral's second key is the referrer, which takes no part in the
	// derivation
	rec := &codec.Relation{Key1: fixt.PubkeyC, Key2: fixt.PubkeyD}
	kind, err := r.Resolve(addr, rec)
	require.NoError(t, err)
	require.Equal(t, codec.RelationReferral, kind)
}

func TestResolveAmbiguous(t *testing.T) {
	r := codec.NewResolver(fixt.Program)

	rec := &codec.Relation{Key1: fixt.PubkeyA, Key2: fixt.PubkeyB}
	_, err := r.Resolve(fixt.PubkeyD, rec)
	require.Error(t, err)
	require.True(t, errors.Is(err, codec.ErrAmbiguousRecord))
}

// Repeated resolution of the same address must hit the cache and agree with
// the first answer.
func TestResolveCached(t *testing.T) {
	r := codec.NewResolver(fixt.Program)

	addr, err := codec.FollowAddress(fixt.Program, fixt.PubkeyC, fixt.PubkeyD)
	require.NoError(t, err)
	rec := &codec.Relation{Key1: fixt.PubkeyC, Key2: fixt.PubkeyD}

	first, err := r.Resolve(addr, rec)
	require.NoError(t, err)
	second, err := r.Resolve(addr, rec)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestProfileAddressDeterministic(t *testing.T) {
	a, err := codec.ProfileAddress(fixt.Program, fixt.PubkeyA)
	require.NoError(t, err)
	b, err := codec.ProfileAddress(fixt.Program, fixt.PubkeyA)
	require.NoError(t, err)
	require.Equal(t, a, b)

	other, err := codec.ProfileAddress(fixt.Program, fixt.PubkeyB)
	require.NoError(t, err)
	require.NotEqual(t, a, other)
}

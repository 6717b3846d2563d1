package sync_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	fixt "github.com/metasal1/clawbook-indexer/fixture"
	"github.com/metasal1/clawbook-indexer/internal/mocks"
	"github.com/metasal1/clawbook-indexer/pkg/codec"
	"github.com/metasal1/clawbook-indexer/pkg/index"
	"github.com/metasal1/clawbook-indexer/pkg/ledger"
	clawsync "github.com/metasal1/clawbook-indexer/pkg/sync"
)

func newTestService(t *testing.T) (*clawsync.Service, *mocks.MockClient, *index.DB) {
	t.Helper()
	ctrl := gomock.NewController(t)
	lc := mocks.NewMockClient(ctrl)
	db, err := index.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(context.Background()))
	t.Cleanup(func() { db.Close() })
	return clawsync.NewService(lc, db, fixt.Program), lc, db
}

// expectScan stubs the whole-program enumeration of a full backfill.
func expectScan(lc *mocks.MockClient, accounts []ledger.KeyedAccount) {
	lc.EXPECT().GetProgramAccounts(gomock.Any(), fixt.Program).Return(accounts, nil)
}

// expectEnumeration stubs the five size-filtered scans run by the on-chain
// stats read. The keyed accounts are routed to their scan by data length.
func expectEnumeration(lc *mocks.MockClient, accounts []ledger.KeyedAccount) {
	bySize := map[uint64][]ledger.KeyedAccount{
		codec.ProfileSizeV1: nil, codec.ProfileSizeV2: nil, codec.ProfileSizeV3: nil,
		codec.PostSize: nil, codec.RelationSize: nil,
	}
	for _, acct := range accounts {
		bySize[uint64(len(acct.Data))] = append(bySize[uint64(len(acct.Data))], acct)
	}
	for size, accts := range bySize {
		lc.EXPECT().GetProgramAccountsBySize(gomock.Any(), fixt.Program, size).Return(accts, nil)
	}
}

func TestFullSync(t *testing.T) {
	svc, lc, db := newTestService(t)
	ctx := context.Background()

	followAddr, err := codec.FollowAddress(fixt.Program, fixt.PubkeyA, fixt.PubkeyB)
	require.NoError(t, err)
	post, err := codec.PostAddress(fixt.Program, fixt.PubkeyA, 0)
	require.NoError(t, err)
	likeAddr, err := codec.LikeAddress(fixt.Program, fixt.PubkeyB, post)
	require.NoError(t, err)

	expectScan(lc, []ledger.KeyedAccount{
		{Pubkey: fixt.PubkeyC, Data: fixt.BotProfileAccount()},
		{Pubkey: post, Data: fixt.GmPostAccount()},
		{Pubkey: followAddr, Data: fixt.RelationAccount(fixt.PubkeyA, fixt.PubkeyB, 10)},
		{Pubkey: likeAddr, Data: fixt.RelationAccount(fixt.PubkeyB, post, 20)},
	})

	res, err := svc.FullSync(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, res.Total)
	require.Equal(t, 1, res.Profiles)
	require.Equal(t, 1, res.Posts)
	require.Equal(t, 1, res.Follows)
	require.Equal(t, 1, res.Likes)
	require.Equal(t, 0, res.Errors)

	counts, err := db.TableCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), counts.Profiles)
	require.Equal(t, int64(1), counts.Posts)
	require.Equal(t, int64(1), counts.Follows)
	require.Equal(t, int64(1), counts.Likes)

	row, err := db.GetProfile(ctx, fixt.PubkeyA.String())
	require.NoError(t, err)
	require.Equal(t, "solanabot", row.Username)
	require.Equal(t, "bot", row.AccountType)
	require.Equal(t, int64(1700000000), row.CreatedAt)
}

// One malformed account in a batch of three must not poison the other two.
func TestFullSyncPartialFailure(t *testing.T) {
	svc, lc, db := newTestService(t)
	ctx := context.Background()

	bad := fixt.GmPostAccount()
	// implausible content length prefix, right after the author key
	bad[40] = 0xFF
	bad[41] = 0xFF

	expectScan(lc, []ledger.KeyedAccount{
		{Pubkey: fixt.PubkeyB, Data: fixt.BotProfileAccount()},
		{Pubkey: fixt.PubkeyC, Data: bad},
		{Pubkey: fixt.PubkeyD, Data: fixt.GmPostAccount()},
	})

	res, err := svc.FullSync(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, res.Total)
	require.Equal(t, 1, res.Errors)
	require.Equal(t, 1, res.Profiles)
	require.Equal(t, 1, res.Posts)

	counts, err := db.TableCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), counts.Posts)
}

// Two sequential backfills over an unchanged account set must not duplicate
// anything.
func TestFullSyncIdempotent(t *testing.T) {
	svc, lc, db := newTestService(t)
	ctx := context.Background()

	accounts := []ledger.KeyedAccount{
		{Pubkey: fixt.PubkeyB, Data: fixt.BotProfileAccount()},
		{Pubkey: fixt.PubkeyC, Data: fixt.GmPostAccount()},
	}
	expectScan(lc, accounts)
	expectScan(lc, accounts)

	_, err := svc.FullSync(ctx)
	require.NoError(t, err)
	first, err := db.TableCounts(ctx)
	require.NoError(t, err)

	_, err = svc.FullSync(ctx)
	require.NoError(t, err)
	second, err := db.TableCounts(ctx)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, int64(1), second.Profiles)
	require.Equal(t, int64(1), second.Posts)
}

// Enumeration failure is the one fatal class: the pass aborts instead of
// reporting a partial summary.
func TestFullSyncEnumerationFailure(t *testing.T) {
	svc, lc, _ := newTestService(t)

	lc.EXPECT().GetProgramAccounts(gomock.Any(), fixt.Program).
		Return(nil, errors.New("rpc unreachable"))

	_, err := svc.FullSync(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "rpc unreachable")
}

// A program with no accounts yields an empty summary, not an error.
func TestFullSyncEmpty(t *testing.T) {
	svc, lc, _ := newTestService(t)

	expectScan(lc, nil)

	res, err := svc.FullSync(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, res.Total)
	require.Equal(t, 0, res.Errors)
}

func TestFullSyncWithoutIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := clawsync.NewService(mocks.NewMockClient(ctrl), nil, fixt.Program)

	_, err := svc.FullSync(context.Background())
	require.ErrorIs(t, err, index.ErrIndexUnavailable)
}

func TestFullSyncCancellation(t *testing.T) {
	svc, lc, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	lc.EXPECT().GetProgramAccounts(gomock.Any(), fixt.Program).
		DoAndReturn(func(context.Context, interface{}) ([]ledger.KeyedAccount, error) {
			cancel()
			return []ledger.KeyedAccount{
				{Pubkey: fixt.PubkeyB, Data: fixt.BotProfileAccount()},
			}, nil
		})

	_, err := svc.FullSync(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestIndexCompressedPost(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.IndexCompressedPost(ctx, &clawsync.CompressedPost{
		Address:   "leaf-1",
		Author:    fixt.PubkeyA.String(),
		Content:   "compressed gm",
		CreatedAt: 500,
	}))

	row, err := db.GetPost(ctx, "leaf-1")
	require.NoError(t, err)
	require.NotNil(t, row)
	require.True(t, row.Compressed)

	require.Error(t, svc.IndexCompressedPost(ctx, &clawsync.CompressedPost{
		Address: "leaf-2", Author: "not-a-key", Content: "x",
	}))
}

func TestStats(t *testing.T) {
	svc, lc, _ := newTestService(t)
	ctx := context.Background()

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.False(t, st.InProgress)
	require.Nil(t, st.LastResult)

	expectScan(lc, []ledger.KeyedAccount{
		{Pubkey: fixt.PubkeyB, Data: fixt.BotProfileAccount()},
	})
	_, err = svc.FullSync(ctx)
	require.NoError(t, err)

	st, err = svc.Stats(ctx)
	require.NoError(t, err)
	require.NotNil(t, st.LastResult)
	require.Equal(t, 1, st.LastResult.Profiles)
	require.Equal(t, int64(1), st.Counts.Profiles)
	require.NotZero(t, st.LastSync)
}

func TestOnChainStats(t *testing.T) {
	svc, lc, _ := newTestService(t)

	expectEnumeration(lc, []ledger.KeyedAccount{
		{Pubkey: fixt.PubkeyB, Data: fixt.BotProfileAccount()},
		{Pubkey: fixt.PubkeyC, Data: fixt.GmPostAccount()},
	})

	st, err := svc.OnChainStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, st.Profiles)
	require.Equal(t, 1, st.Bots)
	require.Equal(t, 0, st.Humans)
	require.Equal(t, 1, st.Posts)
	require.Equal(t, 0, st.Relations)
}

func TestRefreshAccount(t *testing.T) {
	svc, lc, db := newTestService(t)
	ctx := context.Background()

	lc.EXPECT().GetAccountInfo(gomock.Any(), fixt.PubkeyB).
		Return(&ledger.Account{Owner: fixt.Program, Data: fixt.BotProfileAccount()}, nil)

	res, err := svc.RefreshAccount(ctx, fixt.PubkeyB.String())
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	require.Equal(t, 1, res.Profiles)

	row, err := db.GetProfile(ctx, fixt.PubkeyA.String())
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Equal(t, "solanabot", row.Username)
}

func TestRefreshAccountMissing(t *testing.T) {
	svc, lc, _ := newTestService(t)

	lc.EXPECT().GetAccountInfo(gomock.Any(), fixt.PubkeyB).Return(nil, nil)

	_, err := svc.RefreshAccount(context.Background(), fixt.PubkeyB.String())
	require.ErrorIs(t, err, clawsync.ErrAccountNotFound)
}

// An existing account owned by another program must not be ingested.
func TestRefreshAccountForeignOwner(t *testing.T) {
	svc, lc, _ := newTestService(t)

	lc.EXPECT().GetAccountInfo(gomock.Any(), fixt.PubkeyB).
		Return(&ledger.Account{Owner: fixt.PubkeyC, Data: fixt.BotProfileAccount()}, nil)

	_, err := svc.RefreshAccount(context.Background(), fixt.PubkeyB.String())
	require.Error(t, err)
	require.Contains(t, err.Error(), "owned by")
}

func TestRefreshAccountInvalidAddress(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.RefreshAccount(context.Background(), "not-a-key")
	require.Error(t, err)
}

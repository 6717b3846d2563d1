package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	fixt "github.com/metasal1/clawbook-indexer/fixture"
	"github.com/metasal1/clawbook-indexer/internal/mocks"
	"github.com/metasal1/clawbook-indexer/pkg/codec"
	"github.com/metasal1/clawbook-indexer/pkg/index"
	"github.com/metasal1/clawbook-indexer/pkg/ledger"
	"github.com/metasal1/clawbook-indexer/pkg/server"
	clawsync "github.com/metasal1/clawbook-indexer/pkg/sync"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (http.Handler, *mocks.MockClient, *index.DB) {
	t.Helper()
	ctrl := gomock.NewController(t)
	lc := mocks.NewMockClient(ctrl)
	db, err := index.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.EnsureSchema(context.Background()))

	svc := clawsync.NewService(lc, db, fixt.Program)
	return server.New(svc, db, testSecret).Router(), lc, db
}

// newFallbackServer has no index configured; reads must come from the
// ledger.
func newFallbackServer(t *testing.T) (http.Handler, *mocks.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	lc := mocks.NewMockClient(ctrl)
	svc := clawsync.NewService(lc, nil, fixt.Program)
	return server.New(svc, nil, testSecret).Router(), lc
}

func doJSON(t *testing.T, h http.Handler, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestServer(t)

	code, body := doJSON(t, h, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])
}

func TestSyncRequiresAuth(t *testing.T) {
	h, _, _ := newTestServer(t)

	code, body := doJSON(t, h, httptest.NewRequest(http.MethodPost, "/api/sync", nil))
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, false, body["success"])

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	code, _ = doJSON(t, h, req)
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestMutationsRefusedWithoutSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := clawsync.NewService(mocks.NewMockClient(ctrl), nil, fixt.Program)
	h := server.New(svc, nil, "").Router()

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	req.Header.Set("Authorization", "Bearer anything")
	code, body := doJSON(t, h, req)
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, false, body["success"])
}

func TestSyncTrigger(t *testing.T) {
	h, lc, _ := newTestServer(t)

	lc.EXPECT().GetProgramAccounts(gomock.Any(), fixt.Program).Return(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	req.Header.Set("Authorization", "Bearer "+testSecret)
	code, body := doJSON(t, h, req)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])
	require.NotNil(t, body["results"])
	require.NotNil(t, body["syncedAt"])
}

func TestSearchProfilesFromIndex(t *testing.T) {
	h, _, db := newTestServer(t)

	require.NoError(t, db.UpsertProfile(context.Background(), &index.ProfileRow{
		Authority: "a1", Address: "pa1", Username: "alice", Bio: "gm", AccountType: "human",
	}))

	code, body := doJSON(t, h, httptest.NewRequest(http.MethodGet, "/api/search?tab=profiles&q=ali", nil))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "index", body["source"])
	require.Equal(t, float64(1), body["total"])
}

// With no index configured, search must transparently serve decoded
// on-chain state and say so.
func TestSearchFallsBackToChain(t *testing.T) {
	h, lc := newFallbackServer(t)

	for _, size := range []uint64{codec.ProfileSizeV1, codec.ProfileSizeV2} {
		lc.EXPECT().GetProgramAccountsBySize(gomock.Any(), fixt.Program, size).Return(nil, nil)
	}
	lc.EXPECT().GetProgramAccountsBySize(gomock.Any(), fixt.Program, uint64(codec.ProfileSizeV3)).
		Return([]ledger.KeyedAccount{
			{Pubkey: fixt.PubkeyC, Data: fixt.BotProfileAccount()},
		}, nil)

	code, body := doJSON(t, h, httptest.NewRequest(http.MethodGet, "/api/search?tab=profiles", nil))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "onchain", body["source"])
	require.Equal(t, float64(1), body["total"])
}

func TestPostsFallsBackToChain(t *testing.T) {
	h, lc := newFallbackServer(t)

	lc.EXPECT().GetProgramAccountsBySize(gomock.Any(), fixt.Program, uint64(codec.PostSize)).
		Return([]ledger.KeyedAccount{
			{Pubkey: fixt.PubkeyC, Data: fixt.GmPostAccount()},
		}, nil)

	code, body := doJSON(t, h, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "onchain", body["source"])
	posts := body["posts"].([]interface{})
	require.Len(t, posts, 1)
}

func TestStatsFromChain(t *testing.T) {
	h, lc := newFallbackServer(t)

	for _, size := range []uint64{codec.ProfileSizeV1, codec.ProfileSizeV2} {
		lc.EXPECT().GetProgramAccountsBySize(gomock.Any(), fixt.Program, size).Return(nil, nil)
	}
	lc.EXPECT().GetProgramAccountsBySize(gomock.Any(), fixt.Program, uint64(codec.ProfileSizeV3)).
		Return([]ledger.KeyedAccount{
			{Pubkey: fixt.PubkeyC, Data: fixt.BotProfileAccount()},
		}, nil)
	lc.EXPECT().GetProgramAccountsBySize(gomock.Any(), fixt.Program, uint64(codec.PostSize)).
		Return([]ledger.KeyedAccount{
			{Pubkey: fixt.PubkeyB, Data: fixt.GmPostAccount()},
			{Pubkey: fixt.PubkeyD, Data: fixt.GmPostAccount()},
		}, nil)
	lc.EXPECT().GetProgramAccountsBySize(gomock.Any(), fixt.Program, uint64(codec.RelationSize)).
		Return(nil, nil)

	code, body := doJSON(t, h, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, code)
	stats := body["stats"].(map[string]interface{})
	require.Equal(t, float64(1), stats["profiles"])
	require.Equal(t, float64(1), stats["bots"])
	require.Equal(t, float64(2), stats["posts"])
	require.Equal(t, float64(0), stats["relations"])
}

func TestWebhookHealthAlias(t *testing.T) {
	h, _, _ := newTestServer(t)

	code, body := doJSON(t, h, httptest.NewRequest(http.MethodGet, "/api/webhook", nil))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, fixt.Program.String(), body["program"])
}

func TestSyncWithoutIndexUnavailable(t *testing.T) {
	h, _ := newFallbackServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	req.Header.Set("Authorization", "Bearer "+testSecret)
	code, body := doJSON(t, h, req)
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Equal(t, false, body["success"])
}

func TestWebhookIngest(t *testing.T) {
	h, _, db := newTestServer(t)

	payload := fixt.WebhookPostEvent(fixt.PubkeyB.String())
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+testSecret)
	code, body := doJSON(t, h, req)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])

	row, err := db.GetPost(context.Background(), fixt.PubkeyB.String())
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Equal(t, "gm", row.Content)
}

func TestWebhookRejectsMalformedPayload(t *testing.T) {
	h, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader("{"))
	req.Header.Set("Authorization", "Bearer "+testSecret)
	code, _ := doJSON(t, h, req)
	require.Equal(t, http.StatusBadRequest, code)
}

func TestCompressedPost(t *testing.T) {
	h, _, db := newTestServer(t)

	payload := `{"address":"leaf-1","author":"` + fixt.PubkeyA.String() + `","content":"compressed gm"}`
	req := httptest.NewRequest(http.MethodPost, "/api/compressed-post", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+testSecret)
	code, body := doJSON(t, h, req)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])

	row, err := db.GetPost(context.Background(), "leaf-1")
	require.NoError(t, err)
	require.True(t, row.Compressed)
}

func TestResolveUsername(t *testing.T) {
	h, _, db := newTestServer(t)

	require.NoError(t, db.UpsertProfile(context.Background(), &index.ProfileRow{
		Authority: "a1", Address: "pa1", Username: "alice", AccountType: "human",
	}))

	code, body := doJSON(t, h, httptest.NewRequest(http.MethodGet, "/api/resolve-username?username=alice", nil))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])

	code, _ = doJSON(t, h, httptest.NewRequest(http.MethodGet, "/api/resolve-username?username=nobody", nil))
	require.Equal(t, http.StatusNotFound, code)
}

func TestSearchUnknownTab(t *testing.T) {
	h, _, _ := newTestServer(t)

	code, _ := doJSON(t, h, httptest.NewRequest(http.MethodGet, "/api/search?tab=widgets", nil))
	require.Equal(t, http.StatusBadRequest, code)
}

// verified=1 and verified=true are equivalent filter spellings.
func TestSearchVerifiedFilterForms(t *testing.T) {
	h, _, db := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, db.UpsertProfile(ctx, &index.ProfileRow{
		Authority: "a1", Address: "pa1", Username: "alice", AccountType: "human", Verified: true,
	}))
	require.NoError(t, db.UpsertProfile(ctx, &index.ProfileRow{
		Authority: "a2", Address: "pa2", Username: "bob", AccountType: "human",
	}))

	for _, v := range []string{"true", "1"} {
		code, body := doJSON(t, h, httptest.NewRequest(http.MethodGet, "/api/search?tab=profiles&verified="+v, nil))
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, float64(1), body["total"])
	}
}

// The echoed limit is the page size actually applied, not the raw request.
func TestSearchEchoesEffectiveLimit(t *testing.T) {
	h, _, db := newTestServer(t)
	require.NoError(t, db.UpsertProfile(context.Background(), &index.ProfileRow{
		Authority: "a1", Address: "pa1", Username: "alice", AccountType: "human",
	}))

	code, body := doJSON(t, h, httptest.NewRequest(http.MethodGet, "/api/search?tab=profiles", nil))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, float64(20), body["limit"])

	code, body = doJSON(t, h, httptest.NewRequest(http.MethodGet, "/api/search?tab=profiles&limit=500&offset=-3", nil))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, float64(20), body["limit"])
	require.Equal(t, float64(0), body["offset"])
}

func TestRefreshAccountEndpoint(t *testing.T) {
	h, lc, db := newTestServer(t)

	lc.EXPECT().GetAccountInfo(gomock.Any(), fixt.PubkeyB).
		Return(&ledger.Account{Owner: fixt.Program, Data: fixt.BotProfileAccount()}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/refresh?address="+fixt.PubkeyB.String(), nil)
	req.Header.Set("Authorization", "Bearer "+testSecret)
	code, body := doJSON(t, h, req)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])

	row, err := db.GetProfile(context.Background(), fixt.PubkeyA.String())
	require.NoError(t, err)
	require.NotNil(t, row)
}

func TestRefreshUnknownAccount(t *testing.T) {
	h, lc, _ := newTestServer(t)

	lc.EXPECT().GetAccountInfo(gomock.Any(), fixt.PubkeyB).Return(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/refresh?address="+fixt.PubkeyB.String(), nil)
	req.Header.Set("Authorization", "Bearer "+testSecret)
	code, _ := doJSON(t, h, req)
	require.Equal(t, http.StatusNotFound, code)
}

func TestRefreshRejectsBadAddress(t *testing.T) {
	h, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/refresh?address=nope", nil)
	req.Header.Set("Authorization", "Bearer "+testSecret)
	code, _ := doJSON(t, h, req)
	require.Equal(t, http.StatusBadRequest, code)
}

package index_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metasal1/clawbook-indexer/pkg/index"
)

func seedProfiles(t *testing.T, db *index.DB) {
	t.Helper()
	ctx := context.Background()
	rows := []index.ProfileRow{
		{Authority: "a1", Address: "pa1", Username: "alpha", Bio: "solana dev", AccountType: "human", FollowerCount: 10, PostCount: 1, CreatedAt: 100},
		{Authority: "a2", Address: "pa2", Username: "beta_bot", Bio: "automated solana poster", AccountType: "bot", Verified: true, FollowerCount: 50, PostCount: 9, CreatedAt: 300},
		{Authority: "a3", Address: "pa3", Username: "gamma", Bio: "just here", AccountType: "human", Verified: true, FollowerCount: 30, PostCount: 4, CreatedAt: 200},
	}
	for i := range rows {
		require.NoError(t, db.UpsertProfile(ctx, &rows[i]))
	}
}

func seedPosts(t *testing.T, db *index.DB) {
	t.Helper()
	ctx := context.Background()
	rows := []index.PostRow{
		{Address: "p1", Author: "a1", Content: "gm solana", Likes: 2, CreatedAt: 100, PostID: 0},
		{Address: "p2", Author: "a2", Content: "gn world", Likes: 9, CreatedAt: 300, PostID: 0},
		{Address: "p3", Author: "a1", Content: "gm again", Likes: 5, CreatedAt: 200, PostID: 1},
	}
	for i := range rows {
		require.NoError(t, db.UpsertPost(ctx, &rows[i]))
	}
}

func TestSearchProfilesPrefix(t *testing.T) {
	db := openTestDB(t)
	seedProfiles(t, db)

	rows, total, err := db.SearchProfiles(context.Background(), index.ProfileQuery{Term: "sol"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	// default sort is followers descending
	require.Equal(t, "beta_bot", rows[0].Username)
	require.Equal(t, "alpha", rows[1].Username)
}

func TestSearchProfilesFilters(t *testing.T) {
	db := openTestDB(t)
	seedProfiles(t, db)
	ctx := context.Background()

	rows, total, err := db.SearchProfiles(ctx, index.ProfileQuery{Term: "sol", Type: "bot"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "beta_bot", rows[0].Username)

	v := true
	_, total, err = db.SearchProfiles(ctx, index.ProfileQuery{Verified: &v})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
}

func TestSearchProfilesSorts(t *testing.T) {
	db := openTestDB(t)
	seedProfiles(t, db)
	ctx := context.Background()

	// "alpha" is the wire value clients send; it must not fall back to the
	// followers default.
	rows, _, err := db.SearchProfiles(ctx, index.ProfileQuery{Sort: "alpha"})
	require.NoError(t, err)
	require.Equal(t, "alpha", rows[0].Username)
	require.Equal(t, "beta_bot", rows[1].Username)
	require.Equal(t, "gamma", rows[2].Username)

	rows, _, err = db.SearchProfiles(ctx, index.ProfileQuery{Sort: index.SortPosts})
	require.NoError(t, err)
	require.Equal(t, "beta_bot", rows[0].Username)

	rows, _, err = db.SearchProfiles(ctx, index.ProfileQuery{Sort: index.SortNewest})
	require.NoError(t, err)
	require.Equal(t, "beta_bot", rows[0].Username)
	require.Equal(t, "gamma", rows[1].Username)
}

func TestSearchProfilesPagination(t *testing.T) {
	db := openTestDB(t)
	seedProfiles(t, db)

	rows, total, err := db.SearchProfiles(context.Background(), index.ProfileQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, rows, 1)
}

// FTS operators inside the user's term must be treated as literal text.
func TestSearchProfilesQuotedTerm(t *testing.T) {
	db := openTestDB(t)
	seedProfiles(t, db)

	_, total, err := db.SearchProfiles(context.Background(), index.ProfileQuery{Term: `sol AND "x`})
	require.NoError(t, err)
	require.Equal(t, int64(0), total)
}

func TestSearchPosts(t *testing.T) {
	db := openTestDB(t)
	seedProfiles(t, db)
	seedPosts(t, db)
	ctx := context.Background()

	rows, total, err := db.SearchPosts(ctx, index.PostQuery{Term: "gm"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	// newest first
	require.Equal(t, "p3", rows[0].Address)
	require.Equal(t, "p1", rows[1].Address)
	// author join fills profile columns
	require.Equal(t, "alpha", rows[0].Username)

	rows, _, err = db.SearchPosts(ctx, index.PostQuery{Sort: index.SortLikes})
	require.NoError(t, err)
	require.Equal(t, "p2", rows[0].Address)

	rows, _, err = db.SearchPosts(ctx, index.PostQuery{Sort: index.SortOldest})
	require.NoError(t, err)
	require.Equal(t, "p1", rows[0].Address)
}

func TestSearchPostsByAuthor(t *testing.T) {
	db := openTestDB(t)
	seedPosts(t, db)

	rows, total, err := db.SearchPosts(context.Background(), index.PostQuery{Author: "a1"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	for _, row := range rows {
		require.Equal(t, "a1", row.Author)
	}
}

// Posts whose author is not indexed still come back, with profile columns
// at their defaults.
func TestSearchPostsUnindexedAuthor(t *testing.T) {
	db := openTestDB(t)
	seedPosts(t, db)

	rows, _, err := db.SearchPosts(context.Background(), index.PostQuery{Author: "a2"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "", rows[0].Username)
	require.Equal(t, "human", rows[0].AuthorType)
	require.False(t, rows[0].Verified)
}

func TestResolveUsername(t *testing.T) {
	db := openTestDB(t)
	seedProfiles(t, db)
	ctx := context.Background()

	row, err := db.ResolveUsername(ctx, "ALPHA")
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Equal(t, "a1", row.Authority)

	row, err = db.ResolveUsername(ctx, "nobody")
	require.NoError(t, err)
	require.Nil(t, row)
}

func TestRecentSignups(t *testing.T) {
	db := openTestDB(t)
	seedProfiles(t, db)

	rows, err := db.RecentSignups(context.Background(), 0, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "beta_bot", rows[0].Username)
	require.Equal(t, "gamma", rows[1].Username)

	// the window cuts off anything created before since
	rows, err = db.RecentSignups(context.Background(), 150, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "gamma", rows[1].Username)
}

func TestGetPostMissing(t *testing.T) {
	db := openTestDB(t)

	row, err := db.GetPost(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, row)
}

package fixture

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glabrego/reels-cli/internal/reels"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, n int, opts Options) (*Server, *reels.Client) {
	t.Helper()
	srv := New(Generate(n, epoch), opts)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, reels.NewClient(ts.URL+"/api", opts.Token, ts.Client())
}

func TestListPaginatesCategory(t *testing.T) {
	_, client := newTestServer(t, 40, Options{})
	mode := reels.Mode{Kind: reels.ModeCategory, Value: "general"}

	first, err := client.ListReels(context.Background(), mode, 1, 4)
	require.NoError(t, err)
	require.Len(t, first.Reels, 4)
	assert.True(t, first.HasNextPage)
	assert.Equal(t, 1, first.CurrentPage)

	third, err := client.ListReels(context.Background(), mode, 3, 4)
	require.NoError(t, err)
	assert.Len(t, third.Reels, 2)
	assert.False(t, third.HasNextPage)

	seen := map[string]bool{}
	for _, r := range append(first.Reels, third.Reels...) {
		assert.False(t, seen[r.ID], "duplicate reel %s", r.ID)
		seen[r.ID] = true
		assert.Contains(t, r.VideoURL, ".mp4")
	}
}

func TestListFiltersByUserAndHashtag(t *testing.T) {
	_, client := newTestServer(t, 24, Options{})

	byUser, err := client.ListReels(context.Background(), reels.Mode{Kind: reels.ModeUser, Value: "u-mei"}, 1, 50)
	require.NoError(t, err)
	require.NotEmpty(t, byUser.Reels)
	for _, r := range byUser.Reels {
		assert.Equal(t, "u-mei", r.Owner.ID)
	}

	mode, err := reels.ParseMode("hashtag:#Travel")
	require.NoError(t, err)
	byTag, err := client.ListReels(context.Background(), mode, 1, 50)
	require.NoError(t, err)
	require.NotEmpty(t, byTag.Reels)
	for _, r := range byTag.Reels {
		assert.Contains(t, r.Hashtags, "travel")
	}
}

func TestTrendingReturnsBoundedBareList(t *testing.T) {
	_, client := newTestServer(t, 30, Options{})

	page, err := client.ListReels(context.Background(), reels.Mode{Kind: reels.ModeTrending}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Reels, trendingLimit)
	assert.False(t, page.HasNextPage)
}

func TestReactionReplacesPriorReaction(t *testing.T) {
	srv, client := newTestServer(t, 3, Options{ViewerID: "u-me"})
	id := srv.records[0].ID

	_, err := client.React(context.Background(), id, reels.ReactionLove)
	require.NoError(t, err)
	patch, err := client.React(context.Background(), id, reels.ReactionWow)
	require.NoError(t, err)

	mine := 0
	for _, r := range patch.Reactions {
		if r.User == "u-me" {
			mine++
			assert.Equal(t, reels.ReactionWow, r.Type)
		}
	}
	assert.Equal(t, 1, mine)
}

func TestMutationsReturnAuthoritativePatch(t *testing.T) {
	srv, client := newTestServer(t, 2, Options{ViewerID: "u-me"})
	id := srv.records[1].ID
	ctx := context.Background()

	patch, err := client.Like(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, patch.Likes, "u-me")
	patch, err = client.Like(ctx, id)
	require.NoError(t, err)
	assert.NotContains(t, patch.Likes, "u-me")

	patch, err = client.Save(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"u-me"}, patch.SavedBy)

	patch, err = client.Comment(ctx, id, "great shot")
	require.NoError(t, err)
	require.Len(t, patch.Comments, 1)
	assert.Equal(t, "great shot", patch.Comments[0].Text)

	patch, err = client.Share(ctx, id)
	require.NoError(t, err)
	assert.Len(t, patch.Shares, 1)

	stored, ok := srv.Reel(id)
	require.True(t, ok)
	assert.Len(t, stored.Comments, 1)
	assert.Len(t, stored.Shares, 1)
}

func TestMutationErrors(t *testing.T) {
	srv, client := newTestServer(t, 1, Options{})
	ctx := context.Background()

	_, err := client.Like(ctx, "nope")
	var apiErr *reels.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	_, err = client.Comment(ctx, srv.records[0].ID, "   ")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestTokenRequired(t *testing.T) {
	srv := New(Generate(2, epoch), Options{Token: "secret"})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	anon := reels.NewClient(ts.URL+"/api", "", ts.Client())
	_, err := anon.ListReels(context.Background(), reels.Mode{Kind: reels.ModeCategory, Value: "general"}, 1, 5)
	assert.True(t, reels.IsUnauthorized(err))

	authed := reels.NewClient(ts.URL+"/api", "secret", ts.Client())
	_, err = authed.ListReels(context.Background(), reels.Mode{Kind: reels.ModeCategory, Value: "general"}, 1, 5)
	assert.NoError(t, err)
}

func TestIdempotencyKeyReplaysPatch(t *testing.T) {
	srv, _ := newTestServer(t, 1, Options{ViewerID: "u-me"})
	id := srv.records[0].ID

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/reels/"+id+"/like", nil)
		req.Header.Set("Idempotency-Key", "k-1")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec
	}
	first := do()
	second := do()
	require.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	stored, _ := srv.Reel(id)
	assert.Contains(t, stored.Likes, "u-me")
}

func TestMediaRoutes(t *testing.T) {
	srv := New(nil, Options{})

	for path, want := range map[string]int{
		"/uploads/reels/clip-001.mp4":         http.StatusOK,
		"/uploads/reels/missing-clip-006.mp4": http.StatusNotFound,
	} {
		req := httptest.NewRequest(http.MethodHead, path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, path)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(8, epoch)
	b := Generate(8, epoch)
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
	}
	assert.Contains(t, a[6].VideoURL, "missing-")
	assert.Equal(t, []string{"travel"}, a[0].Hashtags)
}

func TestLoadFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	body := `[{"videoUrl":"/uploads/reels/a","caption":"hi #Cats","user":{"_id":"u1","name":"One"},
"reactions":[{"user":"u2","type":"like"},{"user":"u2","type":"sad"}]}]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	records, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
	assert.Equal(t, "general", records[0].Category)
	assert.Equal(t, []string{"cats"}, records[0].Hashtags)
	assert.Equal(t, []reels.Reaction{{User: "u2", Type: reels.ReactionSad}}, records[0].Reactions)
}

package reels

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kridana/kridana-api/internal/platform/auth"
	applog "github.com/kridana/kridana-api/internal/platform/logging"
	appmiddleware "github.com/kridana/kridana-api/internal/platform/middleware"
	"github.com/kridana/kridana-api/internal/platform/respond"
	reelsvc "github.com/kridana/kridana-api/internal/service/reels"
)

func newTestRouter(svc reelsvc.Service, verifier auth.Verifier) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("ReelsTest", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))
	Register(api, svc)
	return router
}

func seededService() *reelsvc.MockReelsService {
	svc := reelsvc.NewMockReelsService()
	svc.SeedReel(reelsvc.Reel{
		ID:        "reel-1",
		CreatorID: "creator-1",
		VideoRef:  "https://cdn.example.com/reel-1.mp4",
		Caption:   "Cover drive practice",
		Likes:     3,
		CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	return svc
}

func do(t *testing.T, router chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeJSON(t *testing.T, resp *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), into); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
}

func TestListReels(t *testing.T) {
	router := newTestRouter(seededService(), &auth.MockVerifier{User: auth.TestUser()})

	resp := do(t, router, http.MethodGet, "/reels", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Reels []Reel `json:"reels"`
	}
	decodeJSON(t, resp, &body)
	if len(body.Reels) != 1 {
		t.Fatalf("expected 1 reel, got %d", len(body.Reels))
	}
	if body.Reels[0].Likes != 3 {
		t.Errorf("expected 3 likes, got %d", body.Reels[0].Likes)
	}
}

func TestGetReelNotFound(t *testing.T) {
	router := newTestRouter(seededService(), &auth.MockVerifier{User: auth.TestUser()})

	resp := do(t, router, http.MethodGet, "/reels/missing", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestToggleLikeRoundTrip(t *testing.T) {
	router := newTestRouter(seededService(), &auth.MockVerifier{User: auth.TestUser()})

	resp := do(t, router, http.MethodPost, "/reels/reel-1/like", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var on Reaction
	decodeJSON(t, resp, &on)
	if !on.Liked || on.Likes != 4 {
		t.Fatalf("expected liked with 4 likes, got %+v", on)
	}

	resp = do(t, router, http.MethodPost, "/reels/reel-1/like", "")
	var off Reaction
	decodeJSON(t, resp, &off)
	if off.Liked || off.Likes != 3 {
		t.Fatalf("expected unliked with the counter restored, got %+v", off)
	}
}

func TestDislikeLeavesLikeAlone(t *testing.T) {
	router := newTestRouter(seededService(), &auth.MockVerifier{User: auth.TestUser()})

	do(t, router, http.MethodPost, "/reels/reel-1/like", "")
	resp := do(t, router, http.MethodPost, "/reels/reel-1/dislike", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var r Reaction
	decodeJSON(t, resp, &r)
	if !r.Liked || !r.Disliked {
		t.Fatalf("expected independent reactions, got %+v", r)
	}
	if r.Likes != 4 || r.Dislikes != 1 {
		t.Fatalf("expected likes 4 and dislikes 1, got %+v", r)
	}
}

func TestRecordViewIsMonotonic(t *testing.T) {
	router := newTestRouter(seededService(), &auth.MockVerifier{User: auth.TestUser()})

	for range 3 {
		resp := do(t, router, http.MethodPost, "/reels/reel-1/view", "")
		if resp.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", resp.Code, resp.Body.String())
		}
	}

	resp := do(t, router, http.MethodGet, "/reels/reel-1", "")
	var r Reel
	decodeJSON(t, resp, &r)
	if r.Views != 1 {
		t.Errorf("expected a single recorded view, got %d", r.Views)
	}

	resp = do(t, router, http.MethodGet, "/reels/reel-1/engagement", "")
	var e Engagement
	decodeJSON(t, resp, &e)
	if !e.Viewed {
		t.Errorf("expected viewed engagement state, got %+v", e)
	}
}

func TestFollowToggleReportsCounters(t *testing.T) {
	router := newTestRouter(seededService(), &auth.MockVerifier{User: auth.TestUser()})

	resp := do(t, router, http.MethodPost, "/creators/creator-1/follow", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var on FollowState
	decodeJSON(t, resp, &on)
	if !on.Following || on.Followers != 1 || on.Connections != 1 {
		t.Fatalf("expected following with 1 follower and 1 connection, got %+v", on)
	}

	resp = do(t, router, http.MethodGet, "/creators/creator-1/follow", "")
	var state FollowState
	decodeJSON(t, resp, &state)
	if !state.Following || state.Followers != 1 || state.Connections != 1 {
		t.Fatalf("expected persisted follow state, got %+v", state)
	}

	resp = do(t, router, http.MethodPost, "/creators/creator-1/follow", "")
	var off FollowState
	decodeJSON(t, resp, &off)
	if off.Following || off.Followers != 0 || off.Connections != 0 {
		t.Fatalf("expected unfollow to restore the counters, got %+v", off)
	}
}

func TestCommentsAppendInOrder(t *testing.T) {
	router := newTestRouter(seededService(), &auth.MockVerifier{User: auth.TestUser()})

	resp := do(t, router, http.MethodPost, "/reels/reel-1/comments", `{"text":"First"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created Comment
	decodeJSON(t, resp, &created)
	if created.AuthorID != "test-user-123" {
		t.Errorf("expected the caller as author, got %q", created.AuthorID)
	}
	if created.AuthorName != "test" {
		t.Errorf("expected display name from the token email, got %q", created.AuthorName)
	}

	do(t, router, http.MethodPost, "/reels/reel-1/comments", `{"text":"Second"}`)

	resp = do(t, router, http.MethodGet, "/reels/reel-1/comments", "")
	var body struct {
		Comments []Comment `json:"comments"`
	}
	decodeJSON(t, resp, &body)
	if len(body.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(body.Comments))
	}
	if body.Comments[0].Text != "First" || body.Comments[1].Text != "Second" {
		t.Errorf("expected ascending order, got %q then %q", body.Comments[0].Text, body.Comments[1].Text)
	}
}

func TestCommentOnMissingReel(t *testing.T) {
	router := newTestRouter(seededService(), &auth.MockVerifier{User: auth.TestUser()})

	resp := do(t, router, http.MethodPost, "/reels/missing/comments", `{"text":"Hello"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestEmptyCommentRejected(t *testing.T) {
	router := newTestRouter(seededService(), &auth.MockVerifier{User: auth.TestUser()})

	resp := do(t, router, http.MethodPost, "/reels/reel-1/comments", `{"text":""}`)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestEngagementRequiresAuth(t *testing.T) {
	router := newTestRouter(seededService(), &auth.MockVerifier{Error: auth.ErrInvalidToken})

	req := httptest.NewRequest(http.MethodPost, "/reels/reel-1/like", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if resp.Header().Get("WWW-Authenticate") == "" {
		t.Error("expected WWW-Authenticate header")
	}
}

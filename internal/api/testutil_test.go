package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/markerhq/marker/internal/api"
	"github.com/markerhq/marker/internal/auth"
	"github.com/markerhq/marker/internal/bookmarks"
	"github.com/markerhq/marker/internal/cache"
	"github.com/markerhq/marker/internal/store"
	"github.com/markerhq/marker/internal/testutil"
)

// testEnv wires the full router over an in-memory SQLite database, a memory
// cache, and a real authenticator.
type testEnv struct {
	Router        http.Handler
	TagStore      *store.TagStore
	Authenticator *auth.Authenticator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	tags := store.NewTagStore(db)
	bs := store.NewBookmarkStore(db, tags)
	svc := bookmarks.NewService(bs, cache.New(cache.NewMemory()))

	authenticator := auth.NewAuthenticator("test-secret", time.Hour)
	router := api.NewRouter(api.Deps{
		BearerAuth: auth.NewMiddleware(authenticator),
		Bookmarks:  svc,
	})

	return &testEnv{Router: router, TagStore: tags, Authenticator: authenticator}
}

// tokenFor mints a Bearer token for ownerID.
func tokenFor(t *testing.T, env *testEnv, ownerID string) string {
	t.Helper()
	token, err := env.Authenticator.Issue(ownerID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// doJSON performs an authenticated request with an optional JSON body and
// decodes the response into out when it is non-nil.
func doJSON(t *testing.T, env *testEnv, method, path, token string, body, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

// createBookmark creates a bookmark through the API and returns the response.
func createBookmark(t *testing.T, env *testEnv, token string, req api.BookmarkRequest) *api.BookmarkResponse {
	t.Helper()
	var resp api.BookmarkResponse
	rec := doJSON(t, env, http.MethodPost, "/api/v1/bookmarks", token, req, &resp)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create bookmark: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	return &resp
}

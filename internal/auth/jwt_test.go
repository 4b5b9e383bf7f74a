package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/markerhq/marker/internal/auth"
)

func TestAuthenticator_IssueVerify(t *testing.T) {
	a := auth.NewAuthenticator("test-secret", time.Hour)

	token, err := a.Issue("owner-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	owner, err := a.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if owner != "owner-1" {
		t.Errorf("owner = %q, want %q", owner, "owner-1")
	}
}

func TestAuthenticator_Issue_BlankOwner(t *testing.T) {
	a := auth.NewAuthenticator("test-secret", time.Hour)
	if _, err := a.Issue(""); err == nil {
		t.Error("Issue(blank) succeeded, want error")
	}
}

func TestAuthenticator_Verify_WrongSecret(t *testing.T) {
	issuer := auth.NewAuthenticator("secret-a", time.Hour)
	verifier := auth.NewAuthenticator("secret-b", time.Hour)

	token, err := issuer.Issue("owner-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Errorf("Verify with wrong secret = %v, want ErrUnauthenticated", err)
	}
}

func TestAuthenticator_Verify_Expired(t *testing.T) {
	a := auth.NewAuthenticator("test-secret", -time.Minute)

	token, err := a.Issue("owner-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := a.Verify(token); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Errorf("Verify expired = %v, want ErrUnauthenticated", err)
	}
}

func TestAuthenticator_Verify_Garbage(t *testing.T) {
	a := auth.NewAuthenticator("test-secret", time.Hour)
	if _, err := a.Verify("not-a-jwt"); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Errorf("Verify(garbage) = %v, want ErrUnauthenticated", err)
	}
}

func TestMiddleware_Authenticate(t *testing.T) {
	a := auth.NewAuthenticator("test-secret", time.Hour)
	mw := auth.NewMiddleware(a)

	var gotOwner string
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOwner = auth.OwnerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	token, err := a.Issue("owner-42")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotOwner != "owner-42" {
		t.Errorf("owner in context = %q, want %q", gotOwner, "owner-42")
	}
}

func TestMiddleware_Authenticate_Rejections(t *testing.T) {
	a := auth.NewAuthenticator("test-secret", time.Hour)
	mw := auth.NewMiddleware(a)

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without valid credentials")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"empty token", "Bearer "},
		{"invalid token", "Bearer garbage"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

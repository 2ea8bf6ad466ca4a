package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func userEchoHandler(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_MissingHeader_401(t *testing.T) {
	var user string
	mw := BearerAuthMiddleware(map[string]string{"secret": "user-1"})
	handler := mw(userEchoHandler(&user))

	req := httptest.NewRequest("GET", "/api/v1/search", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("missing header: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != codeUnauthorized {
		t.Errorf("error code: got %s, want %s", errResp.Code, codeUnauthorized)
	}
}

func TestAuthMiddleware_BasicScheme_401(t *testing.T) {
	var user string
	mw := BearerAuthMiddleware(map[string]string{"secret": "user-1"})
	handler := mw(userEchoHandler(&user))

	req := httptest.NewRequest("GET", "/api/v1/search", http.NoBody)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("basic scheme: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_UnknownKey_401(t *testing.T) {
	var user string
	mw := BearerAuthMiddleware(map[string]string{"secret": "user-1"})
	handler := mw(userEchoHandler(&user))

	req := httptest.NewRequest("GET", "/api/v1/search", http.NoBody)
	req.Header.Set("Authorization", "Bearer wrong-key")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("unknown key: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_ResolvesUser(t *testing.T) {
	var user string
	mw := BearerAuthMiddleware(map[string]string{
		"key-alice": "alice",
		"key-bob":   "bob",
	})
	handler := mw(userEchoHandler(&user))

	tests := []struct {
		key      string
		wantUser string
	}{
		{"key-alice", "alice"},
		{"key-bob", "bob"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/api/v1/search", http.NoBody)
		req.Header.Set("Authorization", "Bearer "+tt.key)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("key %s: got %d, want %d", tt.key, rr.Code, http.StatusOK)
		}
		if user != tt.wantUser {
			t.Errorf("key %s: resolved user %q, want %q", tt.key, user, tt.wantUser)
		}
	}
}

func TestAuthMiddleware_ExemptPaths(t *testing.T) {
	var user string
	mw := BearerAuthMiddleware(map[string]string{"secret": "user-1"})
	handler := mw(userEchoHandler(&user))

	for _, path := range []string{"/health", "/metrics"} {
		req := httptest.NewRequest("GET", path, http.NoBody)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("exempt path %s: got %d, want %d", path, rr.Code, http.StatusOK)
		}
	}
}

package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newAuthHandler(t *testing.T, channelID, channelKey string) http.Handler {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(channelKey), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash channel key: %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return BasicAuth(channelID, string(hash))(next)
}

func basicHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestBasicAuth_AllowsValidCredentials(t *testing.T) {
	handler := newAuthHandler(t, "channel-1", "secret-key")

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	req.Header.Set("Authorization", basicHeader("channel-1", "secret-key"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestBasicAuth_RejectsMissingHeader(t *testing.T) {
	handler := newAuthHandler(t, "channel-1", "secret-key")

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestBasicAuth_RejectsInvalidCredentials(t *testing.T) {
	handler := newAuthHandler(t, "channel-1", "secret-key")

	cases := []struct {
		name string
		user string
		pass string
	}{
		{"wrong channel", "channel-2", "secret-key"},
		{"wrong key", "channel-1", "other-key"},
		{"both wrong", "channel-2", "other-key"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
			req.Header.Set("Authorization", basicHeader(tc.user, tc.pass))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
			}
		})
	}
}

func TestBasicAuth_MissingServerConfiguration(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := BasicAuth("", "")(next)

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	req.Header.Set("Authorization", basicHeader("channel-1", "secret-key"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}

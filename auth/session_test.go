package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell-api/config"
)

func newIdP(t *testing.T, handler http.HandlerFunc) *SessionProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewSessionProvider(srv.URL+"/", srv.Client())
}

func TestSessionProvider_ForwardsCookie(t *testing.T) {
	p := newIdP(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, getSessionPath, r.URL.Path)
		if r.Header.Get("Cookie") != "better-auth.session_token=abc" {
			w.Write([]byte("null"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"session":{"id":"s1"},"user":{"id":"user-9","username":"jane_doe","email":"jane@example.com"}}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Cookie", "better-auth.session_token=abc")

	id, err := p.Authenticate(req)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "user-9", Username: "jane_doe"}, id)
}

func TestSessionProvider_NoSession(t *testing.T) {
	tests := []struct {
		name    string
		cookie  string
		handler http.HandlerFunc
	}{
		{"no cookie", "", func(w http.ResponseWriter, r *http.Request) {
			t.Error("identity provider must not be called without cookies")
		}},
		{"null session", "a=b", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("null"))
		}},
		{"session without user", "a=b", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"session":{"id":"s1"}}`))
		}},
		{"provider error status", "a=b", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newIdP(t, tt.handler)
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.cookie != "" {
				req.Header.Set("Cookie", tt.cookie)
			}
			_, err := p.Authenticate(req)
			assert.ErrorIs(t, err, ErrNoSession)
		})
	}
}

func TestSessionProvider_MalformedBody(t *testing.T) {
	p := newIdP(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	})
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Cookie", "a=b")

	_, err := p.Authenticate(req)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(config.Config{AuthMode: config.AuthModeJWT, JWTSecret: string(testSecret), AuthCookieName: "c"})
	require.NoError(t, err)
	assert.IsType(t, &JWTProvider{}, p)

	p, err = NewProvider(config.Config{AuthMode: config.AuthModeSession, IdPURL: "https://auth.example.com"})
	require.NoError(t, err)
	assert.IsType(t, &SessionProvider{}, p)

	_, err = NewProvider(config.Config{AuthMode: "basic"})
	assert.Error(t, err)
}

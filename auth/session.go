package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const getSessionPath = "/api/auth/get-session"

// SessionProvider asks a remote identity provider to resolve the caller's
// session cookies. The provider answers with the session or JSON null.
type SessionProvider struct {
	baseURL string
	client  *http.Client
}

func NewSessionProvider(baseURL string, client *http.Client) *SessionProvider {
	return &SessionProvider{baseURL: strings.TrimSuffix(baseURL, "/"), client: client}
}

type sessionResponse struct {
	User *struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

func (p *SessionProvider) Authenticate(r *http.Request) (Identity, error) {
	cookie := r.Header.Get("Cookie")
	if cookie == "" {
		return Identity{}, ErrNoSession
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, p.baseURL+getSessionPath, nil)
	if err != nil {
		return Identity{}, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Cookie", cookie)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("session lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("%w: identity provider returned %d", ErrNoSession, resp.StatusCode)
	}

	// A null body decodes into a nil pointer.
	var session *sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return Identity{}, fmt.Errorf("decode session: %w", err)
	}
	if session == nil || session.User == nil || session.User.ID == "" {
		return Identity{}, ErrNoSession
	}

	return Identity{UserID: session.User.ID, Username: session.User.Username}, nil
}

// Package auth adapts the external identity provider. The API never handles
// credentials itself: it only asks a Provider who the caller is.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/inkwell-blog/inkwell-api/config"
)

// ErrNoSession is returned when the request carries no valid session.
var ErrNoSession = errors.New("no valid session")

// Identity is the caller as established by the identity provider.
type Identity struct {
	UserID   string
	Username string
}

// Provider validates the session attached to a request.
type Provider interface {
	Authenticate(r *http.Request) (Identity, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(r *http.Request) (Identity, error)

func (f ProviderFunc) Authenticate(r *http.Request) (Identity, error) {
	return f(r)
}

// NewProvider builds the Provider selected by cfg.AuthMode.
func NewProvider(cfg config.Config) (Provider, error) {
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		return NewJWTProvider([]byte(cfg.JWTSecret), cfg.AuthCookieName), nil
	case config.AuthModeSession:
		return NewSessionProvider(cfg.IdPURL, &http.Client{Timeout: 10 * time.Second}), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.AuthMode)
	}
}

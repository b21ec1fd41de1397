package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTProvider validates HS256 session tokens minted by the identity provider.
// The token is read from the session cookie first, then from a Bearer header.
type JWTProvider struct {
	secret     []byte
	cookieName string
	now        func() time.Time
}

func NewJWTProvider(secret []byte, cookieName string) *JWTProvider {
	return &JWTProvider{secret: secret, cookieName: cookieName, now: time.Now}
}

func (p *JWTProvider) Authenticate(r *http.Request) (Identity, error) {
	raw := p.tokenFromRequest(r)
	if raw == "" {
		return Identity{}, ErrNoSession
	}

	token, err := jwt.ParseWithClaims(raw, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return Identity{}, ErrNoSession
	}

	return Identity{UserID: claims.Subject, Username: claims.Username}, nil
}

// Issue mints a session token for id that expires after ttl.
func (p *JWTProvider) Issue(id Identity, ttl time.Duration) (string, error) {
	if id.UserID == "" {
		return "", errors.New("identity without user id")
	}
	now := p.now()
	claims := SessionClaims{
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func (p *JWTProvider) tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(p.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

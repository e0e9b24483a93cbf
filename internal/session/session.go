// Package session supplies the current manager's identity. The owner id is
// read from a bearer token handed over by the external session provider and
// is never mutated after the session is established.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrNoSession    = errors.New("no active session: please log in")
	ErrInvalidToken = errors.New("invalid session token")
)

// Claims is the token payload shared by the catalog service and its clients.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Session is the read-only identity of the manager using the console.
type Session struct {
	ownerID string
	token   string
}

// New builds a session from an already known owner id and bearer token.
func New(ownerID, token string) Session {
	return Session{ownerID: strings.TrimSpace(ownerID), token: strings.TrimSpace(token)}
}

// FromToken reads the owner id out of a bearer token without verifying the
// signature; the catalog service verifies it on every request.
func FromToken(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrNoSession
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return Session{}, fmt.Errorf("%w: missing uid claim", ErrInvalidToken)
	}
	return New(claims.UserID, token), nil
}

// OwnerID returns the manager identifier, or ErrNoSession when absent. Every
// catalog operation checks this before issuing a request.
func (s Session) OwnerID() (string, error) {
	if s.ownerID == "" {
		return "", ErrNoSession
	}
	return s.ownerID, nil
}

// Token is the bearer credential, possibly empty.
func (s Session) Token() string { return s.token }

// Valid reports whether an owner id is present.
func (s Session) Valid() bool { return s.ownerID != "" }

// Issue signs a token for ownerID. Used by the dev tooling and tests; in
// production tokens come from the session provider.
func Issue(secret, ownerID string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	now := time.Now()
	claims := Claims{
		UserID: ownerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify parses and validates a token signed with secret.
func Verify(secret, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

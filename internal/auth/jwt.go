package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// Identity is the caller a token speaks for.
type Identity struct {
	Username string
	Roles    []string
}

// Claims is the token payload. The subject carries the username.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Identity returns the caller described by the claims.
func (c *Claims) Identity() Identity {
	return Identity{Username: c.Subject, Roles: c.Roles}
}

// Manager issues and validates HS256 bearer tokens. Issuer and audience
// are neither set nor checked. There is no revocation: a token stays valid
// until its expiry plus the clock skew.
type Manager struct {
	secret    []byte
	ttl       time.Duration
	clockSkew time.Duration
	now       func() time.Time
}

// NewManager returns a Manager signing with secret.
func NewManager(secret string, ttl, clockSkew time.Duration) *Manager {
	return &Manager{
		secret:    []byte(secret),
		ttl:       ttl,
		clockSkew: clockSkew,
		now:       time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// TTL returns how long issued tokens remain valid, not counting skew.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a fresh token for id.
func (m *Manager) Issue(id Identity) (string, error) {
	if id.Username == "" {
		return "", errors.New("cannot issue token without a username")
	}

	now := m.now()
	claims := &Claims{
		Roles: id.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Refresh re-issues a token for an already authenticated caller without
// checking credentials again. The previous token is not revoked.
func (m *Manager) Refresh(id Identity) (string, error) {
	return m.Issue(id)
}

// Validate checks the signature, algorithm and lifetime of tokenString
// and returns its claims. Expiry and not-before tolerate the clock skew.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(_ *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(m.clockSkew),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims, nil
}

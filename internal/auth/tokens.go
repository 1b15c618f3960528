// Package auth issues and verifies the signed session tokens that stand in
// for a server-side session store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
)

const issuer = "fuel-tracker"

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Tokens issues HS256 JWTs and checks them against a revocation store.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	store  RevocationStore
	now    func() time.Time
}

// NewTokens returns a Tokens signing with secret. ttl is the session lifetime.
func NewTokens(secret []byte, ttl time.Duration, store RevocationStore) *Tokens {
	return &Tokens{secret: secret, ttl: ttl, store: store, now: time.Now}
}

// Issue signs a new token for id.
func (t *Tokens) Issue(_ context.Context, id domain.Identity) (domain.Session, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	c := claims{
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(id.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return domain.Session{}, fmt.Errorf("auth.Tokens.Issue: %w", err)
	}
	return domain.Session{Token: signed, ExpiresAt: exp, Identity: id}, nil
}

// Verify checks the signature, expiry and revocation state of token.
// Any failure other than a store error is reported as domain.ErrUnauthenticated.
func (t *Tokens) Verify(ctx context.Context, token string) (domain.Identity, error) {
	c, err := t.parse(token)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth.Tokens.Verify: %w", err)
	}
	revoked, err := t.store.IsRevoked(ctx, c.ID)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth.Tokens.Verify: %w", err)
	}
	if revoked {
		return domain.Identity{}, fmt.Errorf("auth.Tokens.Verify: revoked: %w", domain.ErrUnauthenticated)
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth.Tokens.Verify: subject: %w", domain.ErrUnauthenticated)
	}
	return domain.Identity{UserID: userID, Username: c.Username}, nil
}

// Revoke invalidates token for the rest of its lifetime.
func (t *Tokens) Revoke(ctx context.Context, token string) error {
	c, err := t.parse(token)
	if err != nil {
		return fmt.Errorf("auth.Tokens.Revoke: %w", err)
	}
	ttl := c.ExpiresAt.Sub(t.now())
	if err := t.store.Revoke(ctx, c.ID, ttl); err != nil {
		return fmt.Errorf("auth.Tokens.Revoke: %w", err)
	}
	return nil
}

func (t *Tokens) parse(token string) (*claims, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, errors.Join(domain.ErrUnauthenticated, err)
	}
	if c.ID == "" {
		return nil, fmt.Errorf("missing jti: %w", domain.ErrUnauthenticated)
	}
	return &c, nil
}

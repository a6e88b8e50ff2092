package token

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = 24 * time.Hour

// Issuer mints HS256-signed bearer credentials for account ids. It keeps no
// state about issued tokens; the subject claim is the account id.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. A non-positive ttl falls back to the default.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed session credential for the account id.
func (i *Issuer) Issue(_ context.Context, accountID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": accountID,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("issue credential: %w", err)
	}
	return signed, nil
}

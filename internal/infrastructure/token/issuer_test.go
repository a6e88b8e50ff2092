package token

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssuer_IssueRoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	signed, err := issuer.Issue(context.Background(), "account-123")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "account-123" {
		t.Fatalf("unexpected subject: %v", claims["sub"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("missing exp claim: %v", err)
	}
	if time.Until(exp.Time) > time.Hour {
		t.Fatalf("exp beyond configured ttl")
	}
}

func TestIssuer_DefaultTTL(t *testing.T) {
	issuer := NewIssuer("secret", 0)
	if issuer.ttl != defaultTTL {
		t.Fatalf("expected default ttl, got %v", issuer.ttl)
	}
}

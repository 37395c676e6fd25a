package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/summercamp/camp-api/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	now := time.Now().Truncate(time.Second)
	svc.now = fixedClock(now)

	token, err := svc.Issue("u@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	p, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if p.Email != "u@example.com" {
		t.Fatalf("unexpected email: %s", p.Email)
	}
	if !p.IssuedAt.Equal(now) {
		t.Fatalf("issued at %v, want %v", p.IssuedAt, now)
	}
	if !p.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expires at %v, want %v", p.ExpiresAt, now.Add(time.Hour))
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService("secret", 0)
	if svc.ttl != DefaultTokenTTL {
		t.Fatalf("expected default ttl, got %v", svc.ttl)
	}
}

func TestTokenService_Issue_EmptyEmail(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.Issue(""); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Verify_OtherSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("u@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.now = fixedClock(issuedAt)

	token, err := svc.Issue("u@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_Verify_Tampered(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, err := svc.Issue("u@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other, err := svc.Issue("admin@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Splice the payload of one token onto the signature of another.
	a := strings.Split(token, ".")
	b := strings.Split(other, ".")
	forged := a[0] + "." + b[1] + "." + a[2]

	if _, err := svc.Verify(forged); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b"} {
		if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrMalformedToken) {
			t.Errorf("Verify(%q): expected ErrMalformedToken, got %v", raw, err)
		}
	}
}

func TestTokenService_Verify_RejectsOtherAlgorithms(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"email": "u@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Verify_MissingExpiry(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "u@example.com"})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

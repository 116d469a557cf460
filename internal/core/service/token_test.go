package service

import (
	"testing"
	"time"

	"github.com/graphflix/account-api/internal/core/domain"
)

func TestSignAndParseToken(t *testing.T) {
	claims := domain.Claims{Sub: "u-1", UserID: "u-1", Name: "Alice"}

	token, err := SignClaims(claims, "secret", time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	decoded, err := ParseToken(token, "secret")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if decoded != claims {
		t.Fatalf("expected %+v, got %+v", claims, decoded)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := SignClaims(domain.Claims{Sub: "u-1", UserID: "u-1", Name: "Alice"}, "secret", time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := ParseToken(token, "other"); err == nil {
		t.Fatalf("expected verification failure")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := SignClaims(domain.Claims{Sub: "u-1", UserID: "u-1", Name: "Alice"}, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := ParseToken(token, "secret"); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("not-a-token", "secret"); err == nil {
		t.Fatalf("expected parse failure")
	}
}

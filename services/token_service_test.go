package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundtrip(t *testing.T) {
	ts := &TokenService{Secret: []byte("test-secret")}

	token, err := ts.Issue("u1", "bob")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	userID, username, err := ts.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if userID != "u1" || username != "bob" {
		t.Fatalf("got userID=%q username=%q", userID, username)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	ts := &TokenService{Secret: []byte("test-secret")}
	other := &TokenService{Secret: []byte("other-secret")}

	token, err := ts.Issue("u1", "bob")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token signed with another secret must be rejected, got %v", err)
	}
}

func TestTokenExpiredRejected(t *testing.T) {
	secret := []byte("test-secret")
	ts := &TokenService{Secret: secret}

	claims := tokenClaims{
		Username: "bob",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, _, err := ts.Verify(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token must be rejected, got %v", err)
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	ts := &TokenService{Secret: []byte("test-secret")}
	if _, _, err := ts.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("malformed token must be rejected, got %v", err)
	}
}

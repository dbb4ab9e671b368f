package auth_test

import (
	"errors"
	"testing"
	"time"

	"assigncheck-backend/internal/shared/auth"
)

var secret = []byte("jwt-test-secret")

func TestSignAndVerify(t *testing.T) {
	token, err := auth.Sign("42", "a@b.com", secret, auth.DefaultTTL)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := auth.Verify(token, secret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "42" {
		t.Fatalf("expected user 42, got %q", claims.UserID)
	}
	if claims.Email != "a@b.com" {
		t.Fatalf("expected email a@b.com, got %q", claims.Email)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	token, err := auth.Sign("42", "a@b.com", secret, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.Verify(token, secret); err == nil {
		t.Fatalf("expected expired token to fail verification")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := auth.Sign("42", "a@b.com", secret, auth.DefaultTTL)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = auth.Verify(token, []byte("other-secret"))
	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	if _, err := auth.Verify("not.a.token", secret); err == nil {
		t.Fatalf("expected garbage token to fail verification")
	}
}

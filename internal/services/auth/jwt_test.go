package auth

import (
	"errors"
	"testing"
	"time"
)

func TestParseRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret")

	token, err := manager.Sign(42, "OWNER", time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("unexpected user id: %d", claims.UserID)
	}
	if claims.Role != "OWNER" {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	token, err := NewJWTManager("other-secret").Sign(42, "USER", time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, err = NewJWTManager("test-secret").Parse(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret")

	token, err := manager.Sign(42, "USER", -time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, err = manager.Parse(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

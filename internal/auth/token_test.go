package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/docstack/docstack/internal/models"
)

func testUser() *models.User {
	return &models.User{ID: 42, Username: "testuser"}
}

func TestIssue(t *testing.T) {
	svc := NewTokenService("test-secret-key", 30)

	token, expireAt, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if token == "" {
		t.Error("Issue() returned empty token")
	}
	if len(token) < 50 {
		t.Errorf("token seems too short: %d chars", len(token))
	}

	diff := time.Until(expireAt) - 30*time.Minute
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiry is off by more than 1 minute: %v", diff)
	}
}

func TestIssue_DifferentUsers(t *testing.T) {
	svc := NewTokenService("test-secret-key", 30)

	token1, _, _ := svc.Issue(&models.User{ID: 1, Username: "alice"})
	token2, _, _ := svc.Issue(&models.User{ID: 2, Username: "bob"})

	if token1 == token2 {
		t.Error("different users should produce different tokens")
	}
}

func TestVerify(t *testing.T) {
	svc := NewTokenService("test-secret-key", 30)

	token, _, _ := svc.Issue(testUser())

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, expected 42", claims.UserID)
	}
	if claims.Username != "testuser" {
		t.Errorf("Username = %q, expected %q", claims.Username, "testuser")
	}
}

func TestVerify_InvalidToken(t *testing.T) {
	svc := NewTokenService("test-secret-key", 30)

	invalidTokens := []string{
		"",
		"invalid",
		"not.a.token",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature",
	}

	for _, token := range invalidTokens {
		_, err := svc.Verify(token)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q) error = %v, expected ErrInvalidToken", token, err)
		}
	}
}

func TestVerify_TamperedToken(t *testing.T) {
	svc := NewTokenService("test-secret-key", 30)

	token, _, _ := svc.Issue(testUser())

	// Flip one character in the payload segment
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err := svc.Verify(string(tampered))
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(tampered) error = %v, expected ErrInvalidToken", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewTokenService("original-secret", 30)
	verifier := NewTokenService("different-secret", 30)

	token, _, _ := issuer.Issue(testUser())

	_, err := verifier.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() with wrong secret error = %v, expected ErrInvalidToken", err)
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	svc := &TokenService{secret: []byte("test-secret-key"), ttl: -time.Minute}

	token, _, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify(expired) error = %v, expected ErrExpiredToken", err)
	}
}

func TestNewTokenService_DefaultExpiry(t *testing.T) {
	svc := NewTokenService("secret", 0)

	if svc.ttl != 30*time.Minute {
		t.Errorf("ttl = %v, expected 30m default", svc.ttl)
	}
}

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/harshcode1/BetterMind-sub000/internal/model"
)

const testSecret = "test-secret-do-not-use"

var testUser = &model.User{
	ID:    "5b0f4a9e-9f51-4b44-a3a2-000000000001",
	Email: "pat@example.com",
	Name:  "Pat Example",
	Role:  model.RolePatient,
}

func issueAt(t *testing.T, issued time.Time) string {
	t.Helper()
	svc := NewTokenServiceAt(testSecret, func() time.Time { return issued })
	tok, err := svc.Issue(testUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return tok
}

func verifyAt(raw string, now time.Time) (*Claims, error) {
	svc := NewTokenServiceAt(testSecret, func() time.Time { return now })
	return svc.Verify(raw)
}

func TestIssueAndVerifyClaims(t *testing.T) {
	issued := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	tok := issueAt(t, issued)

	claims, err := verifyAt(tok, issued.Add(time.Hour))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID() != testUser.ID {
		t.Errorf("subject: got %s, want %s", claims.UserID(), testUser.ID)
	}
	if claims.Email != testUser.Email {
		t.Errorf("email: got %s, want %s", claims.Email, testUser.Email)
	}
	if claims.Name != testUser.Name {
		t.Errorf("name: got %s, want %s", claims.Name, testUser.Name)
	}
	if !claims.ExpiresAt.Time.Equal(issued.Add(SessionTTL)) {
		t.Errorf("expiry: got %v, want %v", claims.ExpiresAt.Time, issued.Add(SessionTTL))
	}
}

func TestExpiryBoundary(t *testing.T) {
	issued := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	tok := issueAt(t, issued)

	// still valid one second before the 7-day mark
	if _, err := verifyAt(tok, issued.Add(SessionTTL-time.Second)); err != nil {
		t.Errorf("token should be valid at expiry-1s: %v", err)
	}

	// expired one second after
	_, err := verifyAt(tok, issued.Add(SessionTTL+time.Second))
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired at expiry+1s, got %v", err)
	}
}

func TestTamperedSignature(t *testing.T) {
	issued := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	tok := issueAt(t, issued)

	// flip the last signature character
	last := tok[len(tok)-1]
	flip := byte('A')
	if last == 'A' {
		flip = 'B'
	}
	tampered := tok[:len(tok)-1] + string(flip)

	_, err := verifyAt(tampered, issued.Add(time.Hour))
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for tampered token, got %v", err)
	}
}

func TestWrongSecret(t *testing.T) {
	issued := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	tok := issueAt(t, issued)

	other := NewTokenServiceAt("a-different-secret", func() time.Time { return issued })
	if _, err := other.Verify(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid with wrong secret, got %v", err)
	}
}

func TestMalformedToken(t *testing.T) {
	issued := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := verifyAt(raw, issued); !errors.Is(err, ErrTokenMalformed) && !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("raw=%q: expected typed failure, got %v", raw, err)
		}
	}

	if _, err := verifyAt("not-a-jwt-at-all", issued); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
}

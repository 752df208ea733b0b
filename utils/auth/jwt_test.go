package auth

import (
	"errors"
	"testing"
	"time"
)

func testJWTManager(expiry time.Duration) *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret-not-for-production",
		Expiry:        expiry,
		RefreshExpiry: 2 * expiry,
		Issuer:        "course-portal-test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := testJWTManager(time.Hour)

	token, jti, err := m.GenerateAccessToken(42, "student@university.edu", "student", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if jti == "" {
		t.Fatal("empty JTI")
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "student@university.edu" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "student" {
		t.Errorf("Role = %q", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("TokenVersion = %d, want 3", claims.TokenVersion)
	}
	if claims.ID != jti {
		t.Errorf("claims.ID = %q, want %q", claims.ID, jti)
	}
	if claims.Issuer != "course-portal-test" {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
}

func TestRefreshTokenType(t *testing.T) {
	m := testJWTManager(time.Hour)

	token, _, err := m.GenerateRefreshToken(1, "user@example.com", "student", 0)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("TokenType = %q, want refresh", claims.TokenType)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	m := testJWTManager(-time.Minute)

	token, _, err := m.GenerateAccessToken(1, "user@example.com", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := m.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := testJWTManager(time.Hour)
	other := NewJWTManager(JWTConfig{
		Secret: "a-different-secret",
		Expiry: time.Hour,
		Issuer: "course-portal-test",
	})

	token, _, err := m.GenerateAccessToken(1, "user@example.com", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateGarbageToken(t *testing.T) {
	m := testJWTManager(time.Hour)

	if _, err := m.ValidateToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestGetTokenExpiry(t *testing.T) {
	m := testJWTManager(time.Hour)

	token, _, err := m.GenerateAccessToken(1, "user@example.com", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	expiry, err := m.GetTokenExpiry(token)
	if err != nil {
		t.Fatalf("GetTokenExpiry failed: %v", err)
	}

	until := time.Until(expiry)
	if until < 55*time.Minute || until > 65*time.Minute {
		t.Errorf("expiry %v not about an hour away", until)
	}
}

package auth

import (
	"errors"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct-horse-battery" {
		t.Fatal("hash equals plaintext")
	}

	if err := VerifyPassword(hash, "correct-horse-battery"); err != nil {
		t.Errorf("VerifyPassword rejected correct password: %v", err)
	}

	if err := VerifyPassword(hash, "wrong-password"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestHashPasswordTooShort(t *testing.T) {
	if _, err := HashPassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestIsPasswordValid(t *testing.T) {
	if !IsPasswordValid("12345678") {
		t.Error("8-char password rejected")
	}
	if IsPasswordValid("1234567") {
		t.Error("7-char password accepted")
	}
}

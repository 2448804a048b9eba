package auth

import (
	"strings"
	"testing"
	"time"
)

func TestTokenMaker_RoundTrip(t *testing.T) {
	maker := NewTokenMaker("test-secret", time.Hour)

	token, err := maker.Generate("507f1f77bcf86cd799439011", "owner")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := maker.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if claims.UserID != "507f1f77bcf86cd799439011" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "507f1f77bcf86cd799439011")
	}
	if claims.Role != "owner" {
		t.Errorf("Role = %q, want %q", claims.Role, "owner")
	}
}

func TestTokenMaker_ExpiredToken(t *testing.T) {
	maker := NewTokenMaker("test-secret", -time.Minute)

	token, err := maker.Generate("507f1f77bcf86cd799439011", "user")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := maker.Verify(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestTokenMaker_WrongSecret(t *testing.T) {
	maker := NewTokenMaker("secret-a", time.Hour)
	other := NewTokenMaker("secret-b", time.Hour)

	token, err := maker.Generate("507f1f77bcf86cd799439011", "user")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func TestTokenMaker_TamperedToken(t *testing.T) {
	maker := NewTokenMaker("test-secret", time.Hour)

	token, err := maker.Generate("507f1f77bcf86cd799439011", "user")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format")
	}
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	if _, err := maker.Verify(tampered); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Error("wrong password accepted")
	}
}

package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("admin123", 4) // low cost keeps the test fast
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "admin123" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword(hash, "admin123") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "admin124") {
		t.Error("wrong password accepted")
	}
	if VerifyPassword(hash, "") {
		t.Error("empty password accepted")
	}
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	h1, _ := HashPassword("same", 4)
	h2, _ := HashPassword("same", 4)
	if h1 == h2 {
		t.Error("expected different hashes for same input (random salt)")
	}
}

func TestVerifyPasswordGarbageHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "whatever") {
		t.Error("garbage hash accepted")
	}
}

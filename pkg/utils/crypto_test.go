package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("expected hash to differ from plaintext")
	}

	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("expected non-matching password to fail")
	}
	if CheckPassword("not-a-bcrypt-hash", "anything") {
		t.Error("expected malformed hash to fail")
	}
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	second, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if first == second {
		t.Error("expected two hashes of the same password to differ")
	}
}

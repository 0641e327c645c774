package auth

import "testing"

func TestHashPassword_KnownDigest(t *testing.T) {
	// The digest format is a compatibility contract with existing stored
	// rows: lowercase hex of sha256(password), no salt. Pin it with a
	// known vector so an accidental "upgrade" fails loudly.
	got := HashPassword("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("HashPassword(\"hello\") = %s, want %s", got, want)
	}
}

func TestHashPassword_Deterministic(t *testing.T) {
	// No salt means equal inputs hash equal — that equality IS the
	// authenticate check.
	if HashPassword("secret") != HashPassword("secret") {
		t.Error("same password must produce the same digest")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash := HashPassword("correct horse battery staple")

	if !VerifyPassword(hash, "correct horse battery staple") {
		t.Error("correct password should verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password should not verify")
	}
	if VerifyPassword(hash, "") {
		t.Error("empty password should not verify")
	}
}

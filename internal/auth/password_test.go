package auth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}
	if strings.Contains(hash, "secret1") {
		t.Fatal("hash contains plaintext")
	}

	other, _ := HashPassword("secret1")
	if other == hash {
		t.Fatal("two hashes of the same password should differ by salt")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct", "secret1", true},
		{"wrong", "secret2", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckPassword(tt.password, hash)
			if err != nil {
				t.Fatalf("CheckPassword error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestCheckPassword_LegacyParams(t *testing.T) {
	// Hash of "changeme" created with m=65536,t=1,p=4
	legacy := "$argon2id$v=19$m=65536,t=1,p=4$mucMvOaS6lZ2LWNS1OEFKw$UYEWv8cvCOO6l2zGeqv3JPVe1nyy0x9GXBfYEuDM544"

	ok, err := CheckPassword("changeme", legacy)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if !ok {
		t.Fatal("legacy hash rejected correct password")
	}
	if !NeedsRehash(legacy) {
		t.Error("legacy hash should need rehash")
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	for _, h := range []string{"", "plaintext", "$bcrypt$v=19$m=1,t=1,p=1$a$b", "$argon2id$v=19$bogus$a$b"} {
		if ok, err := CheckPassword("x", h); err == nil || ok {
			t.Errorf("CheckPassword(%q) = %v, %v; want error", h, ok, err)
		}
	}
}

func TestNeedsRehash_Current(t *testing.T) {
	hash, _ := HashPassword("secret1")
	if NeedsRehash(hash) {
		t.Error("fresh hash should not need rehash")
	}
}

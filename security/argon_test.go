package security

import (
	"strings"
	"testing"
)

func TestGenerateAndVerify(t *testing.T) {
	a := NewArgon()

	hash, err := a.GenerateFromPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("GenerateFromPassword: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Errorf("unexpected hash encoding: %s", hash)
	}

	ok, err := a.VerifyPasswd("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("VerifyPasswd: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = a.VerifyPasswd("wrong password", hash)
	if err != nil {
		t.Fatalf("VerifyPasswd: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestSaltsDiffer(t *testing.T) {
	a := NewArgon()

	h1, err := a.GenerateFromPassword("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := a.GenerateFromPassword("hunter2")
	if err != nil {
		t.Fatal(err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password share a salt")
	}
}

func TestVerifyMalformed(t *testing.T) {
	a := NewArgon()

	cases := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not a hash", "password123"},
		{"too few parts", "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA"},
		{"bad params", "$argon2id$v=19$nope$c2FsdA$aGFzaA"},
		{"bad salt b64", "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
		{"bad hash b64", "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$!!!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := a.VerifyPasswd("whatever", tc.encoded)
			if err == nil {
				t.Error("expected an error")
			}
			if ok {
				t.Error("malformed hash verified")
			}
		})
	}
}

// Verification reads the parameters out of the encoding, so hashes made
// with older cost settings must keep verifying after a defaults bump.
func TestVerifyUsesEmbeddedParams(t *testing.T) {
	old := &ArgonHash{
		Memory:      16 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}

	hash, err := old.GenerateFromPassword("legacy")
	if err != nil {
		t.Fatal(err)
	}

	ok, err := NewArgon().VerifyPasswd("legacy", hash)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("hash with non-default params rejected")
	}
}

package credentials

import "testing"

func TestHashVerify_RoundTrip(t *testing.T) {
	hash, err := Hash("longenough1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "longenough1" {
		t.Fatalf("hash must differ from the plain password")
	}
	if !Verify("longenough1", hash) {
		t.Fatalf("correct password should verify")
	}
	if Verify("wrongpassword", hash) {
		t.Fatalf("wrong password should not verify")
	}
}

func TestHash_SaltVaries(t *testing.T) {
	h1, err := Hash("longenough1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := Hash("longenough1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password should differ")
	}
	if !Verify("longenough1", h1) || !Verify("longenough1", h2) {
		t.Fatalf("both hashes should verify")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	for _, hash := range []string{"", "not-a-bcrypt-hash", "$2a$xx$garbage"} {
		if Verify("anything", hash) {
			t.Fatalf("malformed hash %q must not verify", hash)
		}
	}
}

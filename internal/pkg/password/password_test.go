package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	hash, err := Hash("abc123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "abc123" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !Verify("abc123", hash) {
		t.Fatalf("expected Verify to succeed for the original plaintext")
	}
	if Verify("xyz789", hash) {
		t.Fatalf("expected Verify to fail for a different plaintext")
	}
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	h1, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	h2, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same input should differ (random salt)")
	}
	if !Verify("same-password", h1) || !Verify("same-password", h2) {
		t.Fatalf("both hashes must verify against the plaintext")
	}
}

package security

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "secret123")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hash == "secret123" {
		t.Fatalf("hash must not equal the plaintext")
	}

	ok, err := h.Verify(ctx, "secret123", hash)

	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if !ok {
		t.Fatalf("verify of the right password should be true")
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "secret123")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	ok, err := h.Verify(ctx, "not-the-password", hash)

	// a mismatch is an expected outcome, not an error
	if err != nil {
		t.Fatalf("wrong password should not error: %v", err)
	}

	if ok {
		t.Fatalf("wrong password verified as true")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	first, err := h.Hash(ctx, "secret123")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	second, err := h.Hash(ctx, "secret123")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if first == second {
		t.Fatalf("two hashes of the same plaintext should differ")
	}
}

func TestHashCancelledContext(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Hash(ctx, "secret123")

	if err == nil {
		t.Fatalf("expected error when the context is already cancelled")
	}

	ok, err := h.Verify(ctx, "secret123", "whatever")

	if err == nil || ok {
		t.Fatalf("expected error from verify with cancelled context, got ok=%v err=%v", ok, err)
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)

	ok, err := h.Verify(context.Background(), "secret123", "not-a-bcrypt-hash")

	if err == nil {
		t.Fatalf("malformed hash should surface an error")
	}

	if ok {
		t.Fatalf("malformed hash must never verify")
	}
}

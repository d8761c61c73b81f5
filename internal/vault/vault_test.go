package vault

import (
	"bytes"
	"errors"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Full-strength key stretching makes every test pay ~600ms per
	// Encrypt call. The cipher path is identical at any work factor.
	KDFIterations = 1_000
	os.Exit(m.Run())
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte(`{"id":"cat1","name":"groceries","currentAmount":-25000}`)

	env, err := Encrypt(plaintext, "correct horse")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if bytes.Contains(env.Ciphertext, []byte("groceries")) {
		t.Error("ciphertext leaks plaintext")
	}

	got, err := Decrypt(env, "correct horse")
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("round trip = %q, want %q", got, plaintext)
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	env, err := Encrypt([]byte("secret"), "right")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if _, err := Decrypt(env, "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Decrypt with wrong password = %v, want ErrInvalidPassword", err)
	}
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	env, err := Encrypt([]byte("secret"), "pw")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	env.Ciphertext[0] ^= 0xff

	if _, err := Decrypt(env, "pw"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Decrypt of tampered blob = %v, want ErrInvalidPassword", err)
	}
}

func TestEncryptUsesFreshSalt(t *testing.T) {
	a, err := Encrypt([]byte("same"), "pw")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	b, err := Encrypt([]byte("same"), "pw")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if bytes.Equal(a.Salt, b.Salt) {
		t.Error("two records share a salt")
	}
	if bytes.Equal(a.Ciphertext, b.Ciphertext) {
		t.Error("two records share ciphertext")
	}
}

func TestSessionLifecycle(t *testing.T) {
	verifier, err := NewVerifier("hunter2")
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}

	if _, err := Open("wrong", verifier); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("Open with wrong password = %v, want ErrInvalidPassword", err)
	}

	sess, err := Open("hunter2", verifier)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	env, err := sess.Encrypt([]byte("payload"))
	if err != nil {
		t.Fatalf("session Encrypt failed: %v", err)
	}
	got, err := sess.Decrypt(env)
	if err != nil {
		t.Fatalf("session Decrypt failed: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("session round trip = %q", got)
	}

	sess.Close()
	if _, err := sess.Encrypt([]byte("x")); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Encrypt after Close = %v, want ErrSessionClosed", err)
	}
	if _, err := sess.Decrypt(env); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Decrypt after Close = %v, want ErrSessionClosed", err)
	}
	sess.Close() // idempotent
}

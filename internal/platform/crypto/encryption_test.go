package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "hex key", key: hex.EncodeToString(bytes.Repeat([]byte{7}, 32))},
		{name: "passphrase", key: "correct horse battery staple"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			svc, err := New(tc.key)
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			if !svc.Configured() {
				t.Fatal("expected configured service")
			}
			plain := []byte(`{"version":1}`)
			sealed, err := svc.Encrypt(plain)
			if err != nil {
				t.Fatalf("encrypt: %v", err)
			}
			if bytes.Contains(sealed, plain) {
				t.Fatal("ciphertext contains plaintext")
			}
			opened, err := svc.Decrypt(sealed)
			if err != nil {
				t.Fatalf("decrypt: %v", err)
			}
			if !bytes.Equal(opened, plain) {
				t.Fatalf("expected %q, got %q", plain, opened)
			}
		})
	}
}

func TestPassphraseDerivationIsStable(t *testing.T) {
	a, _ := New("same passphrase")
	b, _ := New("same passphrase")
	sealed, err := a.Encrypt([]byte("payload"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := b.Decrypt(sealed); err != nil {
		t.Fatalf("expected second service to open ciphertext: %v", err)
	}
}

func TestUnconfiguredServicePassesThrough(t *testing.T) {
	svc, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if svc.Configured() {
		t.Fatal("expected unconfigured service")
	}
	out, err := svc.Encrypt([]byte("plain"))
	if err != nil || string(out) != "plain" {
		t.Fatalf("expected passthrough, got %q %v", out, err)
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	a, _ := New("key-a")
	b, _ := New("key-b")
	sealed, err := a.Encrypt([]byte("payload"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := b.Decrypt(sealed); err == nil {
		t.Fatal("expected decrypt with wrong key to fail")
	}
}

package crypto

import (
	"bytes"
	"testing"
)

func TestHashDeterministic(t *testing.T) {
	data := []byte("namesweep test payload")
	h1 := Hash(data)
	h2 := Hash(data)
	if h1 != h2 {
		t.Error("hash should be deterministic")
	}
	if h1.IsZero() {
		t.Error("hash should not be zero")
	}
}

func TestHashDiffers(t *testing.T) {
	if Hash([]byte("a")) == Hash([]byte("b")) {
		t.Error("different inputs should hash differently")
	}
}

func TestAddressFromPubKey(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	addr := AddressFromPubKey(key.PublicKey())
	if addr.IsZero() {
		t.Error("derived address should not be zero")
	}

	// Same pubkey, same address.
	if AddressFromPubKey(key.PublicKey()) != addr {
		t.Error("address derivation should be deterministic")
	}
}

func TestSignVerify(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	hash := Hash([]byte("message"))
	sig, err := key.Sign(hash[:])
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	if !VerifySignature(hash[:], sig, key.PublicKey()) {
		t.Error("valid signature should verify")
	}

	wrong := Hash([]byte("other message"))
	if VerifySignature(wrong[:], sig, key.PublicKey()) {
		t.Error("signature should not verify against a different hash")
	}
}

func TestSign_BadHashLength(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	if _, err := key.Sign([]byte("short")); err == nil {
		t.Error("signing a non-32-byte hash should fail")
	}
}

func TestPrivateKeyFromBytes(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	restored, err := PrivateKeyFromBytes(key.Serialize())
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}
	if !bytes.Equal(restored.PublicKey(), key.PublicKey()) {
		t.Error("restored key should have the same public key")
	}

	if _, err := PrivateKeyFromBytes([]byte{1, 2, 3}); err == nil {
		t.Error("short key bytes should fail")
	}
}

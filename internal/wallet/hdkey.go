package wallet

import (
	"fmt"

	"github.com/namesweep/namesweep/pkg/crypto"
	"github.com/namesweep/namesweep/pkg/types"
	"github.com/tyler-smith/go-bip32"
)

// Derivation path constants.
// Payment keys live at m/44'/5757'/0'/0/index, the config key at
// m/44'/5757'/0'/1/0, and legacy data keys at m/888'/0'/index'.
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// CoinTypeNames is the coin type for payment keys (hardened).
	CoinTypeNames = bip32.FirstHardenedChild + 5757

	// PurposeData is the purpose field of the legacy data path (hardened).
	PurposeData = bip32.FirstHardenedChild + 888

	// ChangeExternal is the chain for payment addresses.
	ChangeExternal = 0

	// ChangeConfig is the chain holding the wallet config key.
	ChangeConfig = 1
)

// HDKey represents a hierarchical deterministic key (BIP-32).
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master HD key from a 64-byte seed.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// DeriveChild derives a child key at the given index.
// For hardened derivation, add bip32.FirstHardenedChild to the index.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &HDKey{key: child}, nil
}

// DerivePath derives a key along a sequence of indices.
func (k *HDKey) DerivePath(indices ...uint32) (*HDKey, error) {
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// PaymentKey derives the payment key at m/44'/5757'/0'/0/index.
func (k *HDKey) PaymentKey(index uint32) (*HDKey, error) {
	return k.DerivePath(
		PurposeBIP44,
		CoinTypeNames,
		bip32.FirstHardenedChild,
		ChangeExternal,
		index,
	)
}

// ConfigKey derives the wallet config key at m/44'/5757'/0'/1/0.
func (k *HDKey) ConfigKey() (*HDKey, error) {
	return k.DerivePath(
		PurposeBIP44,
		CoinTypeNames,
		bip32.FirstHardenedChild,
		ChangeConfig,
		0,
	)
}

// DataKey derives the legacy data key at m/888'/0'/index'.
func (k *HDKey) DataKey(index uint32) (*HDKey, error) {
	return k.DerivePath(
		PurposeData,
		bip32.FirstHardenedChild,
		bip32.FirstHardenedChild+index,
	)
}

// PrivateKeyBytes returns the raw 32-byte private key.
// Returns nil if this is a public-only key.
func (k *HDKey) PrivateKeyBytes() []byte {
	if !k.key.IsPrivate {
		return nil
	}
	// bip32 Key.Key is 33 bytes with a leading 0x00 for private keys.
	raw := k.key.Key
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	return raw
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *HDKey) PublicKeyBytes() []byte {
	pub := k.key.PublicKey()
	return pub.Key
}

// Signer returns a crypto.PrivateKey from this HD key's private key.
// Returns error if this is a public-only key.
func (k *HDKey) Signer() (*crypto.PrivateKey, error) {
	priv := k.PrivateKeyBytes()
	if priv == nil {
		return nil, fmt.Errorf("cannot create signer from public key")
	}
	return crypto.PrivateKeyFromBytes(priv)
}

// Address derives the address for this key's public key.
// Address = first 20 bytes of BLAKE3(compressed_pubkey).
func (k *HDKey) Address() types.Address {
	return crypto.AddressFromPubKey(k.PublicKeyBytes())
}

// IsPrivate returns true if this key contains a private key.
func (k *HDKey) IsPrivate() bool {
	return k.key.IsPrivate
}

// Neuter returns a public-key-only copy.
func (k *HDKey) Neuter() *HDKey {
	return &HDKey{key: k.key.PublicKey()}
}

package wallet

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/namesweep/namesweep/internal/log"
	"github.com/namesweep/namesweep/pkg/crypto"
	"github.com/namesweep/namesweep/pkg/types"
)

// Account is one derived account. The payment key signs transfers, the data
// key covers the legacy data path, and the apps key is the extended key of
// that same path.
type Account struct {
	Index      uint32
	Address    types.Address
	PaymentKey *HDKey
	DataKey    *HDKey
	AppsKey    *HDKey
	Salt       string

	// Username is a display decoration resolved after derivation. It is
	// never an input to derivation.
	Username string
}

// Material is everything derived from one seed phrase. It lives in process
// memory only and is discarded when the session clears.
type Material struct {
	Salt          string
	RootKey       *HDKey
	ConfigKey     *HDKey
	EncryptedSeed []byte
	Accounts      []*Account
}

// Derive builds wallet material from a tokenized seed phrase. It is
// deterministic: the same words always yield the same material (the encrypted
// seed blob varies by random salt and nonce, its plaintext does not).
//
// Derivation fails closed: any error returns nil material, never a partial
// one. The result always contains the sponsor account at index 0.
func Derive(words []string, password []byte) (*Material, error) {
	if len(words) != ShortPhraseWords && len(words) != LongPhraseWords {
		return nil, fmt.Errorf("phrase must have %d or %d words, got %d",
			ShortPhraseWords, LongPhraseWords, len(words))
	}
	mnemonic := strings.Join(words, " ")

	seed, err := SeedFromMnemonic(mnemonic, "")
	if err != nil {
		return nil, err
	}

	root, err := NewMasterKey(seed)
	if err != nil {
		return nil, err
	}

	saltHash := crypto.Hash(root.PublicKeyBytes())
	salt := hex.EncodeToString(saltHash[:])

	configKey, err := root.ConfigKey()
	if err != nil {
		return nil, err
	}

	encSeed, err := Encrypt(seed, password, DefaultParams())
	if err != nil {
		return nil, err
	}

	m := &Material{
		Salt:          salt,
		RootKey:       root,
		ConfigKey:     configKey,
		EncryptedSeed: encSeed,
	}

	sponsor, err := m.deriveAccount(0)
	if err != nil {
		return nil, err
	}
	m.Accounts = []*Account{sponsor}

	return m, nil
}

// deriveAccount derives the account at the given index.
func (m *Material) deriveAccount(index uint32) (*Account, error) {
	payment, err := m.RootKey.PaymentKey(index)
	if err != nil {
		return nil, err
	}
	data, err := m.RootKey.DataKey(index)
	if err != nil {
		return nil, err
	}
	return &Account{
		Index:      index,
		Address:    payment.Address(),
		PaymentKey: payment,
		DataKey:    data,
		AppsKey:    data,
		Salt:       m.Salt,
	}, nil
}

// ExtendTo derives accounts until n exist. It fails closed: on error the
// account list is left exactly as it was.
func (m *Material) ExtendTo(n int) error {
	if n <= len(m.Accounts) {
		return nil
	}
	fresh := make([]*Account, 0, n-len(m.Accounts))
	for i := len(m.Accounts); i < n; i++ {
		acc, err := m.deriveAccount(uint32(i))
		if err != nil {
			return fmt.Errorf("derive account %d: %w", i, err)
		}
		fresh = append(fresh, acc)
	}
	m.Accounts = append(m.Accounts, fresh...)

	for i, acc := range m.Accounts {
		if acc.Index != uint32(i) {
			return fmt.Errorf("account %d carries index %d", i, acc.Index)
		}
	}
	return nil
}

// Sponsor returns the fee-paying account (index 0).
func (m *Material) Sponsor() *Account {
	return m.Accounts[0]
}

// UsageProber reports whether an address shows on-ledger activity
// (a balance or valid names).
type UsageProber interface {
	Used(ctx context.Context, addr types.Address) (bool, error)
}

// Discover extends the account list by probing successive addresses until the
// first unused one, capped at max. The sponsor account is always kept, so the
// result never has fewer than one account. A probe failure trims back to the
// sponsor alone and reports the error; the material stays usable.
func (m *Material) Discover(ctx context.Context, probe UsageProber, max int) error {
	if max < 1 {
		max = 1
	}
	for i := 1; i < max; i++ {
		if err := m.ExtendTo(i + 1); err != nil {
			m.Accounts = m.Accounts[:1]
			return err
		}
		used, err := probe.Used(ctx, m.Accounts[i].Address)
		if err != nil {
			m.Accounts = m.Accounts[:1]
			log.Wallet.Warn().Err(err).Int("index", i).
				Msg("Account probe failed, keeping sponsor only")
			return err
		}
		if !used {
			m.Accounts = m.Accounts[:i]
			return nil
		}
	}
	return nil
}

// Clear zeroes what key material it can and drops the account list.
func (m *Material) Clear() {
	for i := range m.EncryptedSeed {
		m.EncryptedSeed[i] = 0
	}
	m.EncryptedSeed = nil
	m.Accounts = nil
	m.RootKey = nil
	m.ConfigKey = nil
}

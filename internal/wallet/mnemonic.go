// Package wallet implements seed phrase handling, HD key derivation and the
// in-memory account directory.
package wallet

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// MnemonicEntropyBits is the entropy size for 24-word mnemonics.
const MnemonicEntropyBits = 256

// Accepted phrase lengths.
const (
	ShortPhraseWords = 12
	LongPhraseWords  = 24
)

// SplitPhrase tokenizes raw seed phrase input. The delimiter is the first one
// present among semicolon, comma, single space, checked in that order. The
// result is non-nil only when the token count is exactly 12 or 24; anything
// else yields nil so no partial phrase escapes.
func SplitPhrase(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	sep := " "
	switch {
	case strings.Contains(raw, ";"):
		sep = ";"
	case strings.Contains(raw, ","):
		sep = ","
	}

	parts := strings.Split(raw, sep)
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			words = append(words, p)
		}
	}

	if len(words) != ShortPhraseWords && len(words) != LongPhraseWords {
		return nil
	}
	return words
}

// GenerateMnemonic creates a new 24-word BIP-39 mnemonic.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks if a mnemonic is valid per BIP-39
// (correct word count, valid words, valid checksum).
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

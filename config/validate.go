package config

import (
	"fmt"
	"strconv"

	"github.com/namesweep/namesweep/pkg/types"
)

// MaxFeeInputLen is the longest accepted fee input string. Longer inputs are
// rejected outright rather than truncated.
const MaxFeeInputLen = 8

// Validate checks runtime daemon config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	if cfg.Registry.URL == "" {
		return fmt.Errorf("registry.url must not be empty")
	}
	if cfg.Registry.RelayURL == "" {
		return fmt.Errorf("registry.relay must not be empty")
	}
	if cfg.Registry.Timeout <= 0 {
		return fmt.Errorf("registry.timeout must be positive")
	}
	if cfg.Sweep.MaxAccounts <= 0 {
		return fmt.Errorf("sweep.maxaccounts must be positive")
	}
	if cfg.RPC.Port < 0 || cfg.RPC.Port > 65535 {
		return fmt.Errorf("rpc.port must be in range [0, 65535]")
	}

	if cfg.Sweep.Fee != "" {
		if err := ValidateFee(cfg.Sweep.Fee); err != nil {
			return fmt.Errorf("sweep.fee: %w", err)
		}
	}
	if cfg.Sweep.Destination != "" {
		if _, err := types.ParseAddress(cfg.Sweep.Destination); err != nil {
			return fmt.Errorf("sweep.destination: %w", err)
		}
	}

	return nil
}

// ValidateFee checks that a fee string is a well-formed decimal coin amount.
func ValidateFee(fee string) error {
	if len(fee) > MaxFeeInputLen {
		return fmt.Errorf("fee input longer than %d characters", MaxFeeInputLen)
	}
	v, err := strconv.ParseFloat(fee, 64)
	if err != nil {
		return fmt.Errorf("fee is not a decimal number")
	}
	if v < 0 {
		return fmt.Errorf("fee must not be negative")
	}
	return nil
}

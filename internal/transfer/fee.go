// Package transfer orchestrates sponsored name transfers: per-account
// attempt state, fee policy and the sign/sponsor/broadcast pipeline.
package transfer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/namesweep/namesweep/config"
)

// MaxFeeInputLen is the longest accepted fee edit. Longer input is ignored
// rather than truncated.
const MaxFeeInputLen = config.MaxFeeInputLen

// NormalizeFeeInput applies the fee edit policy. Input longer than
// MaxFeeInputLen leaves the current fee unchanged; unparseable or negative
// input clears the fee to empty (which disables transfers); valid input
// replaces it.
func NormalizeFeeInput(current, input string) string {
	if len(input) > MaxFeeInputLen {
		return current
	}
	if input == "" {
		return ""
	}
	v, err := strconv.ParseFloat(input, 64)
	if err != nil || v < 0 {
		return ""
	}
	return input
}

// FeeToUnits converts a decimal coin string to smallest units, exactly.
// An empty string converts to 0. More than 6 fractional digits is an error
// since the amount would not be representable.
func FeeToUnits(fee string) (uint64, error) {
	if fee == "" {
		return 0, nil
	}

	whole, frac, _ := strings.Cut(fee, ".")
	if whole == "" {
		whole = "0"
	}

	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse fee %q: %w", fee, err)
	}

	units := w * config.Coin
	if frac != "" {
		if len(frac) > 6 {
			return 0, fmt.Errorf("fee %q has more than 6 fractional digits", fee)
		}
		f, err := strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse fee %q: %w", fee, err)
		}
		for i := len(frac); i < 6; i++ {
			f *= 10
		}
		units += f
	}
	return units, nil
}

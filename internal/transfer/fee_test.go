package transfer

import "testing"

func TestNormalizeFeeInput(t *testing.T) {
	tests := []struct {
		name    string
		current string
		input   string
		want    string
	}{
		{"valid replaces", "0.0005", "0.001", "0.001"},
		{"too long keeps current", "0.0005", "0.0000001", "0.0005"},
		{"unparseable clears", "0.0005", "abc", ""},
		{"negative clears", "0.0005", "-1", ""},
		{"empty clears", "0.0005", "", ""},
		{"zero allowed", "0.0005", "0", "0"},
		{"integer fee", "", "2", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFeeInput(tt.current, tt.input); got != tt.want {
				t.Errorf("NormalizeFeeInput(%q, %q) = %q, want %q",
					tt.current, tt.input, got, tt.want)
			}
		})
	}
}

func TestFeeToUnits(t *testing.T) {
	tests := []struct {
		fee   string
		units uint64
		err   bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"0.0005", 500, false},
		{"0.5", 500000, false},
		{"1", 1000000, false},
		{"1.5", 1500000, false},
		{"2.000001", 2000001, false},
		{".25", 250000, false},
		{"0.0000001", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		units, err := FeeToUnits(tt.fee)
		if tt.err {
			if err == nil {
				t.Errorf("FeeToUnits(%q) should error", tt.fee)
			}
			continue
		}
		if err != nil {
			t.Errorf("FeeToUnits(%q): %v", tt.fee, err)
			continue
		}
		if units != tt.units {
			t.Errorf("FeeToUnits(%q) = %d, want %d", tt.fee, units, tt.units)
		}
	}
}

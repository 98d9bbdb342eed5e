package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAddressRoundTrip(t *testing.T) {
	var a Address
	for i := range a {
		a[i] = byte(i + 1)
	}

	s := a.String()
	if !strings.HasPrefix(s, MainnetHRP+"1") {
		t.Fatalf("address %q should start with %q", s, MainnetHRP+"1")
	}

	parsed, err := ParseAddress(s)
	if err != nil {
		t.Fatalf("ParseAddress(%q) error: %v", s, err)
	}
	if parsed != a {
		t.Errorf("round trip mismatch: got %s, want %s", parsed.Hex(), a.Hex())
	}
}

func TestAddressHexRoundTrip(t *testing.T) {
	var a Address
	a[0] = 0xab
	a[19] = 0xcd

	parsed, err := ParseAddress(a.Hex())
	if err != nil {
		t.Fatalf("ParseAddress(hex) error: %v", err)
	}
	if parsed != a {
		t.Errorf("hex round trip mismatch")
	}
}

func TestParseAddress_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"garbage", "not-an-address"},
		{"short hex", "abcd"},
		{"bad checksum", MainnetHRP + "1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAddress(tt.in); err == nil {
				t.Errorf("ParseAddress(%q) should fail", tt.in)
			}
		})
	}
}

func TestAddressJSON(t *testing.T) {
	var a Address
	a[3] = 0x42

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Address
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != a {
		t.Errorf("JSON round trip mismatch")
	}
}

func TestSetAddressHRP(t *testing.T) {
	defer SetAddressHRP(MainnetHRP)

	var a Address
	a[0] = 1

	SetAddressHRP(TestnetHRP)
	s := a.String()
	if !strings.HasPrefix(s, TestnetHRP+"1") {
		t.Errorf("testnet address %q should start with %q", s, TestnetHRP+"1")
	}

	// Testnet-encoded addresses still parse (HRP is not validated on parse).
	parsed, err := ParseAddress(s)
	if err != nil {
		t.Fatalf("ParseAddress(%q) error: %v", s, err)
	}
	if parsed != a {
		t.Errorf("testnet round trip mismatch")
	}
}

func TestAddressIsZero(t *testing.T) {
	var a Address
	if !a.IsZero() {
		t.Error("zero address should report IsZero")
	}
	a[0] = 1
	if a.IsZero() {
		t.Error("non-zero address should not report IsZero")
	}
}

package wallet

import (
	"strings"
	"testing"
)

func words12(sep string) string {
	w := make([]string, 11, 12)
	for i := range w {
		w[i] = "abandon"
	}
	w = append(w, "about")
	return strings.Join(w, sep)
}

func TestSplitPhrase_SpaceSeparated(t *testing.T) {
	words := SplitPhrase(words12(" "))
	if len(words) != 12 {
		t.Fatalf("got %d words, want 12", len(words))
	}
	if words[11] != "about" {
		t.Errorf("last word = %q, want about", words[11])
	}
}

func TestSplitPhrase_DelimiterPriority(t *testing.T) {
	tests := []struct {
		name  string
		input string
		count int
	}{
		{"semicolon", words12(";"), 12},
		{"comma", words12(","), 12},
		{"comma with spaces", words12(", "), 12},
		{"semicolon with spaces", words12(" ; "), 12},
		// A semicolon present anywhere makes it the delimiter. Splitting
		// these on ';' yields one token, which is rejected.
		{"semicolon wins over comma", words12(",") + ";", 0},
		{"comma wins over space", words12(" ") + ",", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitPhrase(tt.input)
			if len(got) != tt.count {
				t.Errorf("got %d words, want %d", len(got), tt.count)
			}
		})
	}
}

func TestSplitPhrase_RejectsBadLengths(t *testing.T) {
	for _, n := range []int{0, 1, 11, 13, 23, 25} {
		input := strings.TrimSpace(strings.Repeat("word ", n))
		if got := SplitPhrase(input); got != nil {
			t.Errorf("%d words should yield nil, got %d tokens", n, len(got))
		}
	}
}

func TestSplitPhrase_Accepts24(t *testing.T) {
	input := strings.TrimSpace(strings.Repeat("word ", 24))
	if got := SplitPhrase(input); len(got) != 24 {
		t.Errorf("24 words should be accepted, got %d", len(got))
	}
}

func TestSplitPhrase_LowercasesAndTrims(t *testing.T) {
	input := "  " + strings.ToUpper(words12(" ")) + "  "
	words := SplitPhrase(input)
	if len(words) != 12 {
		t.Fatalf("got %d words, want 12", len(words))
	}
	for _, w := range words {
		if w != strings.ToLower(w) {
			t.Errorf("word %q not lowercased", w)
		}
	}
}

func TestSplitPhrase_Empty(t *testing.T) {
	if got := SplitPhrase("   "); got != nil {
		t.Errorf("blank input should yield nil, got %v", got)
	}
}

func TestGenerateMnemonic_Valid(t *testing.T) {
	mnemonic, err := GenerateMnemonic()
	if err != nil {
		t.Fatal(err)
	}
	if !ValidateMnemonic(mnemonic) {
		t.Error("generated mnemonic should validate")
	}
	if got := len(strings.Fields(mnemonic)); got != 24 {
		t.Errorf("got %d words, want 24", got)
	}
}

func TestValidateMnemonic_RejectsGarbage(t *testing.T) {
	if ValidateMnemonic("not a real mnemonic at all") {
		t.Error("garbage should not validate")
	}
}

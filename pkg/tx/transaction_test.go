package tx

import (
	"testing"

	"github.com/namesweep/namesweep/pkg/crypto"
	"github.com/namesweep/namesweep/pkg/types"
)

// newKeyAndAddr returns a fresh key and the address it owns.
func newKeyAndAddr(t *testing.T) (*crypto.PrivateKey, types.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	return key, crypto.AddressFromPubKey(key.PublicKey())
}

func TestConstruct(t *testing.T) {
	_, sender := newKeyAndAddr(t)
	_, recipient := newKeyAndAddr(t)

	tr := Construct(sender, recipient, 42)

	if tr.Version != TxVersion {
		t.Errorf("version = %d, want %d", tr.Version, TxVersion)
	}
	if tr.Fee != 0 {
		t.Errorf("unsigned tx fee = %d, want 0", tr.Fee)
	}
	if !tr.Sponsored {
		t.Error("tx should be marked sponsored")
	}
	if tr.PostCondition == nil {
		t.Fatal("tx should carry a post-condition")
	}
	if tr.PostCondition.Sender != sender || tr.PostCondition.AssetID != 42 {
		t.Error("post-condition should pin sender and asset id")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	senderKey, sender := newKeyAndAddr(t)
	sponsorKey, _ := newKeyAndAddr(t)
	_, recipient := newKeyAndAddr(t)

	tr := Construct(sender, recipient, 7)
	if err := tr.SignSender(senderKey); err != nil {
		t.Fatalf("SignSender() error: %v", err)
	}

	// The orchestrator serializes between signing and sponsoring.
	wire := tr.Serialize()
	parsed, err := Deserialize(wire)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}

	if err := parsed.Sponsor(sponsorKey, 500); err != nil {
		t.Fatalf("Sponsor() error: %v", err)
	}
	if err := parsed.Verify(); err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if parsed.Fee != 500 {
		t.Errorf("fee = %d, want 500", parsed.Fee)
	}

	// Full round trip of the sponsored form.
	final, err := Deserialize(parsed.Serialize())
	if err != nil {
		t.Fatalf("Deserialize(sponsored) error: %v", err)
	}
	if err := final.Verify(); err != nil {
		t.Fatalf("Verify(sponsored round trip) error: %v", err)
	}
	if final.Hash() != parsed.Hash() {
		t.Error("tx id should survive the round trip")
	}
}

func TestDeserialize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"not hex", "zz"},
		{"truncated", "01000000ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Deserialize(tt.in); err == nil {
				t.Errorf("Deserialize(%q) should fail", tt.in)
			}
		})
	}
}

func TestDeserialize_TrailingBytes(t *testing.T) {
	senderKey, sender := newKeyAndAddr(t)
	_, recipient := newKeyAndAddr(t)

	tr := Construct(sender, recipient, 1)
	if err := tr.SignSender(senderKey); err != nil {
		t.Fatalf("SignSender() error: %v", err)
	}

	if _, err := Deserialize(tr.Serialize() + "ff"); err == nil {
		t.Error("trailing bytes should fail")
	}
}

func TestSenderDigestExcludesFee(t *testing.T) {
	_, sender := newKeyAndAddr(t)
	_, recipient := newKeyAndAddr(t)

	tr := Construct(sender, recipient, 9)
	before := tr.SenderSigningBytes()
	tr.Fee = 12345
	after := tr.SenderSigningBytes()

	if string(before) != string(after) {
		t.Error("sender digest must not depend on the fee")
	}
}

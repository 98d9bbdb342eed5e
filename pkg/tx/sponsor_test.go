package tx

import (
	"errors"
	"testing"
)

func TestSignSender_WrongKey(t *testing.T) {
	_, sender := newKeyAndAddr(t)
	_, recipient := newKeyAndAddr(t)
	otherKey, _ := newKeyAndAddr(t)

	tr := Construct(sender, recipient, 3)
	if err := tr.SignSender(otherKey); err == nil {
		t.Error("signing with a key that does not own the sender address should fail")
	}
}

func TestSponsor_RequiresSenderSignature(t *testing.T) {
	_, sender := newKeyAndAddr(t)
	_, recipient := newKeyAndAddr(t)
	sponsorKey, _ := newKeyAndAddr(t)

	tr := Construct(sender, recipient, 3)
	err := tr.Sponsor(sponsorKey, 500)
	if !errors.Is(err, ErrNotSenderSigned) {
		t.Errorf("Sponsor() on unsigned tx = %v, want ErrNotSenderSigned", err)
	}
}

func TestSponsor_RejectsUnsponsoredTx(t *testing.T) {
	senderKey, sender := newKeyAndAddr(t)
	_, recipient := newKeyAndAddr(t)
	sponsorKey, _ := newKeyAndAddr(t)

	tr := Construct(sender, recipient, 3)
	tr.Sponsored = false
	if err := tr.SignSender(senderKey); err != nil {
		t.Fatalf("SignSender() error: %v", err)
	}

	if err := tr.Sponsor(sponsorKey, 500); !errors.Is(err, ErrNotSponsored) {
		t.Errorf("Sponsor() = %v, want ErrNotSponsored", err)
	}
}

func TestVerify_DetectsTampering(t *testing.T) {
	senderKey, sender := newKeyAndAddr(t)
	_, recipient := newKeyAndAddr(t)
	sponsorKey, _ := newKeyAndAddr(t)

	tr := Construct(sender, recipient, 3)
	if err := tr.SignSender(senderKey); err != nil {
		t.Fatalf("SignSender() error: %v", err)
	}
	if err := tr.Sponsor(sponsorKey, 500); err != nil {
		t.Fatalf("Sponsor() error: %v", err)
	}
	if err := tr.Verify(); err != nil {
		t.Fatalf("Verify() error: %v", err)
	}

	// Raising the fee after sponsorship invalidates the sponsor signature.
	tr.Fee = 9999
	if err := tr.Verify(); err == nil {
		t.Error("fee tampering should fail verification")
	}
	tr.Fee = 500

	// Changing the asset invalidates the sender signature.
	tr.AssetID = 4
	if err := tr.Verify(); err == nil {
		t.Error("asset tampering should fail verification")
	}
}

func TestVerify_PostConditionMismatch(t *testing.T) {
	senderKey, sender := newKeyAndAddr(t)
	_, recipient := newKeyAndAddr(t)

	tr := Construct(sender, recipient, 3)
	tr.Sponsored = false
	tr.PostCondition.AssetID = 99 // no longer matches the transfer
	if err := tr.SignSender(senderKey); err != nil {
		t.Fatalf("SignSender() error: %v", err)
	}

	if err := tr.Verify(); err == nil {
		t.Error("mismatched post-condition should fail verification")
	}
}

func TestFullySigned(t *testing.T) {
	senderKey, sender := newKeyAndAddr(t)
	_, recipient := newKeyAndAddr(t)
	sponsorKey, _ := newKeyAndAddr(t)

	tr := Construct(sender, recipient, 3)
	if tr.FullySigned() {
		t.Error("unsigned tx should not be fully signed")
	}

	if err := tr.SignSender(senderKey); err != nil {
		t.Fatalf("SignSender() error: %v", err)
	}
	if tr.FullySigned() {
		t.Error("sender-signed sponsored tx still needs the sponsor")
	}

	if err := tr.Sponsor(sponsorKey, 500); err != nil {
		t.Fatalf("Sponsor() error: %v", err)
	}
	if !tr.FullySigned() {
		t.Error("tx with both signatures should be fully signed")
	}
}

package tx

import (
	"errors"
	"fmt"

	"github.com/namesweep/namesweep/pkg/crypto"
)

// Signing protocol errors.
var (
	// ErrNotSenderSigned is returned when sponsorship is attempted on a
	// transaction the sender has not signed yet. The sponsor signature
	// covers the sender's, so the order is fixed.
	ErrNotSenderSigned = errors.New("tx: sponsor requires a sender-signed transaction")

	// ErrNotSponsored is returned when sponsoring a transaction that was
	// not constructed as sponsored.
	ErrNotSponsored = errors.New("tx: transaction is not marked as sponsored")
)

// SignSender signs the transaction with the asset sender's payment key.
// The key must own the Sender address.
func (t *Transaction) SignSender(key *crypto.PrivateKey) error {
	pub := key.PublicKey()
	if crypto.AddressFromPubKey(pub) != t.Sender {
		return fmt.Errorf("tx: signing key does not own sender address %s", t.Sender)
	}

	digest := crypto.Hash(t.SenderSigningBytes())
	sig, err := key.Sign(digest[:])
	if err != nil {
		return fmt.Errorf("sign sender: %w", err)
	}
	t.SenderPubKey = pub
	t.SenderSig = sig
	return nil
}

// Sponsor attaches the fee and the sponsor's signature to a sender-signed
// transaction. The sponsor becomes the fee payer; the sender remains the
// asset sender.
func (t *Transaction) Sponsor(key *crypto.PrivateKey, fee uint64) error {
	if !t.Sponsored {
		return ErrNotSponsored
	}
	if len(t.SenderSig) == 0 {
		return ErrNotSenderSigned
	}

	t.Fee = fee
	digest := crypto.Hash(t.SponsorSigningBytes())
	sig, err := key.Sign(digest[:])
	if err != nil {
		// Leave no half-applied fee behind.
		t.Fee = 0
		return fmt.Errorf("sign sponsor: %w", err)
	}
	t.SponsorPubKey = key.PublicKey()
	t.SponsorSig = sig
	return nil
}

// Verify checks both signatures and the post-condition shape. A sponsored
// transaction is fully signed only when both parties have signed.
func (t *Transaction) Verify() error {
	if len(t.SenderSig) == 0 || len(t.SenderPubKey) == 0 {
		return errors.New("tx: missing sender signature")
	}
	if crypto.AddressFromPubKey(t.SenderPubKey) != t.Sender {
		return errors.New("tx: sender pubkey does not match sender address")
	}

	senderDigest := crypto.Hash(t.SenderSigningBytes())
	if !crypto.VerifySignature(senderDigest[:], t.SenderSig, t.SenderPubKey) {
		return errors.New("tx: invalid sender signature")
	}

	if t.PostCondition != nil {
		if t.PostCondition.Sender != t.Sender || t.PostCondition.AssetID != t.AssetID {
			return errors.New("tx: post-condition does not match transfer")
		}
	}

	if t.Sponsored {
		if len(t.SponsorSig) == 0 || len(t.SponsorPubKey) == 0 {
			return errors.New("tx: missing sponsor signature")
		}
		sponsorDigest := crypto.Hash(t.SponsorSigningBytes())
		if !crypto.VerifySignature(sponsorDigest[:], t.SponsorSig, t.SponsorPubKey) {
			return errors.New("tx: invalid sponsor signature")
		}
	}

	return nil
}

// FullySigned reports whether every required signature is present.
func (t *Transaction) FullySigned() bool {
	if len(t.SenderSig) == 0 {
		return false
	}
	if t.Sponsored && len(t.SponsorSig) == 0 {
		return false
	}
	return true
}

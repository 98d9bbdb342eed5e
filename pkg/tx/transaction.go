// Package tx defines the sponsored asset-transfer transaction and its
// two-party signing protocol: the sender authorizes the asset movement, the
// sponsor authorizes and pays for the enclosing transaction.
package tx

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/namesweep/namesweep/pkg/crypto"
	"github.com/namesweep/namesweep/pkg/types"
)

// TxVersion is the current transaction format version.
const TxVersion = 1

// PostCondition asserts that Sender sends exactly the asset AssetID. The
// relay aborts the transaction if the assertion does not hold at execution
// time, so a stale ownership view fails on-chain instead of misdirecting.
type PostCondition struct {
	Sender  types.Address `json:"sender"`
	AssetID uint64        `json:"asset_id"`
}

// Transaction is a single named-asset transfer. Fee is zero until a sponsor
// attaches one; Sponsored marks the fee as supplied by a second signer.
type Transaction struct {
	Version       uint32         `json:"version"`
	Sender        types.Address  `json:"sender"`
	Recipient     types.Address  `json:"recipient"`
	AssetID       uint64         `json:"asset_id"`
	Fee           uint64         `json:"fee"`
	Sponsored     bool           `json:"sponsored"`
	PostCondition *PostCondition `json:"post_condition,omitempty"`

	SenderPubKey  []byte `json:"sender_pubkey,omitempty"`
	SenderSig     []byte `json:"sender_sig,omitempty"`
	SponsorPubKey []byte `json:"sponsor_pubkey,omitempty"`
	SponsorSig    []byte `json:"sponsor_sig,omitempty"`
}

// Construct builds an unsigned sponsored transfer of assetID from sender to
// recipient, with an ownership post-condition on the sender. Fee starts at 0;
// the sponsor supplies it later.
func Construct(sender, recipient types.Address, assetID uint64) *Transaction {
	return &Transaction{
		Version:   TxVersion,
		Sender:    sender,
		Recipient: recipient,
		AssetID:   assetID,
		Sponsored: true,
		PostCondition: &PostCondition{
			Sender:  sender,
			AssetID: assetID,
		},
	}
}

// payloadBytes returns the canonical encoding of the transfer payload with
// the given fee. The sender digest uses fee 0 (the sender signs before the
// sponsor sets a fee); the sponsor digest uses the actual fee.
// Format: version(4) | sender(20) | recipient(20) | asset_id(8) | fee(8) |
// sponsored(1) | pc_flag(1) [pc_sender(20) pc_asset_id(8)]
func (t *Transaction) payloadBytes(fee uint64) []byte {
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, t.Version)
	buf = append(buf, t.Sender[:]...)
	buf = append(buf, t.Recipient[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, t.AssetID)
	buf = binary.LittleEndian.AppendUint64(buf, fee)
	if t.Sponsored {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	if t.PostCondition != nil {
		buf = append(buf, 1)
		buf = append(buf, t.PostCondition.Sender[:]...)
		buf = binary.LittleEndian.AppendUint64(buf, t.PostCondition.AssetID)
	} else {
		buf = append(buf, 0)
	}
	return buf
}

// SenderSigningBytes is the digest input the asset sender signs. The fee is
// pinned to 0 here: the sender authorizes the movement, not the fee.
func (t *Transaction) SenderSigningBytes() []byte {
	return t.payloadBytes(0)
}

// SponsorSigningBytes is the digest input the fee sponsor signs. It covers
// the complete transaction including the sender's signature, so sponsorship
// can only be applied to an already-sender-signed transaction.
func (t *Transaction) SponsorSigningBytes() []byte {
	buf := t.payloadBytes(t.Fee)
	buf = appendBytes(buf, t.SenderPubKey)
	buf = appendBytes(buf, t.SenderSig)
	return buf
}

// Hash computes the transaction identifier over the fully-serialized bytes.
func (t *Transaction) Hash() types.Hash {
	return crypto.Hash(t.encode())
}

// encode returns the full binary encoding including signatures.
func (t *Transaction) encode() []byte {
	buf := t.payloadBytes(t.Fee)
	buf = appendBytes(buf, t.SenderPubKey)
	buf = appendBytes(buf, t.SenderSig)
	buf = appendBytes(buf, t.SponsorPubKey)
	buf = appendBytes(buf, t.SponsorSig)
	return buf
}

// Serialize returns the hex encoding of the transaction, signatures included.
// This is the wire form handed between the signing and sponsoring steps and
// submitted to the relay.
func (t *Transaction) Serialize() string {
	return hex.EncodeToString(t.encode())
}

// Deserialize parses a hex-encoded transaction produced by Serialize.
func Deserialize(s string) (*Transaction, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode tx hex: %w", err)
	}

	r := reader{buf: raw}
	t := &Transaction{}

	t.Version = r.uint32()
	r.read(t.Sender[:])
	r.read(t.Recipient[:])
	t.AssetID = r.uint64()
	t.Fee = r.uint64()
	t.Sponsored = r.byte() == 1
	if r.byte() == 1 {
		pc := &PostCondition{}
		r.read(pc.Sender[:])
		pc.AssetID = r.uint64()
		t.PostCondition = pc
	}
	t.SenderPubKey = r.bytes()
	t.SenderSig = r.bytes()
	t.SponsorPubKey = r.bytes()
	t.SponsorSig = r.bytes()

	if r.err != nil {
		return nil, fmt.Errorf("decode tx: %w", r.err)
	}
	if r.off != len(raw) {
		return nil, fmt.Errorf("decode tx: %d trailing bytes", len(raw)-r.off)
	}
	if t.Version != TxVersion {
		return nil, fmt.Errorf("unsupported tx version %d", t.Version)
	}
	return t, nil
}

// appendBytes appends a length-prefixed byte slice.
func appendBytes(buf, b []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(b)))
	return append(buf, b...)
}

// reader is a cursor over encoded transaction bytes. The first failure
// sticks; callers check err once at the end.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.off+n > len(r.buf) {
		r.err = fmt.Errorf("truncated at offset %d", r.off)
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) read(dst []byte) {
	b := r.take(len(dst))
	if b != nil {
		copy(dst, b)
	}
}

func (r *reader) byte() byte {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) uint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *reader) bytes() []byte {
	n := r.uint32()
	if r.err != nil {
		return nil
	}
	if n == 0 {
		return nil
	}
	b := r.take(int(n))
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

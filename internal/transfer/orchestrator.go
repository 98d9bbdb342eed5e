package transfer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/namesweep/namesweep/internal/log"
	"github.com/namesweep/namesweep/internal/metrics"
	"github.com/namesweep/namesweep/internal/registry"
	"github.com/namesweep/namesweep/internal/wallet"
	"github.com/namesweep/namesweep/pkg/tx"
	"github.com/namesweep/namesweep/pkg/types"
)

// Orchestration errors. All are caught at the operation boundary; a failure
// for one account never aborts work on another.
var (
	ErrNotEligible  = errors.New("transfer: account does not hold exactly one name")
	ErrIDUnresolved = errors.New("transfer: asset id not resolved yet")
	ErrAlreadySent  = errors.New("transfer: already sent for this account")
	ErrInFlight     = errors.New("transfer: a send is already in flight for this account")
	ErrZeroFee      = errors.New("transfer: fee is zero, transfers disabled")
)

// Broadcaster submits a serialized transaction to the relay.
type Broadcaster interface {
	Broadcast(ctx context.Context, txHex string) (string, error)
}

// Orchestrator runs sponsored transfers. The sponsor account is shared
// read-only state; per-address attempts are guarded by the mutex. Attempts
// are keyed by address, so a send whose account left the visible page
// completes normally.
type Orchestrator struct {
	relay   Broadcaster
	sponsor *wallet.Account

	mu       sync.Mutex
	fee      string
	attempts map[types.Address]*Attempt
}

// New creates an orchestrator. The sponsor is the fee-paying account at
// derivation index 0.
func New(relay Broadcaster, sponsor *wallet.Account, defaultFee string) *Orchestrator {
	return &Orchestrator{
		relay:    relay,
		sponsor:  sponsor,
		fee:      NormalizeFeeInput("", defaultFee),
		attempts: make(map[types.Address]*Attempt),
	}
}

// SetFee applies a fee edit under the fee policy and returns the resulting
// fee string.
func (o *Orchestrator) SetFee(input string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fee = NormalizeFeeInput(o.fee, input)
	return o.fee
}

// Fee returns the current fee string.
func (o *Orchestrator) Fee() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.fee
}

// Status returns a copy of the attempt recorded for an address.
func (o *Orchestrator) Status(addr types.Address) Attempt {
	o.mu.Lock()
	defer o.mu.Unlock()
	if a, ok := o.attempts[addr]; ok {
		return *a
	}
	return Attempt{State: Idle}
}

// Send runs one sponsored transfer: construct, sender-sign with the account's
// payment key, serialize, deserialize, sponsor with account #0's key and the
// current fee, broadcast. On success the attempt is Sent, terminally. On any
// failure it returns to Idle with the error recorded and surfaced.
func (o *Orchestrator) Send(ctx context.Context, acc *wallet.Account, h registry.Holdings, dest types.Address) (string, error) {
	if h.Kind != registry.SingleName {
		return "", ErrNotEligible
	}
	if !h.IDResolved {
		return "", ErrIDUnresolved
	}

	feeUnits, err := o.begin(acc.Address)
	if err != nil {
		return "", err
	}

	txid, err := o.run(ctx, acc, h, dest, feeUnits)
	if err != nil {
		o.fail(acc.Address, err)
		return "", err
	}

	o.succeed(acc.Address, txid)
	log.Transfer.Info().
		Str("name", h.FullName).
		Str("from", acc.Address.String()).
		Str("to", dest.String()).
		Str("txid", txid).
		Msg("Transfer sent")
	return txid, nil
}

// begin validates fee and state, then marks the attempt Sending.
func (o *Orchestrator) begin(addr types.Address) (uint64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	feeUnits, err := FeeToUnits(o.fee)
	if err != nil {
		return 0, err
	}
	if feeUnits == 0 {
		return 0, ErrZeroFee
	}

	a, ok := o.attempts[addr]
	if !ok {
		a = &Attempt{}
		o.attempts[addr] = a
	}
	switch a.State {
	case Sent:
		return 0, ErrAlreadySent
	case Sending:
		return 0, ErrInFlight
	}

	a.State = Sending
	a.LastError = ""
	return feeUnits, nil
}

func (o *Orchestrator) fail(addr types.Address, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	a := o.attempts[addr]
	a.State = Idle
	a.LastError = err.Error()
	log.Transfer.Error().Err(err).Str("address", addr.String()).Msg("Transfer failed")
}

func (o *Orchestrator) succeed(addr types.Address, txid string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	a := o.attempts[addr]
	a.State = Sent
	a.TxID = txid
	a.LastError = ""
	metrics.TransfersSentCount.Inc()
}

// run executes the signing pipeline and broadcast. The serialize/deserialize
// round trip mirrors the production hand-off between sender and sponsor and
// keeps the sponsor working from the wire form.
func (o *Orchestrator) run(ctx context.Context, acc *wallet.Account, h registry.Holdings, dest types.Address, feeUnits uint64) (string, error) {
	transfer := tx.Construct(acc.Address, dest, h.ID)

	senderKey, err := acc.PaymentKey.Signer()
	if err != nil {
		return "", fmt.Errorf("sender key: %w", err)
	}
	if err := transfer.SignSender(senderKey); err != nil {
		return "", err
	}

	wire, err := tx.Deserialize(transfer.Serialize())
	if err != nil {
		return "", fmt.Errorf("round trip: %w", err)
	}

	sponsorKey, err := o.sponsor.PaymentKey.Signer()
	if err != nil {
		return "", fmt.Errorf("sponsor key: %w", err)
	}
	if err := wire.Sponsor(sponsorKey, feeUnits); err != nil {
		return "", err
	}
	if err := wire.Verify(); err != nil {
		return "", err
	}

	return o.relay.Broadcast(ctx, wire.Serialize())
}

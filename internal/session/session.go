// Package session owns the in-memory state of one sweep session: wallet
// material, the account directory, cached holdings, transfer attempts and
// the destination address. Nothing here is ever persisted.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/namesweep/namesweep/config"
	"github.com/namesweep/namesweep/internal/log"
	"github.com/namesweep/namesweep/internal/registry"
	"github.com/namesweep/namesweep/internal/transfer"
	"github.com/namesweep/namesweep/internal/wallet"
	"github.com/namesweep/namesweep/pkg/types"
)

// Session errors.
var (
	ErrNoWallet      = errors.New("session: no seed imported")
	ErrNoDestination = errors.New("session: no destination address set")
	ErrBadPhrase     = errors.New("session: phrase must have exactly 12 or 24 words")
	ErrNoSuchAccount = errors.New("session: no such account")
)

// Session is passed explicitly to every RPC handler; there is no package
// global. One session exists per daemon process.
type Session struct {
	cfg *config.Config
	reg *registry.Client

	mu        sync.RWMutex
	connected bool
	dest      types.Address
	destSet   bool
	material  *wallet.Material
	dir       *wallet.Directory
	orch      *transfer.Orchestrator
	holdings  map[types.Address]registry.Holdings
}

// New creates an empty session. A destination configured in cfg is applied
// immediately; session_connect can override it.
func New(cfg *config.Config, reg *registry.Client) *Session {
	s := &Session{
		cfg:      cfg,
		reg:      reg,
		holdings: make(map[types.Address]registry.Holdings),
	}
	if cfg.Sweep.Destination != "" {
		if addr, err := types.ParseAddress(cfg.Sweep.Destination); err == nil {
			s.dest = addr
			s.destSet = true
		}
	}
	return s
}

// Connect marks the session connected and sets the destination address that
// receives swept names.
func (s *Session) Connect(dest string) error {
	addr, err := types.ParseAddress(dest)
	if err != nil {
		return fmt.Errorf("session: destination: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dest = addr
	s.destSet = true
	s.connected = true
	log.Session.Info().Str("destination", addr.String()).Msg("Session connected")
	return nil
}

// Disconnect marks the session disconnected. Wallet material, if any, stays
// until Clear.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
}

// ImportPhrase tokenizes a raw seed phrase, derives wallet material and
// discovers used accounts. Importing replaces any previous material, which
// is cleared first. Material is created exactly once per valid phrase.
func (s *Session) ImportPhrase(ctx context.Context, raw string) error {
	words := wallet.SplitPhrase(raw)
	if words == nil {
		return ErrBadPhrase
	}

	material, err := wallet.Derive(words, nil)
	if err != nil {
		return fmt.Errorf("session: derive: %w", err)
	}

	if err := material.Discover(ctx, s.reg, s.cfg.Sweep.MaxAccounts); err != nil {
		// Material stays usable with the sponsor account alone.
		log.Session.Warn().Err(err).Msg("Account discovery failed, continuing with one account")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.material != nil {
		s.material.Clear()
	}
	s.material = material
	s.dir = wallet.NewDirectory(material)
	s.orch = transfer.New(s.reg, material.Sponsor(), s.cfg.Sweep.Fee)
	s.holdings = make(map[types.Address]registry.Holdings)

	log.Session.Info().
		Int("accounts", len(material.Accounts)).
		Str("sponsor", material.Sponsor().Address.String()).
		Msg("Seed imported")
	return nil
}

// Clear discards all wallet material and derived state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.material != nil {
		s.material.Clear()
	}
	s.material = nil
	s.dir = nil
	s.orch = nil
	s.holdings = make(map[types.Address]registry.Holdings)
	log.Session.Info().Msg("Session cleared")
}

// Status describes the session for the RPC surface.
type Status struct {
	Connected   bool   `json:"connected"`
	HasWallet   bool   `json:"has_wallet"`
	Accounts    int    `json:"accounts"`
	Page        int    `json:"page"`
	Pages       int    `json:"pages"`
	Fee         string `json:"fee"`
	Destination string `json:"destination,omitempty"`
	Network     string `json:"network"`
}

// Status returns a snapshot of the session.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Status{
		Connected: s.connected,
		HasWallet: s.material != nil,
		Network:   string(s.cfg.Network),
	}
	if s.destSet {
		st.Destination = s.dest.String()
	}
	if s.dir != nil {
		st.Accounts = s.dir.Total()
		st.Page = s.dir.Page()
		st.Pages = s.dir.Pages()
	}
	if s.orch != nil {
		st.Fee = s.orch.Fee()
	}
	return st
}

// Directory returns the account directory.
func (s *Session) Directory() (*wallet.Directory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dir == nil {
		return nil, ErrNoWallet
	}
	return s.dir, nil
}

// account resolves a derivation index to its account.
func (s *Session) account(index uint32) (*wallet.Account, error) {
	s.mu.RLock()
	dir := s.dir
	s.mu.RUnlock()
	if dir == nil {
		return nil, ErrNoWallet
	}
	acc, ok := dir.Account(index)
	if !ok {
		return nil, ErrNoSuchAccount
	}
	return acc, nil
}

// Lookup fetches the name holdings of an account, caching by address. A
// single holding gets its asset id resolved and the account decorated with
// the name. Results for accounts that left the visible page are kept; the
// cache is keyed by address.
func (s *Session) Lookup(ctx context.Context, index uint32) (registry.Holdings, error) {
	acc, err := s.account(index)
	if err != nil {
		return registry.Holdings{}, err
	}

	s.mu.RLock()
	cached, ok := s.holdings[acc.Address]
	s.mu.RUnlock()
	if ok && (cached.Kind != registry.SingleName || cached.IDResolved) {
		return cached, nil
	}

	h, err := s.reg.Lookup(ctx, acc.Address)
	if err != nil && h.Kind != registry.SingleName {
		return registry.Holdings{}, err
	}

	s.mu.Lock()
	s.holdings[acc.Address] = h
	dir := s.dir
	s.mu.Unlock()

	if h.Kind == registry.SingleName && dir != nil {
		dir.SetUsername(index, h.FullName)
	}
	return h, err
}

// SponsorBalance returns the sponsor account's native balance in smallest
// units. Advisory only: it never gates a transfer.
func (s *Session) SponsorBalance(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	material := s.material
	s.mu.RUnlock()
	if material == nil {
		return 0, ErrNoWallet
	}
	return s.reg.Balance(ctx, material.Sponsor().Address)
}

// SetFee applies a fee edit and returns the resulting fee string.
func (s *Session) SetFee(input string) (string, error) {
	s.mu.RLock()
	orch := s.orch
	s.mu.RUnlock()
	if orch == nil {
		return "", ErrNoWallet
	}
	return orch.SetFee(input), nil
}

// Send sweeps the single name held by the account at index to the session
// destination.
func (s *Session) Send(ctx context.Context, index uint32) (string, error) {
	acc, err := s.account(index)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	orch := s.orch
	dest := s.dest
	destSet := s.destSet
	s.mu.RUnlock()
	if orch == nil {
		return "", ErrNoWallet
	}
	if !destSet {
		return "", ErrNoDestination
	}

	h, err := s.Lookup(ctx, index)
	if err != nil {
		return "", err
	}
	return orch.Send(ctx, acc, h, dest)
}

// TransferStatus returns the attempt state for the account at index.
func (s *Session) TransferStatus(index uint32) (transfer.Attempt, error) {
	acc, err := s.account(index)
	if err != nil {
		return transfer.Attempt{}, err
	}
	s.mu.RLock()
	orch := s.orch
	s.mu.RUnlock()
	if orch == nil {
		return transfer.Attempt{}, ErrNoWallet
	}
	return orch.Status(acc.Address), nil
}

package rpc

import (
	"context"
	"errors"

	"github.com/namesweep/namesweep/internal/registry"
	"github.com/namesweep/namesweep/internal/session"
	"github.com/namesweep/namesweep/internal/transfer"
)

// toError maps session and transfer errors to JSON-RPC errors. Relay
// rejections carry their category in the error data so clients can tell a
// post-condition failure apart from transient trouble.
func toError(err error) *Error {
	switch {
	case errors.Is(err, session.ErrBadPhrase):
		return &Error{Code: CodeInvalidParams, Message: err.Error()}
	case errors.Is(err, session.ErrNoWallet),
		errors.Is(err, session.ErrNoDestination):
		return &Error{Code: CodeInvalidRequest, Message: err.Error()}
	case errors.Is(err, session.ErrNoSuchAccount):
		return &Error{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, transfer.ErrNotEligible),
		errors.Is(err, transfer.ErrIDUnresolved),
		errors.Is(err, transfer.ErrAlreadySent),
		errors.Is(err, transfer.ErrInFlight),
		errors.Is(err, transfer.ErrZeroFee):
		return &Error{Code: CodeInvalidRequest, Message: err.Error()}
	}

	var be *registry.BroadcastError
	if errors.As(err, &be) {
		return &Error{
			Code:    CodeInternalError,
			Message: be.Error(),
			Data:    map[string]string{"category": string(be.Category)},
		}
	}
	return &Error{Code: CodeInternalError, Message: err.Error()}
}

func (s *Server) handleSessionConnect(req *Request) (interface{}, *Error) {
	var params ConnectParam
	if errP := parseParams(req, &params); errP != nil {
		return nil, errP
	}
	if err := s.session.Connect(params.Destination); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	return s.session.Status(), nil
}

func (s *Server) handleSessionDisconnect(req *Request) (interface{}, *Error) {
	s.session.Disconnect()
	return s.session.Status(), nil
}

func (s *Server) handleSessionImportSeed(ctx context.Context, req *Request) (interface{}, *Error) {
	var params ImportSeedParam
	if errP := parseParams(req, &params); errP != nil {
		return nil, errP
	}
	if err := s.session.ImportPhrase(ctx, params.Phrase); err != nil {
		return nil, toError(err)
	}
	return s.session.Status(), nil
}

func (s *Server) handleSessionClear(req *Request) (interface{}, *Error) {
	s.session.Clear()
	return s.session.Status(), nil
}

func (s *Server) handleSessionStatus(req *Request) (interface{}, *Error) {
	return s.session.Status(), nil
}

func (s *Server) handleWalletListAccounts(req *Request) (interface{}, *Error) {
	dir, err := s.session.Directory()
	if err != nil {
		return nil, toError(err)
	}

	if req.Params != nil {
		var params PageParam
		if errP := parseParams(req, &params); errP != nil {
			return nil, errP
		}
		if params.Page > 0 {
			dir.SetPage(params.Page)
		}
	}

	active := dir.Active()
	accounts := make([]AccountResult, 0, len(active))
	for _, acc := range active {
		accounts = append(accounts, AccountResult{
			Index:    acc.Index,
			Address:  acc.Address.String(),
			Username: acc.Username,
		})
	}

	return ListAccountsResult{
		Total:    dir.Total(),
		Page:     dir.Page(),
		Pages:    dir.Pages(),
		Accounts: accounts,
	}, nil
}

func (s *Server) handleWalletGetAddress(req *Request) (interface{}, *Error) {
	var params AccountParam
	if errP := parseParams(req, &params); errP != nil {
		return nil, errP
	}

	dir, err := s.session.Directory()
	if err != nil {
		return nil, toError(err)
	}
	addr, ok := dir.AddressOf(params.Index)
	if !ok {
		return nil, toError(session.ErrNoSuchAccount)
	}
	return AddressResult{Index: params.Index, Address: addr.String()}, nil
}

func (s *Server) handleNamesLookup(ctx context.Context, req *Request) (interface{}, *Error) {
	var params AccountParam
	if errP := parseParams(req, &params); errP != nil {
		return nil, errP
	}

	h, err := s.session.Lookup(ctx, params.Index)
	// A single name whose id failed to resolve is still reported; the
	// unresolved id just keeps it ineligible.
	if err != nil && h.Kind != registry.SingleName {
		return nil, toError(err)
	}
	return lookupResult(h, ManyNamesManageURL), nil
}

func (s *Server) handleSponsorGetBalance(ctx context.Context, req *Request) (interface{}, *Error) {
	dir, err := s.session.Directory()
	if err != nil {
		return nil, toError(err)
	}
	addr, _ := dir.AddressOf(0)

	bal, err := s.session.SponsorBalance(ctx)
	if err != nil {
		return nil, toError(err)
	}
	return BalanceResult{Address: addr.String(), Balance: bal}, nil
}

func (s *Server) handleTransferSetFee(req *Request) (interface{}, *Error) {
	var params FeeParam
	if errP := parseParams(req, &params); errP != nil {
		return nil, errP
	}

	fee, err := s.session.SetFee(params.Fee)
	if err != nil {
		return nil, toError(err)
	}
	return FeeResult{Fee: fee}, nil
}

func (s *Server) handleTransferSend(ctx context.Context, req *Request) (interface{}, *Error) {
	var params AccountParam
	if errP := parseParams(req, &params); errP != nil {
		return nil, errP
	}

	txid, err := s.session.Send(ctx, params.Index)
	if err != nil {
		return nil, toError(err)
	}
	return SendResult{TxID: txid, State: transfer.Sent.String()}, nil
}

func (s *Server) handleTransferStatus(req *Request) (interface{}, *Error) {
	var params AccountParam
	if errP := parseParams(req, &params); errP != nil {
		return nil, errP
	}

	attempt, err := s.session.TransferStatus(params.Index)
	if err != nil {
		return nil, toError(err)
	}
	return StatusResult{Index: params.Index, Attempt: attempt}, nil
}

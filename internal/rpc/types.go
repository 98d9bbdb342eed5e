package rpc

import (
	"github.com/namesweep/namesweep/internal/registry"
	"github.com/namesweep/namesweep/internal/transfer"
)

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeNotFound       = -32000
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      interface{} `json:"id"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ── Param types ─────────────────────────────────────────────────────────

// ConnectParam is used by session_connect.
type ConnectParam struct {
	Destination string `json:"destination"`
}

// ImportSeedParam is used by session_importSeed. Phrase is the raw user
// input; tokenizing happens server-side.
type ImportSeedParam struct {
	Phrase string `json:"phrase"`
}

// PageParam is used by wallet_listAccounts.
type PageParam struct {
	Page int `json:"page,omitempty"`
}

// AccountParam is used by endpoints addressing one account by derivation
// index.
type AccountParam struct {
	Index uint32 `json:"index"`
}

// FeeParam is used by transfer_setFee.
type FeeParam struct {
	Fee string `json:"fee"`
}

// ── Result types ────────────────────────────────────────────────────────

// AccountResult describes one account on a directory page.
type AccountResult struct {
	Index    uint32 `json:"index"`
	Address  string `json:"address"`
	Username string `json:"username,omitempty"`
}

// ListAccountsResult is the wallet_listAccounts response.
type ListAccountsResult struct {
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	Pages    int             `json:"pages"`
	Accounts []AccountResult `json:"accounts"`
}

// AddressResult is the wallet_getAddress response.
type AddressResult struct {
	Index   uint32 `json:"index"`
	Address string `json:"address"`
}

// LookupResult is the names_lookup response. ManageURL points at the
// external tool for addresses holding more than one name.
type LookupResult struct {
	Kind       string `json:"kind"`
	FullName   string `json:"full_name,omitempty"`
	ID         uint64 `json:"id,omitempty"`
	IDResolved bool   `json:"id_resolved"`
	Count      int    `json:"count,omitempty"`
	Eligible   bool   `json:"eligible"`
	ManageURL  string `json:"manage_url,omitempty"`
}

// BalanceResult is the sponsor_getBalance response.
type BalanceResult struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

// FeeResult is the transfer_setFee response.
type FeeResult struct {
	Fee string `json:"fee"`
}

// SendResult is the transfer_send response.
type SendResult struct {
	TxID  string `json:"txid"`
	State string `json:"state"`
}

// StatusResult is the transfer_status response.
type StatusResult struct {
	Index   uint32           `json:"index"`
	Attempt transfer.Attempt `json:"attempt"`
}

func lookupResult(h registry.Holdings, manageURL string) LookupResult {
	res := LookupResult{
		Kind:       h.Kind.String(),
		FullName:   h.FullName,
		IDResolved: h.IDResolved,
		Count:      h.Count,
		Eligible:   h.Eligible(),
	}
	if h.IDResolved {
		res.ID = h.ID
	}
	if h.Kind == registry.ManyNames {
		res.ManageURL = manageURL
	}
	return res
}

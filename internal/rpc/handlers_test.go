package rpc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/namesweep/namesweep/config"
	"github.com/namesweep/namesweep/internal/registry"
	"github.com/namesweep/namesweep/internal/session"
	"github.com/namesweep/namesweep/internal/wallet"
	"github.com/namesweep/namesweep/pkg/types"
)

const testPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

var testDest = mustAddr("00112233445566778899aabbccddeeff00112233").String()

func mustAddr(s string) types.Address {
	a, err := types.HexToAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// fakeBackend serves registry, names and relay endpoints for handler tests.
func fakeBackend(t *testing.T, namesByAddr map[string]string) *httptest.Server {
	t.Helper()
	sponsor := sponsorAddr(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/balances"):
			// Only the sponsor is funded, so account discovery stops at
			// the first probed address.
			if strings.Contains(path, sponsor) {
				w.Write([]byte(`{"stx":{"balance":"1000000"}}`))
				return
			}
			w.Write([]byte(`{"stx":{"balance":"0"}}`))
		case strings.HasPrefix(path, "/names/address/"):
			addr := strings.TrimSuffix(strings.TrimPrefix(path, "/names/address/"), "/valid")
			body, ok := namesByAddr[addr]
			if !ok {
				body = `{"names":[],"total":0}`
			}
			w.Write([]byte(body))
		case strings.HasSuffix(path, "/id"):
			w.Write([]byte(`{"id":"42"}`))
		case path == "/transactions":
			w.Write([]byte(`{"txid":"txid-1"}`))
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testServer(t *testing.T, namesByAddr map[string]string) *Server {
	t.Helper()
	backend := fakeBackend(t, namesByAddr)

	cfg := config.DefaultMainnet()
	cfg.Registry.URL = backend.URL
	cfg.Registry.RelayURL = backend.URL
	cfg.Registry.Timeout = 2 * time.Second
	cfg.Sweep.MaxAccounts = 30

	sess := session.New(cfg, registry.New(cfg.Registry))
	return New("127.0.0.1:0", sess, cfg.RPC)
}

func sponsorAddr(t *testing.T) string {
	t.Helper()
	m, err := wallet.Derive(wallet.SplitPhrase(testPhrase), nil)
	if err != nil {
		t.Fatal(err)
	}
	return m.Sponsor().Address.String()
}

func call(t *testing.T, s *Server, method string, params interface{}) (interface{}, *Error) {
	t.Helper()
	return s.dispatch(context.Background(), &Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
}

func importSeed(t *testing.T, s *Server) {
	t.Helper()
	if _, errP := call(t, s, "session_importSeed", map[string]string{"phrase": testPhrase}); errP != nil {
		t.Fatalf("import: %v", errP.Message)
	}
}

func TestSessionImportSeed(t *testing.T) {
	s := testServer(t, nil)

	res, errP := call(t, s, "session_importSeed", map[string]string{"phrase": testPhrase})
	if errP != nil {
		t.Fatal(errP.Message)
	}
	st := res.(session.Status)
	if !st.HasWallet || st.Accounts < 1 {
		t.Errorf("status = %+v, want a wallet with accounts", st)
	}
}

func TestSessionImportSeed_BadPhrase(t *testing.T) {
	s := testServer(t, nil)
	_, errP := call(t, s, "session_importSeed", map[string]string{"phrase": "too short"})
	if errP == nil || errP.Code != CodeInvalidParams {
		t.Errorf("got %+v, want invalid params", errP)
	}
}

func TestSessionConnectAndStatus(t *testing.T) {
	s := testServer(t, nil)

	if _, errP := call(t, s, "session_connect", map[string]string{"destination": "garbage"}); errP == nil {
		t.Error("bad destination should be rejected")
	}

	res, errP := call(t, s, "session_connect", map[string]string{"destination": testDest})
	if errP != nil {
		t.Fatal(errP.Message)
	}
	if st := res.(session.Status); !st.Connected {
		t.Error("connect should mark the session connected")
	}

	res, _ = call(t, s, "session_disconnect", nil)
	if st := res.(session.Status); st.Connected {
		t.Error("disconnect should clear the flag")
	}
}

func TestWalletListAccounts_Paging(t *testing.T) {
	s := testServer(t, nil)

	if _, errP := call(t, s, "wallet_listAccounts", nil); errP == nil {
		t.Error("listing without a wallet should fail")
	}

	importSeed(t, s)
	// One derived account: one page of one entry.
	res, errP := call(t, s, "wallet_listAccounts", map[string]int{"page": 5})
	if errP != nil {
		t.Fatal(errP.Message)
	}
	list := res.(ListAccountsResult)
	if list.Page != 1 || list.Pages != 1 {
		t.Errorf("page/pages = %d/%d, want 1/1 (clamped)", list.Page, list.Pages)
	}
	if len(list.Accounts) != list.Total {
		t.Errorf("accounts %d != total %d", len(list.Accounts), list.Total)
	}
	if list.Accounts[0].Index != 0 {
		t.Error("first account should be index 0")
	}
}

func TestWalletGetAddress(t *testing.T) {
	s := testServer(t, nil)
	importSeed(t, s)

	res, errP := call(t, s, "wallet_getAddress", map[string]int{"index": 0})
	if errP != nil {
		t.Fatal(errP.Message)
	}
	if got := res.(AddressResult); got.Address != sponsorAddr(t) {
		t.Errorf("address = %q, want sponsor address", got.Address)
	}

	if _, errP := call(t, s, "wallet_getAddress", map[string]int{"index": 99}); errP == nil || errP.Code != CodeNotFound {
		t.Errorf("out-of-range index: %+v, want not found", errP)
	}
}

func TestNamesLookupAndSend(t *testing.T) {
	names := map[string]string{
		sponsorAddr(t): `{"names":[{"full_name":"alice.ns"}],"total":1}`,
	}
	s := testServer(t, names)
	importSeed(t, s)
	if _, errP := call(t, s, "session_connect", map[string]string{"destination": testDest}); errP != nil {
		t.Fatal(errP.Message)
	}

	res, errP := call(t, s, "names_lookup", map[string]int{"index": 0})
	if errP != nil {
		t.Fatal(errP.Message)
	}
	lk := res.(LookupResult)
	if lk.Kind != "single" || !lk.Eligible || lk.ID != 42 {
		t.Errorf("lookup = %+v, want eligible single with id 42", lk)
	}

	res, errP = call(t, s, "transfer_send", map[string]int{"index": 0})
	if errP != nil {
		t.Fatal(errP.Message)
	}
	if sent := res.(SendResult); sent.TxID != "txid-1" || sent.State != "sent" {
		t.Errorf("send = %+v", sent)
	}

	res, _ = call(t, s, "transfer_status", map[string]int{"index": 0})
	if st := res.(StatusResult); st.Attempt.TxID != "txid-1" {
		t.Errorf("status = %+v", st)
	}

	// Terminal state rejects a second send.
	if _, errP := call(t, s, "transfer_send", map[string]int{"index": 0}); errP == nil {
		t.Error("second send should fail")
	}
}

func TestTransferSend_Ineligible(t *testing.T) {
	names := map[string]string{
		sponsorAddr(t): `{"names":[{"full_name":"a.ns"},{"full_name":"b.ns"}],"total":2}`,
	}
	s := testServer(t, names)
	importSeed(t, s)
	if _, errP := call(t, s, "session_connect", map[string]string{"destination": testDest}); errP != nil {
		t.Fatal(errP.Message)
	}

	res, errP := call(t, s, "names_lookup", map[string]int{"index": 0})
	if errP != nil {
		t.Fatal(errP.Message)
	}
	lk := res.(LookupResult)
	if lk.Kind != "many" || lk.Eligible || lk.ManageURL == "" {
		t.Errorf("lookup = %+v, want ineligible many with manage url", lk)
	}

	if _, errP := call(t, s, "transfer_send", map[string]int{"index": 0}); errP == nil || errP.Code != CodeInvalidRequest {
		t.Errorf("send: %+v, want invalid request", errP)
	}
}

func TestTransferSetFee(t *testing.T) {
	s := testServer(t, nil)
	importSeed(t, s)

	res, errP := call(t, s, "transfer_setFee", map[string]string{"fee": "0.001"})
	if errP != nil {
		t.Fatal(errP.Message)
	}
	if got := res.(FeeResult); got.Fee != "0.001" {
		t.Errorf("fee = %q", got.Fee)
	}
}

func TestSponsorGetBalance(t *testing.T) {
	s := testServer(t, nil)
	importSeed(t, s)

	res, errP := call(t, s, "sponsor_getBalance", nil)
	if errP != nil {
		t.Fatal(errP.Message)
	}
	bal := res.(BalanceResult)
	if bal.Balance != 1000000 {
		t.Errorf("balance = %d", bal.Balance)
	}
	if bal.Address != sponsorAddr(t) {
		t.Errorf("address = %q", bal.Address)
	}
}

func TestDispatch_MethodNotFound(t *testing.T) {
	s := testServer(t, nil)
	_, errP := call(t, s, "bogus_method", nil)
	if errP == nil || errP.Code != CodeMethodNotFound {
		t.Errorf("got %+v, want method not found", errP)
	}
}

func TestHandleRequest_RejectsGet(t *testing.T) {
	s := testServer(t, nil)
	s.allowedNets = nil

	w := httptest.NewRecorder()
	s.handleRequest(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(w.Body.String(), "only POST") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestHandleRequest_IPFilter(t *testing.T) {
	s := testServer(t, nil) // config allows 127.0.0.1 only

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.RemoteAddr = "10.0.0.9:1234"
	w := httptest.NewRecorder()
	s.handleRequest(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

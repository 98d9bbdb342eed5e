package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/namesweep/namesweep/config"
	"github.com/namesweep/namesweep/internal/log"
	"github.com/namesweep/namesweep/internal/metrics"
	"github.com/namesweep/namesweep/pkg/types"
)

// Client talks to the name registry API and the transaction relay. Every
// call is bounded by the configured timeout; a timeout is an ordinary
// retryable failure, never a crash.
type Client struct {
	registryURL string
	relayURL    string
	http        *http.Client
}

// New creates a registry client from config.
func New(cfg config.RegistryConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		registryURL: cfg.URL,
		relayURL:    cfg.RelayURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Balance returns the native token balance of an address in smallest units.
// An error means the balance is unknown, not zero.
func (c *Client) Balance(ctx context.Context, addr types.Address) (uint64, error) {
	metrics.LookupsCount.WithLabelValues("balance").Inc()

	var out struct {
		STX struct {
			Balance string `json:"balance"`
		} `json:"stx"`
	}
	path := fmt.Sprintf("/address/%s/balances", addr)
	if err := c.get(ctx, c.registryURL+path, &out); err != nil {
		metrics.LookupErrorsCount.WithLabelValues("balance").Inc()
		return 0, fmt.Errorf("fetch balance: %w", err)
	}

	bal, err := strconv.ParseUint(out.STX.Balance, 10, 64)
	if err != nil {
		metrics.LookupErrorsCount.WithLabelValues("balance").Inc()
		return 0, fmt.Errorf("parse balance %q: %w", out.STX.Balance, err)
	}
	return bal, nil
}

// NamesOf returns the valid name holdings of an address. The registry filters
// to valid records server-side. The asset id of a single holding is not
// resolved here; see ResolveID.
func (c *Client) NamesOf(ctx context.Context, addr types.Address) (Holdings, error) {
	metrics.LookupsCount.WithLabelValues("names").Inc()

	var out struct {
		Names []struct {
			FullName string `json:"full_name"`
		} `json:"names"`
		Total int `json:"total"`
	}
	path := fmt.Sprintf("/names/address/%s/valid", addr)
	if err := c.get(ctx, c.registryURL+path, &out); err != nil {
		metrics.LookupErrorsCount.WithLabelValues("names").Inc()
		return Holdings{}, fmt.Errorf("fetch names: %w", err)
	}

	switch {
	case out.Total == 0:
		return Holdings{Kind: NoName}, nil
	case out.Total == 1:
		if len(out.Names) == 0 {
			metrics.LookupErrorsCount.WithLabelValues("names").Inc()
			return Holdings{}, fmt.Errorf("registry reported total 1 with empty name list")
		}
		return Holdings{Kind: SingleName, FullName: out.Names[0].FullName}, nil
	default:
		return Holdings{Kind: ManyNames, Count: out.Total}, nil
	}
}

// ResolveID resolves the numeric asset id of a full name.
func (c *Client) ResolveID(ctx context.Context, fullName string) (uint64, error) {
	metrics.LookupsCount.WithLabelValues("id").Inc()

	var out struct {
		ID string `json:"id"`
	}
	path := fmt.Sprintf("/names/%s/id", url.PathEscape(fullName))
	if err := c.get(ctx, c.registryURL+path, &out); err != nil {
		metrics.LookupErrorsCount.WithLabelValues("id").Inc()
		return 0, fmt.Errorf("resolve id of %s: %w", fullName, err)
	}

	id, err := strconv.ParseUint(out.ID, 10, 64)
	if err != nil {
		metrics.LookupErrorsCount.WithLabelValues("id").Inc()
		return 0, fmt.Errorf("parse id %q: %w", out.ID, err)
	}
	return id, nil
}

// Lookup combines NamesOf with id resolution for single holdings. When the
// id lookup fails the single holding is still returned, unresolved, together
// with the error.
func (c *Client) Lookup(ctx context.Context, addr types.Address) (Holdings, error) {
	h, err := c.NamesOf(ctx, addr)
	if err != nil {
		return Holdings{}, err
	}
	if h.Kind != SingleName {
		return h, nil
	}
	id, err := c.ResolveID(ctx, h.FullName)
	if err != nil {
		log.Registry.Warn().Err(err).Str("name", h.FullName).Msg("Asset id unresolved")
		return h, err
	}
	h.ID = id
	h.IDResolved = true
	return h, nil
}

// Used reports whether an address shows any on-ledger activity, meaning a
// non-zero balance or at least one valid name.
func (c *Client) Used(ctx context.Context, addr types.Address) (bool, error) {
	bal, err := c.Balance(ctx, addr)
	if err != nil {
		return false, err
	}
	if bal > 0 {
		return true, nil
	}
	h, err := c.NamesOf(ctx, addr)
	if err != nil {
		return false, err
	}
	return h.Kind != NoName, nil
}

// get performs a GET request and decodes the JSON response body.
func (c *Client) get(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

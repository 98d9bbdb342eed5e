package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/namesweep/namesweep/internal/metrics"
)

// RejectCategory classifies why the relay rejected a transaction.
type RejectCategory string

const (
	// RejectPostCondition means the ledger aborted the transfer because its
	// post condition did not hold. Distinguishable so the operator can tell
	// "name moved out from under us" apart from transient failures.
	RejectPostCondition RejectCategory = "post_condition"

	RejectFeeTooLow      RejectCategory = "fee_too_low"
	RejectBadSignature   RejectCategory = "bad_signature"
	RejectNotEnoughFunds RejectCategory = "not_enough_funds"
	RejectOther          RejectCategory = "other"
)

// BroadcastError is a typed relay rejection.
type BroadcastError struct {
	Category RejectCategory
	Reason   string
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("broadcast rejected (%s): %s", e.Category, e.Reason)
}

// IsPostConditionReject reports whether err is a post-condition rejection.
func IsPostConditionReject(err error) bool {
	var be *BroadcastError
	return errors.As(err, &be) && be.Category == RejectPostCondition
}

// categorize maps the relay's rejection reason to a category.
func categorize(reason string) RejectCategory {
	switch reason {
	case "PostConditionFailed", "post_condition_failed":
		return RejectPostCondition
	case "FeeTooLow", "fee_too_low":
		return RejectFeeTooLow
	case "SignatureValidation", "bad_signature":
		return RejectBadSignature
	case "NotEnoughFunds", "not_enough_funds":
		return RejectNotEnoughFunds
	default:
		return RejectOther
	}
}

// Broadcast submits a fully signed, hex-serialized transaction to the relay
// and returns the transaction id it was accepted under.
func (c *Client) Broadcast(ctx context.Context, txHex string) (string, error) {
	body, err := json.Marshal(map[string]string{"tx": txHex})
	if err != nil {
		return "", fmt.Errorf("marshal broadcast body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.relayURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BroadcastErrorsCount.WithLabelValues(string(RejectOther)).Inc()
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var rej struct {
			Error  string `json:"error"`
			Reason string `json:"reason"`
		}
		if err := json.Unmarshal(raw, &rej); err != nil || rej.Reason == "" {
			rej.Reason = fmt.Sprintf("status %d", resp.StatusCode)
		}
		cat := categorize(rej.Reason)
		metrics.BroadcastErrorsCount.WithLabelValues(string(cat)).Inc()
		return "", &BroadcastError{Category: cat, Reason: rej.Reason}
	}

	var out struct {
		TxID string `json:"txid"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.TxID == "" {
		return "", fmt.Errorf("relay returned no txid")
	}
	return out.TxID, nil
}

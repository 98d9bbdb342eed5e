// Package registry implements the HTTP client for the public name registry
// and the transaction relay.
package registry

// HoldingsKind classifies how many valid names an address holds.
type HoldingsKind int

const (
	// NoName means the address holds no valid name.
	NoName HoldingsKind = iota

	// SingleName means the address holds exactly one valid name. Only this
	// kind can become transfer-eligible.
	SingleName

	// ManyNames means the address holds more than one valid name. Such
	// addresses are managed externally, never swept.
	ManyNames
)

func (k HoldingsKind) String() string {
	switch k {
	case NoName:
		return "none"
	case SingleName:
		return "single"
	case ManyNames:
		return "many"
	default:
		return "unknown"
	}
}

// Holdings describes the valid names held by one address. For SingleName the
// numeric asset id is resolved in a second lookup; until that succeeds
// IDResolved is false and the holding cannot be transferred.
type Holdings struct {
	Kind       HoldingsKind
	FullName   string // SingleName only
	ID         uint64 // SingleName only, valid when IDResolved
	IDResolved bool
	Count      int // ManyNames only
}

// Eligible reports whether these holdings can be swept: exactly one name
// with its asset id resolved.
func (h Holdings) Eligible() bool {
	return h.Kind == SingleName && h.IDResolved
}

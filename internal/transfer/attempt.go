package transfer

// State is the lifecycle of one account's transfer attempt.
type State int

const (
	// Idle means no transfer is running and none has succeeded. Failed
	// attempts return here.
	Idle State = iota

	// Sending means a transfer is in flight for this account.
	Sending

	// Sent is terminal: the transfer was broadcast and accepted. No second
	// transfer is ever attempted for the account.
	Sent
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sending:
		return "sending"
	case Sent:
		return "sent"
	default:
		return "unknown"
	}
}

// Attempt is the recorded transfer attempt for one account address.
type Attempt struct {
	State State  `json:"state"`
	TxID  string `json:"txid,omitempty"`

	// LastError holds the failure that returned the attempt to Idle, empty
	// once a later attempt starts or succeeds.
	LastError string `json:"last_error,omitempty"`
}

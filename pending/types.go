package pending

import (
	"time"
)

// Pending is a typed interaction awaiting an external party.
type Pending[T any] struct {
	ID        string
	Namespace string
	Kind      string // e.g. eth_sendTransaction, eth_signTypedData_v4
	Resource  string // frame URL that asked for the interaction

	CreatedAt time.Time

	Data T
}

// Spec carries inputs to create a Pending.
type Spec[T any] struct {
	Namespace string
	Kind      string
	Resource  string

	Data T
}

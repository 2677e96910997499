package resolve

import (
	"net/http"

	"github.com/viant/frames/schema"
)

// Kind is the classified outcome of a proxy call.
type Kind string

const (
	KindDone         Kind = "done"
	KindRedirect     Kind = "redirect"
	KindErrorMessage Kind = "errorMessage"
	KindRequestError Kind = "requestError"
)

// Expect is the body shape a 2xx response must have.
type Expect int

const (
	// ExpectFrame expects a multi-specification parse result.
	ExpectFrame Expect = iota
	// ExpectTransaction expects a transaction intent.
	ExpectTransaction
)

// Input describes a completed (or failed) proxy call.
type Input struct {
	Method string
	// IsAction is set for POST button actions.
	IsAction bool
	// IsRedirectButton is set for post_redirect presses; a 2xx {location} body is then a redirect.
	IsRedirectButton bool
	Expect           Expect
	Status           int
	Header           http.Header
	Body             []byte
	Err              error
}

// Outcome is the classification result.
type Outcome struct {
	Kind     Kind
	Status   int
	Location string
	Message  string
	// Info is a top-level message accompanying a successful action result.
	Info   string
	Result *schema.ParseResultWithSpecs
	Intent *schema.TransactionIntent
	Err    error
}

// Failed reports a requestError outcome.
func (o *Outcome) Failed() bool {
	return o.Kind == KindRequestError
}

package stack

import (
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/viant/frames/schema"
)

// Status discriminates stack item variants.
type Status string

const (
	StatusPending      Status = "pending"
	StatusDone         Status = "done"
	StatusDoneRedirect Status = "doneRedirect"
	StatusRequestError Status = "requestError"
	StatusMessage      Status = "message"
)

// MessageKind is the kind of a structured server message.
type MessageKind string

const (
	MessageInfo  MessageKind = "info"
	MessageError MessageKind = "error"
)

// Identity correlates a pending item with the transition that resolves it.
type Identity struct {
	ID        string
	Timestamp time.Time
}

// NewIdentity returns a fresh identity stamped with now.
func NewIdentity(now time.Time) Identity {
	return Identity{ID: uuid.NewString(), Timestamp: now}
}

// Same reports whether two identities refer to the same logical item.
func (i Identity) Same(other Identity) bool {
	return i.ID != "" && i.ID == other.ID
}

// Request describes the outbound call recorded with an item.
type Request struct {
	Method       string
	URL          string
	Body         map[string]any
	SearchParams url.Values
	Button       *schema.Button
	ButtonIndex  int
	Source       string
}

// Item is one immutable record of a request/response exchange.
type Item struct {
	Identity
	Status      Status
	Request     *Request
	Result      *schema.ParseResultWithSpecs
	HTTPStatus  int
	Speed       time.Duration
	Location    string
	Message     string
	MessageKind MessageKind
	Err         error
	Extra       map[string]any
}

// Method returns the HTTP method of the originating request.
func (i Item) Method() string {
	if i.Request == nil {
		return ""
	}
	return i.Request.Method
}

// Frame returns the frame of a done item for the given specification.
func (i Item) Frame(specification string) *schema.Frame {
	if i.Status != StatusDone || i.Result == nil {
		return nil
	}
	return i.Result.Frame(specification)
}

// Pending builds a pending item for request.
func Pending(identity Identity, request *Request) Item {
	return Item{Identity: identity, Status: StatusPending, Request: request}
}

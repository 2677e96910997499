package engine

import (
	"github.com/viant/frames/signer"
	"github.com/viant/frames/stack"
)

// Fetch sources own separate abort handles.
const (
	SourceInitial = "initial"
	SourceContext = "context"
)

type (
	// Request is one of GetRequest, PostRequest or TransactionRequest.
	Request interface {
		method() string
	}

	// GetRequest loads a frame URL.
	GetRequest struct {
		URL string
	}

	// PostRequest posts a signed button action.
	PostRequest struct {
		Action signer.ActionContext
		// Extra is merged into the signed body after the host's extra payload.
		Extra map[string]any
		// SourceItem, when set, is resolved instead of pushing a new pending item.
		SourceItem *stack.Item
	}

	// TransactionRequest runs the transaction or signature exchange of a tx button.
	TransactionRequest struct {
		Action     signer.ActionContext
		SourceItem *stack.Item
	}
)

func (r *GetRequest) method() string         { return "GET" }
func (r *PostRequest) method() string        { return "POST" }
func (r *TransactionRequest) method() string { return "POST" }

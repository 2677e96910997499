package engine

import (
	"context"

	"github.com/viant/frames/schema"
	"github.com/viant/frames/stack"
)

// TransactionCall is handed to the host wallet during the execution phase.
type TransactionCall struct {
	// PendingID identifies the call in PendingTransactions and CancelTransaction.
	PendingID   string
	Intent      *schema.TransactionIntent
	Frame       *schema.Frame
	Button      schema.Button
	ButtonIndex int
	Address     string
	URL         string
}

// TransactionStage names a transaction lifecycle event.
type TransactionStage string

const (
	TransactionDataStart         TransactionStage = "transactionDataStart"
	TransactionDataSuccess       TransactionStage = "transactionDataSuccess"
	TransactionDataError         TransactionStage = "transactionDataError"
	TransactionStart             TransactionStage = "transactionStart"
	TransactionSuccess           TransactionStage = "transactionSuccess"
	TransactionError             TransactionStage = "transactionError"
	TransactionProcessingStart   TransactionStage = "transactionProcessingStart"
	TransactionProcessingSuccess TransactionStage = "transactionProcessingSuccess"
	TransactionProcessingError   TransactionStage = "transactionProcessingError"
)

// TransactionEvent reports progress of a tx button press.
type TransactionEvent struct {
	Stage  TransactionStage
	Button schema.Button
	// Method is the intent method once known.
	Method        string
	TransactionID string
	Err           error
}

// Handler holds host callbacks. Nil callbacks are skipped.
type Handler struct {
	OnLinkButtonClicked func(ctx context.Context, target string) error
	OnMintButtonClicked func(ctx context.Context, target string) error
	OnRedirect          func(ctx context.Context, location string, item stack.Item)
	OnMessage           func(ctx context.Context, message string, kind stack.MessageKind)
	OnError             func(ctx context.Context, err error)
	OnConnectWallet     func(ctx context.Context) error
	// OnTransaction executes eth_sendTransaction and returns the transaction id.
	OnTransaction func(ctx context.Context, call *TransactionCall) (string, error)
	// OnSignature executes eth_signTypedData_v4 and returns the signature.
	OnSignature        func(ctx context.Context, call *TransactionCall) (string, error)
	OnTransactionEvent func(ctx context.Context, event *TransactionEvent)
}

func (h *Handler) redirect(ctx context.Context, location string, item stack.Item) {
	if h != nil && h.OnRedirect != nil {
		h.OnRedirect(ctx, location, item)
	}
}

func (h *Handler) message(ctx context.Context, message string, kind stack.MessageKind) {
	if h != nil && h.OnMessage != nil {
		h.OnMessage(ctx, message, kind)
	}
}

func (h *Handler) report(ctx context.Context, err error) {
	if h != nil && h.OnError != nil {
		h.OnError(ctx, err)
	}
}

func (h *Handler) event(ctx context.Context, event *TransactionEvent) {
	if h != nil && h.OnTransactionEvent != nil {
		h.OnTransactionEvent(ctx, event)
	}
}

// executor returns the wallet callback for method, or nil.
func (h *Handler) executor(method string) func(ctx context.Context, call *TransactionCall) (string, error) {
	if h == nil {
		return nil
	}
	if method == schema.MethodSignTypedDataV4 {
		return h.OnSignature
	}
	return h.OnTransaction
}

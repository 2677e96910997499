package engine

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/viant/frames/pending"
	"github.com/viant/frames/resolve"
	"github.com/viant/frames/schema"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// fetchTransaction runs the intent, execution and completion phases of a tx press.
func (e *Engine) fetchTransaction(ctx context.Context, request *TransactionRequest) {
	ctx, release := e.aborts.Start(ctx, sourceKey(request.SourceItem))
	defer release()
	ctx, span := e.tracer.Start(ctx, "frames.transaction", trace.WithAttributes(
		attribute.String("frames.url", request.Action.URL),
	))
	defer span.End()

	button := request.Action.Button
	event := func(stage TransactionStage, method, id string, err error) {
		e.handler.Get().event(ctx, &TransactionEvent{Stage: stage, Button: button, Method: method, TransactionID: id, Err: err})
	}

	// intent
	event(TransactionDataStart, "", "", nil)
	intentCtx, intentSpan := e.startSpan(ctx, "POST", request.Action.URL)
	item, outcome, _, ok := e.post(intentCtx, intentSpan, &request.Action, nil, request.SourceItem, resolve.ExpectTransaction)
	if ok && outcome.Kind != resolve.KindDone {
		e.settle(intentCtx, intentSpan, item, outcome, 0)
	}
	intentSpan.End()
	if !ok || outcome.Kind != resolve.KindDone {
		if ctx.Err() == nil {
			event(TransactionDataError, "", "", outcomeErr(outcome))
		}
		return
	}
	intent := outcome.Intent
	if e.transactionDataSuffix != "" && intent.Method == schema.MethodSendTransaction {
		intent.Params = appendDataSuffix(intent.Params, e.transactionDataSuffix)
	}
	span.SetAttributes(attribute.String("frames.intent", intent.Method))
	event(TransactionDataSuccess, intent.Method, "", nil)

	// execution
	execute := e.handler.Get().executor(intent.Method)
	if execute == nil {
		err := &schema.TransactionHandlerIncompleteError{Method: intent.Method}
		e.fail(ctx, span, item, err)
		event(TransactionError, intent.Method, "", err)
		return
	}
	waitCtx, entry, err := e.pending.Create(ctx, pending.Spec[*schema.TransactionIntent]{
		Namespace: SourceContext,
		Kind:      intent.Method,
		Resource:  request.Action.URL,
		Data:      intent,
	})
	if err != nil {
		e.fail(ctx, span, item, &schema.TransactionHandlerFailedError{Method: intent.Method, Err: err})
		event(TransactionError, intent.Method, "", err)
		return
	}
	event(TransactionStart, intent.Method, "", nil)
	call := &TransactionCall{
		PendingID:   entry.ID,
		Intent:      intent,
		Frame:       request.Action.Frame,
		Button:      button,
		ButtonIndex: request.Action.ButtonIndex,
		Address:     request.Action.Address,
		URL:         request.Action.URL,
	}
	id, err := execute(waitCtx, call)
	if waitCtx.Err() != nil {
		_, _ = e.pending.Cancel(context.Background(), entry.ID)
		e.logger.Debug("transaction aborted", "item", item.ID, "pending", entry.ID, "method", intent.Method)
		return
	}
	_, _ = e.pending.Complete(ctx, entry.ID)
	if err != nil {
		failure := &schema.TransactionHandlerFailedError{Method: intent.Method, Err: err}
		e.fail(ctx, span, item, failure)
		event(TransactionError, intent.Method, "", failure)
		return
	}
	if id == "" {
		failure := &schema.TransactionHandlerIncompleteError{Method: intent.Method}
		e.fail(ctx, span, item, failure)
		event(TransactionError, intent.Method, "", failure)
		return
	}
	event(TransactionSuccess, intent.Method, id, nil)

	// completion
	event(TransactionProcessingStart, intent.Method, id, nil)
	action := request.Action
	action.TransactionID = id
	var framePostURL string
	if action.Frame != nil {
		framePostURL = action.Frame.PostURL
	}
	action.URL = firstNonEmpty(button.PostURL, framePostURL, button.Target)
	completion := e.fetchPost(ctx, &PostRequest{Action: action, SourceItem: &item})
	if ctx.Err() != nil {
		return
	}
	if completion == nil || completion.Failed() {
		event(TransactionProcessingError, intent.Method, id, outcomeErr(completion))
		return
	}
	event(TransactionProcessingSuccess, intent.Method, id, nil)
}

func outcomeErr(outcome *resolve.Outcome) error {
	if outcome == nil {
		return nil
	}
	if outcome.Err != nil {
		return outcome.Err
	}
	if outcome.Kind == resolve.KindErrorMessage {
		return &schema.ServerErrorMessage{Status: outcome.Status, Message: outcome.Message}
	}
	return nil
}

// appendDataSuffix appends a hex suffix to params.data, keeping other fields intact.
func appendDataSuffix(params json.RawMessage, suffix string) json.RawMessage {
	var fields map[string]any
	if err := json.Unmarshal(params, &fields); err != nil {
		return params
	}
	data, _ := fields["data"].(string)
	if data == "" {
		data = "0x"
	}
	fields["data"] = data + strings.TrimPrefix(suffix, "0x")
	ret, err := json.Marshal(fields)
	if err != nil {
		return params
	}
	return ret
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/viant/frames/proxy"
	"github.com/viant/frames/resolve"
	"github.com/viant/frames/schema"
	"github.com/viant/frames/signer"
	"github.com/viant/frames/stack"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// FetchFrame runs request and records its outcome on the stack. Runtime
// failures never surface here; the returned error reports misuse only.
func (e *Engine) FetchFrame(ctx context.Context, request Request, shouldClear bool) error {
	if request == nil {
		return ErrNilRequest
	}
	switch actual := request.(type) {
	case *GetRequest:
		if actual == nil {
			return ErrNilRequest
		}
		if shouldClear {
			e.Clear()
		}
		e.fetchGet(ctx, actual)
	case *PostRequest:
		if actual == nil {
			return ErrNilRequest
		}
		if shouldClear {
			e.Clear()
		}
		e.fetchPost(ctx, actual)
	case *TransactionRequest:
		if actual == nil {
			return ErrNilRequest
		}
		if shouldClear {
			e.Clear()
		}
		e.fetchTransaction(ctx, actual)
	default:
		return fmt.Errorf("engine: unsupported request type %T", request)
	}
	return nil
}

func (e *Engine) fetchGet(ctx context.Context, request *GetRequest) {
	ctx, release := e.aborts.Start(ctx, SourceInitial)
	defer release()
	ctx, span := e.startSpan(ctx, http.MethodGet, request.URL)
	defer span.End()

	item := stack.Pending(stack.NewIdentity(e.now()), &stack.Request{Method: http.MethodGet, URL: request.URL, Source: SourceInitial})
	e.store.Dispatch(stack.Load(item))

	started := e.now()
	resp, err := e.proxy.Get(ctx, request.URL)
	if aborted(ctx, span) {
		return
	}
	outcome := resolve.Classify(input(http.MethodGet, resp, err, false, resolve.ExpectFrame))
	e.settle(ctx, span, item, outcome, e.now().Sub(started))
}

func (e *Engine) fetchPost(ctx context.Context, request *PostRequest) *resolve.Outcome {
	source := sourceKey(request.SourceItem)
	ctx, release := e.aborts.Start(ctx, source)
	defer release()
	ctx, span := e.startSpan(ctx, http.MethodPost, request.Action.URL)
	defer span.End()

	item, outcome, speed, ok := e.post(ctx, span, &request.Action, request.Extra, request.SourceItem, resolve.ExpectFrame)
	if !ok {
		return outcome
	}
	e.settle(ctx, span, item, outcome, speed)
	return outcome
}

// post signs and sends a button action. It returns false when the call was
// aborted or already settled as a signing failure.
func (e *Engine) post(ctx context.Context, span trace.Span, action *signer.ActionContext, extra map[string]any, source *stack.Item, expect resolve.Expect) (stack.Item, *resolve.Outcome, time.Duration, bool) {
	button := action.Button
	request := &stack.Request{
		Method:      http.MethodPost,
		URL:         action.URL,
		Button:      &button,
		ButtonIndex: action.ButtonIndex,
		Source:      SourceContext,
	}
	item := stack.Pending(stack.NewIdentity(e.now()), request)
	if source != nil {
		item = *source
	}
	adapter := e.store.State().Session.Adapter
	var signed *signer.SignedRequest
	err := signer.ErrNoSigner
	if adapter != nil {
		signed, err = adapter.SignFrameAction(ctx, action)
	}
	if err != nil {
		if aborted(ctx, span) {
			return item, nil, 0, false
		}
		if source == nil {
			e.store.Dispatch(stack.Load(item))
		}
		outcome := &resolve.Outcome{Kind: resolve.KindRequestError, Err: &schema.SigningFailedError{Err: err}}
		e.settle(ctx, span, item, outcome, 0)
		return item, outcome, 0, false
	}
	body := merge(signed.Body, e.extraPayload.Get(), extra)
	if source == nil {
		request.Body = body
		request.SearchParams = signed.SearchParams
		e.store.Dispatch(stack.Load(item))
	}

	started := e.now()
	resp, err := e.proxy.Post(ctx, signed.SearchParams, body)
	if aborted(ctx, span) {
		return item, nil, 0, false
	}
	in := input(http.MethodPost, resp, err, action.Button.Action == schema.ActionPostRedirect, expect)
	return item, resolve.Classify(in), e.now().Sub(started), true
}

// settle dispatches the outcome for item and notifies the host.
func (e *Engine) settle(ctx context.Context, span trace.Span, item stack.Item, outcome *resolve.Outcome, speed time.Duration) {
	if ctx.Err() != nil {
		return
	}
	span.SetAttributes(
		attribute.Int("frames.status", outcome.Status),
		attribute.String("frames.outcome", string(outcome.Kind)),
	)
	handler := e.handler.Get()
	switch outcome.Kind {
	case resolve.KindDone:
		action := stack.Done(item, outcome.Result, outcome.Status, speed)
		e.store.Dispatch(action)
		if item.Request != nil && item.Request.Source == SourceInitial {
			e.initial.Set(outcome.Result)
		}
		if outcome.Info != "" {
			handler.message(ctx, outcome.Info, stack.MessageInfo)
		}
	case resolve.KindRedirect:
		state := e.store.Dispatch(stack.DoneRedirect(item, outcome.Location, outcome.Status))
		if index := state.Index(item.Identity); index != -1 {
			item = state.Items[index]
		}
		handler.redirect(ctx, outcome.Location, item)
	case resolve.KindErrorMessage:
		e.store.Dispatch(stack.DoneWithErrorMessage(item, outcome.Message, stack.MessageError, outcome.Status))
		handler.message(ctx, outcome.Message, stack.MessageError)
	default:
		err := outcome.Err
		var network *schema.NetworkFailureError
		if errors.As(err, &network) && network.URL == "" && item.Request != nil {
			network.URL = item.Request.URL
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		kind, _ := schema.KindOf(err)
		e.logger.Warn("frame request failed", "item", item.ID, "method", item.Method(), "status", outcome.Status, "kind", string(kind), "error", err)
		e.store.Dispatch(stack.RequestError(item, err, outcome.Status))
		handler.report(ctx, err)
	}
}

// fail records err on item as a request error.
func (e *Engine) fail(ctx context.Context, span trace.Span, item stack.Item, err error) {
	e.settle(ctx, span, item, &resolve.Outcome{Kind: resolve.KindRequestError, Err: err}, 0)
}

func (e *Engine) startSpan(ctx context.Context, method, URL string) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, "frames.fetch", trace.WithAttributes(
		attribute.String("frames.method", method),
		attribute.String("frames.url", URL),
	))
}

func aborted(ctx context.Context, span trace.Span) bool {
	if ctx.Err() == nil {
		return false
	}
	span.SetAttributes(attribute.String("frames.outcome", "aborted"))
	span.SetStatus(codes.Error, ctx.Err().Error())
	return true
}

func input(method string, resp *proxy.Response, err error, redirectButton bool, expect resolve.Expect) resolve.Input {
	ret := resolve.Input{
		Method:           method,
		IsAction:         method == http.MethodPost,
		IsRedirectButton: redirectButton,
		Expect:           expect,
		Err:              err,
	}
	if resp != nil {
		ret.Status = resp.Status
		ret.Header = resp.Header
		ret.Body = resp.Body
	}
	return ret
}

func sourceKey(item *stack.Item) string {
	if item != nil {
		return SourceContext + ":" + item.ID
	}
	return SourceContext + ":" + uuid.NewString()
}

// merge returns a new map with later maps overriding earlier ones.
func merge(maps ...map[string]any) map[string]any {
	ret := map[string]any{}
	for _, m := range maps {
		for k, v := range m {
			ret[k] = v
		}
	}
	return ret
}

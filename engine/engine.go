package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/viant/frames/internal/collection"
	"github.com/viant/frames/pending"
	"github.com/viant/frames/proxy"
	"github.com/viant/frames/schema"
	"github.com/viant/frames/signer"
	"github.com/viant/frames/signer/anonymous"
	"github.com/viant/frames/stack"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/viant/frames/engine"

var (
	// ErrNilRequest is returned by FetchFrame for a nil request.
	ErrNilRequest = errors.New("engine: nil request")
	// ErrNoInitialFrame is returned by ResetInitialFrame when no home frame is known.
	ErrNoInitialFrame = errors.New("engine: no initial frame")
)

// Engine is the frame interaction engine.
type Engine struct {
	proxy                 *proxy.Client
	store                 *stack.Store
	resolver              signer.Resolver
	logger                *slog.Logger
	tracer                trace.Tracer
	now                   func() time.Time
	homeframeURL          string
	specification         string
	transactionDataSuffix string
	pendingStore          pending.Store[*schema.TransactionIntent]
	pending               *pending.Manager[*schema.TransactionIntent]
	aborts                *collection.Aborts

	handler      *Fresh[*Handler]
	inputText    *Fresh[string]
	address      *Fresh[string]
	frameContext *Fresh[map[string]any]
	extraPayload *Fresh[map[string]any]
	initial      *Fresh[*schema.ParseResultWithSpecs]
}

// New creates an engine that reaches frames through client.
func New(client *proxy.Client, options ...Option) *Engine {
	ret := &Engine{
		proxy:         client,
		logger:        slog.Default(),
		tracer:        otel.Tracer(tracerName),
		now:           time.Now,
		specification: schema.SpecificationOpenFrames,
		aborts:        collection.NewAborts(),
		handler:       NewFresh[*Handler](nil),
		inputText:     NewFresh(""),
		address:       NewFresh(""),
		frameContext:  NewFresh[map[string]any](nil),
		extraPayload:  NewFresh[map[string]any](nil),
		initial:       NewFresh[*schema.ParseResultWithSpecs](nil),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.resolver == nil {
		ret.resolver = signer.Static(anonymous.New(), ret.specification, nil)
	}
	ret.pending = pending.NewManager[*schema.TransactionIntent](ret.pendingStore)
	ret.pending.Now = ret.now
	reducer := stack.NewReducer(ret.resolver, stack.WithClock(ret.now))
	ret.store = stack.NewStore(reducer, stack.WithLogger(ret.logger))
	return ret
}

// Dispatch applies a raw stack action.
func (e *Engine) Dispatch(action stack.Action) stack.State {
	return e.store.Dispatch(action)
}

// Reset re-resolves the session and keeps only the current item.
func (e *Engine) Reset() {
	e.store.Dispatch(stack.Reset())
}

// ResetInitialFrame restores the home frame. When no home frame result has
// been loaded yet it fetches the configured home frame URL instead.
func (e *Engine) ResetInitialFrame(ctx context.Context) error {
	e.dropPending(ctx)
	e.aborts.AbortAll()
	homeframeURL := e.HomeframeURL()
	if result := e.initial.Get(); result != nil {
		e.store.Dispatch(stack.ResetInitialFrame(homeframeURL, result, nil))
		return nil
	}
	if homeframeURL == "" {
		return ErrNoInitialFrame
	}
	return e.FetchFrame(ctx, &GetRequest{URL: homeframeURL}, true)
}

// Clear aborts in-flight fetches, drops outstanding wallet interactions and empties the stack.
func (e *Engine) Clear() {
	e.dropPending(context.Background())
	e.aborts.AbortAll()
	e.store.Dispatch(stack.Clear())
}

// dropPending cancels every outstanding wallet interaction started from a button press.
func (e *Engine) dropPending(ctx context.Context) {
	ids, err := e.pending.CancelNamespace(ctx, SourceContext)
	if err != nil {
		e.logger.Warn("failed to cancel pending transactions", "error", err)
	}
	if len(ids) > 0 {
		e.logger.Debug("pending transactions cancelled", "count", len(ids))
	}
}

// SetInputText sets the text sent with the next button press.
func (e *Engine) SetInputText(text string) {
	e.inputText.Set(text)
}

func (e *Engine) InputText() string {
	return e.inputText.Get()
}

// SetConnectedAddress sets the wallet address sent with button presses.
func (e *Engine) SetConnectedAddress(address string) {
	e.address.Set(address)
}

func (e *Engine) ConnectedAddress() string {
	return e.address.Get()
}

// SetFrameContext overrides the frame context chosen by the session resolver.
func (e *Engine) SetFrameContext(frameContext map[string]any) {
	e.frameContext.Set(frameContext)
}

// SetHandler replaces the host callbacks; in-flight operations see the new value.
func (e *Engine) SetHandler(handler *Handler) {
	e.handler.Set(handler)
}

// SetExtraButtonRequestPayload replaces the payload merged into every POST body.
func (e *Engine) SetExtraButtonRequestPayload(payload map[string]any) {
	e.extraPayload.Set(payload)
}

// CurrentStackItem returns the most recent stack item.
func (e *Engine) CurrentStackItem() (stack.Item, bool) {
	return e.store.State().Current()
}

// Stack returns the stack items, most recent first.
func (e *Engine) Stack() []stack.Item {
	return e.store.State().Items
}

// State returns a snapshot of stack and session.
func (e *Engine) State() stack.State {
	return e.store.State()
}

// HomeframeURL returns the session home frame URL, or the configured one.
func (e *Engine) HomeframeURL() string {
	if session := e.store.State().Session; session.Initialized && session.HomeframeURL != "" {
		return session.HomeframeURL
	}
	return e.homeframeURL
}

// SignerState returns the active signer adapter, or nil before the first frame loads.
func (e *Engine) SignerState() signer.Adapter {
	return e.store.State().Session.Adapter
}

// Specification returns the active specification.
func (e *Engine) Specification() string {
	if session := e.store.State().Session; session.Initialized && session.Specification != "" {
		return session.Specification
	}
	return e.specification
}

// Subscribe registers a listener invoked after every stack transition.
func (e *Engine) Subscribe(listener stack.Listener) func() {
	return e.store.Subscribe(listener)
}

// PendingTransactions lists wallet interactions awaiting the host.
func (e *Engine) PendingTransactions(ctx context.Context) ([]pending.Pending[*schema.TransactionIntent], error) {
	return e.pending.List(ctx, SourceContext)
}

// CancelTransaction aborts a wallet interaction; its button press ends without a stack update.
func (e *Engine) CancelTransaction(ctx context.Context, id string) error {
	_, err := e.pending.Cancel(ctx, id)
	return err
}

func (e *Engine) frameContextFor(session stack.Session) map[string]any {
	if override := e.frameContext.Get(); override != nil {
		return override
	}
	return session.FrameContext
}

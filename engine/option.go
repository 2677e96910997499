package engine

import (
	"log/slog"
	"time"

	"github.com/viant/frames/pending"
	"github.com/viant/frames/schema"
	"github.com/viant/frames/signer"
	"go.opentelemetry.io/otel/trace"
)

// Option configures an Engine.
type Option func(e *Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTracerProvider sets the tracer provider used for fetch spans.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(e *Engine) {
		e.tracer = provider.Tracer(tracerName)
	}
}

// WithResolver sets the session resolver consulted on the first loaded frame.
func WithResolver(resolver signer.Resolver) Option {
	return func(e *Engine) {
		e.resolver = resolver
	}
}

// WithAdapter uses adapter under specification for every session.
func WithAdapter(adapter signer.Adapter, specification string) Option {
	return func(e *Engine) {
		e.resolver = signer.Static(adapter, specification, nil)
		e.specification = specification
	}
}

// WithHandler sets host callbacks.
func WithHandler(handler *Handler) Option {
	return func(e *Engine) {
		e.handler.Set(handler)
	}
}

// WithHomeframeURL sets the home frame used by ResetInitialFrame and as the last post URL fallback.
func WithHomeframeURL(URL string) Option {
	return func(e *Engine) {
		e.homeframeURL = URL
	}
}

// WithSpecification sets the specification reported before a session exists.
func WithSpecification(specification string) Option {
	return func(e *Engine) {
		e.specification = specification
	}
}

// WithExtraButtonRequestPayload merges payload into every POST body.
func WithExtraButtonRequestPayload(payload map[string]any) Option {
	return func(e *Engine) {
		e.extraPayload.Set(payload)
	}
}

// WithTransactionDataSuffix appends suffix to the data of every eth_sendTransaction intent.
func WithTransactionDataSuffix(suffix string) Option {
	return func(e *Engine) {
		e.transactionDataSuffix = suffix
	}
}

// WithPendingStore sets the backing store of the pending transaction registry.
func WithPendingStore(store pending.Store[*schema.TransactionIntent]) Option {
	return func(e *Engine) {
		e.pendingStore = store
	}
}

// WithClock overrides the clock used for identities and timings.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Package anonymous provides a signer adapter that identifies no one: every
// frame action is sent unsigned under the anonymous client protocol.
package anonymous

import (
	"context"
	"time"

	"github.com/viant/frames/signer"
)

// ClientProtocol is advertised in every anonymous payload.
const ClientProtocol = "anonymous@1.0"

// Adapter is the anonymous signer adapter.
type Adapter struct {
	now func() time.Time
}

// Option configures the adapter.
type Option func(a *Adapter)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		a.now = now
	}
}

// New creates an anonymous adapter.
func New(options ...Option) *Adapter {
	ret := &Adapter{now: time.Now}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

func (a *Adapter) HasSigner() bool { return true }

func (a *Adapter) Signer() any { return struct{}{} }

func (a *Adapter) SignFrameAction(ctx context.Context, action *signer.ActionContext) (*signer.SignedRequest, error) {
	data := signer.UntrustedData(action)
	data["unixTimestamp"] = a.now().UnixMilli()
	return &signer.SignedRequest{
		Body: map[string]any{
			"clientProtocol": ClientProtocol,
			"untrustedData":  data,
		},
		SearchParams: signer.SearchParams(action),
	}, nil
}

func (a *Adapter) OnSignerlessFramePress(ctx context.Context) error { return nil }

var _ signer.Adapter = (*Adapter)(nil)

package transport

import (
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

type Option func(*RoundTripper)

// WithTransport sets the inner transport
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}

// WithRateLimit limits outgoing calls to rps with burst; rps <= 0 disables limiting
func WithRateLimit(rps float64, burst int) Option {
	return func(t *RoundTripper) {
		if rps <= 0 {
			t.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTokenSource sets the bearer token source
func WithTokenSource(source oauth2.TokenSource) Option {
	return func(t *RoundTripper) {
		t.tokenSource = source
	}
}

// WithHeader adds a static header to every request
func WithHeader(key, value string) Option {
	return func(t *RoundTripper) {
		t.headers.Add(key, value)
	}
}

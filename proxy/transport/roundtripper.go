package transport

import (
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

type RoundTripper struct {
	transport   http.RoundTripper
	limiter     *rate.Limiter
	tokenSource oauth2.TokenSource
	headers     http.Header
	token       *oauth2.Token
	mux         sync.Mutex
}

func New(options ...Option) *RoundTripper {
	ret := &RoundTripper{
		transport: http.DefaultTransport,
		headers:   http.Header{},
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	// 1) Send with the cached token, if any.
	first := r.prepare(clone(req))
	tok, err := r.Token(false)
	if err != nil {
		return nil, err
	}
	if tok != nil {
		tok.SetAuthHeader(first)
	}
	resp, err := r.transport.RoundTrip(first)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || r.tokenSource == nil {
		return resp, nil
	}
	resp.Body.Close()

	// 2) Replay once with a fresh token.
	if tok, err = r.Token(true); err != nil {
		return nil, err
	}
	retry := r.prepare(clone(req))
	tok.SetAuthHeader(retry)
	return r.transport.RoundTrip(retry)
}

// Token returns the cached token, fetching a new one when missing, expired or forced.
func (r *RoundTripper) Token(refresh bool) (*oauth2.Token, error) {
	if r.tokenSource == nil {
		return nil, nil
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	if !refresh && r.token.Valid() {
		return r.token, nil
	}
	tok, err := r.tokenSource.Token()
	if err != nil {
		return nil, err
	}
	r.token = tok
	return tok, nil
}

func (r *RoundTripper) prepare(req *http.Request) *http.Request {
	for key, values := range r.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	return req
}

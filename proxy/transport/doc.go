// Package transport implements the http.RoundTripper used to reach the frame
// proxy. It rate limits outgoing calls, attaches a bearer token obtained from
// an oauth2.TokenSource and retries once with a fresh token when the proxy
// answers 401 Unauthorized.
package transport

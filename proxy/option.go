package proxy

import (
	"log/slog"
	"net/http"
)

// Option configures a Client.
type Option func(c *Client)

// WithHTTPClient sets the HTTP client; its redirect policy is overridden.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithGetURL sets a dedicated GET proxy.
func WithGetURL(URL string) Option {
	return func(c *Client) {
		if URL != "" {
			c.getURL = URL
		}
	}
}

// WithPostURL sets a dedicated POST proxy.
func WithPostURL(URL string) Option {
	return func(c *Client) {
		if URL != "" {
			c.postURL = URL
		}
	}
}

// WithFarcasterManifest asks the GET proxy to parse the farcaster manifest too.
func WithFarcasterManifest(enabled bool) Option {
	return func(c *Client) {
		c.parseFarcasterManifest = enabled
	}
}

// WithMaxBodySize caps the number of response bytes read.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	multiSpecificationParam     = "multispecification"
	parseFarcasterManifestParam = "parseFarcasterManifest"
	urlParam                    = "url"
)

// Response is a fully read proxy response.
type Response struct {
	Status   int
	Header   http.Header
	Body     []byte
	Duration time.Duration
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Client calls the GET and POST frame proxies.
type Client struct {
	getURL                 string
	postURL                string
	httpClient             *http.Client
	parseFarcasterManifest bool
	maxBodySize            int64
	logger                 *slog.Logger
}

// New creates a client using proxyURL for both GET and POST.
func New(proxyURL string, options ...Option) *Client {
	ret := &Client{
		getURL:      proxyURL,
		postURL:     proxyURL,
		maxBodySize: 4 << 20,
		logger:      slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{}
	}
	ret.httpClient = noRedirect(ret.httpClient)
	return ret
}

func noRedirect(client *http.Client) *http.Client {
	ret := *client
	ret.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &ret
}

// Get asks the proxy to fetch and parse target.
func (c *Client) Get(ctx context.Context, target string) (*Response, error) {
	query := url.Values{}
	query.Set(urlParam, target)
	query.Set(multiSpecificationParam, "true")
	if c.parseFarcasterManifest {
		query.Set(parseFarcasterManifestParam, "true")
	}
	URL, err := withQuery(c.getURL, query)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Post forwards a signed frame action to the proxy.
func (c *Client) Post(ctx context.Context, searchParams url.Values, body map[string]any) (*Response, error) {
	query := url.Values{}
	for key, values := range searchParams {
		query[key] = append([]string(nil), values...)
	}
	query.Set(multiSpecificationParam, "true")
	URL, err := withQuery(c.postURL, query)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame action: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("frame proxy call failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read proxy response: %w", err)
	}
	ret := &Response{Status: resp.StatusCode, Header: resp.Header, Body: body, Duration: time.Since(started)}
	c.logger.Debug("frame proxy call", "method", req.Method, "url", req.URL.String(), "status", ret.Status, "duration", ret.Duration)
	return ret, nil
}

func withQuery(base string, query url.Values) (string, error) {
	URL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid proxy url %q: %w", base, err)
	}
	merged := URL.Query()
	for key, values := range query {
		merged[key] = values
	}
	URL.RawQuery = merged.Encode()
	return URL.String(), nil
}

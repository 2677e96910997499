package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
)

// HTTPTransport sends JSON-RPC messages to a wallet endpoint with plain HTTP POSTs.
type HTTPTransport struct {
	URL    string
	client *http.Client
	seq    atomic.Uint64
}

// NewHTTPTransport creates a transport for URL; a nil client uses http.DefaultClient.
func NewHTTPTransport(URL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{URL: URL, client: client}
}

func (t *HTTPTransport) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	request.Jsonrpc = jsonrpc.Version
	request.Id = int(t.seq.Add(1))
	data, err := t.post(ctx, request)
	if err != nil {
		return nil, err
	}
	response := &jsonrpc.Response{}
	if err = json.Unmarshal(data, response); err != nil {
		return nil, fmt.Errorf("invalid wallet response: %w", err)
	}
	return response, nil
}

func (t *HTTPTransport) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	_, err := t.post(ctx, notification)
	return err
}

func (t *HTTPTransport) post(ctx context.Context, message any) ([]byte, error) {
	payload, err := json.Marshal(message)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("wallet endpoint returned status %d", resp.StatusCode)
	}
	return data, nil
}

var _ transport.Transport = (*HTTPTransport)(nil)

package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/frames/engine"
	"github.com/viant/frames/proxy"
	"github.com/viant/frames/proxy/mock"
	"github.com/viant/frames/schema"
	"github.com/viant/frames/stack"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
)

type mockTransport struct {
	send func(ctx context.Context, r *jsonrpc.Request) (*jsonrpc.Response, error)
}

func (m *mockTransport) Notify(ctx context.Context, n *jsonrpc.Notification) error { return nil }
func (m *mockTransport) Send(ctx context.Context, r *jsonrpc.Request) (*jsonrpc.Response, error) {
	return m.send(ctx, r)
}

var _ transport.Transport = (*mockTransport)(nil)

func result(value string) *jsonrpc.Response {
	data, _ := json.Marshal(value)
	return &jsonrpc.Response{Jsonrpc: jsonrpc.Version, Result: data}
}

func TestWallet_SendTransaction(t *testing.T) {
	var testCases = []struct {
		description string
		chainID     string
		params      string
		expectTx    map[string]any
		expectErr   bool
	}{
		{
			description: "decimal value",
			chainID:     "eip155:10",
			params:      `{"to":"0x1","data":"0x12","value":"1000"}`,
			expectTx:    map[string]any{"from": "0xfeed", "to": "0x1", "data": "0x12", "value": "0x3e8", "chainId": "0xa"},
		},
		{
			description: "no value",
			chainID:     "eip155:8453",
			params:      `{"to":"0x1"}`,
			expectTx:    map[string]any{"from": "0xfeed", "to": "0x1", "chainId": "0x2105"},
		},
		{
			description: "unsupported chain",
			chainID:     "solana:mainnet",
			params:      `{"to":"0x1"}`,
			expectErr:   true,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			var sent map[string]any
			w := New(&mockTransport{send: func(ctx context.Context, r *jsonrpc.Request) (*jsonrpc.Response, error) {
				require.Equal(t, schema.MethodSendTransaction, r.Method)
				var params []map[string]any
				require.NoError(t, json.Unmarshal(r.Params, &params))
				sent = params[0]
				return result("0xhash"), nil
			}})
			call := &engine.TransactionCall{
				Address: "0xfeed",
				Intent:  &schema.TransactionIntent{ChainID: testCase.chainID, Method: schema.MethodSendTransaction, Params: json.RawMessage(testCase.params)},
			}
			hash, err := w.SendTransaction(context.Background(), call)
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "0xhash", hash)
			assert.Equal(t, testCase.expectTx, sent)
		})
	}
}

func TestWallet_SignTypedData(t *testing.T) {
	typed := `{"domain":{"name":"frames"},"types":{},"primaryType":"Mail","message":{}}`
	w := New(&mockTransport{send: func(ctx context.Context, r *jsonrpc.Request) (*jsonrpc.Response, error) {
		require.Equal(t, schema.MethodSignTypedDataV4, r.Method)
		var params []string
		require.NoError(t, json.Unmarshal(r.Params, &params))
		assert.Equal(t, []string{"0xfeed", typed}, params)
		return result("0xsig"), nil
	}})
	handler := w.Bind(nil)
	signature, err := handler.OnSignature(context.Background(), &engine.TransactionCall{
		Address: "0xfeed",
		Intent:  &schema.TransactionIntent{ChainID: "eip155:1", Method: schema.MethodSignTypedDataV4, Params: json.RawMessage(typed)},
	})
	require.NoError(t, err)
	assert.Equal(t, "0xsig", signature)
	assert.NotNil(t, handler.OnTransaction)
}

func TestWallet_Errors(t *testing.T) {
	call := &engine.TransactionCall{Address: "0xfeed", Intent: &schema.TransactionIntent{ChainID: "eip155:1", Method: schema.MethodSendTransaction, Params: json.RawMessage(`{"to":"0x1"}`)}}

	w := New(&mockTransport{send: func(ctx context.Context, r *jsonrpc.Request) (*jsonrpc.Response, error) {
		return &jsonrpc.Response{Jsonrpc: jsonrpc.Version, Error: jsonrpc.NewInternalError("user rejected", nil)}, nil
	}})
	_, err := w.SendTransaction(context.Background(), call)
	assert.ErrorContains(t, err, "user rejected")

	for _, response := range []*jsonrpc.Response{result(""), {Jsonrpc: jsonrpc.Version}, {Jsonrpc: jsonrpc.Version, Result: json.RawMessage("null")}} {
		w = New(&mockTransport{send: func(ctx context.Context, r *jsonrpc.Request) (*jsonrpc.Response, error) {
			return response, nil
		}})
		hash, err := w.SendTransaction(context.Background(), call)
		assert.NoError(t, err)
		assert.Empty(t, hash)
	}
}

func TestWallet_EngineTransaction(t *testing.T) {
	var testCases = []struct {
		description string
		response    *jsonrpc.Response
		expectKind  schema.ErrorKind
		expectPosts int
	}{
		{description: "hash", response: result("0xhash"), expectPosts: 2},
		{description: "empty result", response: result(""), expectKind: schema.KindTransactionHandlerIncomplete, expectPosts: 1},
		{description: "null result", response: &jsonrpc.Response{Jsonrpc: jsonrpc.Version, Result: json.RawMessage("null")}, expectKind: schema.KindTransactionHandlerIncomplete, expectPosts: 1},
		{description: "rejected", response: &jsonrpc.Response{Jsonrpc: jsonrpc.Version, Error: jsonrpc.NewInternalError("user rejected", nil)}, expectKind: schema.KindTransactionHandlerFailed, expectPosts: 1},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			server := mock.NewServer()
			defer server.Close()
			server.PostHandler = func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("postType") == string(schema.ActionTx) {
					_, _ = w.Write([]byte(`{"chainId":"eip155:10","method":"eth_sendTransaction","params":{"to":"0x1"}}`))
					return
				}
				mock.WriteJSON(w, http.StatusOK, mock.Frame(&schema.Frame{Image: "https://frame.example/done.png"}))
			}
			aWallet := New(&mockTransport{send: func(ctx context.Context, r *jsonrpc.Request) (*jsonrpc.Response, error) {
				return testCase.response, nil
			}})
			e := engine.New(proxy.New(server.URL()), engine.WithHandler(aWallet.Bind(nil)))
			e.SetConnectedAddress("0xfeed")
			ctx := context.Background()
			require.NoError(t, e.FetchFrame(ctx, &engine.GetRequest{URL: "https://frame.example"}, true))
			head, _ := e.CurrentStackItem()
			button := schema.Button{Action: schema.ActionTx, Target: "https://frame.example/tx"}
			require.NoError(t, e.OnButtonPress(ctx, head.Frame(e.Specification()), button, 1))

			head, _ = e.CurrentStackItem()
			posts := 0
			for _, request := range server.Requests() {
				if request.Method == http.MethodPost {
					posts++
				}
			}
			assert.Equal(t, testCase.expectPosts, posts)
			if testCase.expectKind == "" {
				assert.Equal(t, stack.StatusDone, head.Status)
				return
			}
			assert.Equal(t, stack.StatusRequestError, head.Status)
			kind, ok := schema.KindOf(head.Err)
			require.True(t, ok)
			assert.Equal(t, testCase.expectKind, kind)
		})
	}
}

func TestHTTPTransport_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		request := &jsonrpc.Request{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(request))
		assert.Equal(t, jsonrpc.Version, request.Jsonrpc)
		response := result("0x" + request.Method)
		response.Id = request.Id
		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	w := New(NewHTTPTransport(server.URL, nil))
	call := &engine.TransactionCall{Address: "0xfeed", Intent: &schema.TransactionIntent{ChainID: "eip155:1", Method: schema.MethodSendTransaction, Params: json.RawMessage(`{"to":"0x1"}`)}}
	hash, err := w.SendTransaction(context.Background(), call)
	require.NoError(t, err)
	assert.Equal(t, "0xeth_sendTransaction", hash)
}

func TestChainID(t *testing.T) {
	id, err := ChainID("eip155:1")
	require.NoError(t, err)
	assert.Equal(t, "0x1", id)
	_, err = ChainID("eip155:abc")
	assert.Error(t, err)
}

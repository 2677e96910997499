package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/viant/frames/engine"
	"github.com/viant/frames/schema"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
)

// Wallet executes transaction intents through a JSON-RPC wallet.
type Wallet struct {
	transport transport.Transport
	logger    *slog.Logger
}

// Option configures a Wallet.
type Option func(w *Wallet)

// WithLogger sets the wallet logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wallet) {
		w.logger = logger
	}
}

// New creates a wallet bound to transport.
func New(transport transport.Transport, options ...Option) *Wallet {
	ret := &Wallet{transport: transport, logger: slog.Default()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Bind installs the wallet as the transaction and signature handler of handler.
func (w *Wallet) Bind(handler *engine.Handler) *engine.Handler {
	if handler == nil {
		handler = &engine.Handler{}
	}
	handler.OnTransaction = w.SendTransaction
	handler.OnSignature = w.SignTypedData
	return handler
}

// SendTransaction submits an eth_sendTransaction intent and returns the transaction hash.
func (w *Wallet) SendTransaction(ctx context.Context, call *engine.TransactionCall) (string, error) {
	params, err := call.Intent.SendTransaction()
	if err != nil {
		return "", fmt.Errorf("invalid transaction params: %w", err)
	}
	chainID, err := ChainID(call.Intent.ChainID)
	if err != nil {
		return "", err
	}
	tx := map[string]any{
		"from":    call.Address,
		"to":      params.To,
		"chainId": chainID,
	}
	if params.Data != "" {
		tx["data"] = params.Data
	}
	if params.Value != "" {
		value, err := hexValue(params.Value)
		if err != nil {
			return "", err
		}
		tx["value"] = value
	}
	return w.call(ctx, schema.MethodSendTransaction, []any{tx})
}

// SignTypedData submits an eth_signTypedData_v4 intent and returns the signature.
func (w *Wallet) SignTypedData(ctx context.Context, call *engine.TransactionCall) (string, error) {
	if !json.Valid(call.Intent.Params) {
		return "", fmt.Errorf("invalid typed data params")
	}
	return w.call(ctx, schema.MethodSignTypedDataV4, []any{call.Address, string(call.Intent.Params)})
}

func (w *Wallet) call(ctx context.Context, method string, params []any) (string, error) {
	req, err := jsonrpc.NewRequest(method, params)
	if err != nil {
		return "", err
	}
	response, err := w.transport.Send(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%v call failed: %w", method, err)
	}
	if response.Error != nil {
		return "", response.Error
	}
	// empty or null result: no id
	if len(response.Result) == 0 {
		return "", nil
	}
	var result string
	if err = json.Unmarshal(response.Result, &result); err != nil {
		return "", fmt.Errorf("failed to decode %v result: %w", method, err)
	}
	if result == "" {
		w.logger.Debug("wallet call returned no result", "method", method)
		return "", nil
	}
	w.logger.Debug("wallet call", "method", method, "result", result)
	return result, nil
}

// ChainID converts a CAIP-2 eip155 chain reference into a hex chain id.
func ChainID(reference string) (string, error) {
	parts := strings.Split(reference, ":")
	if len(parts) != 2 || parts[0] != "eip155" {
		return "", fmt.Errorf("unsupported chain %q", reference)
	}
	id, ok := new(big.Int).SetString(parts[1], 10)
	if !ok || id.Sign() <= 0 {
		return "", fmt.Errorf("invalid chain id %q", reference)
	}
	return "0x" + id.Text(16), nil
}

// hexValue converts a decimal or 0x-prefixed wei amount to a hex quantity.
func hexValue(value string) (string, error) {
	if strings.HasPrefix(value, "0x") {
		return value, nil
	}
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok || amount.Sign() < 0 {
		return "", fmt.Errorf("invalid value %q", value)
	}
	return "0x" + amount.Text(16), nil
}

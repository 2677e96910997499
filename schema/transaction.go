package schema

import "encoding/json"

// TransactionIntent is what a tx button's target returns instead of a frame.
type TransactionIntent struct {
	ChainID     string          `json:"chainId"`
	Method      string          `json:"method"`
	Params      json.RawMessage `json:"params"`
	Attribution *bool           `json:"attribution,omitempty"`
}

// SendTransactionParams are the params of an eth_sendTransaction intent.
type SendTransactionParams struct {
	ABI   json.RawMessage `json:"abi,omitempty"`
	To    string          `json:"to"`
	Value string          `json:"value,omitempty"`
	Data  string          `json:"data,omitempty"`
}

// SignTypedDataParams are the params of an eth_signTypedData_v4 intent.
type SignTypedDataParams struct {
	Domain      map[string]any `json:"domain"`
	Types       map[string]any `json:"types"`
	PrimaryType string         `json:"primaryType"`
	Message     map[string]any `json:"message"`
}

// IsSignature reports whether the intent asks for a signature rather than a transaction.
func (t *TransactionIntent) IsSignature() bool {
	return t != nil && t.Method == MethodSignTypedDataV4
}

// SendTransaction decodes eth_sendTransaction params.
func (t *TransactionIntent) SendTransaction() (*SendTransactionParams, error) {
	ret := &SendTransactionParams{}
	if err := json.Unmarshal(t.Params, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// SignTypedData decodes eth_signTypedData_v4 params.
func (t *TransactionIntent) SignTypedData() (*SignTypedDataParams, error) {
	ret := &SignTypedDataParams{}
	if err := json.Unmarshal(t.Params, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// ErrorMessageBody is the structured {message} body a frame server returns.
type ErrorMessageBody struct {
	Message string `json:"message"`
}

// RedirectBody carries a redirect target in a JSON body.
type RedirectBody struct {
	Location string `json:"location"`
}

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const guardBaseURL = "https://frames.viant.io/schema/"

const (
	multiSpecificationSchema = `{
  "type": "object",
  "required": ["openframes", "farcaster"],
  "properties": {
    "openframes": {"$ref": "#/$defs/result"},
    "farcaster": {"$ref": "#/$defs/result"}
  },
  "$defs": {
    "result": {
      "type": "object",
      "required": ["status"],
      "properties": {"status": {"type": "string"}}
    }
  }
}`
	transactionIntentSchema = `{
  "type": "object",
  "required": ["chainId", "method", "params"],
  "properties": {
    "chainId": {"type": "string", "minLength": 1},
    "method": {"enum": ["eth_sendTransaction", "eth_signTypedData_v4"]},
    "params": {"type": "object"}
  }
}`
	errorMessageSchema = `{
  "type": "object",
  "required": ["message"],
  "properties": {"message": {"type": "string"}}
}`
	redirectSchema = `{
  "type": "object",
  "required": ["location"],
  "properties": {"location": {"type": "string"}}
}`
)

// Guard checks a JSON document against an expected response shape.
type Guard struct {
	Name   string
	schema *jsonschema.Schema
}

var (
	MultiSpecificationGuard = mustGuard("multispecification", multiSpecificationSchema)
	TransactionIntentGuard  = mustGuard("transaction", transactionIntentSchema)
	ErrorMessageGuard       = mustGuard("message", errorMessageSchema)
	RedirectGuard           = mustGuard("redirect", redirectSchema)
)

// NewGuard compiles a JSON schema guard.
func NewGuard(name, source string) (*Guard, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	URL := guardBaseURL + name + ".schema.json"
	if err := compiler.AddResource(URL, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("guard %v schema load failed: %w", name, err)
	}
	compiled, err := compiler.Compile(URL)
	if err != nil {
		return nil, fmt.Errorf("guard %v schema compile failed: %w", name, err)
	}
	return &Guard{Name: name, schema: compiled}, nil
}

func mustGuard(name, source string) *Guard {
	ret, err := NewGuard(name, source)
	if err != nil {
		panic(err)
	}
	return ret
}

// Check validates data and returns a descriptive error when it does not match.
func (g *Guard) Check(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%v: empty body", g.Name)
	}
	var doc any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("%v: invalid JSON: %w", g.Name, err)
	}
	if err := g.schema.Validate(doc); err != nil {
		return fmt.Errorf("%v: %w", g.Name, err)
	}
	return nil
}

// Match reports whether data matches the guard.
func (g *Guard) Match(data []byte) bool {
	return g.Check(data) == nil
}

// DecodeParseResult applies MultiSpecificationGuard and decodes the body.
func DecodeParseResult(data []byte) (*ParseResultWithSpecs, error) {
	if err := MultiSpecificationGuard.Check(data); err != nil {
		return nil, err
	}
	ret := &ParseResultWithSpecs{}
	if err := json.Unmarshal(data, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// DecodeTransactionIntent applies TransactionIntentGuard and decodes the body.
func DecodeTransactionIntent(data []byte) (*TransactionIntent, error) {
	if err := TransactionIntentGuard.Check(data); err != nil {
		return nil, err
	}
	ret := &TransactionIntent{}
	if err := json.Unmarshal(data, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// DecodeErrorMessage returns the message of a {message} body.
func DecodeErrorMessage(data []byte) (string, bool) {
	if !ErrorMessageGuard.Match(data) {
		return "", false
	}
	body := &ErrorMessageBody{}
	if err := json.Unmarshal(data, body); err != nil {
		return "", false
	}
	return body.Message, true
}

// DecodeRedirect returns the location of a {location} body.
func DecodeRedirect(data []byte) (string, bool) {
	if !RedirectGuard.Match(data) {
		return "", false
	}
	body := &RedirectBody{}
	if err := json.Unmarshal(data, body); err != nil {
		return "", false
	}
	return body.Location, true
}

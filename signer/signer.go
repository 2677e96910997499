package signer

import (
	"context"
	"errors"
	"net/url"

	"github.com/viant/frames/schema"
)

// ErrNoSigner is returned by adapters asked to sign without an active signer.
var ErrNoSigner = errors.New("signer: no active signer")

type (
	// ActionContext describes one button press. It is built per press and never stored.
	ActionContext struct {
		Frame         *schema.Frame
		Button        schema.Button
		ButtonIndex   int
		InputText     string
		State         string
		URL           string
		FrameContext  map[string]any
		Address       string
		TransactionID string
		Specification string
	}

	// SignedRequest is what an adapter produces for the POST proxy.
	SignedRequest struct {
		Body         map[string]any
		SearchParams url.Values
	}

	// Adapter signs frame actions for one identity protocol.
	Adapter interface {
		HasSigner() bool
		Signer() any
		SignFrameAction(ctx context.Context, action *ActionContext) (*SignedRequest, error)
		OnSignerlessFramePress(ctx context.Context) error
	}

	// LogoutSigner is implemented by adapters that can drop their credentials.
	LogoutSigner interface {
		Logout(ctx context.Context) error
	}

	// Resolution is the session data chosen for a freshly loaded frame.
	Resolution struct {
		Adapter       Adapter
		Specification string
		FrameContext  map[string]any
	}

	// Resolver picks the adapter and specification for a parse result.
	Resolver func(result *schema.ParseResultWithSpecs) Resolution
)

// Static returns a Resolver that always selects adapter under specification.
func Static(adapter Adapter, specification string, frameContext map[string]any) Resolver {
	return func(*schema.ParseResultWithSpecs) Resolution {
		return Resolution{Adapter: adapter, Specification: specification, FrameContext: frameContext}
	}
}

// Logout logs the adapter out when it supports it.
func Logout(ctx context.Context, adapter Adapter) error {
	if logout, ok := adapter.(LogoutSigner); ok {
		return logout.Logout(ctx)
	}
	return nil
}

// SearchParams returns the query parameters every adapter sends with a POST.
func SearchParams(action *ActionContext) url.Values {
	ret := url.Values{}
	postType := string(action.Button.Action)
	if action.TransactionID != "" {
		postType = string(schema.ActionPost)
	}
	ret.Set("postType", postType)
	ret.Set("postUrl", action.URL)
	return ret
}

// UntrustedData is the canonical unsigned payload shared by adapters.
func UntrustedData(action *ActionContext) map[string]any {
	ret := map[string]any{
		"url":         action.URL,
		"buttonIndex": action.ButtonIndex,
	}
	if action.InputText != "" {
		ret["inputText"] = action.InputText
	}
	if action.State != "" {
		ret["state"] = action.State
	}
	if action.Address != "" {
		ret["address"] = action.Address
	}
	if action.TransactionID != "" {
		ret["transactionId"] = action.TransactionID
	}
	return ret
}

package engine

import (
	"context"
	"strings"

	"github.com/viant/frames/resolve"
	"github.com/viant/frames/schema"
	"github.com/viant/frames/signer"
)

// OnButtonPress routes a press of button (1-based index) on frame. Unknown
// actions and unusable link or mint targets are returned before any state
// change, as is signer.ErrNoSigner when no frame has initialized the session.
// Every other outcome is recorded on the stack.
func (e *Engine) OnButtonPress(ctx context.Context, frame *schema.Frame, button schema.Button, index int) error {
	if !button.Action.Known() {
		return &schema.UnsupportedButtonActionError{Action: button.Action}
	}
	handler := e.handler.Get()
	switch button.Action {
	case schema.ActionLink:
		if err := resolve.ValidateLocation(button.Target); err != nil {
			return &schema.InvalidButtonTargetError{Action: button.Action, Target: button.Target}
		}
		if handler != nil && handler.OnLinkButtonClicked != nil {
			return handler.OnLinkButtonClicked(ctx, button.Target)
		}
		return nil
	case schema.ActionMint:
		if !isMintTarget(button.Target) {
			return &schema.InvalidButtonTargetError{Action: button.Action, Target: button.Target}
		}
		if handler != nil && handler.OnMintButtonClicked != nil {
			return handler.OnMintButtonClicked(ctx, button.Target)
		}
		return nil
	case schema.ActionTx:
		if err := resolve.ValidateLocation(button.Target); err != nil {
			return &schema.InvalidButtonTargetError{Action: button.Action, Target: button.Target}
		}
	}

	session := e.store.State().Session
	adapter := session.Adapter
	if adapter == nil {
		return signer.ErrNoSigner
	}
	if !adapter.HasSigner() {
		return adapter.OnSignerlessFramePress(ctx)
	}
	if frame == nil {
		frame = &schema.Frame{}
	}
	action := signer.ActionContext{
		Frame:         frame,
		Button:        button,
		ButtonIndex:   index,
		InputText:     e.inputText.Get(),
		State:         frame.State,
		FrameContext:  e.frameContextFor(session),
		Address:       e.address.Get(),
		Specification: e.Specification(),
	}

	if button.Action == schema.ActionTx {
		if action.Address == "" {
			if handler != nil && handler.OnConnectWallet != nil {
				return handler.OnConnectWallet(ctx)
			}
			return nil
		}
		action.URL = button.Target
		return e.FetchFrame(ctx, &TransactionRequest{Action: action}, false)
	}
	action.URL = firstNonEmpty(button.PostURL, button.Target, frame.PostURL, e.HomeframeURL())
	return e.FetchFrame(ctx, &PostRequest{Action: action}, false)
}

// isMintTarget accepts an absolute http(s) URL or a CAIP-10 style eip155 asset reference.
func isMintTarget(target string) bool {
	if resolve.ValidateLocation(target) == nil {
		return true
	}
	parts := strings.Split(target, ":")
	return len(parts) >= 3 && parts[0] == "eip155" && parts[1] != "" && parts[2] != ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

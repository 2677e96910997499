package stack

import (
	"time"

	"github.com/viant/frames/schema"
)

// ActionType names a reducer transition.
type ActionType string

const (
	ActionLoad                 ActionType = "LOAD"
	ActionDone                 ActionType = "DONE"
	ActionDoneRedirect         ActionType = "DONE_REDIRECT"
	ActionDoneWithErrorMessage ActionType = "DONE_WITH_ERROR_MESSAGE"
	ActionRequestError         ActionType = "REQUEST_ERROR"
	ActionReset                ActionType = "RESET"
	ActionResetInitialFrame    ActionType = "RESET_INITIAL_FRAME"
	ActionClear                ActionType = "CLEAR"
)

// Action is a reducer input. Item is the pending item for LOAD and the item
// being resolved for every find-by-identity transition.
type Action struct {
	Type         ActionType
	Item         Item
	Result       *schema.ParseResultWithSpecs
	HTTPStatus   int
	Speed        time.Duration
	Location     string
	Message      string
	MessageKind  MessageKind
	Err          error
	HomeframeURL string
	Extra        map[string]any
}

func Load(item Item) Action {
	return Action{Type: ActionLoad, Item: item}
}

func Done(pending Item, result *schema.ParseResultWithSpecs, httpStatus int, speed time.Duration) Action {
	return Action{Type: ActionDone, Item: pending, Result: result, HTTPStatus: httpStatus, Speed: speed}
}

func DoneRedirect(pending Item, location string, httpStatus int) Action {
	return Action{Type: ActionDoneRedirect, Item: pending, Location: location, HTTPStatus: httpStatus}
}

func DoneWithErrorMessage(pending Item, message string, kind MessageKind, httpStatus int) Action {
	return Action{Type: ActionDoneWithErrorMessage, Item: pending, Message: message, MessageKind: kind, HTTPStatus: httpStatus}
}

func RequestError(pending Item, err error, httpStatus int) Action {
	return Action{Type: ActionRequestError, Item: pending, Err: err, HTTPStatus: httpStatus}
}

func Reset() Action {
	return Action{Type: ActionReset}
}

func ResetInitialFrame(homeframeURL string, result *schema.ParseResultWithSpecs, extra map[string]any) Action {
	return Action{Type: ActionResetInitialFrame, HomeframeURL: homeframeURL, Result: result, Extra: extra}
}

func Clear() Action {
	return Action{Type: ActionClear}
}

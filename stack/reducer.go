package stack

import (
	"net/http"
	"time"

	"github.com/viant/frames/schema"
	"github.com/viant/frames/signer"
)

// Reducer is the interaction stack state machine.
type Reducer struct {
	resolve signer.Resolver
	now     func() time.Time
}

// ReducerOption configures a Reducer.
type ReducerOption func(r *Reducer)

// WithClock overrides the clock used for synthetic items.
func WithClock(now func() time.Time) ReducerOption {
	return func(r *Reducer) {
		r.now = now
	}
}

// NewReducer creates a reducer that resolves sessions with resolve.
func NewReducer(resolve signer.Resolver, options ...ReducerOption) *Reducer {
	ret := &Reducer{resolve: resolve, now: time.Now}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Reduce returns the state following action. The input state is never modified.
func (r *Reducer) Reduce(state State, action Action) State {
	switch action.Type {
	case ActionLoad:
		items := make([]Item, 0, len(state.Items)+1)
		items = append(items, action.Item)
		items = append(items, state.Items...)
		return State{Items: items, Session: state.Session}

	case ActionDone:
		index := state.Index(action.Item.Identity)
		if index == -1 {
			return state
		}
		pending := state.Items[index]
		done := Item{
			Identity:   pending.Identity,
			Status:     StatusDone,
			Request:    pending.Request,
			Result:     action.Result,
			HTTPStatus: action.HTTPStatus,
			Speed:      action.Speed,
			Extra:      action.Extra,
		}
		session := state.Session
		if !session.Initialized {
			homeframeURL := action.HomeframeURL
			if homeframeURL == "" && pending.Request != nil {
				homeframeURL = pending.Request.URL
			}
			session = r.session(homeframeURL, action.Result)
		} else {
			session.ParseResult = action.Result
		}
		return State{Items: replaceAt(state.Items, index, done), Session: session}

	case ActionDoneRedirect:
		return r.replace(state, action, func(pending Item) Item {
			pending.Status = StatusDoneRedirect
			pending.Location = action.Location
			pending.HTTPStatus = action.HTTPStatus
			return pending
		})

	case ActionDoneWithErrorMessage:
		return r.replace(state, action, func(pending Item) Item {
			pending.Status = StatusMessage
			pending.Message = action.Message
			pending.MessageKind = action.MessageKind
			if pending.MessageKind == "" {
				pending.MessageKind = MessageError
			}
			pending.HTTPStatus = action.HTTPStatus
			return pending
		})

	case ActionRequestError:
		return r.replace(state, action, func(pending Item) Item {
			pending.Status = StatusRequestError
			pending.Err = action.Err
			pending.HTTPStatus = action.HTTPStatus
			return pending
		})

	case ActionReset:
		if !state.Session.Initialized {
			return state
		}
		session := r.session(state.Session.HomeframeURL, state.Session.ParseResult)
		var items []Item
		if len(state.Items) > 0 {
			items = []Item{state.Items[0]}
		}
		return State{Items: items, Session: session}

	case ActionResetInitialFrame:
		item := Item{
			Identity:   NewIdentity(r.now()),
			Status:     StatusDone,
			Request:    &Request{Method: http.MethodGet, URL: action.HomeframeURL},
			Result:     action.Result,
			HTTPStatus: http.StatusOK,
			Extra:      action.Extra,
		}
		return State{Items: []Item{item}, Session: r.session(action.HomeframeURL, action.Result)}

	case ActionClear:
		return State{}
	}
	return state
}

func (r *Reducer) replace(state State, action Action, update func(pending Item) Item) State {
	index := state.Index(action.Item.Identity)
	if index == -1 {
		return state
	}
	return State{Items: replaceAt(state.Items, index, update(state.Items[index])), Session: state.Session}
}

func (r *Reducer) session(homeframeURL string, result *schema.ParseResultWithSpecs) Session {
	ret := Session{Initialized: true, HomeframeURL: homeframeURL, ParseResult: result}
	if r.resolve != nil {
		resolution := r.resolve(result)
		ret.Adapter = resolution.Adapter
		ret.Specification = resolution.Specification
		ret.FrameContext = resolution.FrameContext
	}
	if ret.FrameContext == nil {
		ret.FrameContext = map[string]any{}
	}
	return ret
}

// replaceAt returns a copy of items with position index set to item.
func replaceAt(items []Item, index int, item Item) []Item {
	ret := make([]Item, len(items))
	copy(ret, items)
	ret[index] = item
	return ret
}

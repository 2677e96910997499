package stack

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/frames/schema"
	"github.com/viant/frames/signer"
)

type testAdapter struct{ name string }

func (a *testAdapter) HasSigner() bool { return true }
func (a *testAdapter) Signer() any     { return a.name }
func (a *testAdapter) SignFrameAction(ctx context.Context, action *signer.ActionContext) (*signer.SignedRequest, error) {
	return &signer.SignedRequest{Body: signer.UntrustedData(action)}, nil
}
func (a *testAdapter) OnSignerlessFramePress(ctx context.Context) error { return nil }

func testResult(image string) *schema.ParseResultWithSpecs {
	frame := &schema.Frame{Image: image}
	return &schema.ParseResultWithSpecs{Specs: map[string]*schema.ParseResult{
		schema.SpecificationFarcaster:  {Status: schema.StatusSuccess, Frame: frame, Specification: schema.SpecificationFarcaster},
		schema.SpecificationOpenFrames: {Status: schema.StatusSuccess, Frame: frame, Specification: schema.SpecificationOpenFrames},
	}}
}

func newTestReducer(resolutions *int) *Reducer {
	adapter := &testAdapter{name: "fid:1"}
	return NewReducer(func(result *schema.ParseResultWithSpecs) signer.Resolution {
		if resolutions != nil {
			*resolutions++
		}
		return signer.Resolution{Adapter: adapter, Specification: schema.SpecificationFarcaster, FrameContext: map[string]any{"castId": 1}}
	}, WithClock(func() time.Time { return time.Unix(100, 0) }))
}

func getItem(url string) Item {
	return Pending(NewIdentity(time.Now()), &Request{Method: http.MethodGet, URL: url})
}

func TestReducer_LoadDone(t *testing.T) {
	resolutions := 0
	reducer := newTestReducer(&resolutions)
	pending := getItem("https://x/frame")

	state := reducer.Reduce(State{}, Load(pending))
	require.Len(t, state.Items, 1)
	assert.Equal(t, StatusPending, state.Items[0].Status)
	assert.False(t, state.Session.Initialized)

	result := testResult("https://x/1.png")
	state = reducer.Reduce(state, Done(pending, result, http.StatusOK, time.Second))
	require.Len(t, state.Items, 1)
	assert.Equal(t, StatusDone, state.Items[0].Status)
	assert.Equal(t, pending.ID, state.Items[0].ID)
	assert.True(t, state.Session.Initialized)
	assert.Equal(t, "https://x/frame", state.Session.HomeframeURL)
	assert.Equal(t, schema.SpecificationFarcaster, state.Session.Specification)
	assert.Equal(t, 1, resolutions)

	next := Pending(NewIdentity(time.Now()), &Request{Method: http.MethodPost, URL: "https://x/frame"})
	state = reducer.Reduce(state, Load(next))
	updated := testResult("https://x/2.png")
	state = reducer.Reduce(state, Done(next, updated, http.StatusOK, 0))
	require.Len(t, state.Items, 2)
	assert.Equal(t, 1, resolutions, "signer is resolved only on the first DONE")
	assert.Same(t, updated, state.Session.ParseResult)
	assert.Equal(t, "https://x/2.png", state.Items[0].Frame(schema.SpecificationFarcaster).Image)
	assert.Equal(t, "https://x/1.png", state.Items[1].Frame(schema.SpecificationFarcaster).Image)
}

func TestReducer_FindByIdentity(t *testing.T) {
	reducer := newTestReducer(nil)
	first := getItem("https://x/a")
	second := getItem("https://x/b")
	unknown := getItem("https://x/c")
	failure := errors.New("boom")

	var testCases = []struct {
		description string
		action      Action
		expect      []Status
	}{
		{
			description: "redirect resolves its own item",
			action:      DoneRedirect(first, "https://y/", http.StatusFound),
			expect:      []Status{StatusPending, StatusDoneRedirect},
		},
		{
			description: "message resolves its own item",
			action:      DoneWithErrorMessage(second, "bad state", MessageError, http.StatusBadRequest),
			expect:      []Status{StatusMessage, StatusPending},
		},
		{
			description: "request error resolves its own item",
			action:      RequestError(first, failure, 0),
			expect:      []Status{StatusPending, StatusRequestError},
		},
		{
			description: "unknown identity is a no-op",
			action:      RequestError(unknown, failure, 0),
			expect:      []Status{StatusPending, StatusPending},
		},
		{
			description: "unknown identity done is a no-op",
			action:      Done(unknown, testResult("x"), http.StatusOK, 0),
			expect:      []Status{StatusPending, StatusPending},
		},
	}

	for _, testCase := range testCases {
		state := reducer.Reduce(State{}, Load(first))
		state = reducer.Reduce(state, Load(second))
		before := state.Clone()
		next := reducer.Reduce(state, testCase.action)
		var actual []Status
		for _, item := range next.Items {
			actual = append(actual, item.Status)
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
		assert.Equal(t, before, state, testCase.description+": input state must not change")
	}
}

func TestReducer_MessageDefaultsToError(t *testing.T) {
	reducer := newTestReducer(nil)
	item := getItem("https://x/a")
	state := reducer.Reduce(reducer.Reduce(State{}, Load(item)), DoneWithErrorMessage(item, "bad", "", http.StatusBadRequest))
	assert.Equal(t, MessageError, state.Items[0].MessageKind)
	assert.Equal(t, "bad", state.Items[0].Message)
}

func TestReducer_Reset(t *testing.T) {
	resolutions := 0
	reducer := newTestReducer(&resolutions)

	untouched := reducer.Reduce(State{}, Reset())
	assert.False(t, untouched.Session.Initialized)
	assert.Equal(t, 0, resolutions)

	first := getItem("https://x/a")
	state := reducer.Reduce(State{}, Load(first))
	state = reducer.Reduce(state, Done(first, testResult("1"), http.StatusOK, 0))
	second := getItem("https://x/b")
	state = reducer.Reduce(state, Load(second))
	state = reducer.Reduce(state, Done(second, testResult("2"), http.StatusOK, 0))

	once := reducer.Reduce(state, Reset())
	require.Len(t, once.Items, 1)
	assert.Equal(t, second.ID, once.Items[0].ID, "reset keeps the most recent item")
	assert.Equal(t, 2, resolutions)

	twice := reducer.Reduce(once, Reset())
	assert.Equal(t, once.Session, twice.Session)
	assert.Equal(t, once.Items, twice.Items)
}

func TestReducer_ResetInitialFrameAndClear(t *testing.T) {
	reducer := newTestReducer(nil)
	pending := getItem("https://x/a")
	state := reducer.Reduce(State{}, Load(pending))

	result := testResult("home")
	state = reducer.Reduce(state, ResetInitialFrame("https://home/", result, nil))
	require.Len(t, state.Items, 1)
	assert.Equal(t, StatusDone, state.Items[0].Status)
	assert.NotEqual(t, pending.ID, state.Items[0].ID)
	assert.Equal(t, time.Unix(100, 0), state.Items[0].Timestamp)
	assert.Equal(t, http.StatusOK, state.Items[0].HTTPStatus)
	assert.Equal(t, "https://home/", state.Session.HomeframeURL)
	assert.True(t, state.Session.Initialized)

	cleared := reducer.Reduce(state, Clear())
	assert.Empty(t, cleared.Items)
	assert.False(t, cleared.Session.Initialized)
}

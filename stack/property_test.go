package stack

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// applyOps interprets generated op codes as a dispatch sequence. Each op either
// loads a new pending item or resolves an item picked from everything loaded so
// far (including items no longer in the stack after RESET/CLEAR).
func applyOps(ops []int, check func(before, after State, action Action) bool) bool {
	reducer := newTestReducer(nil)
	state := State{}
	var loaded []Item
	failure := errors.New("failed")
	for i, op := range ops {
		var action Action
		pick := func() Item {
			if len(loaded) == 0 {
				return getItem("https://x/none")
			}
			return loaded[(op/10)%len(loaded)]
		}
		switch op % 10 {
		case 0, 1, 2:
			item := Pending(NewIdentity(time.Unix(int64(i), 0)), &Request{Method: http.MethodPost, URL: "https://x/"})
			loaded = append(loaded, item)
			action = Load(item)
		case 3:
			action = Done(pick(), testResult("img"), http.StatusOK, 0)
		case 4:
			action = DoneRedirect(pick(), "https://y/", http.StatusFound)
		case 5:
			action = DoneWithErrorMessage(pick(), "m", MessageInfo, http.StatusBadRequest)
		case 6:
			action = RequestError(pick(), failure, 0)
		case 7:
			action = Reset()
		case 8:
			action = ResetInitialFrame("https://home/", testResult("home"), nil)
		case 9:
			if op%100 < 50 {
				action = Clear()
			} else {
				action = Done(getItem("https://x/unknown"), testResult("img"), http.StatusOK, 0)
			}
		}
		next := reducer.Reduce(state, action)
		if !check(state, next, action) {
			return false
		}
		state = next
	}
	return true
}

func countID(items []Item, id string) int {
	count := 0
	for _, item := range items {
		if item.ID == id {
			count++
		}
	}
	return count
}

func TestIdentityIntegrity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("find-by-identity transitions replace exactly one matching item or nothing", prop.ForAll(
		func(ops []int) bool {
			return applyOps(ops, func(before, after State, action Action) bool {
				switch action.Type {
				case ActionDone, ActionDoneRedirect, ActionDoneWithErrorMessage, ActionRequestError:
				default:
					return true
				}
				if len(before.Items) != len(after.Items) {
					return false
				}
				index := before.Index(action.Item.Identity)
				changed := 0
				for i := range before.Items {
					if before.Items[i].ID != after.Items[i].ID {
						return false
					}
					if before.Items[i].Status != after.Items[i].Status || before.Items[i].Err != after.Items[i].Err ||
						before.Items[i].Location != after.Items[i].Location || before.Items[i].Message != after.Items[i].Message {
						if i != index {
							return false
						}
						changed++
					}
				}
				if index == -1 && changed != 0 {
					return false
				}
				return countID(after.Items, action.Item.ID) <= 1
			})
		},
		gen.SliceOf(gen.IntRange(0, 999)),
	))

	properties.TestingRun(t)
}

func TestSessionMonotonicity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("an initialized session only reverts on CLEAR", prop.ForAll(
		func(ops []int) bool {
			return applyOps(ops, func(before, after State, action Action) bool {
				if before.Session.Initialized && !after.Session.Initialized {
					return action.Type == ActionClear
				}
				return true
			})
		},
		gen.SliceOf(gen.IntRange(0, 999)),
	))

	properties.TestingRun(t)
}

func TestIdempotentReset(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)
	reducer := newTestReducer(nil)

	properties.Property("two consecutive resets yield the same session", prop.ForAll(
		func(ops []int) bool {
			var final State
			applyOps(ops, func(_, after State, _ Action) bool {
				final = after
				return true
			})
			once := reducer.Reduce(final, Reset())
			twice := reducer.Reduce(once, Reset())
			return once.Session.Initialized == twice.Session.Initialized &&
				once.Session.Specification == twice.Session.Specification &&
				once.Session.HomeframeURL == twice.Session.HomeframeURL &&
				once.Session.ParseResult == twice.Session.ParseResult &&
				once.Session.Adapter == twice.Session.Adapter &&
				len(once.Items) == len(twice.Items)
		},
		gen.SliceOf(gen.IntRange(0, 999)),
	))

	properties.TestingRun(t)
}

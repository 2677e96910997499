package stack

import (
	"github.com/viant/frames/schema"
	"github.com/viant/frames/signer"
)

// Session is derived on the first DONE and re-derived on RESET.
type Session struct {
	Initialized   bool
	Adapter       signer.Adapter
	Specification string
	FrameContext  map[string]any
	HomeframeURL  string
	ParseResult   *schema.ParseResultWithSpecs
}

// State is the interaction stack plus session; Items[0] is the current item.
type State struct {
	Items   []Item
	Session Session
}

// Current returns the most recent item.
func (s State) Current() (Item, bool) {
	if len(s.Items) == 0 {
		return Item{}, false
	}
	return s.Items[0], true
}

// Index returns the position of the item with identity, or -1.
func (s State) Index(identity Identity) int {
	for i := range s.Items {
		if s.Items[i].Same(identity) {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no slice with s.
func (s State) Clone() State {
	ret := s
	if s.Items != nil {
		ret.Items = make([]Item, len(s.Items))
		copy(ret.Items, s.Items)
	}
	return ret
}

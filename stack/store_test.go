package stack

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Subscribe(t *testing.T) {
	store := NewStore(newTestReducer(nil))
	var seen []int
	unsubscribe := store.Subscribe(func(state State) {
		seen = append(seen, len(state.Items))
	})
	store.Dispatch(Load(getItem("https://x/a")))
	store.Dispatch(Load(getItem("https://x/b")))
	unsubscribe()
	store.Dispatch(Load(getItem("https://x/c")))
	assert.Equal(t, []int{1, 2}, seen)
	assert.Len(t, store.State().Items, 3)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	store := NewStore(newTestReducer(nil))
	const requests = 32
	items := make([]Item, requests)
	for i := range items {
		items[i] = Pending(NewIdentity(time.Now()), &Request{Method: http.MethodPost, URL: "https://x/"})
		store.Dispatch(Load(items[i]))
	}
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(item Item) {
			defer wg.Done()
			store.Dispatch(DoneRedirect(item, "https://y/"+item.ID, http.StatusFound))
		}(items[i])
	}
	wg.Wait()

	state := store.State()
	require.Len(t, state.Items, requests)
	for _, item := range state.Items {
		assert.Equal(t, StatusDoneRedirect, item.Status)
		assert.Equal(t, "https://y/"+item.ID, item.Location)
	}
}

func TestStore_StateIsSnapshot(t *testing.T) {
	store := NewStore(newTestReducer(nil))
	store.Dispatch(Load(getItem("https://x/a")))
	snapshot := store.State()
	snapshot.Items[0].Status = StatusDone
	assert.Equal(t, StatusPending, store.State().Items[0].Status)
}

package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliverReachesConnectedClient(t *testing.T) {
	h := NewHub()
	cl := &client{send: make(chan activityMessage, 8)}
	h.clients[cl] = struct{}{}

	h.deliver(cl, activityMessage{UnseenCount: 2})

	msg := <-cl.send
	assert.Equal(t, int64(2), msg.UnseenCount)
}

func TestDeliverSkipsRemovedClient(t *testing.T) {
	h := NewHub()
	cl := &client{send: make(chan activityMessage, 8)}
	h.clients[cl] = struct{}{}

	h.remove(cl)

	// send channel is closed at this point; a late delivery from a
	// broadcast that snapshotted before the disconnect must be dropped
	assert.NotPanics(t, func() {
		h.deliver(cl, activityMessage{UnseenCount: 3})
	})
}

func TestDeliverDropsForSlowClient(t *testing.T) {
	h := NewHub()
	cl := &client{send: make(chan activityMessage, 1)}
	h.clients[cl] = struct{}{}

	h.deliver(cl, activityMessage{UnseenCount: 1})
	h.deliver(cl, activityMessage{UnseenCount: 2})

	assert.Equal(t, int64(1), (<-cl.send).UnseenCount)
	select {
	case msg := <-cl.send:
		t.Fatalf("expected the second message to be dropped, got %+v", msg)
	default:
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	h := NewHub()
	cl := &client{send: make(chan activityMessage, 8)}
	h.clients[cl] = struct{}{}

	h.remove(cl)
	assert.NotPanics(t, func() { h.remove(cl) })
}

func TestDeliverRacesWithDisconnect(t *testing.T) {
	h := NewHub()
	for i := 0; i < 500; i++ {
		cl := &client{send: make(chan activityMessage, 1)}
		h.clients[cl] = struct{}{}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			h.remove(cl)
		}()
		go func() {
			defer wg.Done()
			h.deliver(cl, activityMessage{UnseenCount: 1})
		}()
		wg.Wait()
	}
}

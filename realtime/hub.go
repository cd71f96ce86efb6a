package realtime

import (
	"log"
	"sync"
	"time"

	"campusfix/models"
	"campusfix/services"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

type activityMessage struct {
	UnseenCount int64 `json:"unseenCount"`
}

type client struct {
	conn *websocket.Conn
	user models.User
	send chan activityMessage
}

// Hub tracks connected activity-feed clients and pushes fresh unseen
// counts at them when relevant reports change.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Register adopts an upgraded websocket connection for a user. It sends
// the current unseen count immediately, then pushes on every relevant
// change until the connection drops.
func (h *Hub) Register(user models.User, conn *websocket.Conn) {
	cl := &client{conn: conn, user: user, send: make(chan activityMessage, 8)}

	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()

	h.push(cl)

	go cl.writePump(func() { h.remove(cl) })
	go cl.readPump(func() { h.remove(cl) })
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
}

// Notify reacts to one change-feed event by recomputing counts for every
// connected client whose role-based subscription matches it.
func (h *Hub) Notify(event services.ChangeEvent) {
	for _, cl := range h.snapshot() {
		if services.RelevantTo(event, &cl.user) {
			h.push(cl)
		}
	}
}

// Broadcast recomputes for every connected client. Driven by the fixed
// polling interval so a missed change event only delays a count, never
// loses it.
func (h *Hub) Broadcast() {
	for _, cl := range h.snapshot() {
		h.push(cl)
	}
}

func (h *Hub) snapshot() []*client {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*client, 0, len(h.clients))
	for cl := range h.clients {
		out = append(out, cl)
	}
	return out
}

func (h *Hub) push(cl *client) {
	count, err := services.ComputeUnseenCount(&cl.user)
	if err != nil {
		log.Printf("Failed to compute unseen count for %s: %v", cl.user.ID.Hex(), err)
		return
	}
	h.deliver(cl, activityMessage{UnseenCount: count})
}

// deliver hands a message to the client's write pump. The membership
// re-check and the send happen under the lock: remove closes cl.send
// under the same lock, so a client that disconnected while the count was
// being computed is skipped instead of hit with a send on a closed
// channel.
func (h *Hub) deliver(cl *client, msg activityMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[cl]; !ok {
		return
	}
	select {
	case cl.send <- msg:
	default:
		// slow client; it will catch up on the next tick
	}
}

func (cl *client) writePump(onClose func()) {
	defer func() {
		onClose()
		cl.conn.Close()
	}()
	for msg := range cl.send {
		cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteJSON(msg); err != nil {
			return
		}
	}
	cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump drains the connection so pings and close frames are handled
func (cl *client) readPump(onClose func()) {
	defer onClose()
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

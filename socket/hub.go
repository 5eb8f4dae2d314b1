package socket

import (
	"log"
	"sync"

	"chirp_server/metrics"
)

// Namespace is the single socket.io namespace the server uses.
const Namespace = "/"

// BroadcastRoom is joined by every connection so an untargeted emit reaches
// all connected clients.
const BroadcastRoom = "broadcast"

// Session is the slice of a socket.io connection the hub needs.
// socketio.Conn satisfies it.
type Session interface {
	ID() string
	Emit(event string, args ...interface{})
}

// Broadcaster delivers an event to every member of a room.
// *socketio.Server satisfies it.
type Broadcaster interface {
	BroadcastToRoom(namespace string, room string, event string, args ...interface{}) bool
}

// Hub maps a user identifier to that user's latest connection. A reconnect
// overwrites the previous mapping; there is no multi-device fan-out. The map
// is mutated from every connection's callbacks and read from handler
// goroutines, so all access goes through the RWMutex.
type Hub struct {
	mu          sync.RWMutex
	sessions    map[string]Session
	broadcaster Broadcaster
}

func NewHub(b Broadcaster) *Hub {
	return &Hub{
		sessions:    make(map[string]Session),
		broadcaster: b,
	}
}

// Register maps userID to the given connection. Last connection wins.
func (h *Hub) Register(userID string, s Session) {
	h.mu.Lock()
	h.sessions[userID] = s
	count := len(h.sessions)
	h.mu.Unlock()

	metrics.SocketConnections.Set(float64(count))
	log.Printf("✅ Socket registered for user %s (conn %s)", userID, s.ID())
}

// Unregister drops the mapping for userID.
func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	delete(h.sessions, userID)
	count := len(h.sessions)
	h.mu.Unlock()

	metrics.SocketConnections.Set(float64(count))
	log.Printf("👋 Socket unregistered for user %s", userID)
}

// UnregisterSession drops the mapping for userID only while it still points
// at the connection with the given id. A disconnect racing with a reconnect
// must not tear down the newer connection's mapping.
func (h *Hub) UnregisterSession(userID, sessionID string) {
	h.mu.Lock()
	if current, ok := h.sessions[userID]; ok && current.ID() == sessionID {
		delete(h.sessions, userID)
	}
	count := len(h.sessions)
	h.mu.Unlock()

	metrics.SocketConnections.Set(float64(count))
}

// Connected reports whether userID currently has a registered connection.
func (h *Hub) Connected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.sessions[userID]
	return ok
}

// Emit delivers an event. An empty target broadcasts to every connected
// client. A target that resolves through the user mapping goes to that
// user's connection only; otherwise the target is treated as a room handle.
// Delivery is fire-and-forget: failures are logged and never reach the
// caller, and ordering is only guaranteed per connection by the transport.
func (h *Hub) Emit(target, event string, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Socket emit %s to %q failed: %v", event, target, r)
		}
	}()

	metrics.SocketEvents.WithLabelValues(event).Inc()

	if target == "" {
		if h.broadcaster != nil {
			h.broadcaster.BroadcastToRoom(Namespace, BroadcastRoom, event, payload)
		}
		return
	}

	h.mu.RLock()
	session, ok := h.sessions[target]
	h.mu.RUnlock()

	if ok {
		session.Emit(event, payload)
		return
	}

	// Not a known user: interpret the target as a room handle.
	if h.broadcaster != nil {
		h.broadcaster.BroadcastToRoom(Namespace, target, event, payload)
	}
}

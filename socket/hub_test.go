package socket

import (
	"sync"
	"testing"
)

type fakeSession struct {
	id     string
	mu     sync.Mutex
	events []string
}

func (f *fakeSession) ID() string { return f.id }

func (f *fakeSession) Emit(event string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeSession) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

type fakeBroadcaster struct {
	mu    sync.Mutex
	rooms map[string][]string // room -> event names
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{rooms: make(map[string][]string)}
}

func (f *fakeBroadcaster) BroadcastToRoom(namespace, room, event string, args ...interface{}) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms[room] = append(f.rooms[room], event)
	return true
}

func TestEmitToRegisteredUser(t *testing.T) {
	b := newFakeBroadcaster()
	hub := NewHub(b)

	alice := &fakeSession{id: "c1"}
	bob := &fakeSession{id: "c2"}
	hub.Register("alice", alice)
	hub.Register("bob", bob)

	hub.Emit("alice", "notification", map[string]string{"content": "hi"})

	if got := alice.received(); len(got) != 1 || got[0] != "notification" {
		t.Fatalf("alice should receive the event, got %v", got)
	}
	if got := bob.received(); len(got) != 0 {
		t.Fatalf("bob must not receive a targeted event, got %v", got)
	}
	if len(b.rooms) != 0 {
		t.Fatalf("known user target must not hit the room path, got %v", b.rooms)
	}
}

func TestEmitBroadcast(t *testing.T) {
	b := newFakeBroadcaster()
	hub := NewHub(b)
	hub.Register("alice", &fakeSession{id: "c1"})

	hub.Emit("", "tweet-created", map[string]string{"tweetId": "T1"})

	if events := b.rooms[BroadcastRoom]; len(events) != 1 || events[0] != "tweet-created" {
		t.Fatalf("empty target must broadcast to the broadcast room, got %v", b.rooms)
	}
}

func TestEmitUnknownTargetFallsBackToRoom(t *testing.T) {
	b := newFakeBroadcaster()
	hub := NewHub(b)

	hub.Emit("match-42", "comment-added", nil)

	if events := b.rooms["match-42"]; len(events) != 1 || events[0] != "comment-added" {
		t.Fatalf("unknown target must be treated as a room handle, got %v", b.rooms)
	}
}

func TestLastConnectionWins(t *testing.T) {
	hub := NewHub(newFakeBroadcaster())

	old := &fakeSession{id: "c1"}
	fresh := &fakeSession{id: "c2"}
	hub.Register("alice", old)
	hub.Register("alice", fresh)

	hub.Emit("alice", "notification", nil)

	if got := old.received(); len(got) != 0 {
		t.Fatalf("stale connection must not receive events, got %v", got)
	}
	if got := fresh.received(); len(got) != 1 {
		t.Fatalf("latest connection should receive the event, got %v", got)
	}
}

func TestUnregisterThenEmitFallsBack(t *testing.T) {
	b := newFakeBroadcaster()
	hub := NewHub(b)

	s := &fakeSession{id: "c1"}
	hub.Register("alice", s)
	hub.Unregister("alice")

	hub.Emit("alice", "notification", nil)

	if got := s.received(); len(got) != 0 {
		t.Fatalf("unregistered connection must not receive events, got %v", got)
	}
	if events := b.rooms["alice"]; len(events) != 1 {
		t.Fatalf("after unregister the target is a room handle, got %v", b.rooms)
	}
}

func TestUnregisterSessionKeepsNewerConnection(t *testing.T) {
	hub := NewHub(newFakeBroadcaster())

	old := &fakeSession{id: "c1"}
	fresh := &fakeSession{id: "c2"}
	hub.Register("alice", old)
	hub.Register("alice", fresh)

	// The old connection's disconnect callback fires after the reconnect.
	hub.UnregisterSession("alice", "c1")

	if !hub.Connected("alice") {
		t.Fatal("stale disconnect must not tear down the newer connection")
	}

	hub.UnregisterSession("alice", "c2")
	if hub.Connected("alice") {
		t.Fatal("matching disconnect must remove the mapping")
	}
}

func TestConcurrentRegisterAndEmit(t *testing.T) {
	hub := NewHub(newFakeBroadcaster())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			hub.Register("alice", &fakeSession{id: "c"})
		}(i)
		go func(n int) {
			defer wg.Done()
			hub.Emit("alice", "notification", nil)
		}(i)
	}
	wg.Wait()
}

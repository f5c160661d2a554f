package http

import (
	"encoding/json"
	"testing"

	"github.com/communiconnect/delivery/internal/domain"
	"github.com/communiconnect/delivery/internal/registry"
)

func TestHub_RegisterRecordsPresence(t *testing.T) {
	reg := registry.New()
	hub := NewHub(reg)

	c := hub.Register("u1", make(chan []byte, 1))

	if !reg.IsReachable("u1") {
		t.Fatal("registering a client must make the subject reachable")
	}
	conns := reg.ConnectionsFor("u1")
	if len(conns) != 1 || conns[0] != c.ConnectionID() {
		t.Fatalf("registry holds wrong connections: %v", conns)
	}
	if hub.ConnectedCount() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ConnectedCount())
	}
}

func TestHub_UnregisterClearsPresence(t *testing.T) {
	reg := registry.New()
	hub := NewHub(reg)

	c := hub.Register("u1", make(chan []byte, 1))
	hub.Unregister(c)
	hub.Unregister(c) // double unregister is harmless

	if reg.IsReachable("u1") {
		t.Fatal("subject still reachable after unregister")
	}
	if hub.ConnectedCount() != 0 {
		t.Fatalf("expected 0 clients, got %d", hub.ConnectedCount())
	}
}

func TestHub_EmitDeliversToClient(t *testing.T) {
	reg := registry.New()
	hub := NewHub(reg)

	send := make(chan []byte, 1)
	c := hub.Register("u1", send)

	hub.Emit(c.ConnectionID(), domain.RealtimePayload{
		Event: "message",
		ID:    "conv-1",
		Data:  map[string]any{"senderId": "alice"},
	})

	select {
	case msg := <-send:
		var frame map[string]any
		if err := json.Unmarshal(msg, &frame); err != nil {
			t.Fatalf("frame is not JSON: %v", err)
		}
		if frame["event"] != "message" || frame["id"] != "conv-1" {
			t.Fatalf("unexpected frame: %s", msg)
		}
	default:
		t.Fatal("no frame delivered")
	}
}

func TestHub_EmitUnknownConnectionIsNoop(t *testing.T) {
	hub := NewHub(registry.New())
	hub.Emit("no-such-conn", domain.RealtimePayload{Event: "message"})
}

func TestHub_EmitFullBufferDropsFrame(t *testing.T) {
	reg := registry.New()
	hub := NewHub(reg)

	send := make(chan []byte) // unbuffered and never drained
	c := hub.Register("u1", send)

	// Must return immediately instead of blocking the dispatcher.
	hub.Emit(c.ConnectionID(), domain.RealtimePayload{Event: "message"})
}

package handlers

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/communiconnect/delivery/internal/domain"
)

func envelope(t *testing.T, eventType, eventID string, payload any) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"eventType": eventType,
		"eventId":   eventID,
		"payload":   payload,
	})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestHandleMessageCreated(t *testing.T) {
	data := envelope(t, "MESSAGE_CREATED", "ev-42", map[string]any{
		"conversationId": "conv-1",
		"messageId":      "msg-9",
		"senderId":       "alice",
		"senderName":     "Alice",
		"recipientIds":   []string{"bob", "carol", "bob"},
	})

	ev := handleMessageCreated(data)
	if ev == nil {
		t.Fatal("expected event")
	}
	if ev.Kind != domain.KindMessage || ev.ID != "ev-42" || ev.EntityID != "conv-1" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if !reflect.DeepEqual(ev.Recipients, []string{"bob", "carol"}) {
		t.Fatalf("recipients not deduped: %v", ev.Recipients)
	}
	if ev.Payload["senderName"] != "Alice" {
		t.Fatalf("payload not forwarded: %v", ev.Payload)
	}
}

func TestHandleMessageCreated_NoRecipients(t *testing.T) {
	data := envelope(t, "MESSAGE_CREATED", "ev-1", map[string]any{
		"conversationId": "conv-1",
	})
	if ev := handleMessageCreated(data); ev != nil {
		t.Fatalf("expected nil for empty recipients, got %+v", ev)
	}
}

func TestHandleAlertRaised_CriticalSeverity(t *testing.T) {
	data := envelope(t, "ALERT_RAISED", "ev-2", map[string]any{
		"alertId":      "alert-7",
		"category":     "Incendie",
		"description":  "Feu signalé au marché",
		"severity":     "critical",
		"recipientIds": []string{"u1", "u2"},
	})

	ev := handleAlertRaised(data)
	if ev == nil {
		t.Fatal("expected event")
	}
	if ev.Severity != domain.SeverityCritical {
		t.Fatalf("expected critical severity, got %q", ev.Severity)
	}
	if ev.Kind != domain.KindAlert || ev.EntityID != "alert-7" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestHandleFriendRequestAccepted_TargetsRequester(t *testing.T) {
	data := envelope(t, "FRIEND_REQUEST_ACCEPTED", "ev-3", map[string]any{
		"requestId":  "req-1",
		"fromUserId": "alice",
		"toUserId":   "bob",
		"toUserName": "Bob",
	})

	ev := handleFriendRequestAccepted(data)
	if ev == nil {
		t.Fatal("expected event")
	}
	if !reflect.DeepEqual(ev.Recipients, []string{"alice"}) {
		t.Fatalf("acceptance must notify the requester, got %v", ev.Recipients)
	}
	if ev.Kind != domain.KindFriendAccept {
		t.Fatalf("unexpected kind: %q", ev.Kind)
	}
}

func TestHandleDirectCommand(t *testing.T) {
	data, _ := json.Marshal(map[string]any{
		"commandId":  "cmd-1",
		"kind":       "alert",
		"severity":   "critical",
		"entityId":   "a-1",
		"title":      "Alerte urgente",
		"body":       "corps",
		"recipients": []string{"u1"},
	})

	ev := handleDirectCommand(data)
	if ev == nil {
		t.Fatal("expected event")
	}
	if ev.Severity != domain.SeverityCritical || ev.Kind != domain.KindAlert {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestHandleDirectCommand_RejectsIncomplete(t *testing.T) {
	data, _ := json.Marshal(map[string]any{"commandId": "cmd-1", "title": "t"})
	if ev := handleDirectCommand(data); ev != nil {
		t.Fatalf("expected nil for command without recipients, got %+v", ev)
	}
}

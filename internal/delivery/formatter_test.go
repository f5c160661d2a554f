package delivery_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/communiconnect/delivery/internal/delivery"
	"github.com/communiconnect/delivery/internal/domain"
)

func TestPayloads_Pure(t *testing.T) {
	ev := domain.NewEvent("ev-1", domain.KindMessage, "conv-9", "Nouveau message", "Alice vous a envoyé un message.", []string{"u1"})
	ev.Payload = map[string]any{"conversationId": "conv-9", "senderId": "alice"}

	rt1, push1 := delivery.Payloads(ev)
	rt2, push2 := delivery.Payloads(ev)

	b1, _ := json.Marshal(rt1)
	b2, _ := json.Marshal(rt2)
	if !bytes.Equal(b1, b2) {
		t.Fatalf("realtime payload not deterministic: %s vs %s", b1, b2)
	}

	p1, _ := json.Marshal(push1)
	p2, _ := json.Marshal(push2)
	if !bytes.Equal(p1, p2) {
		t.Fatalf("push payload not deterministic: %s vs %s", p1, p2)
	}
}

func TestPayloads_RealtimeForwardsDomainPayloadVerbatim(t *testing.T) {
	ev := domain.NewEvent("ev-1", domain.KindAlert, "alert-3", "Alerte", "corps", []string{"u1"})
	ev.Payload = map[string]any{"lat": 9.51, "lng": -13.71}

	rt, _ := delivery.Payloads(ev)

	if rt.Event != "alert" || rt.ID != "alert-3" {
		t.Fatalf("unexpected realtime envelope: %+v", rt)
	}
	if rt.Data["lat"] != 9.51 || rt.Data["lng"] != -13.71 {
		t.Fatalf("domain payload not forwarded verbatim: %+v", rt.Data)
	}
}

func TestPayloads_PushDataCarriesTypeAndID(t *testing.T) {
	ev := domain.NewEvent("ev-1", domain.KindLivestream, "stream-7", "Live en cours", "b", []string{"u1"})

	_, push := delivery.Payloads(ev)

	if push.Data["type"] != "livestream" || push.Data["id"] != "stream-7" {
		t.Fatalf("unexpected push data: %v", push.Data)
	}
}

func TestPayloads_CategoryCollapsesVariants(t *testing.T) {
	update := domain.NewEvent("e", domain.KindEventUpdate, "id", "t", "b", nil)
	_, push := delivery.Payloads(update)
	if push.Data["type"] != "event" {
		t.Fatalf("event_update must map to type event, got %q", push.Data["type"])
	}

	accept := domain.NewEvent("e", domain.KindFriendAccept, "id", "t", "b", nil)
	_, push = delivery.Payloads(accept)
	if push.Data["type"] != "friend_request" {
		t.Fatalf("friend_accept must map to type friend_request, got %q", push.Data["type"])
	}
}

func TestPayloads_RequireInteraction(t *testing.T) {
	alert := domain.NewEvent("e", domain.KindAlert, "id", "t", "b", nil)
	if _, push := delivery.Payloads(alert); !push.RequireInteraction {
		t.Fatal("alerts must set require_interaction")
	}

	critical := domain.NewEvent("e", domain.KindMessage, "id", "t", "b", nil)
	critical.Severity = domain.SeverityCritical
	if _, push := delivery.Payloads(critical); !push.RequireInteraction {
		t.Fatal("critical severity must set require_interaction")
	}

	msg := domain.NewEvent("e", domain.KindMessage, "id", "t", "b", nil)
	if _, push := delivery.Payloads(msg); push.RequireInteraction {
		t.Fatal("plain messages must not set require_interaction")
	}
}

func TestActionsFor_Table(t *testing.T) {
	cases := []struct {
		kind domain.Kind
		ids  []string
	}{
		{domain.KindMessage, []string{"reply", "view"}},
		{domain.KindAlert, []string{"view", "share"}},
		{domain.KindLivestream, []string{"join", "view"}},
		{domain.KindEvent, []string{"rsvp", "view"}},
		{domain.KindEventUpdate, []string{"rsvp", "view"}},
	}
	for _, tc := range cases {
		actions := delivery.ActionsFor(tc.kind)
		if len(actions) != len(tc.ids) {
			t.Fatalf("%s: expected %d actions, got %+v", tc.kind, len(tc.ids), actions)
		}
		for i, id := range tc.ids {
			if actions[i].ID != id {
				t.Fatalf("%s: expected action %q at %d, got %+v", tc.kind, id, i, actions)
			}
			if actions[i].Label == "" {
				t.Fatalf("%s: action %q has empty label", tc.kind, id)
			}
		}
	}
}

func TestActionsFor_UnknownKindDefaultsToView(t *testing.T) {
	for _, k := range []domain.Kind{domain.KindFriendRequest, domain.KindFriendAccept, domain.Kind("mystery")} {
		actions := delivery.ActionsFor(k)
		if len(actions) != 1 || actions[0].ID != "view" {
			t.Fatalf("%s: expected single default view action, got %+v", k, actions)
		}
	}
}

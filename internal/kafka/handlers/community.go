package handlers

import (
	"encoding/json"

	"github.com/communiconnect/delivery/internal/domain"
	"github.com/communiconnect/delivery/internal/messages"
)

func init() {
	Register("community-events", "EVENT_CREATED", handleEventCreated)
	Register("community-events", "EVENT_UPDATED", handleEventUpdated)
}

type communityEnv struct {
	EventType string `json:"eventType"`
	EventID   string `json:"eventId"`
	Payload   struct {
		EventID     string `json:"eventId"`
		Title       string `json:"title"`
		OrganizerID string `json:"organizerId"`
		StartsAt    string `json:"startsAt"`
		// RecipientIDs: users in the event's quartier, resolved by the
		// events service at publish time.
		RecipientIDs []string `json:"recipientIds"`
	} `json:"payload"`
}

func parseCommunityEnv(data []byte) (*communityEnv, bool) {
	var env communityEnv
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	if len(env.Payload.RecipientIDs) == 0 {
		return nil, false
	}
	return &env, true
}

func communityEvent(env *communityEnv, kind domain.Kind, title, body string) *domain.Event {
	ev := domain.NewEvent(env.EventID, kind, env.Payload.EventID, title, body, env.Payload.RecipientIDs)
	ev.ActorID = env.Payload.OrganizerID
	ev.Payload = map[string]any{
		"eventId":  env.Payload.EventID,
		"title":    env.Payload.Title,
		"startsAt": env.Payload.StartsAt,
	}
	return &ev
}

func handleEventCreated(data []byte) *domain.Event {
	env, ok := parseCommunityEnv(data)
	if !ok {
		return nil
	}
	title, body := messages.EventCreated(env.Payload.Title)
	return communityEvent(env, domain.KindEvent, title, body)
}

func handleEventUpdated(data []byte) *domain.Event {
	env, ok := parseCommunityEnv(data)
	if !ok {
		return nil
	}
	title, body := messages.EventUpdated(env.Payload.Title)
	return communityEvent(env, domain.KindEventUpdate, title, body)
}

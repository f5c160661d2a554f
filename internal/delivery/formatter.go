package delivery

import "github.com/communiconnect/delivery/internal/domain"

// Payloads maps an event to its channel payloads. Pure function: no I/O,
// no hidden state — identical events produce identical payloads.
func Payloads(ev domain.Event) (domain.RealtimePayload, domain.PushPayload) {
	rt := domain.RealtimePayload{
		Event: string(ev.Kind),
		ID:    ev.EntityID,
		Data:  ev.Payload,
	}

	push := domain.PushPayload{
		Title: ev.Title,
		Body:  ev.Body,
		Data: map[string]string{
			"type": category(ev.Kind),
			"id":   ev.EntityID,
		},
		Actions:            ActionsFor(ev.Kind),
		RequireInteraction: ev.Kind == domain.KindAlert || ev.Severity == domain.SeverityCritical,
	}
	return rt, push
}

// category collapses event kinds to the notification types the client's
// service worker routes on (clicks open /messages, /alerts, ...).
func category(k domain.Kind) string {
	switch k {
	case domain.KindEventUpdate:
		return string(domain.KindEvent)
	case domain.KindFriendAccept:
		return string(domain.KindFriendRequest)
	default:
		return string(k)
	}
}

// ActionsFor returns the ordered action buttons for a push of the given
// kind. Unknown kinds fall back to a single "view" action; the client
// notification UI assumes at least one action is always present.
func ActionsFor(k domain.Kind) []domain.Action {
	switch k {
	case domain.KindMessage:
		return []domain.Action{
			{ID: "reply", Label: "Répondre"},
			{ID: "view", Label: "Voir"},
		}
	case domain.KindAlert:
		return []domain.Action{
			{ID: "view", Label: "Voir détails"},
			{ID: "share", Label: "Partager"},
		}
	case domain.KindLivestream:
		return []domain.Action{
			{ID: "join", Label: "Rejoindre"},
			{ID: "view", Label: "Voir"},
		}
	case domain.KindEvent, domain.KindEventUpdate:
		return []domain.Action{
			{ID: "rsvp", Label: "Participer"},
			{ID: "view", Label: "Voir détails"},
		}
	default:
		return []domain.Action{{ID: "view", Label: "Voir"}}
	}
}

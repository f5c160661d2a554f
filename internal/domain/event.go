package domain

import "time"

// Kind tags a domain event with its origin feature.
type Kind string

const (
	KindMessage       Kind = "message"
	KindAlert         Kind = "alert"
	KindFriendRequest Kind = "friend_request"
	KindFriendAccept  Kind = "friend_accept"
	KindEvent         Kind = "event"
	KindEventUpdate   Kind = "event_update"
	KindLivestream    Kind = "livestream"
)

// Severity qualifies alert-like events. Critical alerts are surfaced
// more aggressively on the client (notifications do not auto-dismiss).
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityCritical Severity = "critical"
)

// Event is an immutable record of something that happened in CommuniConnect
// (message sent, alert raised, livestream started, ...) together with the
// ordered set of recipients it must be delivered to. Events are constructed
// by the ingestion layer after the originating write has been durably
// committed; delivery failures never flow back to that write.
type Event struct {
	// ID is the source event id from the producing service, used as the
	// idempotency key for inbox persistence.
	ID         string         `json:"id"`
	Kind       Kind           `json:"kind"`
	Severity   Severity       `json:"severity,omitempty"`
	ActorID    string         `json:"actor_id,omitempty"`
	EntityID   string         `json:"entity_id"`
	Title      string         `json:"title"`
	Body       string         `json:"body"`
	Payload    map[string]any `json:"payload,omitempty"`
	Recipients []string       `json:"recipients"`
	CreatedAt  time.Time      `json:"created_at"`
}

// NewEvent builds an Event, deduplicating recipients while preserving
// first-seen order (insertion order is delivery priority).
func NewEvent(id string, kind Kind, entityID, title, body string, recipients []string) Event {
	return Event{
		ID:         id,
		Kind:       kind,
		Severity:   SeverityInfo,
		EntityID:   entityID,
		Title:      title,
		Body:       body,
		Recipients: dedupe(recipients),
		CreatedAt:  time.Now().UTC(),
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

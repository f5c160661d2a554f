package messages

import "fmt"

// ─── Messagerie ──────────────────────────────────────────────────────────────

func NewMessage(senderName string) (string, string) {
	return NewMessageTitle, fmt.Sprintf(NewMessageBody, senderName)
}

// ─── Alertes ─────────────────────────────────────────────────────────────────

func AlertRaised(category, description string, critical bool) (string, string) {
	title := AlertRaisedTitle
	if critical {
		title = AlertCriticalTitle
	}
	return title, fmt.Sprintf(AlertRaisedBody, category, description)
}

// ─── Amis ────────────────────────────────────────────────────────────────────

func FriendRequest(senderName string) (string, string) {
	return FriendRequestTitle, fmt.Sprintf(FriendRequestBody, senderName)
}

func FriendAccept(friendName string) (string, string) {
	return FriendAcceptTitle, fmt.Sprintf(FriendAcceptBody, friendName)
}

// ─── Événements ──────────────────────────────────────────────────────────────

func EventCreated(eventTitle string) (string, string) {
	return EventCreatedTitle, fmt.Sprintf(EventCreatedBody, eventTitle)
}

func EventUpdated(eventTitle string) (string, string) {
	return EventUpdatedTitle, fmt.Sprintf(EventUpdatedBody, eventTitle)
}

// ─── Lives ───────────────────────────────────────────────────────────────────

func LivestreamStarted(hostName string) (string, string) {
	return LivestreamStartedTitle, fmt.Sprintf(LivestreamStartedBody, hostName)
}

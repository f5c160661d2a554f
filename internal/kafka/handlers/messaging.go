package handlers

import (
	"encoding/json"

	"github.com/communiconnect/delivery/internal/domain"
	"github.com/communiconnect/delivery/internal/messages"
)

func init() {
	Register("message-events", "MESSAGE_CREATED", handleMessageCreated)
}

type messageEnv struct {
	EventType string `json:"eventType"`
	EventID   string `json:"eventId"`
	Payload   struct {
		ConversationID string   `json:"conversationId"`
		MessageID      string   `json:"messageId"`
		SenderID       string   `json:"senderId"`
		SenderName     string   `json:"senderName"`
		RecipientIDs   []string `json:"recipientIds"`
	} `json:"payload"`
}

// handleMessageCreated notifies conversation members about a new private
// message. The producer already excludes the sender from recipientIds.
func handleMessageCreated(data []byte) *domain.Event {
	var env messageEnv
	if err := json.Unmarshal(data, &env); err != nil {
		return nil
	}
	if len(env.Payload.RecipientIDs) == 0 {
		return nil
	}

	title, body := messages.NewMessage(env.Payload.SenderName)
	ev := domain.NewEvent(env.EventID, domain.KindMessage, env.Payload.ConversationID, title, body, env.Payload.RecipientIDs)
	ev.ActorID = env.Payload.SenderID
	ev.Payload = map[string]any{
		"conversationId": env.Payload.ConversationID,
		"messageId":      env.Payload.MessageID,
		"senderId":       env.Payload.SenderID,
		"senderName":     env.Payload.SenderName,
	}
	return &ev
}

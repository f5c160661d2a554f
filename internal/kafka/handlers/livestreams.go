package handlers

import (
	"encoding/json"

	"github.com/communiconnect/delivery/internal/domain"
	"github.com/communiconnect/delivery/internal/messages"
)

func init() {
	Register("livestream-events", "LIVESTREAM_STARTED", handleLivestreamStarted)
}

type livestreamEnv struct {
	EventType string `json:"eventType"`
	EventID   string `json:"eventId"`
	Payload   struct {
		StreamID     string   `json:"streamId"`
		HostID       string   `json:"hostId"`
		HostName     string   `json:"hostName"`
		RecipientIDs []string `json:"recipientIds"`
	} `json:"payload"`
}

func handleLivestreamStarted(data []byte) *domain.Event {
	var env livestreamEnv
	if err := json.Unmarshal(data, &env); err != nil {
		return nil
	}
	if len(env.Payload.RecipientIDs) == 0 {
		return nil
	}

	title, body := messages.LivestreamStarted(env.Payload.HostName)
	ev := domain.NewEvent(env.EventID, domain.KindLivestream, env.Payload.StreamID, title, body, env.Payload.RecipientIDs)
	ev.ActorID = env.Payload.HostID
	ev.Payload = map[string]any{
		"streamId": env.Payload.StreamID,
		"hostId":   env.Payload.HostID,
		"hostName": env.Payload.HostName,
	}
	return &ev
}

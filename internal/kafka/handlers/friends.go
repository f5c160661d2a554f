package handlers

import (
	"encoding/json"

	"github.com/communiconnect/delivery/internal/domain"
	"github.com/communiconnect/delivery/internal/messages"
)

func init() {
	Register("friend-events", "FRIEND_REQUEST_CREATED", handleFriendRequestCreated)
	Register("friend-events", "FRIEND_REQUEST_ACCEPTED", handleFriendRequestAccepted)
}

type friendEnv struct {
	EventType string `json:"eventType"`
	EventID   string `json:"eventId"`
	Payload   struct {
		RequestID    string `json:"requestId"`
		FromUserID   string `json:"fromUserId"`
		FromUserName string `json:"fromUserName"`
		ToUserID     string `json:"toUserId"`
		ToUserName   string `json:"toUserName"`
	} `json:"payload"`
}

func parseFriendEnv(data []byte) (*friendEnv, bool) {
	var env friendEnv
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	if env.Payload.FromUserID == "" || env.Payload.ToUserID == "" {
		return nil, false
	}
	return &env, true
}

// handleFriendRequestCreated notifies the target of a new friend request.
func handleFriendRequestCreated(data []byte) *domain.Event {
	env, ok := parseFriendEnv(data)
	if !ok {
		return nil
	}
	title, body := messages.FriendRequest(env.Payload.FromUserName)
	ev := domain.NewEvent(env.EventID, domain.KindFriendRequest, env.Payload.RequestID, title, body, []string{env.Payload.ToUserID})
	ev.ActorID = env.Payload.FromUserID
	ev.Payload = map[string]any{
		"requestId":    env.Payload.RequestID,
		"fromUserId":   env.Payload.FromUserID,
		"fromUserName": env.Payload.FromUserName,
	}
	return &ev
}

// handleFriendRequestAccepted notifies the original requester.
func handleFriendRequestAccepted(data []byte) *domain.Event {
	env, ok := parseFriendEnv(data)
	if !ok {
		return nil
	}
	title, body := messages.FriendAccept(env.Payload.ToUserName)
	ev := domain.NewEvent(env.EventID, domain.KindFriendAccept, env.Payload.RequestID, title, body, []string{env.Payload.FromUserID})
	ev.ActorID = env.Payload.ToUserID
	ev.Payload = map[string]any{
		"requestId": env.Payload.RequestID,
		"friendId":  env.Payload.ToUserID,
	}
	return &ev
}

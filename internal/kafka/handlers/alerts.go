package handlers

import (
	"encoding/json"

	"github.com/communiconnect/delivery/internal/domain"
	"github.com/communiconnect/delivery/internal/messages"
)

func init() {
	Register("alert-events", "ALERT_RAISED", handleAlertRaised)
}

type alertEnv struct {
	EventType string `json:"eventType"`
	EventID   string `json:"eventId"`
	Payload   struct {
		AlertID     string `json:"alertId"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Severity    string `json:"severity"`
		ReporterID  string `json:"reporterId"`
		// RecipientIDs is the set of users within the alert radius,
		// resolved by the alerts service at publish time.
		RecipientIDs []string `json:"recipientIds"`
		Latitude     float64  `json:"latitude"`
		Longitude    float64  `json:"longitude"`
	} `json:"payload"`
}

func handleAlertRaised(data []byte) *domain.Event {
	var env alertEnv
	if err := json.Unmarshal(data, &env); err != nil {
		return nil
	}
	if len(env.Payload.RecipientIDs) == 0 {
		return nil
	}

	critical := env.Payload.Severity == string(domain.SeverityCritical)
	title, body := messages.AlertRaised(env.Payload.Category, env.Payload.Description, critical)

	ev := domain.NewEvent(env.EventID, domain.KindAlert, env.Payload.AlertID, title, body, env.Payload.RecipientIDs)
	ev.ActorID = env.Payload.ReporterID
	if critical {
		ev.Severity = domain.SeverityCritical
	}
	ev.Payload = map[string]any{
		"alertId":  env.Payload.AlertID,
		"category": env.Payload.Category,
		"severity": env.Payload.Severity,
		"lat":      env.Payload.Latitude,
		"lng":      env.Payload.Longitude,
	}
	return &ev
}

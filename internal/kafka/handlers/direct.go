package handlers

import (
	"encoding/json"

	"github.com/communiconnect/delivery/internal/domain"
)

func init() {
	RegisterDirect("delivery-commands", handleDirectCommand)
}

// handleDirectCommand accepts a fully-formed delivery command: other
// services use this topic to push arbitrary notifications without a
// dedicated handler.
func handleDirectCommand(data []byte) *domain.Event {
	var cmd struct {
		CommandID  string         `json:"commandId"`
		Kind       string         `json:"kind"`
		Severity   string         `json:"severity"`
		EntityID   string         `json:"entityId"`
		Title      string         `json:"title"`
		Body       string         `json:"body"`
		Recipients []string       `json:"recipients"`
		Payload    map[string]any `json:"payload"`
	}

	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil
	}
	if cmd.Title == "" || len(cmd.Recipients) == 0 {
		return nil
	}

	ev := domain.NewEvent(cmd.CommandID, domain.Kind(cmd.Kind), cmd.EntityID, cmd.Title, cmd.Body, cmd.Recipients)
	if cmd.Severity == string(domain.SeverityCritical) {
		ev.Severity = domain.SeverityCritical
	}
	ev.Payload = cmd.Payload
	return &ev
}

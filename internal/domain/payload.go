package domain

// RealtimePayload is the frame pushed over a live connection. The domain
// payload is forwarded verbatim; the client renders it itself.
type RealtimePayload struct {
	Event string         `json:"event"`
	ID    string         `json:"id"`
	Data  map[string]any `json:"data,omitempty"`
}

// Action is one button the client notification UI offers for a push.
type Action struct {
	ID    string `json:"action"`
	Label string `json:"title"`
}

// PushPayload is what the push provider delivers to an offline device.
// Data values must be strings (FCM data message constraint).
type PushPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
	// Actions is never empty: unknown event kinds fall back to a single
	// "view" action, which the client notification UI relies on.
	Actions []Action `json:"actions"`
	// RequireInteraction hints the client not to auto-dismiss.
	RequireInteraction bool `json:"require_interaction"`
}

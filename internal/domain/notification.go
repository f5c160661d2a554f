package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one inbox row: the persisted trace of an event delivered
// (or attempted) to one user. The inbox is what the client lists when the
// bell icon is opened; it is written before any realtime/push dispatch.
type Notification struct {
	ID            uuid.UUID      `json:"id"`
	UserID        string         `json:"user_id"`
	Kind          Kind           `json:"kind"`
	Title         string         `json:"title"`
	Body          string         `json:"body"`
	Payload       map[string]any `json:"payload,omitempty"`
	IsRead        bool           `json:"is_read"`
	ReadAt        *time.Time     `json:"read_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	SourceEventID string         `json:"source_event_id,omitempty"`
}

// NotificationFilter holds query parameters for listing inbox rows.
type NotificationFilter struct {
	UserID string
	IsRead *bool
	Kind   Kind
	Limit  int
	Offset int
}

// CreateNotificationInput is one inbox row to insert. The (SourceEventID,
// UserID) pair is the idempotency key: replayed events insert nothing.
type CreateNotificationInput struct {
	UserID        string
	Kind          Kind
	Title         string
	Body          string
	Payload       map[string]any
	SourceEventID string
}

// DeviceToken is one registered push target for a user.
type DeviceToken struct {
	UserID     string    `json:"user_id"`
	Token      string    `json:"-"`
	DeviceInfo string    `json:"device_info,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

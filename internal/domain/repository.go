package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the port for inbox persistence.
// Implementations live in infrastructure/postgres.
type Repository interface {
	// BatchCreate inserts multiple inbox rows in a single statement,
	// skipping rows whose (source_event_id, user_id) pair already exists.
	// Returns the rows actually inserted.
	BatchCreate(ctx context.Context, inputs []CreateNotificationInput) ([]*Notification, error)

	// List fetches inbox rows matching the given filter.
	List(ctx context.Context, filter NotificationFilter) ([]*Notification, error)

	// MarkRead marks a single notification as read.
	MarkRead(ctx context.Context, id uuid.UUID, userID string) error

	// MarkAllRead marks all unread notifications for a user as read.
	MarkAllRead(ctx context.Context, userID string) (int64, error)

	// Delete removes a notification belonging to the user.
	Delete(ctx context.Context, id uuid.UUID, userID string) error

	// CountUnread returns the number of unread notifications for a user.
	CountUnread(ctx context.Context, userID string) (int64, error)

	// PurgeOlderThan deletes notifications older than the given number of
	// days (TTL cleanup).
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
}

// TokenStore is the port for device-token persistence.
type TokenStore interface {
	// TokensFor returns all push tokens registered for a user.
	TokensFor(ctx context.Context, userID string) ([]string, error)

	// Register upserts a token for a user.
	Register(ctx context.Context, userID, token, deviceInfo string) error

	// Remove deletes a token owned by the user.
	Remove(ctx context.Context, userID, token string) error

	// Invalidate deletes a token regardless of owner. Called when the push
	// provider reports it unregistered.
	Invalidate(ctx context.Context, token string) error
}

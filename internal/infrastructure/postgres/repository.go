package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communiconnect/delivery/internal/domain"
)

// Repository is the PostgreSQL implementation of domain.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new postgres Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const notificationColumns = "id, user_id, kind, title, body, payload, is_read, read_at, created_at, source_event_id"

// BatchCreate inserts one inbox row per recipient in a single statement.
// Replayed events (same source_event_id + user_id) insert nothing and are
// not an error.
func (r *Repository) BatchCreate(ctx context.Context, inputs []domain.CreateNotificationInput) ([]*domain.Notification, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	const paramsPerRow = 6
	args := make([]any, 0, len(inputs)*paramsPerRow)
	valuesClauses := make([]string, 0, len(inputs))

	for i, input := range inputs {
		base := i * paramsPerRow
		payloadJSON, _ := json.Marshal(input.Payload)
		var sourceEventID *string
		if input.SourceEventID != "" {
			sourceEventID = &input.SourceEventID
		}

		valuesClauses = append(valuesClauses, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
		))
		args = append(args,
			input.UserID, string(input.Kind), input.Title, input.Body, payloadJSON, sourceEventID,
		)
	}

	query := "INSERT INTO notifications (user_id, kind, title, body, payload, source_event_id) VALUES " +
		strings.Join(valuesClauses, ",") +
		" ON CONFLICT (source_event_id, user_id) WHERE source_event_id IS NOT NULL DO NOTHING " +
		"RETURNING " + notificationColumns

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("batch insert notifications: %w", err)
	}
	defer rows.Close()

	var inserted []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, n)
	}
	return inserted, rows.Err()
}

// List fetches paginated inbox rows for a user.
func (r *Repository) List(ctx context.Context, f domain.NotificationFilter) ([]*domain.Notification, error) {
	query := "SELECT " + notificationColumns + " FROM notifications WHERE user_id = $1"
	args := []any{f.UserID}
	paramIdx := 2

	if f.IsRead != nil {
		query += fmt.Sprintf(" AND is_read = $%d", paramIdx)
		args = append(args, *f.IsRead)
		paramIdx++
	}
	if f.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", paramIdx)
		args = append(args, string(f.Kind))
		paramIdx++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", paramIdx, paramIdx+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var results []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, n)
	}
	return results, rows.Err()
}

// MarkRead marks a single notification as read.
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID, userID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = $1
		WHERE id = $2 AND user_id = $3 AND is_read = FALSE
	`, time.Now(), id, userID)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification not found or already read")
	}
	return nil
}

// MarkAllRead marks all unread notifications for a user as read.
func (r *Repository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = $1
		WHERE user_id = $2 AND is_read = FALSE
	`, time.Now(), userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes a notification belonging to the user.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

// CountUnread returns the unread badge count for a user.
func (r *Repository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	).Scan(&count)
	return count, err
}

// PurgeOlderThan deletes notifications older than the given number of days.
func (r *Repository) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM notifications WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanNotification(row scannable) (*domain.Notification, error) {
	var n domain.Notification
	var payloadJSON []byte
	var sourceEventID *string

	err := row.Scan(
		&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Body,
		&payloadJSON, &n.IsRead, &n.ReadAt, &n.CreatedAt, &sourceEventID,
	)
	if err != nil {
		return nil, fmt.Errorf("scan notification: %w", err)
	}
	if sourceEventID != nil {
		n.SourceEventID = *sourceEventID
	}
	if len(payloadJSON) > 0 {
		_ = json.Unmarshal(payloadJSON, &n.Payload)
	}
	return &n, nil
}

package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/communiconnect/delivery/internal/domain"
)

// Dispatcher fans an event out to its recipients' reachable channels.
// Implementation lives in internal/delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev domain.Event) []domain.Outcome
}

// Service holds the delivery use-cases: persist an event into each
// recipient's inbox, dispatch it, and serve the inbox/device REST API.
type Service struct {
	repo   domain.Repository
	tokens domain.TokenStore
	router Dispatcher
}

// NewService creates a new application Service.
func NewService(repo domain.Repository, tokens domain.TokenStore, router Dispatcher) *Service {
	return &Service{repo: repo, tokens: tokens, router: router}
}

// Notify is the single entry point for committed domain events. The inbox
// write happens first; its failure is logged but never blocks dispatch, and
// dispatch outcomes never surface as errors — the originating write already
// succeeded and must keep looking successful.
func (s *Service) Notify(ctx context.Context, ev domain.Event) {
	if len(ev.Recipients) == 0 {
		log.Warn().Str("event", ev.ID).Str("kind", string(ev.Kind)).Msg("event has no recipients, skipping")
		return
	}

	batch := make([]domain.CreateNotificationInput, 0, len(ev.Recipients))
	for _, uid := range ev.Recipients {
		batch = append(batch, domain.CreateNotificationInput{
			UserID:        uid,
			Kind:          ev.Kind,
			Title:         ev.Title,
			Body:          ev.Body,
			Payload:       ev.Payload,
			SourceEventID: ev.ID,
		})
	}

	inserted, err := s.repo.BatchCreate(ctx, batch)
	if err != nil {
		log.Error().Err(err).Str("event", ev.ID).Msg("inbox write failed, dispatching anyway")
	} else if len(inserted) == 0 && ev.ID != "" {
		// Every row already existed: this event was processed before.
		log.Debug().Str("event", ev.ID).Msg("duplicate event, skipping dispatch")
		return
	}

	outcomes := s.router.Dispatch(ctx, ev)

	var realtime, queued, failed, unreachable int
	for _, o := range outcomes {
		switch o.Status {
		case domain.StatusRealtime:
			realtime++
		case domain.StatusPushQueued:
			queued++
		case domain.StatusPushFailed:
			failed++
		case domain.StatusUnreachable:
			unreachable++
		}
	}
	log.Info().
		Str("event", ev.ID).
		Str("kind", string(ev.Kind)).
		Int("recipients", len(ev.Recipients)).
		Int("realtime", realtime).
		Int("push_queued", queued).
		Int("push_failed", failed).
		Int("unreachable", unreachable).
		Msg("event dispatched")
}

// List returns paginated inbox rows for a user.
func (s *Service) List(ctx context.Context, filter domain.NotificationFilter) ([]*domain.Notification, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repo.List(ctx, filter)
}

// CountUnread returns the unread badge count for a user.
func (s *Service) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead marks a single notification as read.
func (s *Service) MarkRead(ctx context.Context, idStr, userID string) error {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("invalid notification id: %w", err)
	}
	return s.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks all notifications for a user as read.
func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

// Delete removes a notification (must belong to the requesting user).
func (s *Service) Delete(ctx context.Context, idStr, userID string) error {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("invalid notification id: %w", err)
	}
	return s.repo.Delete(ctx, id, userID)
}

// RegisterDevice upserts a push token for the user.
func (s *Service) RegisterDevice(ctx context.Context, userID, token, deviceInfo string) error {
	if token == "" {
		return fmt.Errorf("device token is required")
	}
	return s.tokens.Register(ctx, userID, token, deviceInfo)
}

// RemoveDevice deletes a push token owned by the user.
func (s *Service) RemoveDevice(ctx context.Context, userID, token string) error {
	return s.tokens.Remove(ctx, userID, token)
}

// PurgeTTL deletes old inbox rows. Called by a background scheduler.
func (s *Service) PurgeTTL(ctx context.Context, days int) {
	count, err := s.repo.PurgeOlderThan(ctx, days)
	if err != nil {
		log.Error().Err(err).Msg("notification TTL purge failed")
		return
	}
	log.Info().Int64("deleted", count).Int("older_than_days", days).Msg("notification TTL purge completed")
}

// Package delivery fans one domain event out to its recipients: every live
// connection of a reachable recipient gets a realtime emission, and only
// recipients with zero live connections get a push attempt per device token.
package delivery

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/communiconnect/delivery/internal/domain"
	"github.com/communiconnect/delivery/internal/metrics"
)

// Presence answers which connections a subject currently holds.
// Implementation lives in internal/registry.
type Presence interface {
	ConnectionsFor(subjectID string) []string
}

// Emitter pushes a realtime payload to one connection, fire-and-forget.
// Implementation lives in transport/http (websocket hub).
type Emitter interface {
	Emit(connectionID string, payload domain.RealtimePayload)
}

// PushSender hands a push payload to the external provider for one token.
// A provider-reported dead token surfaces as domain.ErrInvalidToken.
// Implementation lives in infrastructure/fcm.
type PushSender interface {
	Send(ctx context.Context, token string, payload domain.PushPayload) error
}

// TokenSource is the slice of the device-token store the router needs.
type TokenSource interface {
	TokensFor(ctx context.Context, subjectID string) ([]string, error)
	Invalidate(ctx context.Context, token string) error
}

// Router resolves each recipient of an event to its reachable channels and
// delivers at most once per channel.
type Router struct {
	presence Presence
	emitter  Emitter
	tokens   TokenSource
	push     PushSender
}

// NewRouter creates a Router.
func NewRouter(presence Presence, emitter Emitter, tokens TokenSource, push PushSender) *Router {
	return &Router{presence: presence, emitter: emitter, tokens: tokens, push: push}
}

// Dispatch fans the event out to all recipients concurrently and returns one
// outcome per delivery attempt. It never returns an error: the originating
// write is already committed, so delivery failures degrade to outcomes and
// log lines instead of propagating.
func (r *Router) Dispatch(ctx context.Context, ev domain.Event) []domain.Outcome {
	metrics.RecordEvent(string(ev.Kind))

	rt, push := Payloads(ev)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		out = make([]domain.Outcome, 0, len(ev.Recipients))
	)
	for _, subjectID := range ev.Recipients {
		wg.Add(1)
		go func(subjectID string) {
			defer wg.Done()
			results := r.deliverTo(ctx, subjectID, rt, push)
			mu.Lock()
			out = append(out, results...)
			mu.Unlock()
		}(subjectID)
	}
	wg.Wait()

	for _, o := range out {
		metrics.RecordOutcome(string(o.Status))
	}
	return out
}

// deliverTo handles one recipient. The realtime check happens before any
// push attempt: a recipient reachable in realtime never also gets a push
// for the same event.
func (r *Router) deliverTo(ctx context.Context, subjectID string, rt domain.RealtimePayload, push domain.PushPayload) []domain.Outcome {
	conns := r.presence.ConnectionsFor(subjectID)
	if len(conns) > 0 {
		for _, connID := range conns {
			r.emitter.Emit(connID, rt)
		}
		log.Debug().
			Str("subject", subjectID).
			Int("connections", len(conns)).
			Str("event", rt.Event).
			Msg("delivered realtime")
		return []domain.Outcome{{
			SubjectID:   subjectID,
			Status:      domain.StatusRealtime,
			Connections: len(conns),
		}}
	}

	tokens, err := r.tokens.TokensFor(ctx, subjectID)
	if err != nil {
		log.Error().Err(err).Str("subject", subjectID).Msg("device token lookup failed")
		return []domain.Outcome{{
			SubjectID: subjectID,
			Status:    domain.StatusPushFailed,
			Reason:    "token lookup: " + err.Error(),
		}}
	}
	if len(tokens) == 0 {
		log.Debug().Str("subject", subjectID).Str("event", rt.Event).Msg("recipient unreachable")
		return []domain.Outcome{{SubjectID: subjectID, Status: domain.StatusUnreachable}}
	}

	out := make([]domain.Outcome, 0, len(tokens))
	for _, token := range tokens {
		out = append(out, r.pushTo(ctx, subjectID, token, push))
	}
	return out
}

// pushTo attempts one token. A failure is recorded and never aborts sibling
// tokens; an invalid token additionally triggers best-effort pruning.
func (r *Router) pushTo(ctx context.Context, subjectID, token string, push domain.PushPayload) domain.Outcome {
	err := r.push.Send(ctx, token, push)
	if err == nil {
		return domain.Outcome{SubjectID: subjectID, Status: domain.StatusPushQueued, Token: token}
	}

	if errors.Is(err, domain.ErrInvalidToken) {
		if ierr := r.tokens.Invalidate(ctx, token); ierr != nil {
			log.Warn().Err(ierr).Str("subject", subjectID).Msg("stale token cleanup failed")
		}
	}
	log.Warn().Err(err).Str("subject", subjectID).Msg("push delivery failed")
	return domain.Outcome{
		SubjectID: subjectID,
		Status:    domain.StatusPushFailed,
		Token:     token,
		Reason:    err.Error(),
	}
}

package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/communiconnect/delivery/internal/application"
	"github.com/communiconnect/delivery/internal/domain"
)

type fakeRepo struct {
	domain.Repository
	batches  [][]domain.CreateNotificationInput
	inserted int
	err      error
}

func (f *fakeRepo) BatchCreate(_ context.Context, inputs []domain.CreateNotificationInput) ([]*domain.Notification, error) {
	f.batches = append(f.batches, inputs)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Notification, 0, f.inserted)
	for i := 0; i < f.inserted && i < len(inputs); i++ {
		out = append(out, &domain.Notification{ID: uuid.New(), UserID: inputs[i].UserID})
	}
	return out, nil
}

type fakeDispatcher struct {
	calls []domain.Event
}

func (f *fakeDispatcher) Dispatch(_ context.Context, ev domain.Event) []domain.Outcome {
	f.calls = append(f.calls, ev)
	return []domain.Outcome{{SubjectID: "u1", Status: domain.StatusRealtime, Connections: 1}}
}

func TestNotify_PersistsThenDispatches(t *testing.T) {
	repo := &fakeRepo{inserted: 2}
	disp := &fakeDispatcher{}
	svc := application.NewService(repo, nil, disp)

	ev := domain.NewEvent("ev-1", domain.KindMessage, "conv-1", "t", "b", []string{"u1", "u2"})
	svc.Notify(context.Background(), ev)

	if len(repo.batches) != 1 || len(repo.batches[0]) != 2 {
		t.Fatalf("expected one batch of 2 rows, got %+v", repo.batches)
	}
	if len(disp.calls) != 1 {
		t.Fatalf("expected one dispatch, got %d", len(disp.calls))
	}
}

func TestNotify_DuplicateEventSkipsDispatch(t *testing.T) {
	repo := &fakeRepo{inserted: 0} // all rows conflict: event seen before
	disp := &fakeDispatcher{}
	svc := application.NewService(repo, nil, disp)

	ev := domain.NewEvent("ev-1", domain.KindMessage, "conv-1", "t", "b", []string{"u1"})
	svc.Notify(context.Background(), ev)

	if len(disp.calls) != 0 {
		t.Fatalf("duplicate event must not be re-dispatched, got %d calls", len(disp.calls))
	}
}

func TestNotify_InboxFailureStillDispatches(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	disp := &fakeDispatcher{}
	svc := application.NewService(repo, nil, disp)

	ev := domain.NewEvent("ev-1", domain.KindAlert, "a-1", "t", "b", []string{"u1"})
	svc.Notify(context.Background(), ev)

	if len(disp.calls) != 1 {
		t.Fatal("inbox failure must not block realtime/push dispatch")
	}
}

func TestNotify_NoRecipientsIsNoop(t *testing.T) {
	repo := &fakeRepo{}
	disp := &fakeDispatcher{}
	svc := application.NewService(repo, nil, disp)

	svc.Notify(context.Background(), domain.NewEvent("ev-1", domain.KindMessage, "c", "t", "b", nil))

	if len(repo.batches) != 0 || len(disp.calls) != 0 {
		t.Fatal("event without recipients must be dropped")
	}
}

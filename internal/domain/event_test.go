package domain_test

import (
	"reflect"
	"testing"

	"github.com/communiconnect/delivery/internal/domain"
)

func TestNewEvent_DedupesRecipientsPreservingOrder(t *testing.T) {
	ev := domain.NewEvent("e1", domain.KindMessage, "c1", "t", "b",
		[]string{"u2", "u1", "u2", "", "u3", "u1"})

	want := []string{"u2", "u1", "u3"}
	if !reflect.DeepEqual(ev.Recipients, want) {
		t.Fatalf("expected %v, got %v", want, ev.Recipients)
	}
}

func TestNewEvent_Defaults(t *testing.T) {
	ev := domain.NewEvent("e1", domain.KindAlert, "a1", "title", "body", nil)

	if ev.Severity != domain.SeverityInfo {
		t.Fatalf("expected info severity by default, got %q", ev.Severity)
	}
	if len(ev.Recipients) != 0 {
		t.Fatalf("expected empty recipients, got %v", ev.Recipients)
	}
	if ev.CreatedAt.IsZero() {
		t.Fatal("CreatedAt must be set")
	}
}

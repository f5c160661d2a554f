package fcm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/communiconnect/delivery/internal/domain"
	"github.com/communiconnect/delivery/internal/infrastructure/fcm"
)

func payload() domain.PushPayload {
	return domain.PushPayload{
		Title:   "Nouveau message",
		Body:    "Alice vous a envoyé un message.",
		Data:    map[string]string{"type": "message", "id": "conv-1"},
		Actions: []domain.Action{{ID: "view", Label: "Voir"}},
	}
}

func TestSend_Success(t *testing.T) {
	var gotAuth string
	var gotReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": 1, "failure": 0,
			"results": []map[string]any{{"message_id": "m1"}},
		})
	}))
	defer srv.Close()

	s := fcm.New(srv.URL, "secret-key")
	if err := s.Send(context.Background(), "tok-1", payload()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "key=secret-key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotReq["to"] != "tok-1" {
		t.Fatalf("unexpected request body: %v", gotReq)
	}
	data, _ := gotReq["data"].(map[string]any)
	actions, _ := data["actions"].(string)
	if data["type"] != "message" || actions == "" {
		t.Fatalf("data fields not forwarded: %v", data)
	}
}

func TestSend_NotRegisteredIsInvalidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": 0, "failure": 1,
			"results": []map[string]any{{"error": "NotRegistered"}},
		})
	}))
	defer srv.Close()

	s := fcm.New(srv.URL, "k")
	err := s.Send(context.Background(), "dead-token", payload())
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSend_ProviderErrorIsGenericFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": 0, "failure": 1,
			"results": []map[string]any{{"error": "Unavailable"}},
		})
	}))
	defer srv.Close()

	s := fcm.New(srv.URL, "k")
	err := s.Send(context.Background(), "tok", payload())
	if err == nil || errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected generic failure, got %v", err)
	}
}

func TestSend_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := fcm.New(srv.URL, "bad-key")
	if err := s.Send(context.Background(), "tok", payload()); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

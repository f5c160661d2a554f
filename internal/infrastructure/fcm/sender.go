// Package fcm implements the push-delivery collaborator against the
// Firebase Cloud Messaging HTTP endpoint.
package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/communiconnect/delivery/internal/domain"
)

// DefaultEndpoint is the FCM legacy HTTP send endpoint.
const DefaultEndpoint = "https://fcm.googleapis.com/fcm/send"

// Sender implements delivery.PushSender by POSTing to FCM.
type Sender struct {
	endpoint   string
	serverKey  string
	httpClient *http.Client
}

// New creates a Sender. An empty endpoint selects DefaultEndpoint. The
// client timeout bounds each push attempt; there is no retry here — retry
// policy belongs to the provider side.
func New(endpoint, serverKey string) *Sender {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Sender{
		endpoint:   endpoint,
		serverKey:  serverKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// sendRequest is the FCM downstream message shape.
type sendRequest struct {
	To           string            `json:"to"`
	Notification sendNotification  `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type sendNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// sendResponse is the subset of the FCM response we read.
type sendResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		MessageID string `json:"message_id"`
		Error     string `json:"error"`
	} `json:"results"`
}

// Send delivers one push payload to one device token. Tokens the provider
// reports as dead surface as domain.ErrInvalidToken so the router can
// trigger pruning.
func (s *Sender) Send(ctx context.Context, token string, payload domain.PushPayload) error {
	body, err := json.Marshal(sendRequest{
		To: token,
		Notification: sendNotification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: dataFields(payload),
	})
	if err != nil {
		return fmt.Errorf("encode push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("send push: fcm returned status %d", resp.StatusCode)
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode push response: %w", err)
	}
	if out.Failure == 0 {
		return nil
	}
	for _, r := range out.Results {
		switch r.Error {
		case "":
			continue
		case "NotRegistered", "InvalidRegistration", "MissingRegistration":
			return fmt.Errorf("fcm rejected token: %s: %w", r.Error, domain.ErrInvalidToken)
		default:
			return fmt.Errorf("fcm delivery error: %s", r.Error)
		}
	}
	return fmt.Errorf("fcm reported %d failures", out.Failure)
}

// dataFields flattens the push payload into FCM data entries. FCM requires
// string values, so the action set is carried as JSON.
func dataFields(p domain.PushPayload) map[string]string {
	data := make(map[string]string, len(p.Data)+2)
	for k, v := range p.Data {
		data[k] = v
	}
	if actions, err := json.Marshal(p.Actions); err == nil {
		data["actions"] = string(actions)
	}
	data["require_interaction"] = strconv.FormatBool(p.RequireInteraction)
	return data
}

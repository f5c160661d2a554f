package domain

import "errors"

// ErrInvalidToken is reported by the push sender when the provider declares
// a device token unregistered or malformed. The router reacts by asking the
// token store to prune it; everything else treats it as a plain failure.
var ErrInvalidToken = errors.New("device token invalid or unregistered")

// DeliveryStatus classifies the result of one delivery attempt.
type DeliveryStatus string

const (
	// StatusRealtime: the recipient had live connections and the payload
	// was emitted to each of them. No push is attempted in this case.
	StatusRealtime DeliveryStatus = "realtime"
	// StatusPushQueued: the payload was handed to the push provider for
	// one device token.
	StatusPushQueued DeliveryStatus = "push_queued"
	// StatusPushFailed: the push provider rejected one device token.
	StatusPushFailed DeliveryStatus = "push_failed"
	// StatusUnreachable: no live connection and no device token. This is
	// an observability signal, not an error.
	StatusUnreachable DeliveryStatus = "unreachable"
)

// Outcome records one delivery attempt for one recipient. Realtime delivery
// yields a single outcome covering all of the recipient's connections; push
// delivery yields one outcome per device token.
type Outcome struct {
	SubjectID   string
	Status      DeliveryStatus
	Connections int    // set when Status == StatusRealtime
	Token       string // set for push outcomes
	Reason      string // set when Status == StatusPushFailed
}

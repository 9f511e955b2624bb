package email

import (
	"context"
	"time"
)

// SendRequest is the provider-independent shape of an outbound email.
type SendRequest struct {
	To      []string
	From    string
	Subject string
	HTML    string
}

// SendResult carries the provider's acknowledgement.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers email via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}

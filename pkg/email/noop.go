package email

import (
	"context"
	"fmt"
	"log"
	"time"
)

// NoopSender logs sends without delivering anything. Used in development and
// whenever no Resend API key is configured.
type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	log.Printf("[email] noop send to=%v subject=%q", req.To, req.Subject)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

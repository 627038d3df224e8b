package email

import (
	"context"

	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

// ConsoleSender logs messages instead of delivering them. Used for local runs
// without a sendgrid key.
type ConsoleSender struct {
	log logger.Log
}

var _ Sender = (*ConsoleSender)(nil)

func NewConsoleSender(log logger.Log) *ConsoleSender {
	return &ConsoleSender{log: log}
}

func (s *ConsoleSender) Send(_ context.Context, msg Message) error {
	s.log.Info("email (console)",
		"to", msg.ToEmail,
		"subject", msg.Subject,
		"body", msg.Body,
		"attachments", len(msg.Attachments),
	)
	return nil
}

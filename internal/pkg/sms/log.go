package sms

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Log writes messages to slog instead of delivering them.
type Log struct{}

// NewLog returns the log driver.
func NewLog() *Log {
	return &Log{}
}

// Send implements SMS.
func (l *Log) Send(ctx context.Context, msg Message) (Receipt, error) {
	msg, err := prepare(msg)
	if err != nil {
		return Receipt{}, err
	}

	id := uuid.NewString()
	slog.InfoContext(ctx, "sms log driver", "to", msg.To, "body", msg.Body, "id", id)

	return Receipt{ID: id, To: msg.To}, nil
}

// Close implements io.Closer.
func (l *Log) Close() error {
	return nil
}

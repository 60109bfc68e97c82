package mail

import (
	"context"
	"log/slog"
	"strings"
)

// Log is a Mail that only records messages in the structured log.
type Log struct{}

// NewLog returns a Log mailer.
func NewLog() *Log {
	return &Log{}
}

// Send logs recipients and subject; bodies are omitted since they carry codes.
func (*Log) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To)+len(msg.Cc)+len(msg.Bcc) == 0 {
		return ErrSMTPNoRecipients
	}

	slog.InfoContext(ctx, "mail: message not delivered (log driver)",
		"to", strings.Join(msg.To, ","),
		"subject", msg.Subject,
	)
	return nil
}

// Close implements io.Closer.
func (*Log) Close() error {
	return nil
}

package mail

import (
	"context"
	"errors"
	"log/slog"
	"net/textproto"
	"time"

	"github.com/sethvargo/go-retry"
)

// Retry retries transient failures of the wrapped mailer with exponential
// backoff. Message errors and permanent SMTP replies (5xx) are not retried.
type Retry struct {
	next       Mail
	maxRetries uint64
	base       time.Duration
}

// NewRetry wraps next. maxRetries is the number of retries after the first try.
func NewRetry(next Mail, maxRetries uint64, base time.Duration) *Retry {
	if base <= 0 {
		base = 200 * time.Millisecond
	}
	return &Retry{next: next, maxRetries: maxRetries, base: base}
}

// Send implements Mail.
func (r *Retry) Send(ctx context.Context, msg Message) error {
	b := retry.NewExponential(r.base)
	b = retry.WithCappedDuration(5*time.Second, b)
	b = retry.WithMaxRetries(r.maxRetries, b)

	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := r.next.Send(ctx, msg)
		if err == nil || isPermanent(err) {
			return err
		}

		slog.WarnContext(ctx, "mail send failed, retrying", "error", err)

		return retry.RetryableError(err)
	})
}

// Close closes the wrapped mailer.
func (r *Retry) Close() error {
	return r.next.Close()
}

func isPermanent(err error) bool {
	if errors.Is(err, ErrSMTPNoRecipients) || errors.Is(err, ErrSMTPNoSender) {
		return true
	}

	var tpErr *textproto.Error
	return errors.As(err, &tpErr) && tpErr.Code >= 500
}

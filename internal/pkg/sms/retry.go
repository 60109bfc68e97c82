package sms

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// Retry retries transient failures of the wrapped driver with exponential
// backoff. Permanent failures are returned immediately.
type Retry struct {
	next       SMS
	maxRetries uint64
	base       time.Duration
}

// NewRetry wraps next. maxRetries is the number of retries after the first try.
func NewRetry(next SMS, maxRetries uint64, base time.Duration) *Retry {
	if base <= 0 {
		base = 200 * time.Millisecond
	}
	return &Retry{next: next, maxRetries: maxRetries, base: base}
}

// Send implements SMS.
func (r *Retry) Send(ctx context.Context, msg Message) (Receipt, error) {
	b := retry.NewExponential(r.base)
	b = retry.WithCappedDuration(5*time.Second, b)
	b = retry.WithMaxRetries(r.maxRetries, b)

	var rc Receipt
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		var err error
		rc, err = r.next.Send(ctx, msg)
		if err == nil || IsPermanent(err) {
			return err
		}

		slog.WarnContext(ctx, "sms send failed, retrying", "error", err)

		return retry.RetryableError(err)
	})

	return rc, err
}

// Close closes the wrapped driver.
func (r *Retry) Close() error {
	return r.next.Close()
}

package usecase

import (
	"context"
	"log/slog"
	"time"
)

// PurgeExpired deletes records that expired more than retention ago.
func (s *Usecase) PurgeExpired(ctx context.Context, retention time.Duration) error {
	ctx, span := s.startSpan(ctx, "PurgeExpired")
	defer span.End()

	before := s.clock.Now().Add(-retention)
	n, err := s.store.PurgeExpired(ctx, before)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo purge expired otp", "before", before, "error", err)
		return err
	}

	if n > 0 {
		slog.InfoContext(ctx, "purged expired otp", "count", n, "before", before)
	}

	return nil
}

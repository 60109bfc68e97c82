package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/lock"
	"github.com/shandysiswandi/ambassador/internal/verification/entity"
)

type InvalidateInput struct {
	SubjectID string         `validate:"required"`
	Purpose   entity.Purpose `validate:"required,otp_purpose"`
}

// Invalidate retires every outstanding code of the subject and purpose. It
// does not touch the cooldown, which is measured from the last issuance.
func (s *Usecase) Invalidate(ctx context.Context, in InvalidateInput) error {
	ctx, span := s.startSpan(ctx, "Invalidate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	release, err := s.locker.Acquire(ctx, lockKey(in.SubjectID, in.Purpose), s.lockTTL())
	if errors.Is(err, lock.ErrLocked) {
		return goerror.NewThrottled("OTP request already in progress", time.Second)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to acquire otp lock", "subject_id", in.SubjectID, "purpose", in.Purpose, "error", err)
		return goerror.NewServer(err)
	}
	defer func() {
		if rErr := release(context.WithoutCancel(ctx)); rErr != nil {
			slog.WarnContext(ctx, "failed to release otp lock", "subject_id", in.SubjectID, "error", rErr)
		}
	}()

	n, err := s.store.Invalidate(ctx, in.SubjectID, in.Purpose)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo invalidate otp", "subject_id", in.SubjectID, "purpose", in.Purpose, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "otp invalidated", "subject_id", in.SubjectID, "purpose", in.Purpose, "count", n)
	return nil
}

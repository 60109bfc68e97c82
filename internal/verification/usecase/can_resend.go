package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/verification/entity"
)

type CanResendInput struct {
	SubjectID string         `validate:"required"`
	Purpose   entity.Purpose `validate:"required,otp_purpose"`
}

type CanResendOutput struct {
	Allowed     bool
	WaitSeconds int
}

// CanResend reports whether a new code may be issued now. It never writes.
func (s *Usecase) CanResend(ctx context.Context, in CanResendInput) (*CanResendOutput, error) {
	ctx, span := s.startSpan(ctx, "CanResend")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	return s.cooldown(ctx, in.SubjectID, in.Purpose)
}

// cooldown looks for a record created strictly inside the last Cooldown, so a
// request exactly Cooldown after the previous one is allowed. A storage
// failure follows the configured fail policy.
func (s *Usecase) cooldown(ctx context.Context, subjectID string, purpose entity.Purpose) (*CanResendOutput, error) {
	now := s.clock.Now()

	latest, err := s.store.LatestSince(ctx, subjectID, purpose, now.Add(-Cooldown))
	if errors.Is(err, goerror.ErrNotFound) {
		return &CanResendOutput{Allowed: true}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo latest otp since", "subject_id", subjectID, "purpose", purpose, "error", err)
		if s.failOpen() {
			return &CanResendOutput{Allowed: true}, nil
		}
		return nil, goerror.NewServer(err)
	}

	return &CanResendOutput{
		Allowed:     false,
		WaitSeconds: waitSeconds(latest.CreatedAt.Add(Cooldown).Sub(now)),
	}, nil
}

func waitSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/verification/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrInvalidCode is the single answer for every rejected code, so callers
// cannot tell a wrong code from an expired or exhausted one.
var ErrInvalidCode = goerror.NewBusiness("Invalid or expired OTP", goerror.CodeRejected)

type VerifyInput struct {
	SubjectID string         `validate:"required"`
	Purpose   entity.Purpose `validate:"required,otp_purpose"`
	Code      string         `validate:"required,numeric_code"`
	// Destination must equal the one passed to Issue.
	Destination string
}

// Verify redeems a code. A match consumes the record; a mismatch counts an
// attempt and invalidates the record once otp.max_attempts is reached.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) error {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil || len(in.Code) != s.codeLength() {
		s.recordVerify(ctx, in.Purpose, "malformed")
		return ErrInvalidCode
	}

	now := s.clock.Now()
	otp, err := s.store.FindActive(ctx, in.SubjectID, in.Purpose, now)
	if errors.Is(err, goerror.ErrNotFound) {
		s.recordVerify(ctx, in.Purpose, "missing")
		return ErrInvalidCode
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo find active otp", "subject_id", in.SubjectID, "purpose", in.Purpose, "error", err)
		return goerror.NewServer(err)
	}

	match := s.hash.Verify(otp.CodeHash, otp.Salt, secret(in.Destination, in.Code))

	updated, err := s.store.RegisterAttempt(ctx, otp.ID, match, s.maxAttempts())
	if errors.Is(err, goerror.ErrNotFound) {
		s.recordVerify(ctx, in.Purpose, "consumed")
		return ErrInvalidCode
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo register otp attempt", "otp_id", otp.ID, "error", err)
		return goerror.NewServer(err)
	}

	if !match {
		if updated.Verified {
			slog.WarnContext(ctx, "otp invalidated after too many attempts", "otp_id", otp.ID, "attempts", updated.Attempts)
			s.recordVerify(ctx, in.Purpose, "exhausted")
		} else {
			s.recordVerify(ctx, in.Purpose, "mismatch")
		}
		return ErrInvalidCode
	}

	s.recordVerify(ctx, in.Purpose, "success")
	return nil
}

func (s *Usecase) recordVerify(ctx context.Context, purpose entity.Purpose, result string) {
	s.verifyCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("purpose", purpose.String()),
		attribute.String("result", result),
	))
}

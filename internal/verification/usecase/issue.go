package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/lock"
	"github.com/shandysiswandi/ambassador/internal/verification/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type IssueInput struct {
	SubjectID string         `validate:"required"`
	Purpose   entity.Purpose `validate:"required,otp_purpose"`
	// Destination is the phone number or email the code is delivered to.
	// Optional; when set, Verify must present the same value.
	Destination string
}

type IssueOutput struct {
	Code      string
	ExpiresAt time.Time
}

// Issue creates a fresh code for the subject and purpose, invalidating any
// earlier unverified one. The plaintext code is returned for delivery only.
func (s *Usecase) Issue(ctx context.Context, in IssueInput) (*IssueOutput, error) {
	ctx, span := s.startSpan(ctx, "Issue")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	release, err := s.locker.Acquire(ctx, lockKey(in.SubjectID, in.Purpose), s.lockTTL())
	if errors.Is(err, lock.ErrLocked) {
		slog.WarnContext(ctx, "otp issuance already in progress", "subject_id", in.SubjectID, "purpose", in.Purpose)
		return nil, goerror.NewThrottled("OTP request already in progress", time.Second)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to acquire otp lock", "subject_id", in.SubjectID, "purpose", in.Purpose, "error", err)
		return nil, goerror.NewServerMsg(err, "Failed to generate OTP")
	}
	defer func() {
		if rErr := release(context.WithoutCancel(ctx)); rErr != nil {
			slog.WarnContext(ctx, "failed to release otp lock", "subject_id", in.SubjectID, "error", rErr)
		}
	}()

	resend, err := s.cooldown(ctx, in.SubjectID, in.Purpose)
	if err != nil {
		return nil, err
	}
	if !resend.Allowed {
		s.throttledCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("purpose", in.Purpose.String())))
		return nil, goerror.NewThrottled(
			fmt.Sprintf("Please wait %d seconds before requesting a new OTP", resend.WaitSeconds),
			time.Duration(resend.WaitSeconds)*time.Second,
		)
	}

	code, err := s.codes(s.codeLength())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return nil, goerror.NewServerMsg(err, "Failed to generate OTP")
	}

	salt, err := s.hash.Salt()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp salt", "error", err)
		return nil, goerror.NewServerMsg(err, "Failed to generate OTP")
	}

	now := s.clock.Now()
	otp := entity.OTP{
		SubjectID: in.SubjectID,
		Purpose:   in.Purpose,
		CodeHash:  s.hash.Hash(salt, secret(in.Destination, code)),
		Salt:      salt,
		ExpiresAt: now.Add(s.expiry()),
		CreatedAt: now,
	}

	if err := s.store.Replace(ctx, otp); err != nil {
		slog.ErrorContext(ctx, "failed to repo replace otp", "subject_id", in.SubjectID, "purpose", in.Purpose, "error", err)
		return nil, goerror.NewServerMsg(err, "Failed to generate OTP")
	}

	s.issuedCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("purpose", in.Purpose.String()),
		attribute.String("length", strconv.Itoa(len(code))),
	))

	return &IssueOutput{Code: code, ExpiresAt: otp.ExpiresAt}, nil
}

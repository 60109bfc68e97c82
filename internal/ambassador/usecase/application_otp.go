package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/sms"
	otpentity "github.com/shandysiswandi/ambassador/internal/verification/entity"
	verification "github.com/shandysiswandi/ambassador/internal/verification/usecase"
)

const msgSendOTPFailed = "Failed to send OTP. Please try again."

type RequestOTPInput struct {
	ApplicationID int64          `validate:"required,gt=0"`
	Channel       entity.Channel `validate:"required,otp_purpose"`
}

// RequestOTP issues a code for the application's phone or email and delivers
// it. The resend cooldown is enforced by the engine.
func (s *Usecase) RequestOTP(ctx context.Context, in RequestOTPInput) error {
	ctx, span := s.startSpan(ctx, "RequestOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	app, err := s.getApplication(ctx, in.ApplicationID)
	if err != nil {
		return err
	}

	dest, err := destination(app, in.Channel)
	if err != nil {
		return err
	}

	return s.issueAndSend(ctx, app.SubjectID(), in.Channel, dest)
}

func (s *Usecase) issueAndSend(ctx context.Context, subjectID string, ch entity.Channel, dest string) error {
	issued, err := s.otp.Issue(ctx, verification.IssueInput{
		SubjectID:   subjectID,
		Purpose:     otpentity.Purpose(ch),
		Destination: dest,
	})
	if err != nil {
		return err
	}

	msg := OTPMessage{To: dest, Code: issued.Code, ExpiresIn: issued.ExpiresAt.Sub(s.clock.Now())}
	if ch == entity.ChannelPhone {
		err = s.sender.SendPhoneOTP(ctx, msg)
	} else {
		err = s.sender.SendEmailOTP(ctx, msg)
	}

	if errors.Is(err, sms.ErrInvalidNumber) {
		slog.WarnContext(ctx, "otp destination rejected by provider", "subject_id", subjectID, "channel", ch)
		return goerror.NewBusiness("Invalid phone number format", goerror.CodeRejected)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to send otp", "subject_id", subjectID, "channel", ch, "error", err)
		return goerror.NewServerMsg(err, msgSendOTPFailed)
	}

	slog.InfoContext(ctx, "otp sent", "subject_id", subjectID, "channel", ch)

	return nil
}

type VerifyOTPInput struct {
	ApplicationID int64          `validate:"required,gt=0"`
	Channel       entity.Channel `validate:"required,otp_purpose"`
	OTP           string         `validate:"required"`
}

// VerifyOTP checks the code against the current phone or email and marks the
// channel verified.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*entity.Application, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	in.OTP = strings.TrimSpace(in.OTP)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	app, err := s.getApplication(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}

	dest, err := destination(app, in.Channel)
	if err != nil {
		return nil, err
	}

	if err := s.otp.Verify(ctx, verification.VerifyInput{
		SubjectID:   app.SubjectID(),
		Purpose:     otpentity.Purpose(in.Channel),
		Code:        in.OTP,
		Destination: dest,
	}); err != nil {
		return nil, err
	}

	updated, err := s.repoDB.MarkApplicationVerified(ctx, app.ID, in.Channel, dest)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "contact changed while verifying", "application_id", app.ID, "channel", in.Channel)
		return nil, goerror.NewBusiness("Contact changed, please request a new OTP", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo mark application verified", "application_id", app.ID, "channel", in.Channel, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "application contact verified", "application_id", app.ID, "channel", in.Channel)

	return updated, nil
}

type ResendStatusInput struct {
	ApplicationID int64          `validate:"required,gt=0"`
	Channel       entity.Channel `validate:"required,otp_purpose"`
}

type ResendStatusOutput struct {
	Allowed     bool
	WaitSeconds int
}

// ResendStatus reports whether a new code may be requested right now.
func (s *Usecase) ResendStatus(ctx context.Context, in ResendStatusInput) (*ResendStatusOutput, error) {
	ctx, span := s.startSpan(ctx, "ResendStatus")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	app, err := s.getApplication(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}

	out, err := s.otp.CanResend(ctx, verification.CanResendInput{
		SubjectID: app.SubjectID(),
		Purpose:   otpentity.Purpose(in.Channel),
	})
	if err != nil {
		return nil, err
	}

	return &ResendStatusOutput{Allowed: out.Allowed, WaitSeconds: out.WaitSeconds}, nil
}

func destination(app *entity.Application, ch entity.Channel) (string, error) {
	if ch == entity.ChannelPhone {
		if app.Phone == "" {
			return "", goerror.NewBusiness("Please add a phone number first", goerror.CodeRejected)
		}
		return app.Phone, nil
	}

	if app.Email == "" {
		return "", goerror.NewBusiness("Please add an email address first", goerror.CodeRejected)
	}
	return app.Email, nil
}

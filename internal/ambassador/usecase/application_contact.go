package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	otpentity "github.com/shandysiswandi/ambassador/internal/verification/entity"
	verification "github.com/shandysiswandi/ambassador/internal/verification/usecase"
)

var errAlreadySubmitted = goerror.NewBusiness("Application already submitted", goerror.CodeConflict)

type UpdatePhoneInput struct {
	ApplicationID int64  `validate:"required,gt=0"`
	Phone         string `validate:"required,phone"`
}

// UpdatePhone stores the applicant's phone number. A different number drops
// any earlier phone verification.
func (s *Usecase) UpdatePhone(ctx context.Context, in UpdatePhoneInput) (*entity.Application, error) {
	ctx, span := s.startSpan(ctx, "UpdatePhone")
	defer span.End()

	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	return s.updateContact(ctx, in.ApplicationID, entity.ChannelPhone, in.Phone)
}

type UpdateEmailInput struct {
	ApplicationID int64  `validate:"required,gt=0"`
	Email         string `validate:"required,email_loose"`
}

// UpdateEmail stores the applicant's email address. A different address
// drops any earlier email verification.
func (s *Usecase) UpdateEmail(ctx context.Context, in UpdateEmailInput) (*entity.Application, error) {
	ctx, span := s.startSpan(ctx, "UpdateEmail")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	return s.updateContact(ctx, in.ApplicationID, entity.ChannelEmail, in.Email)
}

func (s *Usecase) updateContact(ctx context.Context, id int64, ch entity.Channel, value string) (*entity.Application, error) {
	app, err := s.getApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	if app.Status != entity.ApplicationStatusDraft {
		return nil, errAlreadySubmitted
	}

	updated, err := s.repoDB.UpdateApplicationContact(ctx, id, ch, value)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errAlreadySubmitted
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update application contact", "application_id", id, "channel", ch, "error", err)
		return nil, goerror.NewServer(err)
	}

	if current(app, ch) != value {
		// codes are bound to the destination, so a failure here leaves nothing redeemable
		if err := s.otp.Invalidate(ctx, verification.InvalidateInput{
			SubjectID: app.SubjectID(),
			Purpose:   otpentity.Purpose(ch),
		}); err != nil {
			slog.WarnContext(ctx, "failed to invalidate otp after contact change", "application_id", id, "channel", ch, "error", err)
		}
	}

	return updated, nil
}

func current(app *entity.Application, ch entity.Channel) string {
	if ch == entity.ChannelPhone {
		return app.Phone
	}
	return app.Email
}

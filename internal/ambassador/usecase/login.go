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

var errNoLoginAccount = goerror.NewBusiness("No approved account found with this phone number", goerror.CodeNotFound)

type CheckPhoneInput struct {
	Phone string `validate:"required"`
}

type CheckPhoneOutput struct {
	Exists           bool
	CanLogin         bool
	ProfileCompleted bool
	ApplicationID    int64
}

// CheckPhone reports whether a phone number belongs to a submitted
// application and whether its owner may log in.
func (s *Usecase) CheckPhone(ctx context.Context, in CheckPhoneInput) (*CheckPhoneOutput, error) {
	ctx, span := s.startSpan(ctx, "CheckPhone")
	defer span.End()

	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	app, err := s.repoDB.GetLoginApplicationByPhone(ctx, in.Phone)
	if errors.Is(err, goerror.ErrNotFound) {
		return &CheckPhoneOutput{}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get login application", "error", err)
		return nil, goerror.NewServer(err)
	}

	profile, err := s.loginProfile(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	completed := profile != nil && profile.IsProfileCompleted

	return &CheckPhoneOutput{
		Exists:           true,
		CanLogin:         completed,
		ProfileCompleted: completed,
		ApplicationID:    app.ID,
	}, nil
}

type LoginRequestOTPInput struct {
	Phone string `validate:"required"`
}

type LoginRequestOTPOutput struct {
	ApplicationID int64
	Phone         string
}

// LoginRequestOTP sends a login code to the phone of a submitted application
// whose profile is complete.
func (s *Usecase) LoginRequestOTP(ctx context.Context, in LoginRequestOTPInput) (*LoginRequestOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginRequestOTP")
	defer span.End()

	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	app, err := s.loginApplication(ctx, in.Phone)
	if err != nil {
		return nil, err
	}

	profile, err := s.loginProfile(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	if profile == nil || !profile.IsProfileCompleted {
		slog.WarnContext(ctx, "login before profile completion", "application_id", app.ID)
		return nil, goerror.NewBusiness("Please complete your profile first", goerror.CodeRejected)
	}

	if err := s.issueAndSend(ctx, app.SubjectID(), entity.ChannelPhone, app.Phone); err != nil {
		return nil, err
	}

	return &LoginRequestOTPOutput{ApplicationID: app.ID, Phone: app.Phone}, nil
}

type LoginVerifyOTPInput struct {
	Phone string `validate:"required"`
	OTP   string `validate:"required"`
}

type LoginVerifyOTPOutput struct {
	Token       string
	Application *entity.Application
	Profile     *entity.Profile
}

// LoginVerifyOTP checks the login code and issues a session token.
func (s *Usecase) LoginVerifyOTP(ctx context.Context, in LoginVerifyOTPInput) (*LoginVerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginVerifyOTP")
	defer span.End()

	in.Phone = strings.TrimSpace(in.Phone)
	in.OTP = strings.TrimSpace(in.OTP)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	app, err := s.loginApplication(ctx, in.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.otp.Verify(ctx, verification.VerifyInput{
		SubjectID:   app.SubjectID(),
		Purpose:     otpentity.PurposePhone,
		Code:        in.OTP,
		Destination: app.Phone,
	}); err != nil {
		return nil, err
	}

	profile, err := s.loginProfile(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, goerror.NewBusiness("User profile not found", goerror.CodeNotFound)
	}

	token, err := s.jwt.Generate(app.SubjectID(), app.Phone)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate login token", "application_id", app.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "login successful", "application_id", app.ID)

	return &LoginVerifyOTPOutput{Token: token, Application: app, Profile: profile}, nil
}

func (s *Usecase) loginApplication(ctx context.Context, phone string) (*entity.Application, error) {
	app, err := s.repoDB.GetLoginApplicationByPhone(ctx, phone)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no submitted application for login phone")
		return nil, errNoLoginAccount
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get login application", "error", err)
		return nil, goerror.NewServer(err)
	}

	return app, nil
}

// loginProfile returns nil without error when no profile exists yet.
func (s *Usecase) loginProfile(ctx context.Context, applicationID int64) (*entity.Profile, error) {
	profile, err := s.repoDB.GetProfileByApplicationID(ctx, applicationID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get profile", "application_id", applicationID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return profile, nil
}

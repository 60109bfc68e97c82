package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/clock"
	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/jwt"
	"github.com/shandysiswandi/ambassador/internal/pkg/storage"
	"github.com/shandysiswandi/ambassador/internal/pkg/uid"
	"github.com/shandysiswandi/ambassador/internal/pkg/validator"
	verification "github.com/shandysiswandi/ambassador/internal/verification/usecase"
	"go.opentelemetry.io/otel/trace"
)

type ApplicationSubmittedEvent struct {
	ApplicationID int64
	Phone         string
	Email         string
	SubmittedAt   time.Time
}

type OTPMessage struct {
	To        string
	Code      string
	ExpiresIn time.Duration
}

type repoMessaging interface {
	PublishApplicationSubmitted(ctx context.Context, msg ApplicationSubmittedEvent) error
}

type sender interface {
	SendPhoneOTP(ctx context.Context, msg OTPMessage) error
	SendEmailOTP(ctx context.Context, msg OTPMessage) error
}

type otpEngine interface {
	Issue(ctx context.Context, in verification.IssueInput) (*verification.IssueOutput, error)
	Verify(ctx context.Context, in verification.VerifyInput) error
	CanResend(ctx context.Context, in verification.CanResendInput) (*verification.CanResendOutput, error)
	Invalidate(ctx context.Context, in verification.InvalidateInput) error
}

type repoDB interface {
	CreateApplication(ctx context.Context, app entity.Application) error
	GetApplication(ctx context.Context, id int64) (*entity.Application, error)
	GetLoginApplicationByPhone(ctx context.Context, phone string) (*entity.Application, error)

	UpdateApplicationContact(ctx context.Context, id int64, ch entity.Channel, value string) (*entity.Application, error)
	MarkApplicationVerified(ctx context.Context, id int64, ch entity.Channel, value string) (*entity.Application, error)
	UpdateApplicationVideo(ctx context.Context, id int64, video entity.VideoUpload) (*entity.Application, error)
	SubmitApplication(ctx context.Context, id int64, at time.Time) (*entity.Application, error)

	GetProfileByApplicationID(ctx context.Context, applicationID int64) (*entity.Profile, error)
	UpsertProfile(ctx context.Context, p entity.Profile) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, p entity.Profile) (*entity.Profile, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	sender        sender
	otp           otpEngine
	storage       storage.Storage
	validator     validator.Validator
	cfg           config.Config
	uid           uid.NumberID
	uuid          uid.StringID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Sender        sender
	OTP           otpEngine
	Storage       storage.Storage
	Validator     validator.Validator
	Config        config.Config
	UID           uid.NumberID
	UUID          uid.StringID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		sender:        dep.Sender,
		otp:           dep.OTP,
		storage:       dep.Storage,
		validator:     dep.Validator,
		cfg:           dep.Config,
		uid:           dep.UID,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("ambassador.usecase").Start(ctx, name)
}

var errApplicationNotFound = goerror.NewBusiness("Application not found", goerror.CodeNotFound)

func (s *Usecase) getApplication(ctx context.Context, id int64) (*entity.Application, error) {
	app, err := s.repoDB.GetApplication(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "application not found", "application_id", id)
		return nil, errApplicationNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get application", "application_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return app, nil
}

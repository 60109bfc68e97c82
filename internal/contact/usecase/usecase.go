package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/shandysiswandi/ambassador/internal/contact/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/clock"
	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/jwt"
	"github.com/shandysiswandi/ambassador/internal/pkg/uid"
	"github.com/shandysiswandi/ambassador/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const defaultListLimit = 200

var errContactNotFound = goerror.NewBusiness("Contact not found", goerror.CodeNotFound)

type repoDB interface {
	CreateContact(ctx context.Context, c entity.Contact) error
	GetContact(ctx context.Context, applicationID, id int64) (*entity.Contact, error)
	ListContacts(ctx context.Context, applicationID int64, query string, limit int32) ([]entity.Contact, error)
	UpdateContact(ctx context.Context, c entity.Contact) (*entity.Contact, error)
	ToggleContactStar(ctx context.Context, applicationID, id int64, at time.Time) (*entity.Contact, error)
	DeleteContact(ctx context.Context, applicationID, id int64) (bool, error)
}

type Usecase struct {
	repoDB    repoDB
	cfg       config.Config
	uid       uid.NumberID
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	Config     config.Config
	UID        uid.NumberID
	Clock      clock.Clocker
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		cfg:       dep.Config,
		uid:       dep.UID,
		clock:     dep.Clock,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("contact.usecase").Start(ctx, name)
}

func (s *Usecase) owner(ctx context.Context) (int64, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return 0, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	id, err := strconv.ParseInt(clm.ApplicationID, 10, 64)
	if err != nil || id <= 0 {
		return 0, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return id, nil
}

func (s *Usecase) mapRepoError(ctx context.Context, op string, id int64, err error) error {
	if errors.Is(err, goerror.ErrNotFound) {
		return errContactNotFound
	}

	slog.ErrorContext(ctx, "failed to repo "+op, "contact_id", id, "error", err)
	return goerror.NewServer(err)
}

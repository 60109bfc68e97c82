package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/shandysiswandi/ambassador/internal/event/entity"
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

var errEventNotFound = goerror.NewBusiness("Event not found", goerror.CodeNotFound)

type repoDB interface {
	CreateEvent(ctx context.Context, e entity.Event) error
	GetEvent(ctx context.Context, id, viewer int64) (*entity.Event, error)
	ListEvents(ctx context.Context, viewer int64, limit int32) ([]entity.Event, error)
	AddAttendee(ctx context.Context, eventID, applicationID int64, at time.Time) error
	RemoveAttendee(ctx context.Context, eventID, applicationID int64) error
	ListAttendees(ctx context.Context, eventID int64) ([]entity.Attendee, error)
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
	return s.ins.Tracer("event.usecase").Start(ctx, name)
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

func (s *Usecase) listLimit() int32 {
	limit := s.cfg.GetInt("modules.event.list_limit")
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return int32(limit) //nolint:gosec // bounded above
}

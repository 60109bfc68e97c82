package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/shandysiswandi/ambassador/internal/pkg/clock"
	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/jwt"
	"github.com/shandysiswandi/ambassador/internal/pkg/uid"
	"github.com/shandysiswandi/ambassador/internal/pkg/validator"
	"github.com/shandysiswandi/ambassador/internal/reimbursement/entity"
	"go.opentelemetry.io/otel/trace"
)

const defaultListLimit = 200

var errReimbursementNotFound = goerror.NewBusiness("Reimbursement not found", goerror.CodeNotFound)

type repoDB interface {
	CreateReimbursement(ctx context.Context, r entity.Reimbursement) error
	GetReimbursement(ctx context.Context, id int64) (*entity.Reimbursement, error)
	ListReimbursements(ctx context.Context, applicationID int64, status entity.Status, limit int32) ([]entity.Reimbursement, error)
	ReimbursementStats(ctx context.Context, applicationID int64) (*entity.Stats, error)
	UpdateReimbursementStatus(ctx context.Context, id int64, from, next entity.Status, adminNote string, at time.Time) (*entity.Reimbursement, error)
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
	return s.ins.Tracer("reimbursement.usecase").Start(ctx, name)
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
	limit := s.cfg.GetInt("modules.reimbursement.list_limit")
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return int32(limit) //nolint:gosec // bounded above
}

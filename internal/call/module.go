package call

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/ambassador/internal/call/inbound"
	"github.com/shandysiswandi/ambassador/internal/call/outbound/db"
	"github.com/shandysiswandi/ambassador/internal/call/usecase"
	"github.com/shandysiswandi/ambassador/internal/pkg/clock"
	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/router"
	"github.com/shandysiswandi/ambassador/internal/pkg/uid"
	"github.com/shandysiswandi/ambassador/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:     db.NewDB(dep.DBConn, dep.Instrument),
		Config:     dep.Config,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

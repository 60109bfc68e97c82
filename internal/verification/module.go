package verification

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/ambassador/internal/pkg/clock"
	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/goroutine"
	"github.com/shandysiswandi/ambassador/internal/pkg/hash"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/lock"
	"github.com/shandysiswandi/ambassador/internal/pkg/uid"
	"github.com/shandysiswandi/ambassador/internal/pkg/validator"
	"github.com/shandysiswandi/ambassador/internal/verification/outbound/db"
	"github.com/shandysiswandi/ambassador/internal/verification/outbound/mongodb"
	"github.com/shandysiswandi/ambassador/internal/verification/usecase"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrMongoRequired = errors.New("verification: mongo store selected without a mongo database")

type Dependency struct {
	Ctx        context.Context
	DBConn     *pgxpool.Pool
	MongoDB    *mongo.Database
	Locker     lock.Locker                `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

// New builds the OTP engine on the store named by modules.verification.store
// and starts the expiry janitor when one is configured.
func New(dep Dependency) (*usecase.Usecase, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	var store usecase.Store

	switch dep.Config.GetString("modules.verification.store") {
	case "mongo":
		if dep.MongoDB == nil {
			return nil, ErrMongoRequired
		}
		m := mongodb.NewMongo(dep.MongoDB, dep.Instrument)
		if err := m.EnsureIndexes(context.Background()); err != nil {
			return nil, err
		}
		store = m
	default:
		store = db.NewDB(dep.DBConn, dep.UID, dep.Instrument)
	}

	uc := usecase.New(usecase.Dependency{
		Store:      store,
		Locker:     dep.Locker,
		Hash:       dep.HMAC,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	interval := dep.Config.GetMinute("modules.verification.purge_interval_minutes")
	if interval > 0 && dep.Ctx != nil {
		retention := dep.Config.GetMinute("modules.verification.purge_retention_minutes")
		slog.Info("starting otp janitor", "interval", interval, "retention", retention)
		dep.Goroutine.Every(dep.Ctx, "verification.janitor", interval, func(ctx context.Context) error {
			return uc.PurgeExpired(ctx, retention)
		})
	}

	return uc, nil
}

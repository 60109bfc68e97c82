package notification

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/ambassador/internal/notification/inbound"
	"github.com/shandysiswandi/ambassador/internal/notification/outbound/db"
	"github.com/shandysiswandi/ambassador/internal/notification/outbound/delivery"
	"github.com/shandysiswandi/ambassador/internal/notification/usecase"
	"github.com/shandysiswandi/ambassador/internal/pkg/clock"
	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/goroutine"
	"github.com/shandysiswandi/ambassador/internal/pkg/idempotency"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/mail"
	"github.com/shandysiswandi/ambassador/internal/pkg/messaging"
	"github.com/shandysiswandi/ambassador/internal/pkg/router"
	"github.com/shandysiswandi/ambassador/internal/pkg/sms"
	"github.com/shandysiswandi/ambassador/internal/pkg/uid"
	"github.com/shandysiswandi/ambassador/internal/pkg/validator"
)

type Dependency struct {
	// Ctx scopes the consumers; without it none are started.
	Ctx         context.Context
	DBConn      *pgxpool.Pool              `validate:"required"`
	Messaging   messaging.Consumer         `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
	SMS         sms.SMS                    `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	Router      *router.Router             `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.NewNotification(usecase.Dependency{
		RepoDB:       db.NewDB(dep.DBConn, dep.Instrument),
		RepoDelivery: delivery.New(dep.Mail, dep.SMS, dep.Instrument),
		Config:       dep.Config,
		UID:          dep.UID,
		Clock:        dep.Clock,
		Validator:    dep.Validator,
		Instrument:   dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.Idempotency, dep.UUID, uc, dep.Instrument)
	}

	return nil
}

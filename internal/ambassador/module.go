package ambassador

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/ambassador/internal/ambassador/inbound"
	"github.com/shandysiswandi/ambassador/internal/ambassador/outbound/db"
	"github.com/shandysiswandi/ambassador/internal/ambassador/outbound/mq"
	"github.com/shandysiswandi/ambassador/internal/ambassador/outbound/sender"
	"github.com/shandysiswandi/ambassador/internal/ambassador/usecase"
	"github.com/shandysiswandi/ambassador/internal/pkg/clock"
	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/jwt"
	"github.com/shandysiswandi/ambassador/internal/pkg/mail"
	"github.com/shandysiswandi/ambassador/internal/pkg/messaging"
	"github.com/shandysiswandi/ambassador/internal/pkg/router"
	"github.com/shandysiswandi/ambassador/internal/pkg/sms"
	"github.com/shandysiswandi/ambassador/internal/pkg/storage"
	"github.com/shandysiswandi/ambassador/internal/pkg/uid"
	"github.com/shandysiswandi/ambassador/internal/pkg/validator"
	verification "github.com/shandysiswandi/ambassador/internal/verification/usecase"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Publisher        `validate:"required"`
	SMS        sms.SMS                    `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	OTP        *verification.Usecase      `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Config     config.Config              `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Sender:        sender.NewSender(dep.SMS, dep.Mail, dep.Config, dep.Instrument),
		OTP:           dep.OTP,
		Storage:       dep.Storage,
		Validator:     dep.Validator,
		Config:        dep.Config,
		UID:           dep.UID,
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

package usecase

import (
	"bytes"
	"context"
	"html/template"

	"github.com/shandysiswandi/ambassador/internal/notification/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/clock"
	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/mail"
	"github.com/shandysiswandi/ambassador/internal/pkg/sms"
	"github.com/shandysiswandi/ambassador/internal/pkg/uid"
	"github.com/shandysiswandi/ambassador/internal/pkg/validator"
	"github.com/shandysiswandi/ambassador/internal/pkg/valueobject"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultListLimit = 50
	defaultAppName   = "Brand Ambassador"
)

type repoDB interface {
	CreateNotification(ctx context.Context, n entity.Notification) error
	ListNotifications(ctx context.Context, applicationID int64, limit int32) ([]entity.Notification, error)
	CountUnreadNotifications(ctx context.Context, applicationID int64) (int64, error)
	MarkNotificationRead(ctx context.Context, applicationID, notificationID int64) (bool, error)
	MarkNotificationsReadAll(ctx context.Context, applicationID int64) (int64, error)
	UpdatePushSubscription(ctx context.Context, applicationID int64, sub valueobject.JSONMap) (bool, error)
}

type repoDelivery interface {
	SendEmail(ctx context.Context, msg mail.Message) error
	SendSMS(ctx context.Context, msg sms.Message) error
}

type Usecase struct {
	repoDB       repoDB
	repoDelivery repoDelivery
	cfg          config.Config
	uid          uid.NumberID
	clock        clock.Clocker
	validator    validator.Validator
	ins          instrument.Instrumentation
}

type Dependency struct {
	RepoDB       repoDB
	RepoDelivery repoDelivery
	Config       config.Config
	UID          uid.NumberID
	Clock        clock.Clocker
	Validator    validator.Validator
	Instrument   instrument.Instrumentation
}

func NewNotification(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:       dep.RepoDB,
		repoDelivery: dep.RepoDelivery,
		cfg:          dep.Config,
		uid:          dep.UID,
		clock:        dep.Clock,
		validator:    dep.Validator,
		ins:          dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

func (s *Usecase) renderTemplate(name, tpl string, data map[string]any) (string, error) {
	t, err := template.New(name).Option("missingkey=zero").Parse(tpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Usecase) appName() string {
	if name := s.cfg.GetString("app.name"); name != "" {
		return name
	}
	return defaultAppName
}

func (s *Usecase) baseEmailTemplateData() map[string]any {
	return map[string]any{
		"app_name":        s.appName(),
		"support_email":   s.cfg.GetString("mail.support_email"),
		"company_address": s.cfg.GetString("mail.company_address"),
		"year":            s.clock.Now().Format("2006"),
	}
}

package delivery

import (
	"context"

	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/mail"
	"github.com/shandysiswandi/ambassador/internal/pkg/sms"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Delivery sends notification copies over email and SMS.
type Delivery struct {
	mail mail.Mail
	sms  sms.SMS
	ins  instrument.Instrumentation
}

func New(m mail.Mail, s sms.SMS, ins instrument.Instrumentation) *Delivery {
	return &Delivery{mail: m, sms: s, ins: ins}
}

func (d *Delivery) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return d.ins.Tracer("notification.outbound.delivery").Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (d *Delivery) SendEmail(ctx context.Context, msg mail.Message) (err error) {
	ctx, span := d.startSpan(ctx, "SendEmail")
	defer func() { endSpan(span, err) }()

	return d.mail.Send(ctx, msg)
}

func (d *Delivery) SendSMS(ctx context.Context, msg sms.Message) (err error) {
	ctx, span := d.startSpan(ctx, "SendSMS")
	defer func() { endSpan(span, err) }()

	receipt, err := d.sms.Send(ctx, msg)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("sms.id", receipt.ID))

	return nil
}

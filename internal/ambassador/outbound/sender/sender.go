package sender

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"math"
	"time"

	"github.com/shandysiswandi/ambassador/internal/ambassador/usecase"
	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/mail"
	"github.com/shandysiswandi/ambassador/internal/pkg/sms"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultAppName   = "Brand Ambassador"
	emailOTPSubject  = "Your Ambassador Application Verification Code"
	emailOTPGreeting = "Applicant"
)

const emailOTPHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8" /></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; background: #F4F4F7;">
  <div style="max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 10px; border: 1px solid #E5E5E5;">
    <div style="background: #667EEA; padding: 35px 20px; text-align: center; color: #FFFFFF;">
      <h1 style="margin: 0; font-size: 24px;">{{.AppName}}</h1>
      <p style="margin-top: 8px; font-size: 16px;">Email Verification Code</p>
    </div>
    <div style="padding: 30px 25px;">
      <p>Hello <strong>{{.Name}}</strong>,</p>
      <p>Thank you for applying to become a Brand Ambassador. Please use the verification code below to complete your email confirmation:</p>
      <div style="border: 2px dashed #667EEA; padding: 20px; font-size: 32px; font-weight: bold; text-align: center; letter-spacing: 6px; border-radius: 8px; margin: 25px 0;">{{.Code}}</div>
      <p>This code will expire in <strong>{{.Minutes}} minutes</strong>.</p>
      <p style="font-size: 14px; color: #666;">If you did not request this verification code, you can safely ignore this email.</p>
      <p style="margin-top: 30px;">Best regards,<br /><strong>The {{.AppName}} Team</strong></p>
    </div>
    <div style="text-align: center; padding: 20px 30px; font-size: 12px; color: #888; background: #FAFAFA;">
      <p>&copy; {{.Year}} {{.AppName}}. All rights reserved.</p>
      {{if .Address}}<p>Our mailing address:<br /><strong>{{.Address}}</strong></p>{{end}}
    </div>
  </div>
</body>
</html>`

type emailOTPData struct {
	AppName string
	Name    string
	Code    string
	Minutes int
	Year    int
	Address string
}

// Sender delivers OTP codes over SMS and email.
type Sender struct {
	sms      sms.SMS
	mail     mail.Mail
	cfg      config.Config
	ins      instrument.Instrumentation
	emailTpl *template.Template
}

func NewSender(s sms.SMS, m mail.Mail, cfg config.Config, ins instrument.Instrumentation) *Sender {
	return &Sender{
		sms:      s,
		mail:     m,
		cfg:      cfg,
		ins:      ins,
		emailTpl: template.Must(template.New("email_otp").Option("missingkey=zero").Parse(emailOTPHTML)),
	}
}

func (s *Sender) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("ambassador.outbound.sender").Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Sender) appName() string {
	if name := s.cfg.GetString("app.name"); name != "" {
		return name
	}
	return defaultAppName
}

func (s *Sender) SendPhoneOTP(ctx context.Context, msg usecase.OTPMessage) (err error) {
	ctx, span := s.startSpan(ctx, "SendPhoneOTP")
	defer func() { endSpan(span, err) }()

	_, err = s.sms.Send(ctx, sms.Message{
		To:   msg.To,
		Body: PhoneOTPText(s.appName(), msg.Code, minutes(msg.ExpiresIn)),
	})

	return err
}

func (s *Sender) SendEmailOTP(ctx context.Context, msg usecase.OTPMessage) (err error) {
	ctx, span := s.startSpan(ctx, "SendEmailOTP")
	defer func() { endSpan(span, err) }()

	data := emailOTPData{
		AppName: s.appName(),
		Name:    emailOTPGreeting,
		Code:    msg.Code,
		Minutes: minutes(msg.ExpiresIn),
		Year:    time.Now().Year(),
		Address: s.cfg.GetString("mail.company_address"),
	}

	var html bytes.Buffer
	if err = s.emailTpl.Execute(&html, data); err != nil {
		return err
	}

	text := fmt.Sprintf("Hello %s, Thank you for applying to %s. Your verification code is: %s. This code expires in %d minutes.",
		data.Name, data.AppName, data.Code, data.Minutes)

	err = s.mail.Send(ctx, mail.Message{
		To:       []string{msg.To},
		Subject:  emailOTPSubject,
		TextBody: text,
		HTMLBody: html.String(),
	})

	return err
}

// PhoneOTPText is the SMS body carrying a verification code.
func PhoneOTPText(appName, code string, minutes int) string {
	return fmt.Sprintf("Your %s verification code is: %s. This code expires in %d minutes.", appName, code, minutes)
}

// minutes rounds the remaining lifetime up to whole minutes, at least one.
func minutes(d time.Duration) int {
	return max(1, int(math.Ceil(d.Minutes())))
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/ambassador/internal/notification/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/mail"
	"github.com/shandysiswandi/ambassador/internal/pkg/sms"
	"github.com/shandysiswandi/ambassador/internal/pkg/valueobject"
)

const (
	submittedTitle        = "Application submitted"
	submittedEmailSubject = "Application Submitted Successfully"
	submittedGreeting     = "Applicant"
)

const submittedEmailHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8" /></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; background: #F4F4F7;">
  <div style="max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 10px; border: 1px solid #E5E5E5;">
    <div style="background: #667EEA; padding: 35px 20px; text-align: center; color: #FFFFFF;">
      <h1 style="margin: 0; font-size: 24px;">{{.app_name}}</h1>
      <p style="margin-top: 8px; font-size: 16px;">Application Submitted</p>
    </div>
    <div style="padding: 30px 25px;">
      <p>Hi <strong>{{.name}}</strong>,</p>
      <p>Thank you for applying to become a Brand Ambassador. Your application has been submitted successfully and is now under review.</p>
      <table style="width: 100%; margin: 20px 0; border-collapse: collapse;">
        <tr><td style="padding: 6px 0; color: #666;">Application ID</td><td style="padding: 6px 0;"><strong>{{.application_id}}</strong></td></tr>
        <tr><td style="padding: 6px 0; color: #666;">Submitted on</td><td style="padding: 6px 0;"><strong>{{.submitted_at}}</strong></td></tr>
      </table>
      <p>We'll contact you within 3-5 business days.</p>
      <p style="margin-top: 30px;">Best regards,<br /><strong>The {{.app_name}} Team</strong></p>
    </div>
    <div style="text-align: center; padding: 20px 30px; font-size: 12px; color: #888; background: #FAFAFA;">
      <p>&copy; {{.year}} {{.app_name}}. All rights reserved.</p>
      {{if .support_email}}<p>Questions? Reach us at {{.support_email}}</p>{{end}}
      {{if .company_address}}<p>Our mailing address:<br /><strong>{{.company_address}}</strong></p>{{end}}
    </div>
  </div>
</body>
</html>`

type ConsumeApplicationSubmittedInput struct {
	ApplicationID int64
	Phone         string
	Email         string
	SubmittedAt   time.Time
}

// ConsumeApplicationSubmitted records the inbox entry for a submitted
// application and sends the confirmation copies. Only the inbox write is
// fatal; delivery failures are logged.
func (s *Usecase) ConsumeApplicationSubmitted(ctx context.Context, in ConsumeApplicationSubmittedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeApplicationSubmitted")
	defer span.End()

	if in.ApplicationID <= 0 {
		slog.WarnContext(ctx, "skip application submitted without id")
		return nil
	}

	submittedAt := in.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = s.clock.Now()
	}

	_, err := s.create(ctx, entity.Notification{
		ApplicationID: in.ApplicationID,
		Type:          entity.TypeSystem,
		Title:         submittedTitle,
		Description:   "Your application is under review. We'll contact you within 3-5 business days.",
		Metadata: valueobject.JSONMap{
			"application_id": strconv.FormatInt(in.ApplicationID, 10),
			"submitted_at":   submittedAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return err
	}

	if phone := strings.TrimSpace(in.Phone); phone != "" {
		if err := s.repoDelivery.SendSMS(ctx, sms.Message{
			To:   phone,
			Body: SubmittedSMSText(submittedGreeting),
		}); err != nil {
			slog.WarnContext(ctx, "failed to send application submitted sms", "application_id", in.ApplicationID, "error", err)
		}
	}

	if email := strings.TrimSpace(in.Email); email != "" {
		if err := s.sendSubmittedEmail(ctx, in.ApplicationID, email, submittedAt); err != nil {
			slog.WarnContext(ctx, "failed to send application submitted email", "application_id", in.ApplicationID, "error", err)
		}
	}

	return nil
}

func (s *Usecase) sendSubmittedEmail(ctx context.Context, appID int64, to string, at time.Time) error {
	data := s.baseEmailTemplateData()
	data["name"] = submittedGreeting
	data["application_id"] = strconv.FormatInt(appID, 10)
	data["submitted_at"] = at.UTC().Format("January 2, 2006")

	html, err := s.renderTemplate("application_submitted", submittedEmailHTML, data)
	if err != nil {
		return goerror.NewServer(err)
	}

	return s.repoDelivery.SendEmail(ctx, mail.Message{
		To:      []string{to},
		Subject: submittedEmailSubject,
		TextBody: fmt.Sprintf("Hi %s, your %s application (ID %s) was submitted on %s and is under review. We'll contact you within 3-5 business days.",
			submittedGreeting, s.appName(), data["application_id"], data["submitted_at"]),
		HTMLBody: html,
	})
}

// SubmittedSMSText is the confirmation text sent after submission.
func SubmittedSMSText(name string) string {
	return "Hi " + name + "! Your Brand Ambassador application has been submitted successfully and is under review. We'll contact you within 3-5 business days."
}

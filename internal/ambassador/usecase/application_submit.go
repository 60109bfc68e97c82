package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
)

type SubmitApplicationInput struct {
	ApplicationID int64 `validate:"required,gt=0"`
}

// SubmitApplication moves a completed draft to submitted and announces it.
func (s *Usecase) SubmitApplication(ctx context.Context, in SubmitApplicationInput) (*entity.Application, error) {
	ctx, span := s.startSpan(ctx, "SubmitApplication")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	app, err := s.getApplication(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}

	if app.Status != entity.ApplicationStatusDraft {
		return nil, errAlreadySubmitted
	}

	if !app.Progress.Completed() {
		return nil, goerror.NewBusiness("Please complete all application steps before submitting", goerror.CodeRejected)
	}

	if !app.ReadyToSubmit() {
		return nil, goerror.NewBusiness("Please complete all verification steps", goerror.CodeRejected)
	}

	submitted, err := s.repoDB.SubmitApplication(ctx, app.ID, s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "application changed before submit", "application_id", app.ID)
		return nil, goerror.NewBusiness("Application can no longer be submitted", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo submit application", "application_id", app.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	ev := ApplicationSubmittedEvent{
		ApplicationID: submitted.ID,
		Phone:         submitted.Phone,
		Email:         submitted.Email,
		SubmittedAt:   submitted.UpdatedAt,
	}
	if submitted.SubmittedAt != nil {
		ev.SubmittedAt = *submitted.SubmittedAt
	}

	if err := s.repoMessaging.PublishApplicationSubmitted(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "failed to publish application submitted", "application_id", submitted.ID, "error", err)
	}

	slog.InfoContext(ctx, "application submitted", "application_id", submitted.ID)

	return submitted, nil
}

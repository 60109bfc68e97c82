package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
)

type MarkReadInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) MarkRead(ctx context.Context, in MarkReadInput) error {
	ctx, span := s.startSpan(ctx, "MarkRead")
	defer span.End()

	appID, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	updated, err := s.repoDB.MarkNotificationRead(ctx, appID, in.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo mark notification read", "application_id", appID, "notification_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}
	if !updated {
		return goerror.NewBusiness("Notification not found", goerror.CodeNotFound)
	}

	return nil
}

func (s *Usecase) MarkAllRead(ctx context.Context) (int64, error) {
	ctx, span := s.startSpan(ctx, "MarkAllRead")
	defer span.End()

	appID, err := s.requireAuth(ctx)
	if err != nil {
		return 0, err
	}

	n, err := s.repoDB.MarkNotificationsReadAll(ctx, appID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo mark all notifications read", "application_id", appID, "error", err)
		return 0, goerror.NewServer(err)
	}

	return n, nil
}

package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
)

// CreateApplication starts an empty draft with no step completed.
func (s *Usecase) CreateApplication(ctx context.Context) (*entity.Application, error) {
	ctx, span := s.startSpan(ctx, "CreateApplication")
	defer span.End()

	now := s.clock.Now()
	app := entity.Application{
		ID:                s.uid.Generate(),
		VideoReviewStatus: entity.VideoReviewPending,
		Status:            entity.ApplicationStatusDraft,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repoDB.CreateApplication(ctx, app); err != nil {
		slog.ErrorContext(ctx, "failed to repo create application", "application_id", app.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "application created", "application_id", app.ID)

	return &app, nil
}

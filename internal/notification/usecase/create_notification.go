package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/ambassador/internal/notification/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/valueobject"
)

type CreateNotificationInput struct {
	Type        entity.Type `validate:"required,oneof=event reimbursement info system"`
	Title       string      `validate:"required,max=200"`
	Description string      `validate:"max=2000"`
	Metadata    valueobject.JSONMap
}

// CreateNotification adds a notification to the caller's inbox.
func (s *Usecase) CreateNotification(ctx context.Context, in CreateNotificationInput) (*entity.Notification, error) {
	ctx, span := s.startSpan(ctx, "CreateNotification")
	defer span.End()

	appID, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	return s.create(ctx, entity.Notification{
		ApplicationID: appID,
		Type:          in.Type,
		Title:         in.Title,
		Description:   in.Description,
		Metadata:      in.Metadata,
	})
}

func (s *Usecase) create(ctx context.Context, n entity.Notification) (*entity.Notification, error) {
	n.ID = s.uid.Generate()
	n.CreatedAt = s.clock.Now()
	if n.Metadata == nil {
		n.Metadata = valueobject.JSONMap{}
	}

	if err := s.repoDB.CreateNotification(ctx, n); err != nil {
		slog.ErrorContext(ctx, "failed to repo create notification", "application_id", n.ApplicationID, "type", n.Type, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &n, nil
}

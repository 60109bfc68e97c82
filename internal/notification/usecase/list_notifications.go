package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/ambassador/internal/notification/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
)

type ListNotificationsOutput struct {
	Items       []entity.Notification
	UnreadCount int64
}

// ListNotifications returns the caller's newest notifications.
func (s *Usecase) ListNotifications(ctx context.Context) (*ListNotificationsOutput, error) {
	ctx, span := s.startSpan(ctx, "ListNotifications")
	defer span.End()

	appID, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	limit := s.cfg.GetInt("modules.notification.list_limit")
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	items, err := s.repoDB.ListNotifications(ctx, appID, int32(limit)) //nolint:gosec // bounded above
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list notifications", "application_id", appID, "error", err)
		return nil, goerror.NewServer(err)
	}

	unread, err := s.repoDB.CountUnreadNotifications(ctx, appID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count unread notifications", "application_id", appID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListNotificationsOutput{Items: items, UnreadCount: unread}, nil
}

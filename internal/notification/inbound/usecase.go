package inbound

import (
	"context"

	"github.com/shandysiswandi/ambassador/internal/notification/entity"
	"github.com/shandysiswandi/ambassador/internal/notification/usecase"
)

type ucConsumer interface {
	ConsumeApplicationSubmitted(ctx context.Context, in usecase.ConsumeApplicationSubmittedInput) error
}

type uc interface {
	ucConsumer

	ListNotifications(ctx context.Context) (*usecase.ListNotificationsOutput, error)
	CreateNotification(ctx context.Context, in usecase.CreateNotificationInput) (*entity.Notification, error)
	MarkRead(ctx context.Context, in usecase.MarkReadInput) error
	MarkAllRead(ctx context.Context) (int64, error)
	SavePushSubscription(ctx context.Context, in usecase.SavePushSubscriptionInput) error
}

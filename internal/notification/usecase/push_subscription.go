package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/valueobject"
)

type SavePushSubscriptionInput struct {
	Subscription valueobject.JSONMap `validate:"required"`
}

// SavePushSubscription stores the Web Push subscription of the caller. Push
// delivery itself is not wired.
func (s *Usecase) SavePushSubscription(ctx context.Context, in SavePushSubscriptionInput) error {
	ctx, span := s.startSpan(ctx, "SavePushSubscription")
	defer span.End()

	appID, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}
	if in.Subscription.GetString("endpoint") == "" {
		return goerror.NewInvalidInput(nil, "subscription", "subscription must have an endpoint")
	}

	updated, err := s.repoDB.UpdatePushSubscription(ctx, appID, in.Subscription)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update push subscription", "application_id", appID, "error", err)
		return goerror.NewServer(err)
	}
	if !updated {
		return goerror.NewBusiness("Application not found", goerror.CodeNotFound)
	}

	return nil
}

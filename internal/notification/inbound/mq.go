package inbound

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/goroutine"
	"github.com/shandysiswandi/ambassador/internal/pkg/idempotency"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/messaging"
	"github.com/shandysiswandi/ambassador/internal/pkg/uid"
	"github.com/shandysiswandi/ambassador/internal/shared/event"
)

const defaultConsumerConcurrency = 4

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	consumer messaging.Consumer,
	idemp idempotency.Idempotency,
	uuid uid.StringID,
	uc ucConsumer,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, idemp: idemp, uuid: uuid, ins: ins}

	enabled := cfg.GetArray("modules.notification.consumer_names")
	concurrency := cfg.GetInt("modules.notification.consumer_concurrency")
	if concurrency <= 0 {
		concurrency = defaultConsumerConcurrency
	}

	consumers := []struct {
		name    string
		topic   string // destination where publisher sent message
		handler messaging.Handler
	}{
		{
			name:    event.ApplicationSubmittedConsumerNotification,
			topic:   event.ApplicationSubmittedDestination,
			handler: mqHandler.ApplicationSubmittedNotification,
		},
	}

	for _, c := range consumers {
		if !slices.Contains(enabled, c.name) {
			continue
		}

		routine.Go(ctx, c.name, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running job for handling consumer", "consumer", c.name)
			err := consumer.Consume(pCtx, c.topic, c.handler,
				messaging.WithGroup(c.name),
				messaging.WithConcurrency(concurrency),
			)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}
}

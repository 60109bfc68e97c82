package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/shandysiswandi/ambassador/internal/notification/usecase"
	"github.com/shandysiswandi/ambassador/internal/pkg/idempotency"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/messaging"
	"github.com/shandysiswandi/ambassador/internal/pkg/uid"
	"github.com/shandysiswandi/ambassador/internal/shared/event"
)

type MQHandler struct {
	uc    ucConsumer
	idemp idempotency.Idempotency
	uuid  uid.StringID
	ins   instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg messaging.Message) context.Context {
	if cID := msg.Header(messaging.HeaderCorrelationID); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) ApplicationSubmittedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "ApplicationSubmittedNotification")
	defer span.End()

	slog.InfoContext(ctx, "consume: application submitted notification", "msg_key", msg.Key)

	var payload event.ApplicationSubmittedMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		// a malformed body never parses on redelivery either
		slog.ErrorContext(ctx, "failed to parse message body of application submitted", "msg_body", string(msg.Body), "error", err)
		return nil
	}

	key := event.ApplicationSubmittedConsumerNotification + ":" + strconv.FormatInt(payload.ApplicationID, 10)
	err := h.idemp.Exec(ctx, key, func(ctx context.Context) error {
		return h.uc.ConsumeApplicationSubmitted(ctx, usecase.ConsumeApplicationSubmittedInput{
			ApplicationID: payload.ApplicationID,
			Phone:         payload.Phone,
			Email:         payload.Email,
			SubmittedAt:   payload.SubmittedAt,
		})
	})
	if errors.Is(err, idempotency.ErrAlreadyCompleted) {
		slog.InfoContext(ctx, "skip duplicate application submitted", "application_id", payload.ApplicationID)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume application submitted", "application_id", payload.ApplicationID, "error", err)
		return err
	}

	return nil
}

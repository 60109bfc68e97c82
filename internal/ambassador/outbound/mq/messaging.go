package mq

import (
	"context"
	"strconv"

	"github.com/shandysiswandi/ambassador/internal/ambassador/usecase"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/messaging"
	"github.com/shandysiswandi/ambassador/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishApplicationSubmitted(ctx context.Context, msg usecase.ApplicationSubmittedEvent) error {
	ctx, span := m.ins.Tracer("ambassador.outbound.mq").Start(ctx, "PublishApplicationSubmitted")
	defer span.End()

	err := messaging.PublishJSON(ctx, m.client,
		event.ApplicationSubmittedDestination,
		strconv.FormatInt(msg.ApplicationID, 10),
		event.ApplicationSubmittedMessage{
			ApplicationID: msg.ApplicationID,
			Phone:         msg.Phone,
			Email:         msg.Email,
			SubmittedAt:   msg.SubmittedAt,
		},
		map[string]string{messaging.HeaderCorrelationID: instrument.GetCorrelationID(ctx)},
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

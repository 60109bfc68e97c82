package mq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shandysiswandi/ambassador/internal/ambassador/usecase"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/messaging"
	"github.com/shandysiswandi/ambassador/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	topic string
	msg   messaging.Outgoing
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, msg messaging.Outgoing) error {
	p.topic, p.msg = topic, msg
	return nil
}

func TestMessaging_PublishApplicationSubmitted(t *testing.T) {
	// Arrange
	pub := &recordingPublisher{}
	m := NewMessaging(pub, instrument.NewNoop())
	ctx := instrument.SetCorrelationID(context.Background(), "cid-1")
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	// Act
	err := m.PublishApplicationSubmitted(ctx, usecase.ApplicationSubmittedEvent{
		ApplicationID: 1790000000000000001,
		Phone:         "+628123456789",
		Email:         "ayu@example.com",
		SubmittedAt:   at,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, event.ApplicationSubmittedDestination, pub.topic)
	assert.Equal(t, "1790000000000000001", string(pub.msg.Key))
	assert.Equal(t, "cid-1", pub.msg.Headers[messaging.HeaderCorrelationID])

	var got event.ApplicationSubmittedMessage
	require.NoError(t, json.Unmarshal(pub.msg.Body, &got))
	assert.Equal(t, int64(1790000000000000001), got.ApplicationID)
	assert.Equal(t, "ayu@example.com", got.Email)
	assert.True(t, at.Equal(got.SubmittedAt))
	assert.Contains(t, string(pub.msg.Body), `"application_id":"1790000000000000001"`)
}

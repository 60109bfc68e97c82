package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startConsumer(t *testing.T, m *Memory, topic string, h Handler, opts ...ConsumeOption) context.CancelFunc {
	t.Helper()

	m.mu.RLock()
	before := len(m.subs[topic])
	m.mu.RUnlock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.ErrorIs(t, m.Consume(ctx, topic, h, opts...), context.Canceled)
	}()

	// wait until this consumer's own subscription is registered
	require.Eventually(t, func() bool {
		m.mu.RLock()
		defer m.mu.RUnlock()
		return len(m.subs[topic]) == before+1
	}, time.Second, time.Millisecond)

	return func() {
		cancel()
		<-done
	}
}

func TestMemory_PublishJSON(t *testing.T) {
	m := NewMemory()
	got := make(chan Message, 1)

	stop := startConsumer(t, m, "ambassador.application.submitted", func(_ context.Context, msg Message) error {
		got <- msg
		return nil
	}, WithGroup("notification"))
	defer stop()

	err := PublishJSON(context.Background(), m, "ambassador.application.submitted", "42",
		map[string]string{"applicationId": "42"}, map[string]string{HeaderCorrelationID: "cid-9"})
	require.NoError(t, err)

	select {
	case msg := <-got:
		var body map[string]string
		require.NoError(t, json.Unmarshal(msg.Body, &body))
		assert.Equal(t, "42", body["applicationId"])
		assert.Equal(t, "42", string(msg.Key))
		assert.Equal(t, "cid-9", msg.Header(HeaderCorrelationID))
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}
}

func TestMemory_GroupsShareMessages(t *testing.T) {
	m := NewMemory()
	var groupA, groupB atomic.Int32
	var wg sync.WaitGroup
	wg.Add(4)

	count := func(c *atomic.Int32) Handler {
		return func(context.Context, Message) error {
			c.Add(1)
			wg.Done()
			return nil
		}
	}

	stop1 := startConsumer(t, m, "t", count(&groupA), WithGroup("a"))
	stop2 := startConsumer(t, m, "t", count(&groupA), WithGroup("a"))
	stop3 := startConsumer(t, m, "t", count(&groupB), WithGroup("b"))

	require.NoError(t, m.Publish(context.Background(), "t", Outgoing{Body: []byte("1")}))
	require.NoError(t, m.Publish(context.Background(), "t", Outgoing{Body: []byte("2")}))
	wg.Wait()

	stop1()
	stop2()
	stop3()

	assert.Equal(t, int32(2), groupA.Load())
	assert.Equal(t, int32(2), groupB.Load())
}

func TestMemory_HandlerPanicDoesNotStopConsumer(t *testing.T) {
	m := NewMemory()
	var calls atomic.Int32

	stop := startConsumer(t, m, "t", func(context.Context, Message) error {
		if calls.Add(1) == 1 {
			panic("poison")
		}
		return errors.New("handled")
	})
	defer stop()

	require.NoError(t, m.Publish(context.Background(), "t", Outgoing{}))
	require.NoError(t, m.Publish(context.Background(), "t", Outgoing{}))

	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)
}

func TestMemory_Validation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	assert.ErrorIs(t, m.Publish(ctx, "", Outgoing{}), ErrTopicRequired)
	assert.ErrorIs(t, m.Consume(ctx, "t", nil), ErrHandlerRequired)

	require.NoError(t, m.Close())
	assert.ErrorIs(t, m.Publish(ctx, "t", Outgoing{}), ErrClosed)
}

func TestNewFromDriver(t *testing.T) {
	m, err := NewFromDriver("memory", FactoryOptions{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, m)

	_, err = NewFromDriver("kafka", FactoryOptions{})
	assert.ErrorIs(t, err, ErrKafkaBrokersRequired)

	_, err = NewFromDriver("nats", FactoryOptions{})
	assert.ErrorIs(t, err, ErrNATSURLRequired)

	_, err = NewFromDriver("nsq", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

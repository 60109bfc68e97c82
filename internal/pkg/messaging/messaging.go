package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

var (
	// ErrTopicRequired is returned when publishing or consuming without a topic.
	ErrTopicRequired = errors.New("messaging: topic is required")
	// ErrHandlerRequired is returned when Consume gets a nil handler.
	ErrHandlerRequired = errors.New("messaging: handler is required")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("messaging: client is closed")
)

// HeaderCorrelationID carries the request correlation id across the broker.
const HeaderCorrelationID = "cID"

// Messaging is a broker client able to publish and consume.
type Messaging interface {
	io.Closer
	Publisher
	Consumer
}

// Publisher publishes messages to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, msg Outgoing) error
}

// Consumer consumes a topic until ctx is done.
type Consumer interface {
	// Consume blocks, calling h for every message. A handler error leaves
	// the message uncommitted where the broker supports redelivery.
	Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error
}

// Handler processes one message.
type Handler func(ctx context.Context, msg Message) error

// Outgoing is a message to publish.
type Outgoing struct {
	Key     []byte
	Body    []byte
	Headers map[string]string
}

// Message is a received message.
type Message struct {
	Topic      string
	Key        []byte
	Body       []byte
	Headers    map[string]string
	ReceivedAt time.Time
}

// Header returns a header value or "".
func (m Message) Header(key string) string {
	return m.Headers[key]
}

// PublishJSON marshals v and publishes it with the given key and headers.
func PublishJSON(ctx context.Context, p Publisher, topic, key string, v any, headers map[string]string) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("messaging: encode %s: %w", topic, err)
	}

	return p.Publish(ctx, topic, Outgoing{Key: []byte(key), Body: body, Headers: headers})
}

type consumeOptions struct {
	group       string
	concurrency int
}

// ConsumeOption configures Consume.
type ConsumeOption func(*consumeOptions)

// WithGroup sets the consumer group: the Kafka group id or the NATS queue
// group. Consumers in one group share the stream.
func WithGroup(group string) ConsumeOption {
	return func(o *consumeOptions) { o.group = group }
}

// WithConcurrency sets how many handlers run in parallel. Defaults to 1.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

func newConsumeOptions(opts []ConsumeOption) consumeOptions {
	co := consumeOptions{concurrency: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&co)
		}
	}
	if co.concurrency < 1 {
		co.concurrency = 1
	}
	return co
}

func validate(ctx context.Context, topic string, h Handler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}
	if h == nil {
		return ErrHandlerRequired
	}
	return nil
}

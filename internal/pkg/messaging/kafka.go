package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	// ErrKafkaBrokersRequired is returned when no Kafka brokers are configured.
	ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")
	// ErrKafkaGroupRequired is returned when Consume has no consumer group.
	ErrKafkaGroupRequired = errors.New("messaging: kafka consumer group is required")
)

// KafkaConfig configures the Kafka driver.
type KafkaConfig struct {
	Brokers []string
	// ClientID identifies the service to the brokers.
	ClientID string
}

// Kafka is a Messaging backed by kafka-go. Messages are keyed so events of
// one application land on one partition.
type Kafka struct {
	brokers []string
	dialer  *kafka.Dialer

	mu      sync.Mutex
	writer  *kafka.Writer
	readers map[*kafka.Reader]struct{}
	closed  bool
}

// NewKafka constructs a Kafka client. Connections are opened lazily.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	dialer := &kafka.Dialer{ClientID: cfg.ClientID, Timeout: 10 * time.Second, DualStack: true}

	return &Kafka{
		brokers: append([]string{}, cfg.Brokers...),
		dialer:  dialer,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 10 * time.Millisecond,
			Transport:    &kafka.Transport{ClientID: cfg.ClientID},
		},
		readers: make(map[*kafka.Reader]struct{}),
	}, nil
}

// Publish implements Publisher.
func (k *Kafka) Publish(ctx context.Context, topic string, msg Outgoing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}

	k.mu.Lock()
	closed := k.closed
	k.mu.Unlock()
	if closed {
		return ErrClosed
	}

	km := kafka.Message{Topic: topic, Key: msg.Key, Value: msg.Body, Time: time.Now()}
	for key, v := range msg.Headers {
		km.Headers = append(km.Headers, kafka.Header{Key: key, Value: []byte(v)})
	}

	if err := k.writer.WriteMessages(ctx, km); err != nil {
		return fmt.Errorf("messaging: kafka publish: %w", err)
	}

	return nil
}

// Consume implements Consumer. A message is committed only after its handler
// succeeds; a failed message is redelivered after a rebalance or restart.
func (k *Kafka) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	if err := validate(ctx, topic, h); err != nil {
		return err
	}

	co := newConsumeOptions(opts)
	if co.group == "" {
		return ErrKafkaGroupRequired
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.brokers,
		GroupID:  co.group,
		Topic:    topic,
		Dialer:   k.dialer,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	if err := k.track(reader); err != nil {
		return errors.Join(err, reader.Close())
	}
	defer k.untrack(reader)

	msgs := make(chan kafka.Message)
	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for m := range msgs {
				if err := safeHandle(ctx, h, fromKafka(m)); err != nil {
					slog.ErrorContext(ctx, "kafka handler failed", "topic", topic, "offset", m.Offset, "error", err)
					continue
				}
				if err := reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
					slog.ErrorContext(ctx, "kafka commit failed", "topic", topic, "offset", m.Offset, "error", err)
				}
			}
		})
	}

	var fetchErr error
	for {
		m, err := reader.FetchMessage(ctx)
		if err != nil {
			fetchErr = err
			break
		}
		msgs <- m
	}

	close(msgs)
	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("messaging: kafka consume: %w", fetchErr)
}

// Close closes the writer and every active reader.
func (k *Kafka) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	readers := make([]*kafka.Reader, 0, len(k.readers))
	for r := range k.readers {
		readers = append(readers, r)
	}
	k.mu.Unlock()

	errs := []error{k.writer.Close()}
	for _, r := range readers {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}

func (k *Kafka) track(r *kafka.Reader) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return ErrClosed
	}
	k.readers[r] = struct{}{}
	return nil
}

func (k *Kafka) untrack(r *kafka.Reader) {
	k.mu.Lock()
	_, ok := k.readers[r]
	delete(k.readers, r)
	k.mu.Unlock()

	if ok {
		//nolint:errcheck // reader is done either way
		r.Close()
	}
}

func fromKafka(m kafka.Message) Message {
	headers := make(map[string]string, len(m.Headers))
	for _, h := range m.Headers {
		headers[h.Key] = string(h.Value)
	}

	return Message{
		Topic:      m.Topic,
		Key:        m.Key,
		Body:       m.Value,
		Headers:    headers,
		ReceivedAt: m.Time,
	}
}

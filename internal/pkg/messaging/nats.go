package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// ErrNATSURLRequired is returned when the NATS server URL is missing.
var ErrNATSURLRequired = errors.New("messaging: nats url is required")

// NATSConfig configures the NATS driver.
type NATSConfig struct {
	URL     string
	Name    string
	Options []nats.Option
}

// NATS is a Messaging backed by core NATS subjects.
type NATS struct {
	conn *nats.Conn

	mu     sync.Mutex
	closed bool
}

// NewNATS connects to NATS.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	opts := append([]nats.Option{
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", "error", err)
			}
		}),
	}, cfg.Options...)

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}

	return &NATS{conn: conn}, nil
}

// Publish implements Publisher.
func (n *NATS) Publish(ctx context.Context, topic string, msg Outgoing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}
	if n.isClosed() {
		return ErrClosed
	}

	nm := nats.NewMsg(topic)
	nm.Data = msg.Body
	for k, v := range msg.Headers {
		nm.Header.Set(k, v)
	}

	if err := n.conn.PublishMsg(nm); err != nil {
		return fmt.Errorf("messaging: nats publish: %w", err)
	}
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("messaging: nats flush: %w", err)
	}

	return nil
}

// Consume implements Consumer. Core NATS has no redelivery, so handler
// errors are logged and the message is dropped.
func (n *NATS) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	if err := validate(ctx, topic, h); err != nil {
		return err
	}
	if n.isClosed() {
		return ErrClosed
	}

	co := newConsumeOptions(opts)
	msgs := make(chan *nats.Msg, co.concurrency)

	sub, err := n.conn.QueueSubscribe(topic, co.group, func(m *nats.Msg) {
		select {
		case msgs <- m:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("messaging: nats subscribe: %w", err)
	}

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for m := range msgs {
				msg := fromNATS(m)
				if err := safeHandle(ctx, h, msg); err != nil {
					slog.ErrorContext(ctx, "nats handler failed", "topic", topic, "error", err)
				}
			}
		})
	}

	<-ctx.Done()

	errDrain := sub.Drain()
	close(msgs)
	wg.Wait()

	return errors.Join(ctx.Err(), errDrain)
}

// Close drains the connection.
func (n *NATS) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	n.mu.Unlock()

	err := n.conn.Drain()
	n.conn.Close()
	return err
}

func (n *NATS) isClosed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed
}

func fromNATS(m *nats.Msg) Message {
	headers := make(map[string]string, len(m.Header))
	for k := range m.Header {
		headers[k] = m.Header.Get(k)
	}

	return Message{
		Topic:      m.Subject,
		Body:       m.Data,
		Headers:    headers,
		ReceivedAt: time.Now(),
	}
}

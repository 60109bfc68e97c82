package messaging

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"
)

// Memory is an in-process broker. Each published message goes to one
// consumer per group; consumers without a group each get a copy. Nothing
// survives a restart.
type Memory struct {
	mu     sync.RWMutex
	subs   map[string][]*memorySub
	closed bool
}

type memorySub struct {
	group string
	ch    chan Message
	done  chan struct{}
}

// NewMemory returns an empty in-process broker.
func NewMemory() *Memory {
	return &Memory{subs: make(map[string][]*memorySub)}
}

// Publish implements Publisher. It blocks while a subscriber's buffer is full.
func (m *Memory) Publish(ctx context.Context, topic string, msg Outgoing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}

	out := Message{
		Topic:      topic,
		Key:        msg.Key,
		Body:       msg.Body,
		Headers:    maps.Clone(msg.Headers),
		ReceivedAt: time.Now(),
	}

	seen := make(map[string]struct{})
	for _, s := range m.subs[topic] {
		if s.group != "" {
			if _, dup := seen[s.group]; dup {
				continue
			}
			seen[s.group] = struct{}{}
		}

		select {
		case s.ch <- out:
		case <-s.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// Consume implements Consumer.
func (m *Memory) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	if err := validate(ctx, topic, h); err != nil {
		return err
	}

	co := newConsumeOptions(opts)
	sub := &memorySub{group: co.group, ch: make(chan Message, 64), done: make(chan struct{})}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.subs[topic] = append(m.subs[topic], sub)
	m.mu.Unlock()

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case msg := <-sub.ch:
					if err := safeHandle(ctx, h, msg); err != nil {
						slog.ErrorContext(ctx, "memory handler failed", "topic", topic, "error", err)
					}
				}
			}
		})
	}

	<-ctx.Done()
	close(sub.done)
	m.remove(topic, sub)
	wg.Wait()

	return ctx.Err()
}

// Close stops accepting publishes.
func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func (m *Memory) remove(topic string, sub *memorySub) {
	m.mu.Lock()
	defer m.mu.Unlock()

	subs := m.subs[topic]
	for i, s := range subs {
		if s == sub {
			m.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Package goroutine runs background work with a concurrency ceiling, panic
// recovery and a single place to wait for shutdown.
package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/shandysiswandi/ambassador/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is multiplied by NumCPU when NewManager gets a
// non-positive limit.
const DefaultMaxGoroutine int = 100

// ErrPanic wraps a value recovered from a panicking task.
var ErrPanic = errors.New("goroutine: task panicked")

// Manager runs named tasks in goroutines. Errors and recovered panics are
// collected and returned by Wait.
type Manager struct {
	mu   sync.Mutex
	errs []error
	wg   sync.WaitGroup
	sema chan struct{}

	stateMu sync.RWMutex
	closed  bool
}

// NewManager creates a Manager running at most maxGoroutine tasks at once.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go runs f in a goroutine. It returns false without running f when the
// manager is closed or full.
func (g *Manager) Go(ctx context.Context, name string, f func(ctx context.Context) error) bool {
	if g == nil {
		return false
	}

	g.stateMu.RLock()
	defer g.stateMu.RUnlock()

	if g.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, task skipped", "task", name)
		return false
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "goroutine limit reached, task skipped", "task", name)
		return false
	}

	g.wg.Go(func() {
		defer func() { <-g.sema }()
		if err := g.run(ctx, name, f); err != nil {
			g.collect(fmt.Errorf("%s: %w", name, err))
		}
	})

	return true
}

// Every runs f immediately and then on every tick of interval until ctx is
// done. A failing run is logged and does not stop the loop.
func (g *Manager) Every(ctx context.Context, name string, interval time.Duration, f func(ctx context.Context) error) bool {
	if interval <= 0 {
		return false
	}

	return g.Go(ctx, name, func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if err := g.run(ctx, name, f); err != nil {
				slog.ErrorContext(ctx, "periodic task failed", "task", name, "error", err)
			}

			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})
}

func (g *Manager) run(ctx context.Context, name string, f func(ctx context.Context) error) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}

		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic occurred in goroutine", "task", name, "panic", rvr, "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic occurred in goroutine", "task", name, "panic", rvr, "stack", string(stack))
		}

		err = fmt.Errorf("%w: %v", ErrPanic, rvr)
	}()

	if ctx.Err() != nil {
		slog.WarnContext(ctx, "goroutine canceled before start", "task", name, "because", ctx.Err())
		return nil
	}

	return f(ctx)
}

func (g *Manager) collect(err error) {
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}

// Wait closes the manager, blocks until every task returns and joins their
// errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.stateMu.Lock()
	g.closed = true
	g.stateMu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	return errors.Join(g.errs...)
}

package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/shandysiswandi/ambassador/internal/pkg/stacktrace"
)

// safeHandle runs h, turning a panic into an error so one poison message
// cannot kill a consumer.
func safeHandle(ctx context.Context, h Handler, msg Message) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}

		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic in messaging handler", "topic", msg.Topic, "panic", rvr, "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic in messaging handler", "topic", msg.Topic, "panic", rvr, "stack", string(stack))
		}

		err = fmt.Errorf("messaging: panic in %s handler: %v", msg.Topic, rvr)
	}()

	return h(ctx, msg)
}

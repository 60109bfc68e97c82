package stacktrace

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternalPaths(t *testing.T) {
	dump := []byte("goroutine 7 [running]:\n" +
		"runtime/debug.Stack()\n" +
		"\t/usr/local/go/src/runtime/debug/stack.go:26 +0x5e\n" +
		"github.com/shandysiswandi/ambassador/internal/verification/usecase.(*Usecase).Issue(...)\n" +
		"\t/app/internal/verification/usecase/issue.go:57 +0x1d\n" +
		"created by github.com/shandysiswandi/ambassador/internal/pkg/goroutine.(*Manager).Go\n" +
		"\t/app/internal/pkg/goroutine/goroutine.go:80 +0x99\n")

	assert.Equal(t, []string{
		"internal/verification/usecase/issue.go:57",
		"internal/pkg/goroutine/goroutine.go:80",
	}, InternalPaths(dump))
}

func TestInternalPaths_LiveStack(t *testing.T) {
	paths := InternalPaths(debug.Stack())

	require.NotEmpty(t, paths)
	assert.Contains(t, paths[0], "internal/pkg/stacktrace/stacktrace_test.go:")
}

// Package stacktrace trims goroutine stack dumps to the frames of this module.
package stacktrace

import (
	"bufio"
	"bytes"
	"strings"
)

const marker = "/internal/"

// InternalPaths returns "internal/<pkg>/<file>.go:<line>" for every frame of a
// debug.Stack dump that points into this module's internal tree.
func InternalPaths(stack []byte) []string {
	var paths []string

	sc := bufio.NewScanner(bytes.NewReader(stack))
	for sc.Scan() {
		// file lines are tab-indented: "\t/path/to/file.go:42 +0x1d"
		line := sc.Text()
		if !strings.HasPrefix(line, "\t") {
			continue
		}

		loc, _, _ := strings.Cut(strings.TrimSpace(line), " ")
		idx := strings.LastIndex(loc, marker)
		if idx == -1 || !strings.Contains(loc, ".go:") {
			continue
		}

		paths = append(paths, loc[idx+1:])
	}

	return paths
}

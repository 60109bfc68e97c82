package storage

import (
	"strconv"
	"strings"
)

// ParseRange parses a single-range HTTP Range header ("bytes=a-b", "bytes=a-"
// or "bytes=-n") against an object of size bytes. An empty header returns
// nil. Multi-range requests are not supported.
func ParseRange(header string, size int64) (*ByteRange, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, nil
	}

	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok || strings.Contains(spec, ",") || size <= 0 {
		return nil, ErrInvalidRange
	}

	startRaw, endRaw, ok := strings.Cut(strings.TrimSpace(spec), "-")
	if !ok {
		return nil, ErrInvalidRange
	}

	if startRaw == "" {
		// suffix range: the last n bytes
		n, err := strconv.ParseInt(endRaw, 10, 64)
		if err != nil || n <= 0 {
			return nil, ErrInvalidRange
		}
		n = min(n, size)
		return &ByteRange{Start: size - n, End: size - 1}, nil
	}

	start, err := strconv.ParseInt(startRaw, 10, 64)
	if err != nil || start < 0 || start >= size {
		return nil, ErrInvalidRange
	}

	end := size - 1
	if endRaw != "" {
		end, err = strconv.ParseInt(endRaw, 10, 64)
		if err != nil || end < start {
			return nil, ErrInvalidRange
		}
		end = min(end, size-1)
	}

	return &ByteRange{Start: start, End: end}, nil
}

// Package internal holds helpers for turning rate limit headers into
// timestamps.
package internal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimeStr converts strings like "1s", "6m0s" into ms.
func ParseTimeStr(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if strings.HasSuffix(s, "s") && !strings.Contains(s, "m") {
		sec, err := strconv.Atoi(strings.TrimSuffix(s, "s"))
		if err == nil {
			return int64(sec) * 1000
		}
	}

	var minutes, seconds int
	n, err := fmt.Sscanf(s, "%dm%ds", &minutes, &seconds)
	if n == 2 && err == nil {
		return int64(minutes)*60_000 + int64(seconds)*1_000
	}

	return 0
}

// ParseResetAt reads a retry-after style header value. The API sends an
// epoch in seconds; a duration string is taken relative to now. The result
// is an epoch in ms, or 0 when the value is unusable.
func ParseResetAt(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if epoch, err := strconv.ParseInt(s, 10, 64); err == nil {
		return UnixToMs(epoch)
	}
	if ms := ParseTimeStr(s); ms > 0 {
		return time.Now().UnixMilli() + ms
	}
	return 0
}

// UnixToMs converts a UNIX timestamp in seconds to milliseconds.
func UnixToMs(timestamp int64) int64 {
	return timestamp * 1000
}

// IsInFuture checks if a timestamp (in ms) is in the future relative to the current time.
func IsInFuture(ms int64) bool {
	return ms > time.Now().UnixMilli()
}

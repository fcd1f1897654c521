package internal

import (
	"testing"
	"time"
)

func TestParseTimeStr(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"1s", 1000},
		{"6m0s", 360_000},
		{"2m30s", 150_000},
		{"bogus", 0},
	}
	for _, tt := range tests {
		if got := ParseTimeStr(tt.in); got != tt.want {
			t.Errorf("ParseTimeStr(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseResetAt(t *testing.T) {
	if got := ParseResetAt("1700000000"); got != 1_700_000_000_000 {
		t.Errorf("ParseResetAt(epoch) = %d", got)
	}
	if got := ParseResetAt(""); got != 0 {
		t.Errorf("ParseResetAt(\"\") = %d, want 0", got)
	}
	got := ParseResetAt("5s")
	if !IsInFuture(got) || got > time.Now().Add(6*time.Second).UnixMilli() {
		t.Errorf("ParseResetAt(5s) = %d, not about five seconds ahead", got)
	}
}

package helpers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback time.Duration
		want     time.Duration
	}{
		{name: "valid hours", input: "2h", fallback: time.Minute, want: 2 * time.Hour},
		{name: "valid composite", input: "1h30m", fallback: time.Minute, want: 90 * time.Minute},
		{name: "invalid falls back", input: "not-a-duration", fallback: 5 * time.Minute, want: 5 * time.Minute},
		{name: "empty falls back", input: "", fallback: time.Hour, want: time.Hour},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseDuration(tc.input, tc.fallback); got != tc.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

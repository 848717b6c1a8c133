package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"capsule-go/internal/capsule"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{d: 0, want: "00:00:00"},
		{d: 59 * time.Second, want: "00:00:59"},
		{d: 61 * time.Second, want: "00:01:01"},
		{d: 2*time.Hour + 3*time.Minute + 4*time.Second, want: "02:03:04"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatElapsed(tt.d); got != tt.want {
				t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestTerminalProgress(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	p := newTerminalProgress(&buf, 80)

	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	p.Start(2)
	now = now.Add(time.Second)
	p.Advance()
	now = now.Add(time.Second)
	p.Advance()
	p.Finish()

	if !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("output %q does not end the line on Finish", buf.String())
	}

	frames := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\r")[1:]
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4: %q", len(frames), frames)
	}

	checks := []struct {
		frame  int
		prefix string
		suffix string
	}{
		{frame: 0, prefix: "[00:00:00] ", suffix: " 0/2"},
		{frame: 1, prefix: "[00:00:01] ", suffix: " 1/2"},
		{frame: 3, prefix: "[00:00:02] ", suffix: " 2/2"},
	}
	for _, c := range checks {
		f := frames[c.frame]
		if !strings.HasPrefix(f, c.prefix) || !strings.HasSuffix(f, c.suffix) {
			t.Errorf("frame %d = %q, want prefix %q and suffix %q", c.frame, f, c.prefix, c.suffix)
		}
	}
}

func TestTerminalProgress_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	p := newTerminalProgress(&buf, 0)
	p.Start(0)
	p.Finish()

	if !strings.Contains(buf.String(), " 0/0") {
		t.Errorf("output = %q, want a 0/0 counter", buf.String())
	}
}

func TestNewProgress_Disabled(t *testing.T) {
	if _, ok := newProgress(false).(capsule.NopProgress); !ok {
		t.Error("newProgress(false) should be a no-op")
	}
}

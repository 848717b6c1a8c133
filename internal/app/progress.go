package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"capsule-go/internal/capsule"
)

const (
	maxBarWidth = 40
	// room for the elapsed time and counters around the bar
	barChrome = 30
)

// terminalProgress draws a single self-overwriting progress line.
type terminalProgress struct {
	w       io.Writer
	bar     progress.Model
	total   int
	done    int
	started time.Time
	now     func() time.Time
}

func newTerminalProgress(w io.Writer, width int) *terminalProgress {
	barWidth := maxBarWidth
	if width > 0 && width-barChrome < barWidth {
		barWidth = max(width-barChrome, 10)
	}
	return &terminalProgress{
		w:   w,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth), progress.WithoutPercentage()),
		now: time.Now,
	}
}

func (p *terminalProgress) Start(total int) {
	p.total = total
	p.done = 0
	p.started = p.now()
	p.render()
}

func (p *terminalProgress) Advance() {
	p.done++
	p.render()
}

func (p *terminalProgress) Finish() {
	p.render()
	fmt.Fprintln(p.w)
}

func (p *terminalProgress) render() {
	percent := 1.0
	if p.total > 0 {
		percent = min(float64(p.done)/float64(p.total), 1)
	}
	elapsed := p.now().Sub(p.started).Truncate(time.Second)
	fmt.Fprintf(p.w, "\r[%s] %s %d/%d", formatElapsed(elapsed), p.bar.ViewAs(percent), p.done, p.total)
}

// formatElapsed renders d as HH:MM:SS.
func formatElapsed(d time.Duration) string {
	s := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}

// newProgress returns a terminal progress bar on stderr when enabled and
// stderr is a terminal, and a no-op otherwise.
func newProgress(enabled bool) capsule.Progress {
	fd := os.Stderr.Fd()
	if !enabled || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		return capsule.NopProgress{}
	}
	width, _, err := term.GetSize(int(fd))
	if err != nil {
		width = 0
	}
	return newTerminalProgress(os.Stderr, width)
}

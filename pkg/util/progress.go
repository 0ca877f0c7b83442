package util

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ProgressBar renders task counts as a single redrawn terminal line
type ProgressBar struct {
	mu       sync.Mutex
	total    int
	current  int
	errors   int
	start    time.Time
	prefix   string
	width    int
	writer   io.Writer
	lastDraw time.Time
}

// NewProgressBar creates a progress bar writing to writer
func NewProgressBar(prefix string, writer io.Writer) *ProgressBar {
	return &ProgressBar{
		prefix: prefix,
		width:  40,
		writer: writer,
		start:  time.Now(),
	}
}

// Update redraws the bar for the given counts. Redraws are throttled except
// when the counts reach the total.
func (p *ProgressBar) Update(current, total, errors int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = current
	p.total = total
	p.errors = errors

	if time.Since(p.lastDraw) < 100*time.Millisecond && p.current < p.total {
		return
	}

	p.draw()
	p.lastDraw = time.Now()
}

// Finish draws the final state and moves off the bar line
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.draw()
	fmt.Fprintln(p.writer)
}

// draw renders the progress bar
func (p *ProgressBar) draw() {
	if p.total <= 0 {
		return
	}

	percent := float64(p.current) / float64(p.total) * 100

	filled := int(float64(p.width) * float64(p.current) / float64(p.total))
	if filled > p.width {
		filled = p.width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)

	errs := ""
	if p.errors > 0 {
		errs = fmt.Sprintf(" (%d errors)", p.errors)
	}

	elapsed := time.Since(p.start)
	rate := ""
	eta := ""
	if elapsed > 0 && p.current > 0 {
		perSec := float64(p.current) / elapsed.Seconds()
		rate = fmt.Sprintf(" %.0f files/s", perSec)

		if p.current < p.total && perSec > 0 {
			remaining := float64(p.total-p.current) / perSec
			eta = fmt.Sprintf(" ETA: %s", FormatDuration(time.Duration(remaining)*time.Second))
		}
	}

	fmt.Fprintf(p.writer, "\r%s [%s] %.1f%% %d/%d%s%s%s",
		p.prefix,
		bar,
		percent,
		p.current,
		p.total,
		errs,
		rate,
		eta,
	)
}

// FormatDuration formats a duration to a human-readable string
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "< 1s"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

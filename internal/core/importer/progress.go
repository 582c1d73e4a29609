package importer

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressCallback defines the interface for progress reporting
type ProgressCallback interface {
	Update(file string, status string)
	Finish()
}

// ProgressReporter draws a progress bar while files are imported
type ProgressReporter struct {
	writer    io.Writer
	total     int
	current   int
	startTime time.Time
}

// NewProgressReporter creates a new progress reporter
func NewProgressReporter(w io.Writer, total int) *ProgressReporter {
	return &ProgressReporter{
		writer:    w,
		total:     total,
		startTime: time.Now(),
	}
}

// Update advances the bar by one file
func (p *ProgressReporter) Update(file string, status string) {
	p.current++
	if p.total <= 0 {
		return
	}

	pct := float64(p.current) / float64(p.total) * 100

	// Draw progress bar (40 chars wide)
	barWidth := 40
	filled := barWidth * p.current / p.total
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	displayText := file + ": " + status
	if len(displayText) > 60 {
		displayText = displayText[:57] + "..."
	}

	// Calculate ETA
	var eta time.Duration
	if elapsed := time.Since(p.startTime); elapsed > 0 {
		rate := float64(p.current) / elapsed.Seconds()
		eta = time.Duration(float64(p.total-p.current)/rate) * time.Second
	}

	_, _ = fmt.Fprintf(p.writer, "\r[%s] %3.0f%% (%d/%d) ETA: %s | %s",
		bar, pct, p.current, p.total, eta.Round(time.Second), displayText)
}

// Finish completes the progress display
func (p *ProgressReporter) Finish() {
	elapsed := time.Since(p.startTime)
	_, _ = fmt.Fprintf(p.writer, "\nCompleted: processed %d files in %s\n", p.current, elapsed.Round(time.Millisecond))
}

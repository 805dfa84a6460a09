package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/code-outline/internal/processor"
)

// CLIProgressReporter draws a progress bar while a batch is processed.
// Rendered output goes to stdout, so the bar always writes elsewhere.
type CLIProgressReporter struct {
	quiet   bool
	w       io.Writer
	fileBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a reporter writing to w. A quiet reporter
// draws nothing.
func NewCLIProgressReporter(w io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet, w: w}
}

func (c *CLIProgressReporter) OnStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.w),
		progressbar.OptionSetDescription("Outlining files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(string) {
	if c.quiet || c.fileBar == nil {
		return
	}
	_ = c.fileBar.Add(1)
}

func (c *CLIProgressReporter) OnComplete(stats processor.Stats) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		_ = c.fileBar.Finish()
		c.fileBar = nil
	}
	if stats.Failed > 0 {
		fmt.Fprintf(c.w, "✓ Outlined %d of %d files in %.2fs (%d failed)\n",
			stats.Succeeded, stats.Files, stats.Duration.Seconds(), stats.Failed)
		return
	}
	fmt.Fprintf(c.w, "✓ Outlined %d files in %.2fs\n", stats.Succeeded, stats.Duration.Seconds())
}

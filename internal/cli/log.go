package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Sub-second timestamps matter here:
// solve times for small designs are in the millisecond range.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one pipeline stage from construction to done. Single
// goroutine use only.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs the formatted completion message with the elapsed time
// appended, e.g. "Solved 4 sections (1.234s)".
func (p *progress) done(format string, args ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Infof("%s (%s)", fmt.Sprintf(format, args...), elapsed)
}

package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger writing to w at level, stamped with
// "15:04:05.00" times.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a figure build from flag parsing to the written file.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered 2x2 figure (412ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for the subcommands.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports renders and saves through the CLI logger.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnRenderStart(format string, width, height float64) {
	h.logger.Debug("render start", "format", format, "width_in", width, "height_in", height)
}

func (h *logHooks) OnRenderComplete(format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("render complete", "format", format, "bytes", size, "elapsed", d.Round(time.Millisecond))
}

func (h *logHooks) OnSave(path string, size int, err error) {
	if err != nil {
		h.logger.Error("save failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("saved", "path", path, "bytes", size)
}

package cli

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  string
	}{
		{
			name:  "progress at info",
			level: LogInfo,
			emit:  func(l *log.Logger) { l.Info("Rendered 2x2 figure") },
			want:  "Rendered 2x2 figure",
		},
		{
			name:  "figure debug hidden at info",
			level: LogInfo,
			emit:  func(l *log.Logger) { l.Debug("corner annotation", "text", "(a)") },
		},
		{
			name:  "figure debug with --verbose",
			level: LogDebug,
			emit:  func(l *log.Logger) { l.Debug("corner annotation", "text", "(a)") },
			want:  "corner annotation",
		},
	}

	stamp := regexp.MustCompile(`\d{2}:\d{2}:\d{2}\.\d{2}`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))

			out := buf.String()
			if tt.want == "" {
				if out != "" {
					t.Errorf("unexpected output %q", out)
				}
				return
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q does not contain %q", out, tt.want)
			}
			if !stamp.MatchString(out) {
				t.Errorf("output %q has no HH:MM:SS.xx timestamp", out)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.start = prog.start.Add(-1500 * time.Millisecond)
	prog.done("Rendered 1x2 figure")

	elapsed := regexp.MustCompile(`Rendered 1x2 figure \(1\.5\d*s\)`)
	if out := buf.String(); !elapsed.MatchString(out) {
		t.Errorf("output %q, want the message with elapsed time", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, LogInfo)

	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Errorf("bare context gave %p, want log.Default()", got)
	}
	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Errorf("context logger = %p, want %p", got, custom)
	}
}

func TestLogHooks(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		call    func(*logHooks)
		want    string
		wantLog bool
	}{
		{
			name:    "render start at debug",
			level:   log.DebugLevel,
			call:    func(h *logHooks) { h.OnRenderStart("svg", 5.77, 2.9) },
			want:    "render start",
			wantLog: true,
		},
		{
			name:    "render complete hidden at info",
			level:   log.InfoLevel,
			call:    func(h *logHooks) { h.OnRenderComplete("png", 1024, time.Second, nil) },
			wantLog: false,
		},
		{
			name:    "render failure at info",
			level:   log.InfoLevel,
			call:    func(h *logHooks) { h.OnRenderComplete("png", 0, time.Second, errors.New("boom")) },
			want:    "render failed",
			wantLog: true,
		},
		{
			name:    "save failure at info",
			level:   log.InfoLevel,
			call:    func(h *logHooks) { h.OnSave("out/fig.svg", 0, errors.New("denied")) },
			want:    "out/fig.svg",
			wantLog: true,
		},
		{
			name:    "save success at debug",
			level:   log.DebugLevel,
			call:    func(h *logHooks) { h.OnSave("fig.svg", 10, nil) },
			want:    "saved",
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.call(&logHooks{logger: newLogger(&buf, tt.level)})

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Fatalf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
			if tt.want != "" && !bytes.Contains(buf.Bytes(), []byte(tt.want)) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}

package figure

import (
	"bytes"
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"

	"github.com/matzehuels/pubfig/pkg/errors"
	"github.com/matzehuels/pubfig/pkg/style"
)

func legendLines(t *testing.T, n int) []plot.Thumbnailer {
	t.Helper()
	lines := make([]plot.Thumbnailer, n)
	for i := range lines {
		l, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: float64(i)}})
		if err != nil {
			t.Fatal(err)
		}
		l.Color = style.Color(i)
		lines[i] = l
	}
	return lines
}

func TestEnableFigureLegend(t *testing.T) {
	f := mustFigure(t, 1, 2, nil)
	labels := []string{"observed", "simulated"}
	if err := f.EnableFigureLegend(legendLines(t, 2), labels); err != nil {
		t.Fatalf("EnableFigureLegend() error: %v", err)
	}
	if got := f.legend.band(); got != inches(DefaultLegendPlaceholder) {
		t.Errorf("band = %v, want %v", got, inches(DefaultLegendPlaceholder))
	}

	svg, err := f.Render(FormatSVG)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	for _, label := range labels {
		if !bytes.Contains(svg, []byte(label)) {
			t.Errorf("svg output does not contain legend label %q", label)
		}
	}
}

func TestEnableFigureLegend_Errors(t *testing.T) {
	f := mustFigure(t, 1, 1, nil)
	tests := []struct {
		name   string
		lines  int
		labels []string
		opts   []LegendOption
	}{
		{"more labels", 1, []string{"a", "b"}, nil},
		{"more lines", 3, []string{"a", "b"}, nil},
		{"zero per row", 1, []string{"a"}, []LegendOption{LabelPerRow(0)}},
		{"negative placeholder", 1, []string{"a"}, []LegendOption{Placeholder(-1)}},
		{"zero text size", 1, []string{"a"}, []LegendOption{LegendTextSize(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.EnableFigureLegend(legendLines(t, tt.lines), tt.labels, tt.opts...)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
			if f.legend != nil {
				t.Error("failed call installed a legend")
			}
		})
	}
}

func TestLegendGrid(t *testing.T) {
	sty := legendTextStyle(t)
	tests := []struct {
		name     string
		n        int
		perRow   int
		wantCols int
		wantRows int
	}{
		{"single", 1, 8, 1, 1},
		{"one row", 5, 8, 5, 1},
		{"exact rows", 8, 4, 4, 2},
		{"partial last row", 9, 4, 4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &figureLegend{labels: make([]string, tt.n), perRow: tt.perRow}
			for i := range l.labels {
				l.labels[i] = "label"
			}
			cols, rows, cellW, cellH := l.grid(sty)
			if cols != tt.wantCols || rows != tt.wantRows {
				t.Errorf("grid = %dx%d, want %dx%d", cols, rows, tt.wantCols, tt.wantRows)
			}
			if cellW <= legendThumbWidth || cellH <= 0 {
				t.Errorf("cell = (%v, %v), want a thumbnail plus label", cellW, cellH)
			}
		})
	}
}

func TestLegendOverflow(t *testing.T) {
	sty := legendTextStyle(t)
	w, h := inches(4), inches(3)

	l := &figureLegend{labels: []string{"a", "b"}, perRow: 8, heightRatio: 1}
	if left, right, bottom, top := l.overflow(sty, w, h); left+right+bottom+top != 0 {
		t.Errorf("legend inside the figure overflows (%v, %v, %v, %v)", left, right, bottom, top)
	}

	l.heightRatio = 1.2
	if _, _, _, top := l.overflow(sty, w, h); top <= 0 {
		t.Errorf("legend above the figure reports top overflow %v", top)
	}

	var none *figureLegend
	if none.band() != 0 {
		t.Error("nil legend reserves a band")
	}
}

func legendTextStyle(t *testing.T) text.Style {
	t.Helper()
	s := style.Default()
	if err := s.Register(); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return s.TextStyle(8)
}

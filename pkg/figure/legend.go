package figure

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/pubfig/pkg/errors"
)

// Figure legend defaults.
const (
	DefaultLegendHeightRatio = 1.0
	DefaultLegendPlaceholder = 0.3 // inches
	DefaultLabelPerRow       = 8
)

// Legend entry geometry.
var (
	legendThumbWidth = vg.Points(20)
	legendThumbGap   = vg.Points(4)
	legendColumnGap  = vg.Points(10)
)

// LegendOption configures [Figure.EnableFigureLegend].
type LegendOption func(*figureLegend)

// HeightRatio sets the vertical figure fraction the legend's top edge is
// anchored at. Values above 1 place the legend above the figure.
func HeightRatio(r float64) LegendOption {
	return func(l *figureLegend) { l.heightRatio = r }
}

// Placeholder sets the band in inches reserved at the top of the figure.
func Placeholder(inches float64) LegendOption {
	return func(l *figureLegend) { l.placeholder = inches }
}

// LabelPerRow sets the number of legend entries per row.
func LabelPerRow(n int) LegendOption {
	return func(l *figureLegend) { l.perRow = n }
}

// LegendTextSize sets the legend font size in points.
func LegendTextSize(pt float64) LegendOption {
	return func(l *figureLegend) { l.size = pt }
}

type figureLegend struct {
	thumbs      []plot.Thumbnailer
	labels      []string
	heightRatio float64
	placeholder float64
	perRow      int
	size        float64
}

// EnableFigureLegend draws one legend for the whole figure, centered above
// the panels. Entries pair thumbnails (usually the plotters added to the
// panels) with labels; a later call replaces the previous legend.
func (f *Figure) EnableFigureLegend(lines []plot.Thumbnailer, labels []string, opts ...LegendOption) error {
	if len(lines) != len(labels) {
		return errors.New(errors.ErrCodeInvalidInput, "legend has %d lines but %d labels", len(lines), len(labels))
	}
	l := &figureLegend{
		thumbs:      append([]plot.Thumbnailer(nil), lines...),
		labels:      append([]string(nil), labels...),
		heightRatio: DefaultLegendHeightRatio,
		placeholder: DefaultLegendPlaceholder,
		perRow:      DefaultLabelPerRow,
		size:        f.style.SmallSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.perRow < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "labels per row must be at least 1, got %d", l.perRow)
	}
	if l.placeholder < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "legend placeholder must not be negative, got %g", l.placeholder)
	}
	if err := errors.ValidatePositive(errors.ErrCodeInvalidInput, "legend text size", l.size); err != nil {
		return err
	}
	f.legend = l
	f.logger.Debug("figure legend", "entries", len(labels), "per_row", l.perRow, "placeholder_in", l.placeholder)
	return nil
}

// DisableFigureLegend removes the figure legend and its reserved band.
func (f *Figure) DisableFigureLegend() { f.legend = nil }

// band is the height reserved above the panels.
func (l *figureLegend) band() vg.Length {
	if l == nil {
		return 0
	}
	return inches(l.placeholder)
}

// grid returns the number of columns and rows of the legend and the size of
// one cell.
func (l *figureLegend) grid(sty text.Style) (cols, rows int, cellW, cellH vg.Length) {
	n := len(l.labels)
	if n == 0 {
		return 0, 0, 0, 0
	}
	cols = min(l.perRow, n)
	rows = (n + cols - 1) / cols

	var labelW vg.Length
	for _, s := range l.labels {
		labelW = max(labelW, sty.Width(s))
	}
	cellW = legendThumbWidth + legendThumbGap + labelW
	cellH = vg.Length(sty.Font.Size) * 1.4
	for _, s := range l.labels {
		cellH = max(cellH, sty.Height(s))
	}
	return cols, rows, cellW, cellH
}

// bounds returns the legend rectangle relative to a figure of size w x h
// with its origin at the bottom left.
func (l *figureLegend) bounds(sty text.Style, w, h vg.Length) vg.Rectangle {
	cols, rows, cellW, cellH := l.grid(sty)
	if cols == 0 {
		return vg.Rectangle{}
	}
	totalW := vg.Length(cols)*cellW + vg.Length(cols-1)*legendColumnGap
	top := vg.Length(l.heightRatio) * h
	left := w/2 - totalW/2
	return vg.Rectangle{
		Min: vg.Point{X: left, Y: top - vg.Length(rows)*cellH},
		Max: vg.Point{X: left + totalW, Y: top},
	}
}

// overflow returns how far the legend reaches past each side of a w x h
// figure.
func (l *figureLegend) overflow(sty text.Style, w, h vg.Length) (left, right, bottom, top vg.Length) {
	if l == nil || len(l.labels) == 0 {
		return 0, 0, 0, 0
	}
	b := l.bounds(sty, w, h)
	return max(0, -b.Min.X), max(0, b.Max.X-w), max(0, -b.Min.Y), max(0, b.Max.Y-h)
}

// draw renders the legend onto c, whose rectangle is the whole figure.
func (l *figureLegend) draw(c draw.Canvas, sty text.Style) {
	cols, _, cellW, cellH := l.grid(sty)
	if cols == 0 {
		return
	}
	w, h := c.Max.X-c.Min.X, c.Max.Y-c.Min.Y
	b := l.bounds(sty, w, h)
	sty.XAlign = text.XLeft
	sty.YAlign = text.YCenter

	for i, label := range l.labels {
		row, col := i/cols, i%cols
		x := c.Min.X + b.Min.X + vg.Length(col)*(cellW+legendColumnGap)
		y := c.Min.Y + b.Max.Y - (vg.Length(row)+0.5)*cellH

		thumb := draw.Canvas{
			Canvas: c.Canvas,
			Rectangle: vg.Rectangle{
				Min: vg.Point{X: x, Y: y - cellH*0.3},
				Max: vg.Point{X: x + legendThumbWidth, Y: y + cellH*0.3},
			},
		}
		l.thumbs[i].Thumbnail(&thumb)
		c.FillText(sty, vg.Point{X: x + legendThumbWidth + legendThumbGap, Y: y}, label)
	}
}

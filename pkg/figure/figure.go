// Package figure builds publication figures sized to a physical page.
//
// A [Figure] owns a grid of gonum/plot sub-plots. Its physical size is a
// fraction of the printable body of a [page.Page], looked up from a table
// keyed by the grid shape and overridable per axis:
//
//	fig, err := figure.New(2, 2, page.A4())
//	p := fig.At(0, 1)
//	p.Add(line) // draw with gonum/plot directly
//	axes.SetEqualYLim(fig.Row(0))
//	err = fig.Save("figure.svg")
//
// Multi-column figures draw every panel in a square box so that panels look
// uniform whatever their data ranges. Export supports SVG and PNG only; the
// format is picked from the file extension.
package figure

import (
	"io"

	"github.com/charmbracelet/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/pubfig/pkg/errors"
	"github.com/matzehuels/pubfig/pkg/page"
	"github.com/matzehuels/pubfig/pkg/style"
)

// Figure is a grid of sub-plots with a physical size derived from a page.
type Figure struct {
	rows, cols int
	page       *page.Page
	axes       [][]*plot.Plot
	width      vg.Length
	height     vg.Length
	square     bool
	style      style.Style
	legend     *figureLegend
	logger     *log.Logger
}

// Option configures a figure or its sizing.
type Option func(*options)

type options struct {
	rateX  *float64
	rateY  *float64
	style  *style.Style
	logger *log.Logger
}

// RateX sets the fraction of the page body width used by the figure,
// overriding the table default.
func RateX(r float64) Option {
	return func(o *options) { o.rateX = &r }
}

// RateY sets the fraction of the page body height used by the figure,
// overriding the table default.
func RateY(r float64) Option {
	return func(o *options) { o.rateY = &r }
}

// WithStyle styles the figure with s instead of [style.Current].
func WithStyle(s style.Style) Option {
	return func(o *options) { o.style = &s }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New creates a rows x cols figure on pg. A nil page means A4.
func New(rows, cols int, pg *page.Page, opts ...Option) (*Figure, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "figure grid must be at least 1x1, got %dx%d", rows, cols)
	}
	if pg == nil {
		pg = page.A4()
	}
	o := buildOptions(opts)

	f := &Figure{
		rows:   rows,
		cols:   cols,
		page:   pg,
		square: cols > 1,
		style:  style.Current(),
		logger: o.logger,
	}
	if o.style != nil {
		if err := o.style.Validate(); err != nil {
			return nil, err
		}
		f.style = *o.style
	}
	if f.logger == nil {
		f.logger = log.New(io.Discard)
	}
	if err := f.style.Register(); err != nil {
		return nil, err
	}

	f.axes = make([][]*plot.Plot, rows)
	for r := range f.axes {
		f.axes[r] = make([]*plot.Plot, cols)
		for c := range f.axes[r] {
			p := plot.New()
			f.style.ApplyTo(p)
			f.axes[r][c] = p
		}
	}

	if err := f.SetFigureSize(opts...); err != nil {
		return nil, err
	}
	return f, nil
}

// Rows returns the number of panel rows.
func (f *Figure) Rows() int { return f.rows }

// Cols returns the number of panel columns.
func (f *Figure) Cols() int { return f.cols }

// Page returns the page the figure is sized against.
func (f *Figure) Page() *page.Page { return f.page }

// Style returns the style the panels were created with.
func (f *Figure) Style() style.Style { return f.style }

// Square reports whether panels are drawn in square boxes.
func (f *Figure) Square() bool { return f.square }

// At returns the panel in row r and column c, counted from the top left.
// It panics if the indices are out of range, like a slice access.
func (f *Figure) At(r, c int) *plot.Plot { return f.axes[r][c] }

// Axes returns the panel grid indexed [row][col].
func (f *Figure) Axes() [][]*plot.Plot {
	out := make([][]*plot.Plot, f.rows)
	for r := range f.axes {
		out[r] = append([]*plot.Plot(nil), f.axes[r]...)
	}
	return out
}

// Row returns the panels of row r from left to right.
func (f *Figure) Row(r int) []*plot.Plot {
	return append([]*plot.Plot(nil), f.axes[r]...)
}

// Col returns the panels of column c from top to bottom.
func (f *Figure) Col(c int) []*plot.Plot {
	out := make([]*plot.Plot, f.rows)
	for r := range f.axes {
		out[r] = f.axes[r][c]
	}
	return out
}

// Flat returns all panels in row-major order.
func (f *Figure) Flat() []*plot.Plot {
	out := make([]*plot.Plot, 0, f.rows*f.cols)
	for _, row := range f.axes {
		out = append(out, row...)
	}
	return out
}

package figure

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/pubfig/pkg/errors"
)

// DefaultAnnotatePad is the default distance in inches between a corner
// label and the corner of the data area.
const DefaultAnnotatePad = 0.05

// Corner names accepted by [Horizontal] and [Vertical].
const (
	CornerLeft   = "left"
	CornerRight  = "right"
	CornerTop    = "top"
	CornerBottom = "bottom"
)

// AnnotateOption configures [Figure.CornerAnnotate].
type AnnotateOption func(*annotateOptions)

type annotateOptions struct {
	pad        float64
	horizontal string
	vertical   string
	size       font.Length
}

// Pad sets the offset from the corner in inches.
func Pad(inches float64) AnnotateOption {
	return func(o *annotateOptions) { o.pad = inches }
}

// Horizontal selects the horizontal side of the corner.
func Horizontal(side string) AnnotateOption {
	return func(o *annotateOptions) { o.horizontal = side }
}

// Vertical selects the vertical side of the corner.
func Vertical(side string) AnnotateOption {
	return func(o *annotateOptions) { o.vertical = side }
}

// TextSize sets the label font size in points.
func TextSize(pt float64) AnnotateOption {
	return func(o *annotateOptions) { o.size = font.Length(pt) }
}

// CornerLabel is a plotter drawing text at a fixed physical offset from the
// top-left corner of a plot's data area, whatever the data ranges are.
type CornerLabel struct {
	Text      string
	Pad       vg.Length
	TextStyle text.Style
}

// Plot implements plot.Plotter.
func (l CornerLabel) Plot(c draw.Canvas, _ *plot.Plot) {
	sty := l.TextStyle
	sty.XAlign = text.XLeft
	sty.YAlign = text.YTop
	c.FillText(sty, vg.Point{X: c.Min.X + l.Pad, Y: c.Max.Y - l.Pad}, l.Text)
}

// CornerAnnotate labels ax with content in its top-left corner, e.g. "(a)".
// Only the top-left corner is implemented.
func (f *Figure) CornerAnnotate(ax *plot.Plot, content string, opts ...AnnotateOption) error {
	o := annotateOptions{
		pad:        DefaultAnnotatePad,
		horizontal: CornerLeft,
		vertical:   CornerTop,
		size:       font.Length(f.style.MediumSize),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if ax == nil {
		return errors.New(errors.ErrCodeInvalidInput, "corner annotation needs a plot")
	}
	if o.horizontal != CornerLeft || o.vertical != CornerTop {
		return errors.New(errors.ErrCodeUnsupported, "corner annotation at %s/%s is not supported, only %s/%s",
			o.horizontal, o.vertical, CornerLeft, CornerTop)
	}
	if o.pad < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "annotation pad must not be negative, got %g", o.pad)
	}

	ax.Add(CornerLabel{
		Text:      content,
		Pad:       inches(o.pad),
		TextStyle: f.style.TextStyle(float64(o.size)),
	})
	f.logger.Debug("corner annotation", "text", content, "pad_in", o.pad)
	return nil
}

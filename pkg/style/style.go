// Package style holds the process-wide text and layout style of figures.
//
// A [Style] names a serif font family, three font-size tiers (small for tick
// labels and legends, medium for axis labels and titles, bigger for figure
// titles), whether math text is typeset with LaTeX, the tick line width and
// the spacing between sub-plots.
//
// Nothing is changed at import time. The hosting application calls [Apply]
// once at startup; it registers the fonts with gonum/plot and sets the plot
// package defaults, so plots created directly with plot.New inherit the font
// family and math rendering too. Figures created afterwards pick up
// [Current] and restyle each of their panels with [Style.ApplyTo].
package style

import (
	"image/color"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/pubfig/pkg/errors"
	"github.com/matzehuels/pubfig/pkg/fonts"
)

// Default font sizes in points.
const (
	SmallSize  = 8
	MediumSize = 10
	BiggerSize = 12
)

// Style is the text and spacing configuration shared by all figures.
type Style struct {
	// FontFamily is the name the serif faces are registered under.
	FontFamily string `toml:"font_family"`

	// Font sizes in points.
	SmallSize  float64 `toml:"small_size"`
	MediumSize float64 `toml:"medium_size"`
	BiggerSize float64 `toml:"bigger_size"`

	// MathText typesets $...$ spans with the LaTeX text handler.
	MathText bool `toml:"math_text"`

	// TickWidth is the tick line width in points.
	TickWidth float64 `toml:"tick_width"`

	// WidthSpace and HeightSpace are the gaps between sub-plots as a fraction
	// of the average sub-plot width and height.
	WidthSpace  float64 `toml:"width_space"`
	HeightSpace float64 `toml:"height_space"`
}

// Default returns the publication style: Times-metric serif text at
// 8/10/12 pt with LaTeX math.
func Default() Style {
	return Style{
		FontFamily:  fonts.DefaultFamily,
		SmallSize:   SmallSize,
		MediumSize:  MediumSize,
		BiggerSize:  BiggerSize,
		MathText:    true,
		TickWidth:   0.5,
		WidthSpace:  0.25,
		HeightSpace: 0.3,
	}
}

// Validate checks that sizes are positive and spacings non-negative.
func (s Style) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{{"small_size", s.SmallSize}, {"medium_size", s.MediumSize}, {"bigger_size", s.BiggerSize}} {
		if err := errors.ValidatePositive(errors.ErrCodeInvalidStyle, v.name, v.value); err != nil {
			return err
		}
	}
	for _, v := range []struct {
		name  string
		value float64
	}{{"tick_width", s.TickWidth}, {"width_space", s.WidthSpace}, {"height_space", s.HeightSpace}} {
		if !(v.value >= 0) {
			return errors.New(errors.ErrCodeInvalidStyle, "%s must not be negative, got %g", v.name, v.value)
		}
	}
	return nil
}

var (
	current   = Default()
	currentMu sync.RWMutex
)

// Apply validates s, registers its fonts and makes it the process-wide
// style. It sets plot.DefaultFont and plot.DefaultTextHandler.
func Apply(s Style) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := s.Register(); err != nil {
		return err
	}

	currentMu.Lock()
	defer currentMu.Unlock()
	plot.DefaultFont = fonts.Font(s.FontFamily, 0)
	plot.DefaultTextHandler = s.TextHandler()
	current = s
	return nil
}

// Register adds the style's font family to font.DefaultCache so that text
// styles built from s resolve to real faces. [Apply] calls it; figures call
// it for styles passed explicitly.
func (s Style) Register() error {
	coll, err := fonts.Collection(s.FontFamily)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "load fonts for %q", s.FontFamily)
	}
	font.DefaultCache.Add(coll)
	return nil
}

// Current returns the style set by the last successful [Apply], or
// [Default] if Apply was never called.
func Current() Style {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// Reset restores the default style without touching the plot package
// defaults. It is primarily useful for testing.
func Reset() {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = Default()
}

// TextHandler returns the inline math handler when math text is enabled and
// the plain handler otherwise.
func (s Style) TextHandler() text.Handler {
	if s.MathText {
		return MathText{Fonts: font.DefaultCache}
	}
	return text.Plain{Fonts: font.DefaultCache}
}

// Font returns the style's font family at size points.
func (s Style) Font(size float64) font.Font {
	return fonts.Font(s.FontFamily, size)
}

// TextStyle returns a black text style at size points using the style's
// font and text handler.
func (s Style) TextStyle(size float64) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    s.Font(size),
		XAlign:  text.XLeft,
		YAlign:  text.YBottom,
		Handler: s.TextHandler(),
	}
}

// ApplyTo restyles one sub-plot: medium titles and axis labels, small tick
// labels and legend, and the tick line width.
func (s Style) ApplyTo(p *plot.Plot) {
	h := s.TextHandler()
	p.TextHandler = h

	setText := func(ts *text.Style, size float64) {
		ts.Font = s.Font(size)
		ts.Handler = h
	}
	setText(&p.Title.TextStyle, s.MediumSize)
	setText(&p.Legend.TextStyle, s.SmallSize)
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		setText(&ax.Label.TextStyle, s.MediumSize)
		setText(&ax.Tick.Label, s.SmallSize)
		ax.Tick.LineStyle.Width = vg.Points(s.TickWidth)
	}
}

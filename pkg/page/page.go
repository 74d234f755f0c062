// Package page models the physical medium a figure is placed on.
//
// A [Page] has a total size and four margins, all in inches, and derives the
// printable body area from them. Figures are sized as fractions of the body.
// Named presets ([A4], [Letter], [Slide]) mirror the defaults of common word
// processors and slide tools.
package page

import (
	"fmt"
	"strings"

	"github.com/matzehuels/pubfig/pkg/errors"
)

// Margin is the blank space around the body of a page, in inches.
type Margin struct {
	Top    float64 `toml:"top"`
	Bottom float64 `toml:"bottom"`
	Left   float64 `toml:"left"`
	Right  float64 `toml:"right"`
}

// Page is a physical page or slide. All lengths are in inches.
//
// The zero value is not valid; use [New] or one of the presets.
type Page struct {
	name   string
	height float64
	width  float64
	margin Margin
}

// New returns a validated page.
func New(height, width float64, margin Margin) (*Page, error) {
	p := &Page{name: "Page", height: height, width: width, margin: margin}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that the page has a positive size and that the margins are
// non-negative and leave a non-empty body.
func (p *Page) Validate() error {
	if err := errors.ValidatePositive(errors.ErrCodeInvalidPage, "page height", p.height); err != nil {
		return err
	}
	if err := errors.ValidatePositive(errors.ErrCodeInvalidPage, "page width", p.width); err != nil {
		return err
	}
	m := p.margin
	for _, v := range []struct {
		side  string
		value float64
	}{{"top", m.Top}, {"bottom", m.Bottom}, {"left", m.Left}, {"right", m.Right}} {
		if v.value < 0 {
			return errors.New(errors.ErrCodeInvalidPage, "%s margin must not be negative, got %g", v.side, v.value)
		}
	}
	if m.Top+m.Bottom >= p.height {
		return errors.New(errors.ErrCodeInvalidPage,
			"top and bottom margins (%g + %g) must be smaller than the page height %g", m.Top, m.Bottom, p.height)
	}
	if m.Left+m.Right >= p.width {
		return errors.New(errors.ErrCodeInvalidPage,
			"left and right margins (%g + %g) must be smaller than the page width %g", m.Left, m.Right, p.width)
	}
	return nil
}

// Name returns the label used when printing the page.
func (p *Page) Name() string { return p.name }

// Size returns the total page height and width.
func (p *Page) Size() (height, width float64) { return p.height, p.width }

// Margin returns the page margins.
func (p *Page) Margin() Margin { return p.margin }

// BodySize returns the printable height and width inside the margins.
func (p *Page) BodySize() (height, width float64) {
	return p.height - p.margin.Top - p.margin.Bottom, p.width - p.margin.Left - p.margin.Right
}

// SetSize changes the page size. If the new size breaks the margin
// invariants the page keeps its previous size and the error is returned.
func (p *Page) SetSize(height, width float64) error {
	oldH, oldW := p.height, p.width
	p.height, p.width = height, width
	if err := p.Validate(); err != nil {
		p.height, p.width = oldH, oldW
		return err
	}
	return nil
}

// SetMargin changes the margins. Invalid margins are rejected and the
// previous margins are kept.
func (p *Page) SetMargin(m Margin) error {
	old := p.margin
	p.margin = m
	if err := p.Validate(); err != nil {
		p.margin = old
		return err
	}
	return nil
}

// String reports the page size and margins.
func (p *Page) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", p.name)
	fmt.Fprintf(&b, "The size of the page is %.2f * %.2f.\n", p.height, p.width)
	fmt.Fprintf(&b, "The margin is:\n")
	fmt.Fprintf(&b, "    Top:    %.2f\n", p.margin.Top)
	fmt.Fprintf(&b, "    Bottom: %.2f\n", p.margin.Bottom)
	fmt.Fprintf(&b, "    Left:   %.2f\n", p.margin.Left)
	fmt.Fprintf(&b, "    Right:  %.2f\n", p.margin.Right)
	return b.String()
}

// Clone returns an independent copy of p.
func (p *Page) Clone() *Page {
	c := *p
	return &c
}

package figure

import (
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/pubfig/pkg/errors"
	"github.com/matzehuels/pubfig/pkg/page"
)

// rateTable holds the default (width, height) fractions of the page body,
// indexed by [rows-1][cols-1]. Multi-column rows use the full width; the
// height only has to be right for one row because square panels settle the
// rest.
var rateTable = [4][4][2]float64{
	{{0.6, 0.30}, {1.0, 1.00}, {1.0, 1.00}, {1.0, 1.00}},
	{{1.0, 0.55}, {1.0, 0.55}, {1.0, 0.55}, {1.0, 0.55}},
	{{1.0, 1.00}, {1.0, 1.00}, {1.0, 1.00}, {1.0, 1.00}},
	{{1.0, 1.00}, {1.0, 1.00}, {1.0, 1.00}, {1.0, 1.00}},
}

// DefaultRates returns the table rates for a rows x cols grid, or (1, 1)
// for grids larger than 4x4.
func DefaultRates(rows, cols int) (rateX, rateY float64) {
	if rows >= 1 && rows <= 4 && cols >= 1 && cols <= 4 {
		r := rateTable[rows-1][cols-1]
		return r[0], r[1]
	}
	return 1, 1
}

// Rates resolves the width and height rates: table defaults overridden by
// any [RateX] or [RateY] option.
func (f *Figure) Rates(opts ...Option) (rateX, rateY float64) {
	rateX, rateY = DefaultRates(f.rows, f.cols)
	o := buildOptions(opts)
	if o.rateX != nil {
		rateX = *o.rateX
	}
	if o.rateY != nil {
		rateY = *o.rateY
	}
	return rateX, rateY
}

// ProperSize returns the figure size for the current page: the page body
// width and height scaled by the resolved rates.
func (f *Figure) ProperSize(opts ...Option) (width, height vg.Length, err error) {
	rateX, rateY := f.Rates(opts...)
	if err := errors.ValidatePositive(errors.ErrCodeInvalidInput, "width rate", rateX); err != nil {
		return 0, 0, err
	}
	if err := errors.ValidatePositive(errors.ErrCodeInvalidInput, "height rate", rateY); err != nil {
		return 0, 0, err
	}
	bodyH, bodyW := f.page.BodySize()
	return inches(bodyW * rateX), inches(bodyH * rateY), nil
}

// SetFigureSize recomputes the proper size and applies it.
func (f *Figure) SetFigureSize(opts ...Option) error {
	w, h, err := f.ProperSize(opts...)
	if err != nil {
		return err
	}
	f.width, f.height = w, h
	f.logger.Debug("figure size",
		"grid", gridName(f.rows, f.cols), "page", f.page.Name(),
		"width_in", toInches(w), "height_in", toInches(h))
	return nil
}

// Size returns the configured figure size.
func (f *Figure) Size() (width, height vg.Length) { return f.width, f.height }

// SizeInches returns the configured figure size in inches.
func (f *Figure) SizeInches() (width, height float64) {
	return toInches(f.width), toInches(f.height)
}

// ChangePage sizes the figure for a new page using the default rates.
// Rates given earlier are not kept.
func (f *Figure) ChangePage(pg *page.Page) error {
	if pg == nil {
		return errors.New(errors.ErrCodeInvalidInput, "page must not be nil")
	}
	old := f.page
	f.page = pg
	if err := f.SetFigureSize(); err != nil {
		f.page = old
		return err
	}
	return nil
}

// StretchHeight multiplies the figure height by ratio.
func (f *Figure) StretchHeight(ratio float64) {
	f.height = vg.Length(float64(f.height) * ratio)
}

// StretchWidth multiplies the figure width by ratio.
func (f *Figure) StretchWidth(ratio float64) {
	f.width = vg.Length(float64(f.width) * ratio)
}

func inches(v float64) vg.Length { return vg.Length(v) * vg.Inch }

func toInches(l vg.Length) float64 { return float64(l / vg.Inch) }

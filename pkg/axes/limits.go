package axes

import (
	"math"

	"gonum.org/v1/plot"

	"github.com/matzehuels/pubfig/pkg/errors"
)

// Directions accepted by [MoreSpace].
const (
	Left   = "left"
	Right  = "right"
	Top    = "top"
	Bottom = "bottom"
)

// DefaultSpaceRatio is the fraction of the range added by [MoreSpace].
const DefaultSpaceRatio = 0.1

// MoreSpace extends one limit of ax by ratio times the current range on that
// axis, leaving the opposite limit untouched. It is typically used to make
// room for a corner label or an in-panel legend.
func MoreSpace(ax *plot.Plot, direction string, ratio float64) error {
	dx := ratio * (ax.X.Max - ax.X.Min)
	dy := ratio * (ax.Y.Max - ax.Y.Min)
	switch direction {
	case Left:
		ax.X.Min -= dx
	case Right:
		ax.X.Max += dx
	case Top:
		ax.Y.Max += dy
	case Bottom:
		ax.Y.Min -= dy
	default:
		return errors.ValidateOneOf(errors.ErrCodeInvalidDirection, "direction", direction,
			[]string{Left, Right, Top, Bottom})
	}
	return nil
}

// SetEqualYLim gives every panel of a row the Y limits of the first panel
// and hides the Y axis of all but the first, so the row shares one labelled
// Y axis.
func SetEqualYLim(row []*plot.Plot) {
	if len(row) < 2 {
		return
	}
	ref := row[0]
	for _, ax := range row[1:] {
		ax.Y.Min, ax.Y.Max = ref.Y.Min, ref.Y.Max
		hideAxis(&ax.Y)
	}
}

// SetEqualXLim gives every panel of a column the X limits of the last
// (bottom) panel and hides the X axis of all but the last.
func SetEqualXLim(col []*plot.Plot) {
	if len(col) < 2 {
		return
	}
	ref := col[len(col)-1]
	for _, ax := range col[:len(col)-1] {
		ax.X.Min, ax.X.Max = ref.X.Min, ref.X.Max
		hideAxis(&ax.X)
	}
}

// UnifyYLim sets the Y limits of every panel to the union of their limits.
// Axes stay visible.
func UnifyYLim(axs ...*plot.Plot) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, ax := range axs {
		lo, hi = math.Min(lo, ax.Y.Min), math.Max(hi, ax.Y.Max)
	}
	for _, ax := range axs {
		ax.Y.Min, ax.Y.Max = lo, hi
	}
}

// UnifyXLim sets the X limits of every panel to the union of their limits.
func UnifyXLim(axs ...*plot.Plot) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, ax := range axs {
		lo, hi = math.Min(lo, ax.X.Min), math.Max(hi, ax.X.Max)
	}
	for _, ax := range axs {
		ax.X.Min, ax.X.Max = lo, hi
	}
}

// IsHidden reports whether a was hidden by [SetEqualYLim] or [SetEqualXLim].
func IsHidden(a *plot.Axis) bool {
	if a.Tick.Length != 0 || a.LineStyle.Width != 0 || a.Label.Text != "" {
		return false
	}
	return a.Tick.Marker != nil && len(a.Tick.Marker.Ticks(a.Min, a.Max)) == 0
}

func hideAxis(a *plot.Axis) {
	a.Label.Text = ""
	a.Tick.Length = 0
	a.LineStyle.Width = 0
	a.Tick.Marker = plot.ConstantTicks([]plot.Tick{})
}

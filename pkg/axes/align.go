package axes

import (
	"gonum.org/v1/plot"

	"github.com/matzehuels/pubfig/pkg/errors"
)

// DefaultAlignThreshold is the fraction of the last tick interval below
// which [TicksAlignLimitsX] and [TicksAlignLimitsY] snap down.
const DefaultAlignThreshold = 0.1

// TicksAlignLimitsX snaps the upper X limit of ax to a major gridline.
//
// With t1 the last major tick and t2 the one before it, the limit must lie
// in (t2, t1]. If it covers less than threshold of that interval the limit
// drops to t2, hiding the sliver past the gridline; otherwise it rises to t1.
// When the ticker stops inside the axis range, t1 is extrapolated one tick
// step past the last tick.
//
// Call it last, after every other limit and tick adjustment. The lower
// limit is left untouched and is assumed to sit on a gridline already.
func TicksAlignLimitsX(ax *plot.Plot, threshold float64) error {
	return alignUpper("x", &ax.X, threshold)
}

// TicksAlignLimitsY snaps the upper Y limit of ax to a major gridline.
// See [TicksAlignLimitsX].
func TicksAlignLimitsY(ax *plot.Plot, threshold float64) error {
	return alignUpper("y", &ax.Y, threshold)
}

func alignUpper(name string, a *plot.Axis, threshold float64) error {
	marker := a.Tick.Marker
	if marker == nil {
		marker = plot.DefaultTicks{}
	}
	ticks := majorValues(marker.Ticks(a.Min, a.Max))
	if len(ticks) < 2 {
		return errors.New(errors.ErrCodePrecondition,
			"%s axis needs at least two major ticks to align its limit, got %d", name, len(ticks))
	}
	n := len(ticks)
	if last := ticks[n-1]; last < a.Max {
		ticks = append(ticks, last+(last-ticks[n-2]))
		n++
	}
	t1, t2 := ticks[n-1], ticks[n-2]
	if !(t2 < a.Max && a.Max <= t1) {
		return errors.New(errors.ErrCodePrecondition,
			"%s axis limit %g is not within the last tick interval (%g, %g]", name, a.Max, t2, t1)
	}
	if (a.Max-t2)/(t1-t2) < threshold {
		a.Max = t2
	} else {
		a.Max = t1
	}
	return nil
}

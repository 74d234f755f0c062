// Package axes provides helpers that operate on one or more sub-plot handles.
//
// The helpers work on *plot.Plot values from gonum/plot, so they apply equally
// to panels owned by a figure and to plots created directly with plot.New.
// They cover tick control ([MaxTicks], [MinorTicks]), limit propagation
// across rows and columns of a grid, padding and snapping the upper limit to
// a major gridline.
package axes

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/plot"

	"github.com/matzehuels/pubfig/pkg/errors"
)

// niceSteps are the mantissas tried, in order, for the major tick step.
var niceSteps = []float64{1, 2, 2.5, 5, 10}

// MaxTicks places at most N major ticks at "nice" multiples of
// 1, 2, 2.5 or 5 times a power of ten.
type MaxTicks struct {
	N int
}

var _ plot.Ticker = MaxTicks{}

// Ticks implements plot.Ticker.
func (t MaxTicks) Ticks(min, max float64) []plot.Tick {
	n := t.N
	if n < 1 {
		n = 1
	}
	if !(max > min) {
		if math.IsNaN(min) || math.IsInf(min, 0) {
			return nil
		}
		return []plot.Tick{{Value: min, Label: formatTick(min, 0)}}
	}

	want := 2
	if n < 2 {
		want = 1
	}
	intervals := n - 1
	if intervals < 1 {
		intervals = 1
	}
	raw := (max - min) / float64(intervals)
	steps := candidateSteps(raw)

	// The sparsest step of at least raw that fits is preferred, unless it
	// leaves fewer than two ticks (one when N is 1) inside the range.
	chosen := len(steps) - 1
	for i, step := range steps {
		if step < raw*(1-1e-9) {
			continue
		}
		if first, count := fitTicks(min, max, step); count <= n {
			if count >= want {
				return stepTicks(first, step, count)
			}
			chosen = i
			break
		}
	}
	for i := chosen - 1; i >= 0; i-- {
		if first, count := fitTicks(min, max, steps[i]); count >= want && count <= n {
			return stepTicks(first, steps[i], count)
		}
	}
	for i := chosen; i >= 0; i-- {
		if first, count := fitTicks(min, max, steps[i]); count >= 1 {
			if count > n {
				count = n
			}
			return stepTicks(first, steps[i], count)
		}
	}
	return nil
}

// candidateSteps lists nice steps in increasing order from two decades
// below raw to a few decades above it.
func candidateSteps(raw float64) []float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	var steps []float64
	for d := -2; d <= 4; d++ {
		for _, m := range niceSteps[:len(niceSteps)-1] {
			steps = append(steps, m*mag*math.Pow10(d))
		}
	}
	return steps
}

// fitTicks returns the first multiple of step at or above min and how many
// multiples lie in [min, max].
func fitTicks(min, max, step float64) (first float64, count int) {
	first = math.Ceil(min/step-1e-9) * step
	return first, int(math.Floor((max-first)/step+1e-9)) + 1
}

func stepTicks(first, step float64, count int) []plot.Tick {
	prec := precision(step)
	ticks := make([]plot.Tick, 0, count)
	for i := 0; i < count; i++ {
		v := first + float64(i)*step
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: formatTick(v, prec)})
	}
	return ticks
}

// precision returns the number of decimals needed to print multiples of step.
func precision(step float64) int {
	p := 0
	for s := step; p < 15 && math.Abs(s-math.Round(s)) > 1e-9*math.Max(1, math.Abs(s)); s *= 10 {
		p++
	}
	return p
}

func formatTick(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// MinorTicks adds N evenly spaced unlabelled ticks between each pair of
// major ticks produced by Major. Minor ticks in the partial intervals below
// the first and above the last major tick use the same spacing.
type MinorTicks struct {
	Major plot.Ticker
	N     int
}

var _ plot.Ticker = MinorTicks{}

// Ticks implements plot.Ticker.
func (t MinorTicks) Ticks(min, max float64) []plot.Tick {
	major := t.major()
	var ticks []plot.Tick
	for _, tk := range major.Ticks(min, max) {
		if !tk.IsMinor() {
			ticks = append(ticks, tk)
		}
	}
	if t.N < 1 || len(ticks) < 2 {
		return ticks
	}
	values := majorValues(ticks)
	last := values[len(values)-1]
	lowStep := (values[1] - values[0]) / float64(t.N+1)
	highStep := (last - values[len(values)-2]) / float64(t.N+1)
	if !(lowStep > 0 && highStep > 0) {
		return ticks
	}

	out := append([]plot.Tick(nil), ticks...)
	addMinor := func(v float64) {
		if v >= min && v <= max {
			out = append(out, plot.Tick{Value: v})
		}
	}
	for k := 1; values[0]-float64(k)*lowStep >= min; k++ {
		addMinor(values[0] - float64(k)*lowStep)
	}
	for i := 0; i+1 < len(values); i++ {
		s := (values[i+1] - values[i]) / float64(t.N+1)
		for k := 1; k <= t.N; k++ {
			addMinor(values[i] + float64(k)*s)
		}
	}
	for k := 1; last+float64(k)*highStep <= max; k++ {
		addMinor(last + float64(k)*highStep)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

func (t MinorTicks) major() plot.Ticker {
	if t.Major == nil {
		return plot.DefaultTicks{}
	}
	return t.Major
}

// majorValues returns the sorted values of the labelled ticks.
func majorValues(ticks []plot.Tick) []float64 {
	var vs []float64
	for _, tk := range ticks {
		if !tk.IsMinor() {
			vs = append(vs, tk.Value)
		}
	}
	sort.Float64s(vs)
	return vs
}

// EnableMinorLocator adds n minor ticks between each pair of major ticks on
// both axes of ax. Calling it again replaces n.
func EnableMinorLocator(ax *plot.Plot, n int) error {
	if n < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "minor tick count must be at least 1, got %d", n)
	}
	for _, a := range []*plot.Axis{&ax.X, &ax.Y} {
		a.Tick.Marker = MinorTicks{Major: majorOf(a.Tick.Marker), N: n}
	}
	return nil
}

// SetTickNumberX limits the X axis of ax to at most n major ticks.
func SetTickNumberX(ax *plot.Plot, n int) error {
	return setTickNumber(&ax.X, n)
}

// SetTickNumberY limits the Y axis of ax to at most n major ticks.
func SetTickNumberY(ax *plot.Plot, n int) error {
	return setTickNumber(&ax.Y, n)
}

func setTickNumber(a *plot.Axis, n int) error {
	if n < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "tick number must be at least 1, got %d", n)
	}
	if m, ok := a.Tick.Marker.(MinorTicks); ok {
		m.Major = MaxTicks{N: n}
		a.Tick.Marker = m
		return nil
	}
	a.Tick.Marker = MaxTicks{N: n}
	return nil
}

// majorOf unwraps a MinorTicks so that minor locators never nest.
func majorOf(t plot.Ticker) plot.Ticker {
	if m, ok := t.(MinorTicks); ok {
		return m.major()
	}
	if t == nil {
		return plot.DefaultTicks{}
	}
	return t
}

package style

import (
	"image/color"
	"strconv"

	"github.com/matzehuels/pubfig/pkg/errors"
)

// palette is the ten-color qualitative cycle used for lines and markers.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

var paletteRGBA = mustParseHexes(palette)

// Palette returns the default color cycle as hex strings.
func Palette() []string {
	return append([]string(nil), palette...)
}

// DefaultColors returns the default color cycle.
func DefaultColors() []color.Color {
	out := make([]color.Color, len(paletteRGBA))
	for i, c := range paletteRGBA {
		out[i] = c
	}
	return out
}

// DefaultRGB returns the default color cycle as RGB triples in [0, 1].
func DefaultRGB() [][3]float64 {
	out := make([][3]float64, len(paletteRGBA))
	for i, c := range paletteRGBA {
		out[i] = [3]float64{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
	}
	return out
}

// Color returns the i-th color of the cycle, wrapping around.
func Color(i int) color.Color {
	n := len(paletteRGBA)
	return paletteRGBA[((i%n)+n)%n]
}

// ParseHex parses an opaque "#rrggbb" color.
func ParseHex(h string) (color.RGBA, error) {
	if len(h) != 7 || h[0] != '#' {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidInput, "color %q is not of the form #rrggbb", h)
	}
	v, err := strconv.ParseUint(h[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse color %q", h)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func mustParseHexes(hs []string) []color.RGBA {
	out := make([]color.RGBA, len(hs))
	for i, h := range hs {
		c, err := ParseHex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}

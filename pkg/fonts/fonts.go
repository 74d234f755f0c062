// Package fonts provides the serif font faces used for figure text.
//
// The faces are Liberation Serif, which is metric-compatible with Times New
// Roman, embedded through github.com/go-fonts/liberation so that rendering
// does not depend on fonts installed on the host. They are registered under
// whatever family name the style asks for, so a figure styled with
// "Times New Roman" lays out text with Times metrics on every machine.
package fonts

import (
	"fmt"
	"sync"

	"github.com/go-fonts/liberation/liberationserifbold"
	"github.com/go-fonts/liberation/liberationserifbolditalic"
	"github.com/go-fonts/liberation/liberationserifitalic"
	"github.com/go-fonts/liberation/liberationserifregular"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot/font"
)

// Variant is the font variant under which the serif faces are registered.
const Variant font.Variant = "Serif"

// DefaultFamily is the family name used when none is configured.
const DefaultFamily = "Times New Roman"

type face struct {
	style  xfont.Style
	weight xfont.Weight
	ttf    []byte
}

var serifFaces = []face{
	{xfont.StyleNormal, xfont.WeightNormal, liberationserifregular.TTF},
	{xfont.StyleNormal, xfont.WeightBold, liberationserifbold.TTF},
	{xfont.StyleItalic, xfont.WeightNormal, liberationserifitalic.TTF},
	{xfont.StyleItalic, xfont.WeightBold, liberationserifbolditalic.TTF},
}

// Parsed faces are shared by every collection (parsed once on first access).
var (
	parsed    []*opentype.Font
	parseErr  error
	parseOnce sync.Once
)

func parse() ([]*opentype.Font, error) {
	parseOnce.Do(func() {
		parsed = make([]*opentype.Font, len(serifFaces))
		for i, f := range serifFaces {
			fnt, err := opentype.Parse(f.ttf)
			if err != nil {
				parseErr = fmt.Errorf("parse serif face %d: %w", i, err)
				return
			}
			parsed[i] = fnt
		}
	})
	return parsed, parseErr
}

// Collection returns the serif faces registered under the given family.
// An empty family means [DefaultFamily].
func Collection(family string) (font.Collection, error) {
	if family == "" {
		family = DefaultFamily
	}
	fnts, err := parse()
	if err != nil {
		return nil, err
	}
	coll := make(font.Collection, 0, len(serifFaces))
	for i, f := range serifFaces {
		coll = append(coll, font.Face{
			Font: font.Font{
				Typeface: font.Typeface(family),
				Variant:  Variant,
				Style:    f.style,
				Weight:   f.weight,
			},
			Face: fnts[i],
		})
	}
	return coll, nil
}

// Font returns the regular face of family at the given size in points.
func Font(family string, size float64) font.Font {
	if family == "" {
		family = DefaultFamily
	}
	return font.Font{
		Typeface: font.Typeface(family),
		Variant:  Variant,
		Size:     font.Points(size),
	}
}

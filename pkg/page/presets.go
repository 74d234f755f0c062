package page

import (
	"strings"

	"github.com/matzehuels/pubfig/pkg/errors"
)

// Slide aspect ratios accepted by [Slide].
const (
	Aspect4x3  = "4:3"
	Aspect16x9 = "16:9"
)

// wordMargin is the default margin of a word processor page.
var wordMargin = Margin{Top: 1, Bottom: 1, Left: 1.25, Right: 1.25}

// A4 returns an A4 page (11.69 x 8.27 in) with word processor margins.
func A4() *Page {
	return &Page{name: "Page A4", height: 11.69, width: 8.27, margin: wordMargin}
}

// Letter returns a US Letter page (11 x 8.5 in) with word processor margins.
func Letter() *Page {
	return &Page{name: "Page Letter", height: 11, width: 8.5, margin: wordMargin}
}

// Slide returns a margin-free presentation slide for the given aspect ratio,
// either [Aspect4x3] (7.5 x 10 in) or [Aspect16x9] (7.5 x 13.33 in).
func Slide(aspect string) (*Page, error) {
	p := &Page{name: "Page for slides"}
	switch aspect {
	case Aspect4x3:
		p.height, p.width = 7.5, 10
	case Aspect16x9:
		p.height, p.width = 7.5, 13.33
	default:
		return nil, errors.New(errors.ErrCodeInvalidPage, "invalid slide aspect ratio %q (want %s or %s)", aspect, Aspect4x3, Aspect16x9)
	}
	return p, nil
}

// Presets lists the names accepted by [Lookup].
func Presets() []string {
	return []string{"a4", "letter", "slide", "slide-4:3", "slide-16:9"}
}

// Lookup returns a fresh preset page by case-insensitive name.
// "slide" is the 4:3 slide.
func Lookup(name string) (*Page, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "a4":
		return A4(), nil
	case "letter":
		return Letter(), nil
	case "slide", "slide-4:3":
		return Slide(Aspect4x3)
	case "slide-16:9":
		return Slide(Aspect16x9)
	default:
		return nil, errors.New(errors.ErrCodeInvalidPage, "unknown page %q (want one of %s)", name, strings.Join(Presets(), ", "))
	}
}

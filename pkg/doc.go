// Package pkg provides the libraries behind pubfig, a policy layer over
// gonum/plot for publication figures sized to a physical page.
//
// # Overview
//
// The pkg directory is organized by concern:
//
//  1. [page] - Page model, margins, printable body and presets
//  2. [style] - Process-wide fonts, size tiers, LaTeX math and spacing
//  3. [figure] - Grids of sub-plots sized to a page, corner labels,
//     figure legends and SVG/PNG export
//  4. [axes] - Tickers, shared limits and tick-to-limit snapping
//  5. [units] - Math-typeset unit strings for axis labels
//
// Supporting packages: [errors] (coded errors), [fonts] (serif faces),
// [observability] (render hooks) and [buildinfo].
//
// # Data Flow
//
//	style.Apply (once, at startup)
//	         ↓
//	figure.New(rows, cols, page)   sizes the figure from the page body
//	         ↓
//	fig.At(r, c).Add(...)          draw with gonum/plot directly
//	         ↓
//	axes.* / fig.CornerAnnotate    adjust limits, ticks and labels
//	         ↓
//	fig.Save("figure.svg")         SVG or PNG
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/pubfig/pkg/axes"
//	    "github.com/matzehuels/pubfig/pkg/figure"
//	    "github.com/matzehuels/pubfig/pkg/page"
//	    "github.com/matzehuels/pubfig/pkg/style"
//	)
//
//	if err := style.Apply(style.Default()); err != nil {
//	    return err
//	}
//	fig, err := figure.New(1, 3, page.A4())
//	if err != nil {
//	    return err
//	}
//	for _, p := range fig.Flat() {
//	    p.Add(line)
//	}
//	axes.SetEqualYLim(fig.Row(0))
//	return fig.Save("figure.png", figure.WithDPI(600))
package pkg

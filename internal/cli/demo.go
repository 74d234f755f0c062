package cli

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/pubfig/pkg/axes"
	"github.com/matzehuels/pubfig/pkg/errors"
	"github.com/matzehuels/pubfig/pkg/figure"
	"github.com/matzehuels/pubfig/pkg/style"
	"github.com/matzehuels/pubfig/pkg/units"
)

const (
	demoPoints   = 200
	demoDuration = 48.0 // hours
)

// demoOpts holds the command-line flags for the demo command.
type demoOpts struct {
	layoutOpts
	output string
	legend bool
	dpi    int
	bbox   string
	minor  int
}

// demoCommand creates the demo command rendering a synthetic figure.
func (c *CLI) demoCommand() *cobra.Command {
	opts := demoOpts{
		layoutOpts: layoutOpts{rows: 2, cols: 2},
		output:     "demo.svg",
		dpi:        figure.DefaultDPI,
		bbox:       figure.BBoxTight.String(),
		minor:      1,
	}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render a synthetic multi-panel figure",
		Long: `Render a figure of synthetic hydrographs to SVG or PNG.

Each panel gets an observed and a simulated curve, unit-typeset axis labels,
minor ticks and a corner label. Panels in a row share Y limits and panels in
a column share X limits, so inner axes are hidden.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDemo(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file (.svg or .png)")
	cmd.Flags().IntVarP(&opts.rows, "rows", "r", opts.rows, "number of panel rows")
	cmd.Flags().IntVarP(&opts.cols, "cols", "c", opts.cols, "number of panel columns")
	cmd.Flags().StringVarP(&opts.page, "page", "p", "", "page preset (default: config page or a4)")
	cmd.Flags().Float64Var(&opts.rateX, "rate-x", 0, "fraction of the body width (default: table)")
	cmd.Flags().Float64Var(&opts.rateY, "rate-y", 0, "fraction of the body height (default: table)")
	cmd.Flags().BoolVar(&opts.legend, "legend", false, "draw a figure legend above the panels")
	cmd.Flags().IntVar(&opts.dpi, "dpi", opts.dpi, "PNG resolution")
	cmd.Flags().StringVar(&opts.bbox, "bbox", opts.bbox, "canvas sizing: tight, standard")
	cmd.Flags().IntVar(&opts.minor, "minor", opts.minor, "minor ticks between major ticks (0 disables)")

	return cmd
}

func parseBBox(s string) (figure.BBox, error) {
	bboxes := []figure.BBox{figure.BBoxTight, figure.BBoxStandard}
	names := make([]string, len(bboxes))
	for i, b := range bboxes {
		if b.String() == s {
			return b, nil
		}
		names[i] = b.String()
	}
	return 0, errors.ValidateOneOf(errors.ErrCodeInvalidInput, "bbox", s, names)
}

func (c *CLI) runDemo(cmd *cobra.Command, opts demoOpts) error {
	logger := loggerFromContext(cmd.Context())
	w := cmd.OutOrStdout()

	bbox, err := parseBBox(opts.bbox)
	if err != nil {
		return err
	}
	pg, err := c.resolvePage(opts.page)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	figOpts := append(opts.figureOptions(), figure.WithLogger(logger), figure.WithStyle(style.Current()))
	fig, err := figure.New(opts.rows, opts.cols, pg, figOpts...)
	if err != nil {
		return err
	}
	lines, labels, err := buildDemo(fig, opts.minor, logger)
	if err != nil {
		return err
	}
	if opts.legend {
		if err := fig.EnableFigureLegend(lines, labels); err != nil {
			return err
		}
	}

	if err := fig.Save(opts.output, figure.WithBBox(bbox), figure.WithDPI(opts.dpi)); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %dx%d figure", fig.Rows(), fig.Cols()))

	fw, fh := fig.SizeInches()
	printSuccess(w, "Figure %dx%d on %s", fig.Rows(), fig.Cols(), pg.Name())
	printInches(w, "figure", fh, fw)
	printFile(w, opts.output)
	if bbox == figure.BBoxTight {
		printInfo(w, "tight bbox: the file includes the pad and any legend overflow")
	}
	return nil
}

// buildDemo fills every panel with synthetic curves and returns the legend
// entries of the first panel.
func buildDemo(fig *figure.Figure, minor int, logger *log.Logger) ([]plot.Thumbnailer, []string, error) {
	xLabel, err := units.Time(units.Hour)
	if err != nil {
		return nil, nil, err
	}
	yLabel, err := units.Discharge(units.Meter, units.Second)
	if err != nil {
		return nil, nil, err
	}

	var (
		legendLines  []plot.Thumbnailer
		legendLabels []string
	)
	for i, p := range fig.Flat() {
		observed, simulated, err := hydrographs(i)
		if err != nil {
			return nil, nil, err
		}
		p.Add(observed, simulated)
		p.X.Label.Text = "Time (" + xLabel + ")"
		p.Y.Label.Text = "Discharge (" + yLabel + ")"

		if err := axes.SetTickNumberX(p, 5); err != nil {
			return nil, nil, err
		}
		if err := axes.SetTickNumberY(p, 5); err != nil {
			return nil, nil, err
		}
		if minor > 0 {
			if err := axes.EnableMinorLocator(p, minor); err != nil {
				return nil, nil, err
			}
		}
		if err := axes.MoreSpace(p, axes.Top, axes.DefaultSpaceRatio); err != nil {
			return nil, nil, err
		}
		if err := fig.CornerAnnotate(p, panelLabel(i)); err != nil {
			return nil, nil, err
		}
		if i == 0 {
			legendLines = []plot.Thumbnailer{observed, simulated}
			legendLabels = []string{"Observed", "Simulated"}
		}
	}

	if err := shareLimits(fig, logger); err != nil {
		return nil, nil, err
	}
	return legendLines, legendLabels, nil
}

// shareLimits gives the panels of each row common Y limits and those of
// each column common X limits, hiding the inner axes. The shared Y limit is
// snapped to a gridline last; hidden axes have no ticks, so each row aligns
// its labelled panel and hands the limits on.
func shareLimits(fig *figure.Figure, logger *log.Logger) error {
	if fig.Cols() > 1 {
		for r := range fig.Rows() {
			axes.UnifyYLim(fig.Row(r)...)
			axes.SetEqualYLim(fig.Row(r))
		}
	}
	if fig.Rows() > 1 {
		for c := range fig.Cols() {
			axes.SetEqualXLim(fig.Col(c))
		}
	}
	for r := range fig.Rows() {
		row := fig.Row(r)
		if err := axes.TicksAlignLimitsY(row[0], axes.DefaultAlignThreshold); err != nil {
			return err
		}
		axes.SetEqualYLim(row)
		logger.Debug("aligned y limit", "row", r, "max", row[0].Y.Max)
	}
	return nil
}

// hydrographs returns a pair of storm response curves for panel i: a
// recession with a diurnal ripple and a smoother, lagged simulation of it.
func hydrographs(i int) (observed, simulated *plotter.Line, err error) {
	peak := 20 + 15*float64(i%3)
	tau := 6 + 2*float64(i)
	obs := make(plotter.XYs, demoPoints)
	sim := make(plotter.XYs, demoPoints)
	for k := range obs {
		t := demoDuration * float64(k) / float64(demoPoints-1)
		rise := 1 - math.Exp(-t/2)
		obs[k].X, obs[k].Y = t, peak*rise*math.Exp(-t/tau)*(1+0.08*math.Sin(2*math.Pi*t/24))
		lag := math.Max(t-1, 0)
		sim[k].X, sim[k].Y = t, 0.95*peak*(1-math.Exp(-lag/2))*math.Exp(-lag/(tau*1.1))
	}

	if observed, err = plotter.NewLine(obs); err != nil {
		return nil, nil, err
	}
	if simulated, err = plotter.NewLine(sim); err != nil {
		return nil, nil, err
	}
	observed.Color = style.Color(0)
	observed.Width = vg.Points(1)
	simulated.Color = style.Color(1)
	simulated.Width = vg.Points(1)
	simulated.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
	return observed, simulated, nil
}

// panelLabel returns "(a)", "(b)", ... "(z)", "(aa)", ...
func panelLabel(i int) string {
	s := ""
	for i++; i > 0; i = (i - 1) / 26 {
		s = string(rune('a'+(i-1)%26)) + s
	}
	return "(" + s + ")"
}

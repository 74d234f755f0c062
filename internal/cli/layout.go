package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pubfig/pkg/figure"
	"github.com/matzehuels/pubfig/pkg/style"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	rows, cols   int
	page         string
	rateX, rateY float64
}

// figureOptions turns rate flags into figure options; a rate of zero keeps
// the table default.
func (o layoutOpts) figureOptions() []figure.Option {
	var opts []figure.Option
	if o.rateX != 0 {
		opts = append(opts, figure.RateX(o.rateX))
	}
	if o.rateY != 0 {
		opts = append(opts, figure.RateY(o.rateY))
	}
	return opts
}

// layoutCommand creates the layout command reporting figure geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{rows: 1, cols: 1}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the physical size of a figure grid",
		Long: `Compute the physical size of a rows x cols figure on a page.

The width and height are fractions of the page's printable body taken from a
table keyed by the grid shape; --rate-x and --rate-y override them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.rows, "rows", "r", opts.rows, "number of panel rows")
	cmd.Flags().IntVarP(&opts.cols, "cols", "c", opts.cols, "number of panel columns")
	cmd.Flags().StringVarP(&opts.page, "page", "p", "", "page preset (default: config page or a4)")
	cmd.Flags().Float64Var(&opts.rateX, "rate-x", 0, "fraction of the body width (default: table)")
	cmd.Flags().Float64Var(&opts.rateY, "rate-y", 0, "fraction of the body height (default: table)")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, opts layoutOpts) error {
	logger := loggerFromContext(cmd.Context())

	pg, err := c.resolvePage(opts.page)
	if err != nil {
		return err
	}
	figOpts := append(opts.figureOptions(), figure.WithLogger(logger), figure.WithStyle(style.Current()))
	fig, err := figure.New(opts.rows, opts.cols, pg, figOpts...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	rateX, rateY := fig.Rates(opts.figureOptions()...)
	fw, fh := fig.SizeInches()
	bh, bw := pg.BodySize()

	printTitle(w, fmt.Sprintf("%dx%d figure on %s", fig.Rows(), fig.Cols(), pg.Name()))
	printInches(w, "body", bh, bw)
	printKeyValue(w, "rates", fmt.Sprintf("width %.2f  height %.2f", rateX, rateY))
	printInches(w, "figure", fh, fw)
	if fig.Square() {
		printDetail(w, "panels are drawn in square boxes")
	}
	return nil
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pubfig/pkg/page"
)

// pagesCommand creates the pages command listing page presets.
func (c *CLI) pagesCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "pages [name]",
		Short: "Show page presets and their printable body",
		Long: `Show page presets with their size, margins and printable body in inches.

Without an argument every preset is listed. Accepted names: ` + strings.Join(page.Presets(), ", ") + `.
The special name "config" shows the page from the --config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := page.Presets()
			if len(args) == 1 {
				names = args
			}
			w := cmd.OutOrStdout()
			for i, name := range names {
				p, err := c.lookupPage(name)
				if err != nil {
					return err
				}
				if i > 0 {
					printNewline(w)
				}
				if raw {
					fmt.Fprint(w, p.String())
					continue
				}
				printPage(w, name, p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the plain page report")
	return cmd
}

func (c *CLI) lookupPage(name string) (*page.Page, error) {
	if name == "config" {
		return c.activeConfig().Page.Resolve()
	}
	return page.Lookup(name)
}

func printPage(w io.Writer, name string, p *page.Page) {
	printTitle(w, name+" "+StyleDim.Render("("+p.Name()+")"))
	h, wd := p.Size()
	printInches(w, "size", h, wd)
	m := p.Margin()
	printDetail(w, "margin top %.2f  bottom %.2f  left %.2f  right %.2f", m.Top, m.Bottom, m.Left, m.Right)
	bh, bw := p.BodySize()
	printInches(w, "body", bh, bw)
}

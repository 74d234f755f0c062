package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pubfig/pkg/errors"
	"github.com/matzehuels/pubfig/pkg/units"
)

// unitKinds maps unit kinds to their converter and number of arguments.
var unitKinds = map[string]struct {
	args    int
	convert func(args []string) (string, error)
}{
	"length":    {1, func(a []string) (string, error) { return units.Length(a[0]) }},
	"time":      {1, func(a []string) (string, error) { return units.Time(a[0]) }},
	"mass":      {1, func(a []string) (string, error) { return units.Mass(a[0]) }},
	"area":      {1, func(a []string) (string, error) { return units.Area(a[0]) }},
	"velocity":  {2, func(a []string) (string, error) { return units.Velocity(a[0], a[1]) }},
	"discharge": {2, func(a []string) (string, error) { return units.Discharge(a[0], a[1]) }},
}

func unitKindNames() []string {
	return []string{"length", "time", "mass", "area", "velocity", "discharge"}
}

// unitsCommand creates the units command typesetting unit labels.
func (c *CLI) unitsCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "units [kind] [unit...]",
		Short: "Typeset units for axis labels",
		Long: `Typeset units as LaTeX math for axis labels.

Kinds: length, time, mass, area take one unit; velocity and discharge take a
length and a time unit.

  pubfig units velocity km h    # $\mathrm{km/h}$
  pubfig units --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if list || len(args) == 0 {
				fmt.Fprint(w, units.Options())
				return nil
			}
			out, err := convertUnit(args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Fprintln(w, out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list the accepted units")
	return cmd
}

// convertUnit typesets a unit of the given kind.
func convertUnit(kind string, args []string) (string, error) {
	if err := errors.ValidateOneOf(errors.ErrCodeInvalidInput, "unit kind", kind, unitKindNames()); err != nil {
		return "", err
	}
	k := unitKinds[kind]
	if len(args) != k.args {
		return "", errors.New(errors.ErrCodeInvalidInput, "%s takes %d unit(s), got %d", kind, k.args, len(args))
	}
	return k.convert(args)
}

// Package buildinfo reports which pubfig build is running.
//
// Release builds stamp Version, Commit and Date with -ldflags -X on this
// package path; a plain go build keeps the placeholders. The gonum/plot
// version comes from the module build info, since it decides how figures
// are laid out and two installs of the same pubfig release can differ in it.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const plotModule = "gonum.org/v1/plot"

// PlotVersion returns the gonum/plot module version linked into the binary,
// or "unknown" without module build info.
func PlotVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	return plotVersion(bi.Deps)
}

func plotVersion(deps []*debug.Module) string {
	for _, m := range deps {
		if m.Path != plotModule {
			continue
		}
		if m.Replace != nil && m.Replace.Version != "" {
			return m.Replace.Version
		}
		return m.Version
	}
	return "unknown"
}

// Template is the cobra version template printed by --version.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\ngonum/plot: %s\n", Version, Commit, Date, PlotVersion())
}

package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pubfig/pkg/axes"
	"github.com/matzehuels/pubfig/pkg/errors"
	"github.com/matzehuels/pubfig/pkg/figure"
	"github.com/matzehuels/pubfig/pkg/observability"
	"github.com/matzehuels/pubfig/pkg/style"
)

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		style.Reset()
		observability.Reset()
	})

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// writeConfig writes data to a pubfig.toml in a temporary directory.
func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pubfig.toml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output does not contain %q:\n%s", w, out)
		}
	}
}

func TestPagesCommand(t *testing.T) {
	out, err := execute(t, "pages")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, out, "Page A4", "Page Letter", "Page for slides", "9.69", "5.77", "13.33")
}

func TestPagesCommandRaw(t *testing.T) {
	out, err := execute(t, "pages", "--raw", "A4")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, out, "Page A4:\n", "The size of the page is 11.69 * 8.27.", "    Left:   1.25\n")
}

func TestPagesCommandConfig(t *testing.T) {
	cfg := writeConfig(t, "[page]\nheight = 10\nwidth = 6\nmargin = [1, 1, 0.5, 0.5]\n")
	out, err := execute(t, "--config", cfg, "pages", "config")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, out, "8.00", "5.00")
}

func TestPagesCommandUnknown(t *testing.T) {
	_, err := execute(t, "pages", "a5")
	if !errors.Is(err, errors.ErrCodeInvalidPage) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidPage)
	}
}

func TestLayoutCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"1x1 default", []string{"layout"}, []string{"1x1 figure on Page A4", "0.60", "0.30", "2.91", "3.46"}},
		{"2x2 rate override", []string{"layout", "-r", "2", "-c", "2", "--rate-x", "0.8"}, []string{"0.80", "0.55", "5.33", "4.62", "square"}},
		{"slide", []string{"layout", "--page", "slide-16:9"}, []string{"Page for slides", "2.25", "8.00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			assertContains(t, out, tt.want...)
		})
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"zero rows", []string{"layout", "--rows", "0"}, errors.ErrCodeInvalidInput},
		{"negative rate", []string{"layout", "--rate-y", "-1"}, errors.ErrCodeInvalidInput},
		{"unknown page", []string{"layout", "--page", "tabloid"}, errors.ErrCodeInvalidPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestUnitsCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"velocity", []string{"units", "velocity", "km", "h"}, "$\\mathrm{km/h}$\n"},
		{"discharge", []string{"units", "discharge", "m", "s"}, "$\\mathrm{m^{3}/s}$\n"},
		{"area", []string{"units", "area", "mm"}, "$\\mathrm{mm^{2}}$\n"},
		{"mass", []string{"units", "mass", "kg"}, "$\\mathrm{kg}$\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestUnitsCommandList(t *testing.T) {
	for _, args := range [][]string{{"units"}, {"units", "--list"}} {
		out, err := execute(t, args...)
		if err != nil {
			t.Fatal(err)
		}
		assertContains(t, out, "Length:", "km", "Time:", "min", "Mass:", "mg")
	}
}

func TestUnitsCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown unit", []string{"units", "velocity", "mile", "h"}, errors.ErrCodeInvalidUnit},
		{"unknown kind", []string{"units", "speed", "km", "h"}, errors.ErrCodeInvalidInput},
		{"missing unit", []string{"units", "velocity", "km"}, errors.ErrCodeInvalidInput},
		{"extra unit", []string{"units", "length", "km", "h"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDemoCommand(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"svg grid with legend", []string{"-r", "2", "-c", "2", "--legend", "-o", filepath.Join(dir, "grid.svg")}},
		{"png single panel", []string{"-r", "1", "-c", "1", "--dpi", "72", "-o", filepath.Join(dir, "single.png")}},
		{"standard bbox column", []string{"-r", "3", "-c", "1", "--bbox", "standard", "--minor", "0", "-o", filepath.Join(dir, "column.svg")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"demo"}, tt.args...)
			out, err := execute(t, args...)
			if err != nil {
				t.Fatalf("demo error: %v", err)
			}
			path := tt.args[len(tt.args)-1]
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Size() == 0 {
				t.Errorf("%s is empty", path)
			}
			assertContains(t, out, path)
		})
	}
}

func TestDemoCommandErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"jpg output", []string{"-o", filepath.Join(dir, "fig.jpg")}, errors.ErrCodeInvalidFormat},
		{"bad bbox", []string{"--bbox", "loose", "-o", filepath.Join(dir, "fig.svg")}, errors.ErrCodeInvalidInput},
		{"bad dpi", []string{"--dpi", "0", "-o", filepath.Join(dir, "fig.png")}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"demo"}, tt.args...)
			_, err := execute(t, args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestPanelLabel(t *testing.T) {
	tests := map[int]string{0: "(a)", 1: "(b)", 25: "(z)", 26: "(aa)", 27: "(ab)"}
	for i, want := range tests {
		if got := panelLabel(i); got != want {
			t.Errorf("panelLabel(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestShareLimits(t *testing.T) {
	fig, err := figure.New(1, 2, nil, figure.WithStyle(style.Default()))
	if err != nil {
		t.Fatal(err)
	}
	left, right := fig.At(0, 0), fig.At(0, 1)
	for _, p := range fig.Flat() {
		if err := axes.SetTickNumberY(p, 5); err != nil {
			t.Fatal(err)
		}
	}
	left.Y.Min, left.Y.Max = 0, 10.8
	right.Y.Min, right.Y.Max = -20, 5

	// Aligning each panel before sharing would give 15; the shared range
	// [-20, 10.8] has gridlines every 10 and snaps down to 10.
	if err := shareLimits(fig, log.New(io.Discard)); err != nil {
		t.Fatalf("shareLimits() error: %v", err)
	}
	for i, p := range fig.Flat() {
		if p.Y.Min != -20 || p.Y.Max != 10 {
			t.Errorf("panel %d: y = [%g, %g], want [-20, 10]", i, p.Y.Min, p.Y.Max)
		}
	}
	if !axes.IsHidden(&right.Y) {
		t.Error("inner y axis is visible")
	}
}

func TestBuildDemoSharesLimits(t *testing.T) {
	for _, grid := range [][2]int{{2, 2}, {3, 1}, {1, 3}} {
		fig, err := figure.New(grid[0], grid[1], nil, figure.WithStyle(style.Default()))
		if err != nil {
			t.Fatal(err)
		}
		if _, _, err := buildDemo(fig, 1, log.New(io.Discard)); err != nil {
			t.Fatalf("%dx%d buildDemo error: %v", grid[0], grid[1], err)
		}
		for r := range fig.Rows() {
			row := fig.Row(r)
			for c, p := range row[1:] {
				if p.Y.Min != row[0].Y.Min || p.Y.Max != row[0].Y.Max {
					t.Errorf("%dx%d row %d panel %d: y = [%g, %g], want [%g, %g]",
						grid[0], grid[1], r, c+1, p.Y.Min, p.Y.Max, row[0].Y.Min, row[0].Y.Max)
				}
			}
		}
	}
}

func TestDemoCommandMathLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fig.svg")
	if _, err := execute(t, "demo", "-r", "1", "-c", "2", "-o", path); err != nil {
		t.Fatalf("demo error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	assertContains(t, svg, "Discharge (m", "/s)", "Time (h)", "(a)", "(b)")
	if strings.Contains(svg, "$") {
		t.Error("svg contains raw math delimiters")
	}
}

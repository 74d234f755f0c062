package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/pubfig/pkg/errors"
	"github.com/matzehuels/pubfig/pkg/page"
	"github.com/matzehuels/pubfig/pkg/style"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig([]byte(`
[style]
medium_size = 11
math_text = false

[page]
preset = "letter"
margin = [0.5, 0.5, 0.75, 0.75]
`))
	if err != nil {
		t.Fatalf("DecodeConfig() error: %v", err)
	}

	want := style.Default()
	want.MediumSize = 11
	want.MathText = false
	if diff := cmp.Diff(want, cfg.Style); diff != "" {
		t.Errorf("style mismatch (-want +got):\n%s", diff)
	}

	p, err := cfg.Page.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != page.Letter().Name() {
		t.Errorf("page = %q, want %q", p.Name(), page.Letter().Name())
	}
	if diff := cmp.Diff(page.Margin{Top: 0.5, Bottom: 0.5, Left: 0.75, Right: 0.75}, p.Margin()); diff != "" {
		t.Errorf("margin mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeConfigEmpty(t *testing.T) {
	cfg, err := DecodeConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(style.Default(), cfg.Style); diff != "" {
		t.Errorf("empty config style mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Page.IsZero() {
		t.Error("empty config has a page section")
	}
	p, err := cfg.Page.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != page.A4().Name() {
		t.Errorf("default page = %q, want A4", p.Name())
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"syntax", `[style`, errors.ErrCodeInvalidInput},
		{"unknown key", "[style]\nfont_colour = \"red\"", errors.ErrCodeInvalidInput},
		{"unknown table", "[axes]\nminor = 1", errors.ErrCodeInvalidInput},
		{"invalid style", "[style]\nsmall_size = 0", errors.ErrCodeInvalidStyle},
		{"unknown preset", "[page]\npreset = \"a5\"", errors.ErrCodeInvalidPage},
		{"preset and size", "[page]\npreset = \"a4\"\nheight = 10", errors.ErrCodeInvalidPage},
		{"short margin", "[page]\nmargin = [1, 1]", errors.ErrCodeInvalidPage},
		{"margins too big", "[page]\nheight = 5\nwidth = 5\nmargin = [3, 3, 0, 0]", errors.ErrCodeInvalidPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeConfig([]byte(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("DecodeConfig() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestPageConfigExplicit(t *testing.T) {
	pc := PageConfig{Height: 10, Width: 6, Margin: []float64{1, 1, 0.5, 0.5}}
	p, err := pc.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	h, w := p.BodySize()
	if h != 8 || w != 5 {
		t.Errorf("BodySize() = (%v, %v), want (8, 5)", h, w)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pubfig.toml")
	if err := os.WriteFile(path, []byte("[page]\npreset = \"slide-16:9\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Page.Preset != "slide-16:9" {
		t.Errorf("preset = %q, want slide-16:9", cfg.Page.Preset)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); !os.IsNotExist(err) {
		t.Errorf("missing file error = %v, want not-exist", err)
	}
}

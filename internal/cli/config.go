package cli

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pubfig/pkg/errors"
	"github.com/matzehuels/pubfig/pkg/page"
	"github.com/matzehuels/pubfig/pkg/style"
)

// Config is the CLI configuration file:
//
//	[style]
//	medium_size = 11
//	math_text = false
//
//	[page]
//	preset = "letter"
//	# or an explicit page in inches:
//	# height = 11
//	# width = 8.5
//	# margin = [1, 1, 1.25, 1.25] # top, bottom, left, right
type Config struct {
	Style style.Style `toml:"style"`
	Page  PageConfig  `toml:"page"`
}

// PageConfig selects a page preset or describes a page explicitly.
type PageConfig struct {
	Preset string    `toml:"preset"`
	Height float64   `toml:"height"`
	Width  float64   `toml:"width"`
	Margin []float64 `toml:"margin"`
}

func defaultConfig() *Config {
	return &Config{Style: style.Default()}
}

// DecodeConfig parses a TOML config. Absent style keys keep their defaults;
// unknown keys are rejected.
func DecodeConfig(data []byte) (*Config, error) {
	cfg := defaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		sort.Strings(names)
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(names, ", "))
	}
	if err := cfg.Style.Validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.Page.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes a TOML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeConfig(data)
}

// IsZero reports whether the page section is empty.
func (pc PageConfig) IsZero() bool {
	return pc.Preset == "" && pc.Height == 0 && pc.Width == 0 && pc.Margin == nil
}

// Resolve builds the configured page. A preset may be combined with a
// margin override; an explicit page needs height and width. An empty
// section resolves to the default preset.
func (pc PageConfig) Resolve() (*page.Page, error) {
	var margin *page.Margin
	if pc.Margin != nil {
		if len(pc.Margin) != 4 {
			return nil, errors.New(errors.ErrCodeInvalidPage, "page margin needs 4 values (top, bottom, left, right), got %d", len(pc.Margin))
		}
		margin = &page.Margin{Top: pc.Margin[0], Bottom: pc.Margin[1], Left: pc.Margin[2], Right: pc.Margin[3]}
	}

	switch {
	case pc.Preset != "" && (pc.Height != 0 || pc.Width != 0):
		return nil, errors.New(errors.ErrCodeInvalidPage, "page preset %q cannot be combined with height or width", pc.Preset)
	case pc.Height != 0 || pc.Width != 0:
		m := page.Margin{}
		if margin != nil {
			m = *margin
		}
		return page.New(pc.Height, pc.Width, m)
	}

	name := pc.Preset
	if name == "" {
		name = defaultPage
	}
	p, err := page.Lookup(name)
	if err != nil {
		return nil, err
	}
	if margin != nil {
		if err := p.SetMargin(*margin); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// resolvePage picks the page for a command: a --page preset wins over the
// config file.
func (c *CLI) resolvePage(preset string) (*page.Page, error) {
	if preset != "" {
		return page.Lookup(preset)
	}
	return c.activeConfig().Page.Resolve()
}

package style

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pubfig/pkg/errors"
)

// Decode parses a TOML style document. Keys that are absent keep their
// [Default] value; unknown keys are rejected.
//
//	font_family = "Times New Roman"
//	small_size  = 8
//	medium_size = 10
//	math_text   = true
func Decode(data []byte) (Style, error) {
	s := Default()
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return Style{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "parse style")
	}
	if err := checkUndecoded(md); err != nil {
		return Style{}, err
	}
	if err := s.Validate(); err != nil {
		return Style{}, err
	}
	return s, nil
}

// Load reads and decodes a TOML style file.
func Load(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, err
	}
	return Decode(data)
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	return errors.New(errors.ErrCodeInvalidStyle, "unknown style keys: %s", strings.Join(names, ", "))
}

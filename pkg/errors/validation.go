package errors

import (
	"path/filepath"
	"slices"
	"strings"
)

// ValidateOneOf checks that value is one of options.
// The returned error carries code and names both the kind of value and the
// rejected value, e.g. `invalid time unit "week" (want one of s, min, h, d)`.
func ValidateOneOf(code Code, kind, value string, options []string) error {
	if slices.Contains(options, value) {
		return nil
	}
	return New(code, "invalid %s %q (want one of %s)", kind, value, strings.Join(options, ", "))
}

// ValidateExtension checks that path ends in one of the given extensions.
// Extensions are compared exactly, without the leading dot, so "PNG" does not
// match "png".
func ValidateExtension(path string, exts []string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", New(ErrCodeInvalidFormat, "file %q has no extension (want one of %s)", path, strings.Join(exts, ", "))
	}
	if err := ValidateOneOf(ErrCodeInvalidFormat, "file format", ext, exts); err != nil {
		return "", err
	}
	return ext, nil
}

// ValidatePositive checks that value is strictly positive.
func ValidatePositive(code Code, name string, value float64) error {
	if value > 0 {
		return nil
	}
	return New(code, "%s must be positive, got %g", name, value)
}

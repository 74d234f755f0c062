// Package units formats SI unit labels as math-typeset strings.
//
// The strings are meant for axis labels rendered by a LaTeX-aware text
// handler (see the style package), for example:
//
//	label, err := units.Velocity(units.Kilometer, units.Hour)
//	// label == `$\mathrm{km/h}$`
//
// Every function validates its arguments against a fixed enumeration and
// returns an INVALID_UNIT error naming the rejected value.
package units

import (
	"fmt"
	"strings"

	"github.com/matzehuels/pubfig/pkg/errors"
)

// Length units.
const (
	Millimeter = "mm"
	Centimeter = "cm"
	Meter      = "m"
	Kilometer  = "km"
)

// Time units.
const (
	Second = "s"
	Minute = "min"
	Hour   = "h"
	Day    = "d"
)

// Mass units.
const (
	Milligram = "mg"
	Gram      = "g"
	Kilogram  = "kg"
)

var (
	lengthOptions = []string{Millimeter, Centimeter, Meter, Kilometer}
	timeOptions   = []string{Second, Minute, Hour, Day}
	massOptions   = []string{Milligram, Gram, Kilogram}
)

// LengthOptions returns the accepted length units.
func LengthOptions() []string { return clone(lengthOptions) }

// TimeOptions returns the accepted time units.
func TimeOptions() []string { return clone(timeOptions) }

// MassOptions returns the accepted mass units.
func MassOptions() []string { return clone(massOptions) }

// Length returns the label for a length unit, e.g. `$\mathrm{km}$`.
func Length(length string) (string, error) {
	if err := checkLength(length); err != nil {
		return "", err
	}
	return mathrm(length), nil
}

// Time returns the label for a time unit, e.g. `$\mathrm{min}$`.
func Time(time string) (string, error) {
	if err := checkTime(time); err != nil {
		return "", err
	}
	return mathrm(time), nil
}

// Mass returns the label for a mass unit, e.g. `$\mathrm{kg}$`.
func Mass(mass string) (string, error) {
	if err := errors.ValidateOneOf(errors.ErrCodeInvalidUnit, "mass unit", mass, massOptions); err != nil {
		return "", err
	}
	return mathrm(mass), nil
}

// Area returns the label for an area built on a length unit, e.g. `$\mathrm{m^{2}}$`.
func Area(length string) (string, error) {
	if err := checkLength(length); err != nil {
		return "", err
	}
	return mathrm(length + "^{2}"), nil
}

// Velocity returns the label length/time, e.g. `$\mathrm{km/h}$`.
func Velocity(length, time string) (string, error) {
	if err := checkLength(length); err != nil {
		return "", err
	}
	if err := checkTime(time); err != nil {
		return "", err
	}
	return mathrm(length + "/" + time), nil
}

// Discharge returns the label length³/time, e.g. `$\mathrm{m^{3}/s}$`.
func Discharge(length, time string) (string, error) {
	if err := checkLength(length); err != nil {
		return "", err
	}
	if err := checkTime(time); err != nil {
		return "", err
	}
	return mathrm(length + "^{3}/" + time), nil
}

// Options reports the accepted units, one category per line.
func Options() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Length:\t%s\n", strings.Join(lengthOptions, ", "))
	fmt.Fprintf(&b, "Time:\t%s\n", strings.Join(timeOptions, ", "))
	fmt.Fprintf(&b, "Mass:\t%s\n", strings.Join(massOptions, ", "))
	return b.String()
}

func checkLength(length string) error {
	return errors.ValidateOneOf(errors.ErrCodeInvalidUnit, "length unit", length, lengthOptions)
}

func checkTime(time string) error {
	return errors.ValidateOneOf(errors.ErrCodeInvalidUnit, "time unit", time, timeOptions)
}

func mathrm(s string) string {
	return `$\mathrm{` + s + `}$`
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

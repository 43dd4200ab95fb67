package units

import (
	"github.com/ava12/unitcalc"
)

// Error codes used by units:
const (
	// DecodeError indicates malformed TOML or unknown catalog fields.
	DecodeError = unitcalc.CatalogErrors + iota

	// ReadError indicates that catalog file cannot be read.
	ReadError

	// DuplicateKeyError indicates that two units share a name, abbreviation, or symbol.
	DuplicateKeyError

	// FamilyError indicates a family with wrong base name or dimension vector.
	FamilyError

	// SIUnitError indicates missing base family, missing SI unit, or SI unit with factor other than 1.
	SIUnitError

	// UnitDefError indicates unit with empty name, non-positive factor, or whitespace in keys.
	UnitDefError
)

func decodeError(name string, line, col int, e error) *unitcalc.Error {
	result := unitcalc.NewError(DecodeError, "cannot decode unit catalog: "+e.Error(), name, line, col)
	result.Err = e
	return result
}

func readError(path string, e error) *unitcalc.Error {
	result := unitcalc.FormatError(ReadError, "cannot read unit catalog %s: %s", path, e.Error())
	result.Err = e
	return result
}

func duplicateKeyError(key, first, second string) *unitcalc.Error {
	return unitcalc.FormatError(DuplicateKeyError, "key %q used by both %s and %s", key, first, second)
}

func unknownBaseError(family, base string) *unitcalc.Error {
	return unitcalc.FormatError(FamilyError, "family %q: unknown base dimension %q", family, base)
}

func familyDimensionError(family string) *unitcalc.Error {
	return unitcalc.FormatError(FamilyError, "family %q: either base or 3-component dimension is required", family)
}

func duplicateBaseError(family, base string) *unitcalc.Error {
	return unitcalc.FormatError(FamilyError, "family %q: base dimension %q already defined", family, base)
}

func missingBaseError(base string) *unitcalc.Error {
	return unitcalc.FormatError(SIUnitError, "no family for base dimension %q", base)
}

func siUnitError(family, name string) *unitcalc.Error {
	return unitcalc.FormatError(SIUnitError, "family %q: SI unit %q is not defined", family, name)
}

func siFactorError(family, name string, factor float64) *unitcalc.Error {
	return unitcalc.FormatError(SIUnitError, "family %q: SI unit %q has factor %g, expecting 1", family, name, factor)
}

func unitDefError(family, name, msg string) *unitcalc.Error {
	return unitcalc.FormatError(UnitDefError, "family %q, unit %q: %s", family, name, msg)
}

package calc

import (
	"github.com/ava12/unitcalc"
	"github.com/ava12/unitcalc/lexer"
)

// Error codes used by calc:
const (
	// DimensionMismatchError indicates an operation on quantities of incompatible dimensions,
	// error cause is quantity.DimensionError.
	DimensionMismatchError = unitcalc.EvalErrors + iota

	// UnknownUnitError indicates a unit token missing in registry.
	UnknownUnitError

	// NumericParseError indicates a number token that cannot be converted to float.
	NumericParseError

	// MissingReductionError indicates a grammar rule with no evaluation function.
	MissingReductionError
)

func posOrNil(t *lexer.Token) unitcalc.SourcePos {
	if t == nil || t.Line() == 0 {
		return nil
	}
	return t
}

func dimensionMismatchError(t *lexer.Token, e error) *unitcalc.Error {
	return unitcalc.WrapError(posOrNil(t), DimensionMismatchError, e)
}

func unknownUnitError(t *lexer.Token) *unitcalc.Error {
	if pos := posOrNil(t); pos != nil {
		return unitcalc.FormatErrorPos(pos, UnknownUnitError, "unknown unit %q", t.Text())
	}
	return unitcalc.FormatError(UnknownUnitError, "unknown unit %q", t.Text())
}

func numericParseError(t *lexer.Token, e error) *unitcalc.Error {
	return unitcalc.WrapError(posOrNil(t), NumericParseError, e)
}

func missingReductionError(rule string) *unitcalc.Error {
	return unitcalc.FormatError(MissingReductionError, "no reduction for rule %q", rule)
}

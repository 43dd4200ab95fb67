package langdef

import (
	"strings"

	"github.com/ava12/unitcalc"
)

// Error codes used by langdef:
const (
	UnexpectedEoiError = unitcalc.GrammarErrors + iota
	UnexpectedTokenError
	WrongCharError
	UnknownDirectiveError
	UnknownExternError
	UnboundExternError
	NontermDefinedError
	UndefinedNontermError
	UnusedNontermError
	EmptyAlternativeError
)

func eoiError(t *token) *unitcalc.Error {
	return unitcalc.FormatErrorPos(t.pos, UnexpectedEoiError, "unexpected end of input")
}

func unexpectedTokenError(t *token) *unitcalc.Error {
	return unitcalc.FormatErrorPos(t.pos, UnexpectedTokenError, "unexpected %s %q", t.kind, t.text)
}

func wrongCharError(t *token) *unitcalc.Error {
	return unitcalc.FormatErrorPos(t.pos, WrongCharError, "wrong char %q", t.text)
}

func unknownDirectiveError(t *token) *unitcalc.Error {
	return unitcalc.FormatErrorPos(t.pos, UnknownDirectiveError, "unknown directive %s", t.text)
}

func unknownExternError(t *token) *unitcalc.Error {
	return unitcalc.FormatErrorPos(t.pos, UnknownExternError, "external terminal %s is not listed in !extern directive", t.text)
}

func unboundExternError(t *token) *unitcalc.Error {
	return unitcalc.FormatErrorPos(t.pos, UnboundExternError, "no predicate for external terminal %s", t.text)
}

func nontermDefinedError(t *token) *unitcalc.Error {
	return unitcalc.FormatErrorPos(t.pos, NontermDefinedError, "nonterminal %q already defined", t.text)
}

func emptyAlternativeError(t *token) *unitcalc.Error {
	return unitcalc.FormatErrorPos(t.pos, EmptyAlternativeError, "empty alternative")
}

func undefinedNontermError(names []string) *unitcalc.Error {
	return unitcalc.FormatError(UndefinedNontermError, "undefined nonterminals: "+strings.Join(names, ", "))
}

func unusedNontermError(names []string) *unitcalc.Error {
	return unitcalc.FormatError(UnusedNontermError, "unused nonterminals: "+strings.Join(names, ", "))
}

package parser

import (
	"strings"

	"github.com/ava12/unitcalc"
	"github.com/ava12/unitcalc/lexer"
)

// Error codes used by parser:
const (
	// UnexpectedTokenError indicates a token that cannot continue any derivation.
	UnexpectedTokenError = unitcalc.SyntaxErrors + iota

	// UnexpectedEoiError indicates that input ended while derivations still expect tokens.
	UnexpectedEoiError

	// EmptyGrammarError indicates grammar without root nonterminal.
	EmptyGrammarError

	// EmptyRuleError indicates a rule with empty body or a nonterminal without rules, parser does not support those.
	EmptyRuleError
)

// TokenError is attached to syntax errors as unitcalc.Error.Err.
type TokenError struct {
	// Token is the offending token (end-of-input token for UnexpectedEoiError).
	Token *lexer.Token

	// Expected contains names of terminals acceptable at the token position.
	Expected []string
}

func (e *TokenError) Error() string {
	msg := ""
	if e.Token.Type() == lexer.EoiType {
		msg = "unexpected end of input"
	} else {
		msg = "unexpected " + e.Token.TypeName() + " \"" + e.Token.Text() + "\""
	}
	if len(e.Expected) > 0 {
		msg += ", expecting " + strings.Join(e.Expected, " or ")
	}
	return msg
}

func syntaxError(code int, t *lexer.Token, expected []string) *unitcalc.Error {
	te := &TokenError{t, expected}
	if t.Line() == 0 {
		return unitcalc.WrapError(nil, code, te)
	}
	return unitcalc.WrapError(t, code, te)
}

func emptyGrammarError() *unitcalc.Error {
	return unitcalc.FormatError(EmptyGrammarError, "grammar has no root nonterminal")
}

func emptyRuleError(name string) *unitcalc.Error {
	return unitcalc.FormatError(EmptyRuleError, "empty derivation for %q", name)
}

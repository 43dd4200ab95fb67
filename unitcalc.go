/*
Package unitcalc is the core of a unit-aware arithmetic calculator.

Expressions mix plain numbers with physical units, e.g. "1m/s^2 + 1 m/s^2 -> km/s^2".
The result is a single quantity with a dimension vector (length, mass, time)
and a units context, rendered like "2 m/s²".

Consists of subpackages:
  - calc: expression grammar, evaluator, and the Evaluate entry point;
  - cmd/unitcalc: interactive command line calculator;
  - grammar: context-free grammar definition with predicate terminals;
  - langdef: converts grammar description (written in BNF-like language) to grammar definition;
  - lexer: tokenizer that recognizes unit symbols embedded in expressions without separators;
  - parser: Earley parser producing a parse forest for ambiguous grammars;
  - quantity: dimensions, units, unit contexts, and quantity arithmetic;
  - source: defines source text with line and column lookup;
  - tree: parse forest nodes and traversal functions;
  - units: unit registry loaded from a TOML catalog.

Typical usage is:

	q, e := calc.Evaluate("60 mi/hr -> m/s")
	if e == nil {
		fmt.Println(q)
	}
*/
package unitcalc

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors = 1   // used by grammar and langdef
	LexicalErrors = 101 // used by lexer
	SyntaxErrors  = 201 // used by parser
	EvalErrors    = 301 // used by calc
	CatalogErrors = 401 // used by units
)

// Error is the error type used by unitcalc subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source text or 0.
	Line int

	// Col contains column number in source text or 0.
	Col int

	// Err contains underlying error or nil.
	Err error
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{Code: code, Message: msg, SourceName: name, Line: line, Col: col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// WrapError creates Error structure with cause e and message taken from e.
// pos may be nil, otherwise source and position information is added.
func WrapError(pos SourcePos, code int, e error) *Error {
	var result *Error
	if pos == nil {
		result = NewError(code, e.Error(), "", 0, 0)
	} else {
		result = NewError(code, e.Error(), pos.SourceName(), pos.Line(), pos.Col())
	}
	result.Err = e
	return result
}

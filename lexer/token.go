package lexer

import (
	"github.com/ava12/unitcalc/source"
)

// Token types returned by lexer:
const (
	// NumberType is a numeric literal, possibly signed: "12", "-3.5e-2", "+.5".
	NumberType = iota
	// ArrowType is the conversion arrow "->".
	ArrowType
	// OperatorType is a single char from "+-*/%^!()" or multiplication dot "·".
	OperatorType
	// IdentType is a run of ASCII letters: keyword, unit name, or garbage.
	IdentType
	// UnitType is a registered unit key not composed of ASCII letters only, e.g. "μm".
	UnitType
	// SuperscriptType is an exponent written in superscript digits, e.g. "²" or "⁻¹".
	SuperscriptType
	// UnknownType is a single char lexer cannot classify.
	UnknownType

	// EoiType is the type of the token emitted at the end of input.
	EoiType = -2
)

// Token type names:
const (
	NumberName      = "number"
	ArrowName       = "arrow"
	OperatorName    = "operator"
	IdentName       = "identifier"
	UnitName        = "unit"
	SuperscriptName = "superscript"
	UnknownName     = "unknown"
	EoiName         = "-end-of-input-"
)

var typeNames = map[int]string{
	NumberType:      NumberName,
	ArrowType:       ArrowName,
	OperatorType:    OperatorName,
	IdentType:       IdentName,
	UnitType:        UnitName,
	SuperscriptType: SuperscriptName,
	UnknownType:     UnknownName,
	EoiType:         EoiName,
}

// TypeName returns name for token type or empty string.
func TypeName(tokenType int) string {
	return typeNames[tokenType]
}

// Token is a lexeme with its type and position.
type Token struct {
	tokenType int
	typeName  string
	text      string
	source    *source.Source
	pos       int
	line, col int
}

// Type returns token type.
func (t *Token) Type() int {
	return t.tokenType
}

// TypeName returns token type name.
func (t *Token) TypeName() string {
	return t.typeName
}

// Text returns lexeme text.
func (t *Token) Text() string {
	return t.text
}

// Source returns the source token belongs to or nil.
func (t *Token) Source() *source.Source {
	return t.source
}

// SourceName returns source name or empty string.
func (t *Token) SourceName() string {
	if t.source == nil {
		return ""
	}
	return t.source.Name()
}

// Pos returns byte offset of the token in source.
func (t *Token) Pos() int {
	return t.pos
}

// Line returns line number or 0.
func (t *Token) Line() int {
	return t.line
}

// Col returns column number or 0.
func (t *Token) Col() int {
	return t.col
}

func (t *Token) String() string {
	if t.tokenType == EoiType {
		return t.typeName
	}
	return t.text
}

// SourcePos is implemented by source.Pos and Token.
type SourcePos interface {
	Source() *source.Source
	Pos() int
	Line() int
	Col() int
}

// NewToken creates token, sp may be nil.
func NewToken(tokenType int, text string, sp SourcePos) *Token {
	t := &Token{tokenType: tokenType, typeName: TypeName(tokenType), text: text}
	if sp != nil {
		t.source = sp.Source()
		t.pos = sp.Pos()
		t.line = sp.Line()
		t.col = sp.Col()
	}
	return t
}

// EoiToken creates end-of-input token positioned at the end of s, s may be nil.
func EoiToken(s *source.Source) *Token {
	if s == nil {
		return NewToken(EoiType, "", nil)
	}
	return NewToken(EoiType, "", source.NewPos(s, s.Len()))
}

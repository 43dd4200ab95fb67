// Package lexer defines tokenizer for calculator expressions.
//
// Lexer tries the following scanners in order at each position, each scanner either
// consumes a lexeme or leaves position intact:
//  1. numeric literal: optional sign, digits, optional fraction, optional exponent;
//     sign is captured only where an operand may start (not after a number, unit, superscript,
//     identifier other than prefix function name, ")", or "!");
//  2. conversion arrow "->";
//  3. single char operator "+-*/%^!()" or multiplication dot "·";
//  4. identifier: run of ASCII letters;
//  5. superscript exponent: optional "⁻" followed by superscript digits;
//  6. the longest unit key provided by UnitMatcher (e.g. "μm", "Å");
//  7. any single char, emitted as unknown token.
//
// Whitespace between lexemes is skipped. Lexer performs no semantic validation.
package lexer

import (
	"bytes"
	"iter"
	"unicode"
	"unicode/utf8"

	"github.com/ava12/unitcalc/source"
)

// UnitMatcher returns length of the longest unit key that is a prefix of content or 0;
// units.Registry implements this interface.
type UnitMatcher interface {
	Match(content []byte) int
}

const operatorChars = "+-*/%^!()"

const mulDot = "·"

// prefixFunctions are identifiers followed by an operand, a sign after them starts a number.
var prefixFunctions = map[string]bool{"sqrt": true, "log": true, "ln": true}

const superscriptMinus = '⁻'

var superscriptDigits = map[rune]bool{
	'⁰': true, '¹': true, '²': true, '³': true, '⁴': true,
	'⁵': true, '⁶': true, '⁷': true, '⁸': true, '⁹': true,
}

// Lexer is a lazy token stream over a single source. Lexer is not safe for concurrent use.
type Lexer struct {
	src     *source.Source
	content []byte
	units   UnitMatcher
	pos     int
	prev    *Token
}

// New creates lexer. units may be nil.
func New(src *source.Source, units UnitMatcher) *Lexer {
	return &Lexer{src: src, content: src.Content(), units: units}
}

// Next returns next token. Returns end-of-input token at the end of source and every time after.
func (l *Lexer) Next() *Token {
	l.skipSpace()
	if l.pos >= len(l.content) {
		return EoiToken(l.src)
	}

	start := l.pos
	tokenType := UnknownType
	switch {
	case l.scanNumber():
		tokenType = NumberType
	case l.scanArrow():
		tokenType = ArrowType
	case l.scanOperator():
		tokenType = OperatorType
	case l.scanIdent():
		tokenType = IdentType
	case l.scanSuperscript():
		tokenType = SuperscriptType
	case l.scanUnit():
		tokenType = UnitType
	default:
		_, size := utf8.DecodeRune(l.content[l.pos:])
		l.pos += size
	}

	t := NewToken(tokenType, string(l.content[start:l.pos]), source.NewPos(l.src, start))
	l.prev = t
	return t
}

// Tokens returns sequence of remaining tokens not including end-of-input token.
func (l *Lexer) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		for {
			t := l.Next()
			if t.Type() == EoiType || !yield(t) {
				return
			}
		}
	}
}

// Tokenize returns all tokens of src not including end-of-input token.
func Tokenize(src *source.Source, units UnitMatcher) []*Token {
	var result []*Token
	for t := range New(src, units).Tokens() {
		result = append(result, t)
	}
	return result
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.content) {
		r, size := utf8.DecodeRune(l.content[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset < len(l.content) {
		return l.content[l.pos+offset]
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// operandEnded tells whether previous token may end an operand, so that a sign is a binary operator.
func (l *Lexer) operandEnded() bool {
	if l.prev == nil {
		return false
	}

	switch l.prev.tokenType {
	case NumberType, UnitType, SuperscriptType:
		return true
	case IdentType:
		return !prefixFunctions[l.prev.text]
	case OperatorType:
		return l.prev.text == ")" || l.prev.text == "!"
	default:
		return false
	}
}

func (l *Lexer) countDigits(offset int) int {
	n := 0
	for isDigit(l.peek(offset + n)) {
		n++
	}
	return n
}

func (l *Lexer) scanNumber() bool {
	i := 0
	c := l.peek(0)
	if c == '+' || c == '-' {
		if l.operandEnded() {
			return false
		}
		i++
	}

	digits := l.countDigits(i)
	i += digits
	if l.peek(i) == '.' {
		fraction := l.countDigits(i + 1)
		if digits > 0 || fraction > 0 {
			i += fraction + 1
			digits += fraction
		}
	}
	if digits == 0 {
		return false
	}

	c = l.peek(i)
	if c == 'e' || c == 'E' {
		j := i + 1
		c = l.peek(j)
		if c == '+' || c == '-' {
			j++
		}
		if expDigits := l.countDigits(j); expDigits > 0 {
			i = j + expDigits
		}
	}

	l.pos += i
	return true
}

func (l *Lexer) scanArrow() bool {
	if l.peek(0) == '-' && l.peek(1) == '>' {
		l.pos += 2
		return true
	}
	return false
}

func (l *Lexer) scanOperator() bool {
	if bytes.HasPrefix(l.content[l.pos:], []byte(mulDot)) {
		l.pos += len(mulDot)
		return true
	}

	c := l.peek(0)
	for i := 0; i < len(operatorChars); i++ {
		if operatorChars[i] == c {
			l.pos++
			return true
		}
	}
	return false
}

func (l *Lexer) scanIdent() bool {
	i := 0
	for isLetter(l.peek(i)) {
		i++
	}
	l.pos += i
	return i > 0
}

func (l *Lexer) scanSuperscript() bool {
	i := l.pos
	r, size := utf8.DecodeRune(l.content[i:])
	if r == superscriptMinus {
		i += size
		r, size = utf8.DecodeRune(l.content[i:])
	}

	if !superscriptDigits[r] {
		return false
	}
	for superscriptDigits[r] {
		i += size
		r, size = utf8.DecodeRune(l.content[i:])
	}
	l.pos = i
	return true
}

func (l *Lexer) scanUnit() bool {
	if l.units == nil {
		return false
	}

	size := l.units.Match(l.content[l.pos:])
	l.pos += size
	return size > 0
}

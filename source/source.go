// Package source defines source text with line and column lookup.
package source

import (
	"bytes"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Source contains named expression text.
// Source is immutable and safe for concurrent use.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// New creates new Source. content is used as is.
func New(name string, content []byte) *Source {
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s := &Source{name: name, content: content, lineStarts: make([]int, 1, lineCnt)}
	for i, c := range content {
		if c == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

// foldMicro maps micro sign (U+00B5) to Greek mu used by unit symbols.
// Full compatibility decomposition is not used since it turns superscript exponents into digits.
var foldMicro = runes.Map(func(r rune) rune {
	if r == '\u00b5' {
		return 'μ'
	}
	return r
})

// Normalize creates new Source with content converted to NFC form and micro sign folded,
// so that e.g. angstrom sign (U+212B) and micro sign become letters used by unit symbols
// while superscripts stay intact. Invalid UTF-8 content is used as is.
func Normalize(name string, content []byte) *Source {
	result, _, e := transform.Bytes(transform.Chain(norm.NFC, foldMicro), content)
	if e != nil {
		result = content
	}
	return New(name, result)
}

// Name returns source name.
func (s *Source) Name() string {
	return s.name
}

// Content returns source content.
func (s *Source) Content() []byte {
	return s.content
}

// Len returns content length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// LineCol converts byte offset to 1-based line and column numbers (column counts runes).
// Offsets outside content are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	lineIndex := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos converts 1-based line and column numbers to byte offset.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1]
	for ; col > 1 && res < l; col-- {
		if s.content[res] == '\n' {
			break
		}
		_, size := utf8.DecodeRune(s.content[res:])
		res += size
	}
	return res
}

// Pos is a position in source text, implements unitcalc.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos creates position for byte offset pos in s.
func NewPos(s *Source, pos int) Pos {
	res := Pos{src: s, pos: pos}
	if s != nil {
		res.line, res.col = s.LineCol(pos)
	}
	return res
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}

package source

import (
	"testing"

	. "github.com/ava12/unitcalc/internal/test"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
		},
		"1 μm\n2": {
			{4, 1, 4},
			{5, 1, 5},
			{6, 2, 1},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			l, c := source.LineCol(res.pos)
			if l != res.line || c != res.col {
				t.Errorf("sample %q: expected %v, got line: %d, col: %d", text, res, l, c)
			}
		}
	}
}

func TestSourcePos(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 1},
			{0, 3, 3},
		},
		"ab\ncd": {
			{1, 1, 2},
			{2, 1, 9},
			{4, 2, 2},
			{5, 5, 1},
		},
		"μs": {
			{2, 1, 2},
			{3, 1, 3},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			p := source.Pos(res.line, res.col)
			if p != res.pos {
				t.Errorf("sample %q, line %d, col %d: expected %d, got %d", text, res.line, res.col, res.pos, p)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	src := Normalize("x", []byte("3 µm"))
	Expect(t, string(src.Content()) == "3 μm", "3 μm", string(src.Content()))
	ExpectInt(t, 5, src.Len())

	samples := []struct {
		src, expected string
	}{
		{"1 m²", "1 m²"},
		{"1 m/s⁻¹", "1 m/s⁻¹"},
		{"2 \u212b", "2 Å"},
		{"2 A\u030a", "2 Å"},
		{"kg·m", "kg·m"},
		{"ｍ", "ｍ"},
	}
	for i, s := range samples {
		got := string(Normalize("x", []byte(s.src)).Content())
		Assert(t, got == s.expected, "sample #%d: expecting %q, got %q", i, s.expected, got)
	}
}

func TestNewPos(t *testing.T) {
	src := New("name", []byte("12\n34"))
	p := NewPos(src, 4)
	ExpectInt(t, 2, p.Line())
	ExpectInt(t, 2, p.Col())
	ExpectInt(t, 4, p.Pos())
	Assert(t, p.SourceName() == "name", "wrong source name %q", p.SourceName())
	Assert(t, NewPos(nil, 1).SourceName() == "", "expecting empty source name")
}

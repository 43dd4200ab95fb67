package calc

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/unitcalc"
	. "github.com/ava12/unitcalc/internal/test"
	"github.com/ava12/unitcalc/parser"
	"github.com/ava12/unitcalc/quantity"
	"github.com/ava12/unitcalc/units"
)

type valueSample struct {
	src   string
	value float64
	dim   quantity.Dimension
}

type renderSample struct {
	src, text string
}

type errorSample struct {
	src string
	err int
}

func newCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, e := New(units.Default())
	require.NoError(t, e)
	return c
}

func TestValues(t *testing.T) {
	samples := []valueSample{
		{"80 - 4 - 4", 72, quantity.Dimension{}},
		{"2 + 3 * 4", 14, quantity.Dimension{}},
		{"(2 + 3) * 4", 20, quantity.Dimension{}},
		{"2 * -3", -6, quantity.Dimension{}},
		{"-(2 + 3)", -5, quantity.Dimension{}},
		{"+4", 4, quantity.Dimension{}},
		{"7 % 4", 3, quantity.Dimension{}},
		{"2 (3 + 4)", 14, quantity.Dimension{}},
		{"2^10", 1024, quantity.Dimension{}},
		{"2^3^2", 512, quantity.Dimension{}},
		{"5!", 120, quantity.Dimension{}},
		{"log 100", 2, quantity.Dimension{}},
		{"ln e", 1, quantity.Dimension{}},
		{"sqrt 16", 4, quantity.Dimension{}},
		{"pi", math.Pi, quantity.Dimension{}},
		{"e^-1", 1 / math.E, quantity.Dimension{}},
		{"1m + 2m", 3, quantity.Dim(1, 0, 0)},
		{"1m/s^2", 1, quantity.Dim(1, 0, -2)},
		{"9.81 m/s^2", 9.81, quantity.Dim(1, 0, -2)},
		{"(1 m/s^2)^2", 1, quantity.Dim(2, 0, -4)},
		{"sqrt(4 m^2)", 2, quantity.Dim(1, 0, 0)},
		{"2 m * 3 s", 6, quantity.Dim(1, 0, 1)},
		{"6 m / 3 s", 2, quantity.Dim(1, 0, -1)},
		{"2 m 3 s", 6, quantity.Dim(1, 0, 1)},
		{"10^3 m", 1000, quantity.Dim(1, 0, 0)},
		{"3 kg m", 3, quantity.Dim(1, 1, 0)},
		{"2 km + 500 m", 2.5, quantity.Dim(1, 0, 0)},
		{"7 m % 2 m", 1, quantity.Dim(1, 0, 0)},
		{"1 m -> km", 0.001, quantity.Dim(1, 0, 0)},
		{"1 m/s -> km/h", 3.6, quantity.Dim(1, 0, -1)},
		{"1 N", 1, quantity.Dim(1, 1, -2)},
		{"1 kN -> N", 1000, quantity.Dim(1, 1, -2)},
		{"1 m²", 1, quantity.Dim(2, 0, 0)},
		{"1 m/s²", 1, quantity.Dim(1, 0, -2)},
		{"2 kg²", 2, quantity.Dim(0, 2, 0)},
		{"4 m² -> km²", 4e-6, quantity.Dim(2, 0, 0)},
		{"(2 m)²", 4, quantity.Dim(2, 0, 0)},
		{"2²", 4, quantity.Dim(0, 0, 0)},
		{"10 s⁻¹", 10, quantity.Dim(0, 0, -1)},
		{"25 kg²·m/s³", 25, quantity.Dim(1, 2, -3)},
		{"2 m · 3 s", 6, quantity.Dim(1, 0, 1)},
		{"sqrt +4", 2, quantity.Dimension{}},
		{"log +100", 2, quantity.Dimension{}},
		{"2 * 3 km", 6000, quantity.Dim(1, 0, 0)},
		{"1 s * 1 km", 1000, quantity.Dim(1, 0, 1)},
	}

	c := newCalculator(t)
	for i, sample := range samples {
		q, e := c.Evaluate(sample.src)
		if e != nil {
			t.Errorf("sample #%d %q: got error: %s", i, sample.src, e)
			continue
		}

		if !FloatEqual(sample.value, q.Value) {
			t.Errorf("sample #%d %q: expecting value %v, got %v", i, sample.src, sample.value, q.Value)
		}
		if q.Dim != sample.dim {
			t.Errorf("sample #%d %q: expecting dimension %s, got %s", i, sample.src, sample.dim, q.Dim)
		}
	}
}

func TestRendering(t *testing.T) {
	samples := []renderSample{
		{"2 + 2", "4"},
		{"1 / 3", "0.3333333333"},
		{"1m/s^2", "1 m/s²"},
		{"sqrt(4 m^2)", "2 m"},
		{"1 m/s -> km/h", "3.6 km/h"},
		{"2 m 3 s", "6 m·s"},
		{"5 kg^2 m", "5 kg²·m"},
		{"25 kg^2 m / s^3", "25 kg²·m/s³"},
		{"4 / (2 s)", "2 1/s"},
		{"3 µm", "3 μm"},
		{"1 m/s²", "1 m/s²"},
		{"25 kg²·m/s³", "25 kg²·m/s³"},
		{"4 m² -> km²", "4e-06 km²"},
		{"123456789012345678", "123456789012345680"},
	}

	c := newCalculator(t)
	for i, sample := range samples {
		q, e := c.Evaluate(sample.src)
		if e != nil {
			t.Errorf("sample #%d %q: got error: %s", i, sample.src, e)
			continue
		}

		if q.String() != sample.text {
			t.Errorf("sample #%d %q: expecting %q, got %q", i, sample.src, sample.text, q.String())
		}
	}
}

func TestErrors(t *testing.T) {
	samples := []errorSample{
		{"", parser.UnexpectedEoiError},
		{"2 +", parser.UnexpectedEoiError},
		{"(1 m", parser.UnexpectedEoiError},
		{"1 m ->", parser.UnexpectedEoiError},
		{"2 $ 3", parser.UnexpectedTokenError},
		{"5 foo", parser.UnexpectedTokenError},
		{"5 kmh", parser.UnexpectedTokenError},
		{"km", parser.UnexpectedTokenError},
		{"1 -> 2", parser.UnexpectedTokenError},
		{"1 m + 1 s", DimensionMismatchError},
		{"1 m - 1 kg", DimensionMismatchError},
		{"1 m % 1 s", DimensionMismatchError},
		{"log(1 m)", DimensionMismatchError},
		{"ln(2 s)", DimensionMismatchError},
		{"2^(1 m)", DimensionMismatchError},
		{"(3 m)!", DimensionMismatchError},
	}

	c := newCalculator(t)
	for i, sample := range samples {
		_, e := c.Evaluate(sample.src)
		if e == nil {
			t.Errorf("sample #%d %q: expecting error code %d, got success", i, sample.src, sample.err)
			continue
		}

		var ue *unitcalc.Error
		if !errors.As(e, &ue) || ue.Code != sample.err {
			t.Errorf("sample #%d %q: expecting error code %d, got %v", i, sample.src, sample.err, e)
		}
	}
}

func TestDimensionErrorCause(t *testing.T) {
	c := newCalculator(t)
	_, e := c.Evaluate("1 m + 1 s")
	ExpectErrorCode(t, DimensionMismatchError, e)

	var de quantity.DimensionError
	require.ErrorAs(t, e, &de)
	assert.Equal(t, quantity.Dim(1, 0, 0), de.Left)
	assert.Equal(t, quantity.Dim(0, 0, 1), de.Right)

	var ue *unitcalc.Error
	require.ErrorAs(t, e, &ue)
	assert.Equal(t, 1, ue.Line)
	assert.Equal(t, 5, ue.Col)
}

func TestUnknownUnitHint(t *testing.T) {
	c := newCalculator(t)
	_, e := c.Evaluate("5 kmh")
	ExpectErrorCode(t, parser.UnexpectedTokenError, e)
	assert.Contains(t, e.Error(), "did you mean")

	_, e = c.Evaluate("2 +")
	assert.NotContains(t, e.Error(), "did you mean")
}

func TestRoundTrip(t *testing.T) {
	values := []float64{0, 1, 42, -5, 0.1, 3.14159, 1e-7, -2.5e-10, 1.5e300, 123456789.125, 6.02214076e23}
	c := newCalculator(t)
	for _, v := range values {
		text := strconv.FormatFloat(v, 'g', -1, 64)
		q, e := c.Evaluate(text)
		require.NoError(t, e, text)
		assert.True(t, q.IsDimensionless(), text)
		assert.Equal(t, v, q.Value, text)
	}
}

func TestConversionRoundTrip(t *testing.T) {
	c := newCalculator(t)
	q, e := c.Evaluate("1234 m -> mi")
	require.NoError(t, e)
	assert.Equal(t, "mile", q.Units.Get(quantity.Length).Name)

	back, e := c.Evaluate(strconv.FormatFloat(q.Value, 'g', -1, 64) + " mi -> m")
	require.NoError(t, e)
	ExpectFloat(t, 1234, back.Value)

	same, e := c.Evaluate("1234 m -> m")
	require.NoError(t, e)
	assert.Equal(t, 1234.0, same.Value)
}

func TestUnitsContext(t *testing.T) {
	c := newCalculator(t)

	q, e := c.Evaluate("1 m -> km")
	require.NoError(t, e)
	assert.Equal(t, "kilometer", q.Units.Get(quantity.Length).Name)

	q, e = c.Evaluate("1m + 2m")
	require.NoError(t, e)
	assert.Equal(t, "meter", q.Units.Get(quantity.Length).Name)

	q, e = c.Evaluate("2 * 3 km")
	require.NoError(t, e)
	assert.Equal(t, "6000 m", q.String())

	q, e = c.Evaluate("1 s * 1 km")
	require.NoError(t, e)
	assert.Equal(t, "1000 m·s", q.String())

	q, e = c.Evaluate("1 km / 1 h")
	require.NoError(t, e)
	assert.Equal(t, "kilometer", q.Units.Get(quantity.Length).Name)
	assert.Equal(t, "second", q.Units.Get(quantity.Time).Name)
	ExpectFloat(t, 1.0/3600, q.Value)

	q, e = c.Evaluate("1 km/h")
	require.NoError(t, e)
	assert.Equal(t, "1 km/h", q.String())
}

func TestRenderedResultReadsBack(t *testing.T) {
	c := newCalculator(t)
	for _, src := range []string{"9.81 m/s^2", "5 kg^2 m / s^3", "60 km/h", "3 km h"} {
		q, e := c.Evaluate(src)
		require.NoError(t, e, src)
		back, e := c.Evaluate(q.String())
		require.NoError(t, e, q.String())
		assert.True(t, q.Equal(back, 1e-12), "%q -> %q -> %q", src, q.String(), back.String())
	}
}

func TestCommutativeAddition(t *testing.T) {
	c := newCalculator(t)
	a, e := c.Evaluate("2 m + 30 cm")
	require.NoError(t, e)
	b, e := c.Evaluate("30 cm + 2 m")
	require.NoError(t, e)
	assert.True(t, a.Equal(b, 1e-12))
}

func TestTokenize(t *testing.T) {
	c := newCalculator(t)
	tokens := c.Tokenize("1km+6.3m")
	texts := make([]string, len(tokens))
	for i, tok := range tokens {
		texts[i] = tok.Text()
	}
	assert.Equal(t, []string{"1", "km", "+", "6.3", "m"}, texts)
}

func TestDefaultEvaluate(t *testing.T) {
	q, e := Evaluate("1 ft -> in")
	require.NoError(t, e)
	ExpectFloat(t, 12, q.Value)
}

func TestConcurrentEvaluate(t *testing.T) {
	c := newCalculator(t)
	var wg sync.WaitGroup
	results := make([]float64, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, e := c.Evaluate("(" + strconv.Itoa(i) + " km + 1 m) -> m")
			if e == nil {
				results[i] = q.Value
			}
		}()
	}
	wg.Wait()

	for i, v := range results {
		ExpectFloat(t, float64(i)*1000+1, v)
	}
}

func TestLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, e := New(units.Default(), WithLogger(logger))
	require.NoError(t, e)
	assert.Same(t, units.Default(), c.Registry())

	_, e = c.Evaluate("1 m/s^2")
	require.NoError(t, e)
	assert.Contains(t, buf.String(), "msg=tokenized")
	assert.Contains(t, buf.String(), "trees=")
	assert.Contains(t, buf.String(), "msg=evaluated")
}

func TestGrammarReductions(t *testing.T) {
	g, e := NewGrammar(units.Default())
	require.NoError(t, e)
	for _, r := range g.Rules {
		assert.Contains(t, reductions, r.Name)
	}
	assert.Equal(t, len(reductions), len(g.Rules))
}

func TestNumberPredicates(t *testing.T) {
	assert.True(t, isNumber("12"))
	assert.True(t, isNumber(".5"))
	assert.True(t, isNumber("1e-3"))
	assert.False(t, isNumber("inf"))
	assert.False(t, isNumber("NaN"))
	assert.False(t, isNumber("-1"))
	assert.True(t, signedNumber('-')("-1"))
	assert.False(t, signedNumber('-')("+1"))
	assert.False(t, signedNumber('+')("+"))
}

package units

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/unitcalc"
	. "github.com/ava12/unitcalc/internal/test"
	"github.com/ava12/unitcalc/quantity"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	assert.Same(t, r, Default())

	si := r.SI()
	assert.Equal(t, "meter", si[quantity.Length].Name)
	assert.Equal(t, "kilogram", si[quantity.Mass].Name)
	assert.Equal(t, "second", si[quantity.Time].Name)
	assert.True(t, si.Equal(quantity.Units{}))

	for _, key := range []string{"m", "meter", "km", "kilometer", "μm", "um", "kg", "g", "s", "ms", "min", "hr", "h", "N", "kN", "Å", "mph"} {
		assert.True(t, r.IsUnit(key), key)
	}
	for _, key := range []string{"", "e", "pi", "sqrt", "log", "ln", "xyz", "KM"} {
		assert.False(t, r.IsUnit(key), key)
	}
}

func TestLookup(t *testing.T) {
	r := Default()

	q, found := r.Lookup("km")
	require.True(t, found)
	assert.Equal(t, 1.0, q.Value)
	assert.Equal(t, quantity.BaseDim(quantity.Length), q.Dim)
	assert.Equal(t, "kilometer", q.Units[quantity.Length].Name)
	assert.Equal(t, "kilogram", q.Units[quantity.Mass].Name)

	q, found = r.Lookup("kN")
	require.True(t, found)
	ExpectFloat(t, 1000, q.Value)
	assert.Equal(t, quantity.Dim(1, 1, -2), q.Dim)
	assert.True(t, q.Units.Equal(quantity.Units{}))

	q, _ = r.Lookup("μs")
	ExpectFloat(t, 1e-6, q.SI().Value)

	q, _ = r.Lookup("h")
	assert.Equal(t, "1 h", q.String())

	_, found = r.Lookup("parsec")
	assert.False(t, found)
}

func TestMatch(t *testing.T) {
	r := Default()
	samples := []struct {
		content string
		l       int
	}{
		{"km+6.3m", 2},
		{"m", 1},
		{"min", 3},
		{"mi/h", 2},
		{"μm)", 3},
		{"Å", 2},
		{"kilometer^2", 9},
		{"+1", 0},
		{"", 0},
	}

	for i, s := range samples {
		l := r.Match([]byte(s.content))
		if l != s.l {
			t.Errorf("sample #%d (%q): expecting %d, got %d", i, s.content, s.l, l)
		}
	}
}

func TestKeys(t *testing.T) {
	keys := Default().Keys()
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "megawatt")
	assert.Contains(t, keys, "μL")
}

func TestSuggest(t *testing.T) {
	r := Default()
	s, found := r.Suggest("kilometr")
	assert.True(t, found)
	assert.Equal(t, "kilometer", s)

	_, found = r.Suggest("qqqqqqqqqqqqqq")
	assert.False(t, found)
}

func TestCatalogErrors(t *testing.T) {
	samples := []struct {
		name, catalog string
		code          int
	}{
		{"bad toml", `[[family]`, DecodeError},
		{"unknown field", `
[[family]]
name = "length"
bogus = 1
`, DecodeError},
		{"unknown base", `
[[family]]
name = "charge"
base = "current"
`, FamilyError},
		{"no dimension", `
[[family]]
name = "force"
dimension = [1, 1]
`, FamilyError},
		{"missing base", `
[[family]]
name = "length"
base = "length"
si = "meter"
  [[family.unit]]
  name = "meter"
  abbrev = "m"
  factor = 1.0
`, SIUnitError},
		{"bad si factor", `
[[family]]
name = "length"
base = "length"
si = "foot"
  [[family.unit]]
  name = "foot"
  abbrev = "ft"
  factor = 0.3048
`, SIUnitError},
		{"duplicate key", `
[[family]]
name = "length"
base = "length"
si = "meter"
  [[family.unit]]
  name = "meter"
  abbrev = "m"
  factor = 1.0
  metric = true
  [[family.unit]]
  name = "micron"
  abbrev = "um"
  factor = 1e-6
`, DuplicateKeyError},
		{"zero factor", `
[[family]]
name = "length"
base = "length"
si = "meter"
  [[family.unit]]
  name = "meter"
  factor = 0.0
`, UnitDefError},
		{"whitespace", `
[[family]]
name = "length"
base = "length"
si = "meter"
  [[family.unit]]
  name = "meter"
  abbrev = "m m"
  factor = 1.0
`, UnitDefError},
	}

	for _, s := range samples {
		t.Run(s.name, func(t *testing.T) {
			_, e := Load(s.name, []byte(s.catalog))
			ExpectErrorCode(t, s.code, e)
		})
	}
}

func TestDecodeErrorPosition(t *testing.T) {
	_, e := Load("broken.toml", []byte("[[family]]\nname = \n"))
	var ue *unitcalc.Error
	require.True(t, errors.As(e, &ue))
	assert.Equal(t, DecodeError, ue.Code)
	assert.Equal(t, 2, ue.Line)
	assert.Equal(t, "broken.toml", ue.SourceName)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini.toml")
	catalog := `
[[family]]
name = "length"
base = "length"
si = "meter"
  [[family.unit]]
  name = "meter"
  abbrev = "m"
  factor = 1.0
  [[family.unit]]
  name = "furlong"
  abbrev = "fur"
  factor = 201.168

[[family]]
name = "mass"
base = "mass"
si = "kilogram"
  [[family.unit]]
  name = "kilogram"
  abbrev = "kg"
  factor = 1.0

[[family]]
name = "time"
base = "time"
si = "fortnight"
  [[family.unit]]
  name = "second"
  abbrev = "s"
  factor = 1.0
  [[family.unit]]
  name = "fortnight"
  abbrev = "ftn"
  factor = 1209600.0
`
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o644))
	_, e := LoadFile(path)
	ExpectErrorCode(t, SIUnitError, e)

	fixed := strings.Replace(catalog, `si = "fortnight"`, `si = "second"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(fixed), 0o644))
	r, e := LoadFile(path)
	require.NoError(t, e)
	q, found := r.Lookup("fur")
	require.True(t, found)
	ExpectFloat(t, 201.168, q.SI().Value)
	assert.False(t, r.IsUnit("km"))

	_, e = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	ExpectErrorCode(t, ReadError, e)
}

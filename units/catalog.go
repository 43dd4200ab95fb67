package units

import (
	"bytes"
	_ "embed"
	"errors"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed catalog.toml
var defaultCatalog []byte

// Catalog is the unit data table as stored in TOML file.
type Catalog struct {
	Families []Family `toml:"family"`
}

// Family groups units of the same dimension.
type Family struct {
	Name string `toml:"name"`

	// Base contains base dimension name (length, mass, time) for base families.
	Base string `toml:"base"`

	// Dimension contains [length, mass, time] exponents for derived families.
	Dimension []float64 `toml:"dimension"`

	// SI contains name of SI unit for base families.
	SI string `toml:"si"`

	Units []UnitDef `toml:"unit"`
}

// UnitDef describes a single unit.
type UnitDef struct {
	Name   string `toml:"name"`
	Abbrev string `toml:"abbrev"`

	// Symbol defaults to Abbrev.
	Symbol string `toml:"symbol"`

	// Factor is the number of SI units in one unit.
	Factor float64 `toml:"factor"`

	// Metric adds units with all SI prefixes.
	Metric bool `toml:"metric"`
}

// DecodeCatalog parses TOML catalog, unknown fields are not allowed.
func DecodeCatalog(name string, data []byte) (*Catalog, error) {
	var c Catalog
	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	e := d.Decode(&c)
	if e == nil {
		return &c, nil
	}

	var de *toml.DecodeError
	if errors.As(e, &de) {
		line, col := de.Position()
		return nil, decodeError(name, line, col, e)
	}
	return nil, decodeError(name, 0, 0, e)
}

// Load creates registry from TOML catalog.
func Load(name string, data []byte) (*Registry, error) {
	c, e := DecodeCatalog(name, data)
	if e != nil {
		return nil, e
	}
	return New(c)
}

// LoadFile creates registry from TOML catalog file.
func LoadFile(path string) (*Registry, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return nil, readError(path, e)
	}
	return Load(path, data)
}

// DefaultCatalog returns a fresh copy of embedded catalog.
func DefaultCatalog() *Catalog {
	c, e := DecodeCatalog("catalog.toml", defaultCatalog)
	if e != nil {
		panic(e)
	}
	return c
}

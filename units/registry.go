// Package units defines unit registry: an immutable set of units loaded from a catalog.
//
// Each unit is registered under its name, abbreviation, and symbol ("kilometer", "km").
// Keys are matched exactly, case-sensitively.
package units

import (
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/ava12/unitcalc/internal/bmap"
	"github.com/ava12/unitcalc/quantity"
)

type prefix struct {
	name, abbrev, symbol string
	power                int
}

var metricPrefixes = []prefix{
	{"yotta", "Y", "Y", 24},
	{"zetta", "Z", "Z", 21},
	{"exa", "E", "E", 18},
	{"peta", "P", "P", 15},
	{"tera", "T", "T", 12},
	{"giga", "G", "G", 9},
	{"mega", "M", "M", 6},
	{"kilo", "k", "k", 3},
	{"hecto", "h", "h", 2},
	{"deca", "da", "da", 1},
	{"deci", "d", "d", -1},
	{"centi", "c", "c", -2},
	{"milli", "m", "m", -3},
	{"micro", "u", "μ", -6},
	{"nano", "n", "n", -9},
	{"pico", "p", "p", -12},
	{"femto", "f", "f", -15},
	{"atto", "a", "a", -18},
	{"zepto", "z", "z", -21},
	{"yocto", "y", "y", -24},
}

const siFactorEps = 1e-12

// Registry is immutable and safe for concurrent use.
type Registry struct {
	keys  *bmap.BMap[*quantity.Unit]
	names map[string]*quantity.Unit
	list  []string
	si    quantity.Units
}

// New creates registry from catalog.
// Returns *unitcalc.Error if catalog is inconsistent.
func New(c *Catalog) (*Registry, error) {
	r := &Registry{
		keys:  bmap.New[*quantity.Unit](256),
		names: make(map[string]*quantity.Unit),
	}
	var baseFamilies [quantity.BaseCount]string

	for _, f := range c.Families {
		base := quantity.NoBase
		var dim quantity.Dimension
		if f.Base != "" {
			var valid bool
			base, valid = quantity.ParseBase(f.Base)
			if !valid {
				return nil, unknownBaseError(f.Name, f.Base)
			}
			if baseFamilies[base] != "" {
				return nil, duplicateBaseError(f.Name, f.Base)
			}
			baseFamilies[base] = f.Name
			dim = quantity.BaseDim(base)
		} else if len(f.Dimension) == quantity.BaseCount {
			copy(dim[:], f.Dimension)
		} else {
			return nil, familyDimensionError(f.Name)
		}

		for _, ud := range f.Units {
			if e := r.addUnits(f.Name, base, dim, ud); e != nil {
				return nil, e
			}
		}

		if base != quantity.NoBase {
			si := r.names[f.SI]
			if si == nil || si.Family != f.Name {
				return nil, siUnitError(f.Name, f.SI)
			}
			if math.Abs(si.Factor-1) > siFactorEps {
				return nil, siFactorError(f.Name, f.SI, si.Factor)
			}
			r.si[base] = si
		}
	}

	for b, name := range baseFamilies {
		if name == "" {
			return nil, missingBaseError(quantity.Base(b).String())
		}
	}

	sort.Strings(r.list)
	return r, nil
}

func (r *Registry) addUnits(family string, base quantity.Base, dim quantity.Dimension, ud UnitDef) error {
	if ud.Name == "" {
		return unitDefError(family, ud.Name, "empty name")
	}
	if !(ud.Factor > 0) || math.IsInf(ud.Factor, 0) {
		return unitDefError(family, ud.Name, "factor must be positive")
	}
	if ud.Abbrev == "" {
		ud.Abbrev = ud.Name
	}
	if ud.Symbol == "" {
		ud.Symbol = ud.Abbrev
	}

	u := &quantity.Unit{
		Family: family,
		Name:   ud.Name,
		Abbrev: ud.Abbrev,
		Symbol: ud.Symbol,
		Base:   base,
		Factor: ud.Factor,
		Dim:    dim,
	}
	if e := r.register(u); e != nil {
		return e
	}

	if !ud.Metric {
		return nil
	}

	for _, p := range metricPrefixes {
		pu := *u
		pu.Name = p.name + u.Name
		pu.Abbrev = p.abbrev + u.Abbrev
		pu.Symbol = p.symbol + u.Symbol
		pu.Factor = u.Factor * math.Pow10(p.power)
		if e := r.register(&pu); e != nil {
			return e
		}
	}
	return nil
}

func (r *Registry) register(u *quantity.Unit) error {
	if r.names[u.Name] != nil {
		return duplicateKeyError(u.Name, r.names[u.Name].Name, u.Name)
	}
	r.names[u.Name] = u

	for _, key := range []string{u.Name, u.Abbrev, u.Symbol} {
		if strings.IndexFunc(key, unicode.IsSpace) >= 0 {
			return unitDefError(u.Family, u.Name, "key contains whitespace")
		}

		prev, has := r.keys.Get([]byte(key))
		if has {
			if prev != u {
				return duplicateKeyError(key, prev.Name, u.Name)
			}
			continue
		}

		r.keys.Set([]byte(key), u)
		r.list = append(r.list, key)
	}
	return nil
}

// Unit returns unit registered under key (name, abbreviation, or symbol) or nil.
func (r *Registry) Unit(key string) *quantity.Unit {
	u, _ := r.keys.Get([]byte(key))
	return u
}

// Lookup returns quantity of one unit registered under key.
// Base units are expressed in their own slot of SI context, e.g. "km" gives 1 km,
// derived units are converted to SI, e.g. "kN" gives 1000 kg·m/s².
func (r *Registry) Lookup(key string) (quantity.Quantity, bool) {
	u := r.Unit(key)
	if u == nil {
		return quantity.Quantity{}, false
	}
	return u.One(r.si), true
}

// IsUnit tells whether key is registered.
func (r *Registry) IsUnit(key string) bool {
	_, has := r.keys.Get([]byte(key))
	return has
}

// Match returns length in bytes of the longest registered key that is a prefix of content
// or 0 if there is no such key.
func (r *Registry) Match(content []byte) int {
	l, _ := r.keys.Longest(content)
	if l < 0 {
		return 0
	}
	return l
}

// Keys returns all registered keys in ascending order.
func (r *Registry) Keys() []string {
	result := make([]string, len(r.list))
	copy(result, r.list)
	return result
}

// SI returns units context containing SI units of the catalog.
func (r *Registry) SI() quantity.Units {
	return r.si
}

// Suggest returns the registered key most similar to word, if similarity is at least 0.5.
func (r *Registry) Suggest(word string) (string, bool) {
	if word == "" {
		return "", false
	}

	lev := metrics.NewLevenshtein()
	best := ""
	bestScore := 0.5
	for _, key := range r.list {
		score := strutil.Similarity(word, key, lev)
		if score > bestScore || (score == bestScore && best == "") {
			best = key
			bestScore = score
		}
	}
	return best, best != ""
}

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	return New(DefaultCatalog())
})

// Default returns registry built from embedded catalog.
func Default() *Registry {
	r, e := defaultRegistry()
	if e != nil {
		panic(e)
	}
	return r
}

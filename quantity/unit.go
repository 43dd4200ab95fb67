package quantity

import "strings"

// Unit is an immutable unit catalog entry.
type Unit struct {
	Family string
	Name   string
	Abbrev string
	Symbol string

	// Base is the base dimension slot for units of base families, NoBase for derived units.
	Base Base

	// Factor is the number of SI units in one unit.
	Factor float64

	// Dim is BaseDim(Base) for base units, arbitrary vector for derived units.
	Dim Dimension
}

// SI units used for empty Units slots.
var (
	Meter    = &Unit{Family: "length", Name: "meter", Abbrev: "m", Symbol: "m", Base: Length, Factor: 1, Dim: BaseDim(Length)}
	Kilogram = &Unit{Family: "mass", Name: "kilogram", Abbrev: "kg", Symbol: "kg", Base: Mass, Factor: 1, Dim: BaseDim(Mass)}
	Second   = &Unit{Family: "time", Name: "second", Abbrev: "s", Symbol: "s", Base: Time, Factor: 1, Dim: BaseDim(Time)}
)

var defaultUnits = [BaseCount]*Unit{Meter, Kilogram, Second}

func (u *Unit) String() string {
	return u.Symbol
}

// One returns quantity of one unit u.
// Base units are expressed in their own slot of si, derived units are converted to si.
func (u *Unit) One(si Units) Quantity {
	if u.Base == NoBase {
		return Quantity{Value: u.Factor, Dim: u.Dim, Units: si}
	}
	return Quantity{Value: 1, Dim: u.Dim, Units: si.With(u)}
}

// Units is a units context: one unit per base dimension.
// nil slot means SI unit for that base, so zero value is SI context.
type Units [BaseCount]*Unit

// Get returns unit used for base b.
func (us Units) Get(b Base) *Unit {
	if us[b] == nil {
		return defaultUnits[b]
	}
	return us[b]
}

// With returns context with base unit u put in its slot.
// Units of derived families are ignored.
func (us Units) With(u *Unit) Units {
	if u.Base >= 0 && u.Base < BaseCount {
		us[u.Base] = u
	}
	return us
}

// Equal compares unit names slot by slot.
func (us Units) Equal(o Units) bool {
	for b := Base(0); b < BaseCount; b++ {
		if us.Get(b).Name != o.Get(b).Name {
			return false
		}
	}
	return true
}

// ConversionFactor returns the number of SI units in one unit of us^d.
func (us Units) ConversionFactor(d Dimension) float64 {
	result := 1.0
	for b := Base(0); b < BaseCount; b++ {
		if d[b] != 0 {
			result *= pow(us.Get(b).Factor, d[b])
		}
	}
	return result
}

func (us Units) String() string {
	symbols := make([]string, BaseCount)
	for b := Base(0); b < BaseCount; b++ {
		symbols[b] = us.Get(b).Symbol
	}
	return "{" + strings.Join(symbols, ", ") + "}"
}

// Merge returns context using slots of left where left dimension is non-zero
// and slots of right where only right dimension is non-zero.
func Merge(left Units, ld Dimension, right Units, rd Dimension) Units {
	for b := range left {
		if ld[b] == 0 && rd[b] != 0 {
			left[b] = right[b]
		}
	}
	return left
}

// Package quantity implements dimensional quantities: a value, a dimension vector,
// and a units context the value is expressed in.
//
// All types are immutable values, operations return new quantities.
package quantity

import (
	"math"
)

// Quantity is a value expressed in Units^Dim.
// Zero value is dimensionless zero in SI context.
type Quantity struct {
	Value float64
	Dim   Dimension
	Units Units
}

// New creates quantity.
func New(value float64, dim Dimension, units Units) Quantity {
	return Quantity{value, dim, units}
}

// Scalar creates dimensionless quantity.
func Scalar(value float64) Quantity {
	return Quantity{Value: value}
}

func pow(x, y float64) float64 {
	if y == 1 {
		return x
	}
	return math.Pow(x, y)
}

// IsDimensionless reports whether all dimension exponents are zero.
func (q Quantity) IsDimensionless() bool {
	return q.Dim.IsZero()
}

// In re-expresses q in units context us, physical magnitude is preserved.
func (q Quantity) In(us Units) Quantity {
	if q.Units == us {
		return q
	}

	q.Value = q.Value * q.Units.ConversionFactor(q.Dim) / us.ConversionFactor(q.Dim)
	q.Units = us
	return q
}

// SI returns q expressed in SI units.
func (q Quantity) SI() Quantity {
	return q.In(Units{})
}

func (q Quantity) checkDim(r Quantity) error {
	if q.Dim != r.Dim {
		return DimensionError{q.Dim, r.Dim}
	}
	return nil
}

// Add returns q + r in units of q. Dimensions must be equal.
func (q Quantity) Add(r Quantity) (Quantity, error) {
	if e := q.checkDim(r); e != nil {
		return Quantity{}, e
	}

	q.Value += r.In(q.Units).Value
	return q, nil
}

// Sub returns q - r in units of q. Dimensions must be equal.
func (q Quantity) Sub(r Quantity) (Quantity, error) {
	return q.Add(r.Neg())
}

// Mod returns remainder of q / r (sign of q) in units of q. Dimensions must be equal.
func (q Quantity) Mod(r Quantity) (Quantity, error) {
	if e := q.checkDim(r); e != nil {
		return Quantity{}, e
	}

	q.Value = math.Mod(q.Value, r.In(q.Units).Value)
	return q, nil
}

// Mul returns q * r in units of q, r is converted to units of q.
func (q Quantity) Mul(r Quantity) Quantity {
	r = r.In(q.Units)
	return Quantity{q.Value * r.Value, q.Dim.Add(r.Dim), q.Units}
}

// Div returns q / r in units of q, r is converted to units of q.
func (q Quantity) Div(r Quantity) Quantity {
	r = r.In(q.Units)
	return Quantity{q.Value / r.Value, q.Dim.Sub(r.Dim), q.Units}
}

// MulUnits returns q * r combining units contexts: result uses units of q for dimensions
// present in q and units of r for dimensions present only in r.
// It composes units expressions like "km h" and attaches units to numbers.
func (q Quantity) MulUnits(r Quantity) Quantity {
	us := Merge(q.Units, q.Dim, r.Units, r.Dim)
	q = q.In(us)
	r = r.In(us)
	return Quantity{q.Value * r.Value, q.Dim.Add(r.Dim), us}
}

// DivUnits returns q / r, units are chosen as for MulUnits.
func (q Quantity) DivUnits(r Quantity) Quantity {
	us := Merge(q.Units, q.Dim, r.Units, r.Dim)
	q = q.In(us)
	r = r.In(us)
	return Quantity{q.Value / r.Value, q.Dim.Sub(r.Dim), us}
}

// Pow raises value to power x and scales dimension by x.
func (q Quantity) Pow(x float64) Quantity {
	return Quantity{pow(q.Value, x), q.Dim.Scale(x), q.Units}
}

// Inv returns 1 / q.
func (q Quantity) Inv() Quantity {
	return q.Pow(-1)
}

// Neg returns -q.
func (q Quantity) Neg() Quantity {
	q.Value = -q.Value
	return q
}

// Float returns value of dimensionless quantity.
// Returns DimensionError if q is not dimensionless.
func (q Quantity) Float() (float64, error) {
	if !q.IsDimensionless() {
		return 0, DimensionError{q.Dim, Dimension{}}
	}
	return q.Value, nil
}

// Apply returns dimensionless quantity f(value).
// Returns DimensionError if q is not dimensionless.
func (q Quantity) Apply(f func(float64) float64) (Quantity, error) {
	x, e := q.Float()
	if e != nil {
		return Quantity{}, e
	}
	q.Value = f(x)
	return q, nil
}

// Equal reports whether q and r have the same dimension and the same magnitude
// within relative tolerance eps.
func (q Quantity) Equal(r Quantity, eps float64) bool {
	if q.Dim != r.Dim {
		return false
	}

	a := q.Value
	b := r.In(q.Units).Value
	if a == b {
		return true
	}
	return math.Abs(a-b) <= eps*math.Max(math.Abs(a), math.Abs(b))
}

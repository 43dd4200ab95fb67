package quantity

import (
	"math"
	"strconv"
	"strings"
)

// Base identifies a base dimension.
type Base int

const (
	Length Base = iota
	Mass
	Time

	// BaseCount is the number of base dimensions.
	BaseCount = 3

	// NoBase is used by units of derived families (force, energy, etc.).
	NoBase Base = -1
)

var baseNames = [BaseCount]string{"length", "mass", "time"}
var baseLetters = [BaseCount]string{"L", "M", "T"}

func (b Base) String() string {
	if b >= 0 && b < BaseCount {
		return baseNames[b]
	}
	return "none"
}

// ParseBase converts base dimension name to Base, returns NoBase and false for unknown names.
func ParseBase(name string) (Base, bool) {
	for i, n := range baseNames {
		if n == name {
			return Base(i), true
		}
	}
	return NoBase, false
}

// Dimension contains exponent of each base dimension.
// Zero value is dimensionless.
type Dimension [BaseCount]float64

// Dim creates dimension vector.
func Dim(length, mass, time float64) Dimension {
	return Dimension{length, mass, time}
}

// BaseDim returns dimension of a single base.
func BaseDim(b Base) Dimension {
	var d Dimension
	if b >= 0 && b < BaseCount {
		d[b] = 1
	}
	return d
}

func (d Dimension) Add(o Dimension) Dimension {
	for i := range d {
		d[i] += o[i]
	}
	return d
}

func (d Dimension) Sub(o Dimension) Dimension {
	for i := range d {
		d[i] -= o[i]
	}
	return d
}

func (d Dimension) Scale(x float64) Dimension {
	for i := range d {
		d[i] *= x
	}
	return d
}

func (d Dimension) IsZero() bool {
	return d == Dimension{}
}

// String returns dimension formula like "L·T⁻²", "1" for dimensionless.
func (d Dimension) String() string {
	parts := make([]string, 0, BaseCount)
	for i, x := range d {
		if x != 0 {
			parts = append(parts, baseLetters[i]+exponent(x, true))
		}
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, "·")
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'-': '⁻',
}

// ParseSuperscript converts superscript integer like "²" or "⁻¹²" to number.
func ParseSuperscript(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}

	digits := make([]rune, 0, len(text))
	for _, r := range text {
		found := false
		for d, sup := range superscripts {
			if sup == r {
				digits = append(digits, d)
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}

	x, e := strconv.ParseInt(string(digits), 10, 64)
	if e != nil {
		return 0, false
	}
	return float64(x), true
}

func isInt(x float64) bool {
	return x == math.Trunc(x) && math.Abs(x) < 1e15
}

// exponent renders x as superscript if integer, as "^(x)" otherwise.
// Exponent 1 is omitted unless forced.
func exponent(x float64, omitOne bool) string {
	if x == 1 && omitOne {
		return ""
	}
	if !isInt(x) {
		return "^(" + strconv.FormatFloat(x, 'g', -1, 64) + ")"
	}

	digits := strconv.FormatInt(int64(x), 10)
	sb := strings.Builder{}
	for _, r := range digits {
		sb.WriteRune(superscripts[r])
	}
	return sb.String()
}

// DimensionError is returned when operands of addition, subtraction, modulo,
// or operands of dimensionless-only functions have wrong dimensions.
type DimensionError struct {
	Left, Right Dimension
}

func (e DimensionError) Error() string {
	return "incompatible dimensions: " + e.Left.String() + " and " + e.Right.String()
}

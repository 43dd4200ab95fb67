package calc

import (
	"errors"
	"math"

	"github.com/ava12/unitcalc/quantity"
)

// reduction computes value of a rule application from values of rule body symbols.
// Operator terminals have zero values.
type reduction func(args []quantity.Quantity) (quantity.Quantity, error)

func first(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0], nil
}

func second(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[1], nil
}

func add(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0].Add(args[2])
}

func sub(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0].Sub(args[2])
}

func mul(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0].Mul(args[2]), nil
}

func div(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0].Div(args[2]), nil
}

func mod(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0].Mod(args[2])
}

func implicitMul(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0].Mul(args[1]), nil
}

func neg(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[1].Neg(), nil
}

func power(args []quantity.Quantity) (quantity.Quantity, error) {
	x, e := args[2].Float()
	if e != nil {
		return quantity.Quantity{}, e
	}
	return args[0].Pow(x), nil
}

func superscriptPower(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0].Pow(args[1].Value), nil
}

func factorial(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0].Apply(func(x float64) float64 {
		return math.Gamma(x + 1)
	})
}

func sqrt(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[1].Pow(0.5), nil
}

func apply(f func(float64) float64) reduction {
	return func(args []quantity.Quantity) (quantity.Quantity, error) {
		return args[1].Apply(f)
	}
}

func numberUnits(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0].MulUnits(args[1]), nil
}

func numberPowerUnits(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0].Pow(args[2].Value).MulUnits(args[3]), nil
}

func joinUnits(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0].MulUnits(args[1]), nil
}

func mulUnits(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0].MulUnits(args[2]), nil
}

func divUnits(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0].DivUnits(args[2]), nil
}

func unitPower(args []quantity.Quantity) (quantity.Quantity, error) {
	return args[0].Pow(args[2].Value), nil
}

// convert re-expresses left operand in units of the right one,
// base dimensions missing in target units keep their units.
func convert(args []quantity.Quantity) (quantity.Quantity, error) {
	q, target := args[0], args[2]
	return q.In(quantity.Merge(target.Units, target.Dim, q.Units, q.Dim)), nil
}

var reductions = map[string]reduction{
	"equation -> expr":          first,
	"equation -> expr -> units": convert,

	"expr -> term":          first,
	"expr -> expr + term":   add,
	"expr -> expr - term":   sub,
	"term -> factor":        first,
	"term -> term * factor": mul,
	"term -> term · factor": mul,
	"term -> term / factor": div,
	"term -> term % factor": mod,
	"term -> term group":    implicitMul,

	"factor -> power":           first,
	"factor -> - factor":        neg,
	"factor -> + factor":        second,
	"power -> postfix":          first,
	"power -> postfix ^ factor": power,
	"power -> postfix $sup":     superscriptPower,
	"postfix -> group":          first,
	"postfix -> postfix !":      factorial,

	"group -> quantity":   first,
	"group -> ( expr )":   second,
	"group -> sqrt group": sqrt,
	"group -> log group":  apply(math.Log10),
	"group -> ln group":   apply(math.Log),
	"group -> e":          first,
	"group -> pi":         first,

	"quantity -> number":                first,
	"quantity -> number units":          numberUnits,
	"quantity -> number ^ number units": numberPowerUnits,
	"number -> $num":                    first,
	"number -> $plus-num":               first,
	"number -> $minus-num":              first,

	"units -> unit-power":          first,
	"units -> units unit-power":    joinUnits,
	"units -> units * unit-power":  mulUnits,
	"units -> units · unit-power":  mulUnits,
	"units -> units / unit-power":  divUnits,
	"unit-power -> $unit":          first,
	"unit-power -> $unit ^ number": unitPower,
	"unit-power -> $unit $sup":     superscriptPower,
}

func isDimensionError(e error) bool {
	var de quantity.DimensionError
	return errors.As(e, &de)
}

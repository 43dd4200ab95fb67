package unitcalc_test

import (
	"errors"
	"fmt"

	"github.com/ava12/unitcalc"
	"github.com/ava12/unitcalc/calc"
	"github.com/ava12/unitcalc/parser"
)

func Example() {
	for _, input := range []string{"2 km + 500 m", "1 m/s -> km/h", "25 kg^2 m / s^3", "5!"} {
		q, e := calc.Evaluate(input)
		if e != nil {
			fmt.Println(e)
			continue
		}
		fmt.Println(q)
	}

	_, e := calc.Evaluate("1 m + 1 s")
	var ue *unitcalc.Error
	if errors.As(e, &ue) && ue.Code == calc.DimensionMismatchError {
		fmt.Println("dimension mismatch")
	}

	_, e = calc.Evaluate("2 *")
	if errors.As(e, &ue) && ue.Code == parser.UnexpectedEoiError {
		fmt.Println("incomplete")
	}

	// Output:
	// 2.5 km
	// 3.6 km/h
	// 25 kg²·m/s³
	// 120
	// dimension mismatch
	// incomplete
}

package quantity

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

type symbolExp struct {
	symbol string
	exp    float64
}

func joinSymbols(ses []symbolExp) string {
	parts := make([]string, len(ses))
	for i, se := range ses {
		parts[i] = se.symbol + exponent(se.exp, true)
	}
	return strings.Join(parts, "·")
}

// UnitString returns unit suffix like "kg²·m/s³", "1/s", or "" for dimensionless.
func (q Quantity) UnitString() string {
	var pos, neg []symbolExp
	for b := Base(0); b < BaseCount; b++ {
		x := q.Dim[b]
		if x > 0 {
			pos = append(pos, symbolExp{q.Units.Get(b).Symbol, x})
		} else if x < 0 {
			neg = append(neg, symbolExp{q.Units.Get(b).Symbol, -x})
		}
	}
	sort.SliceStable(pos, func(i, j int) bool { return pos[i].exp > pos[j].exp })
	sort.SliceStable(neg, func(i, j int) bool { return neg[i].exp > neg[j].exp })

	switch {
	case len(pos) == 0 && len(neg) == 0:
		return ""
	case len(neg) == 0:
		return joinSymbols(pos)
	case len(pos) == 0:
		return "1/" + joinSymbols(neg)
	default:
		return joinSymbols(pos) + "/" + joinSymbols(neg)
	}
}

// FormatValue renders integral values without decimal point
// and other values with up to 10 significant digits.
func FormatValue(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	if x == math.Trunc(x) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return strconv.FormatFloat(x, 'g', 10, 64)
}

// String renders quantity like "9.81 m/s²".
func (q Quantity) String() string {
	result := FormatValue(q.Value)
	if us := q.UnitString(); us != "" {
		result += " " + us
	}
	return result
}

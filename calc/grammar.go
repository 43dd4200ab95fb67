package calc

import (
	"strconv"

	"github.com/ava12/unitcalc/grammar"
	"github.com/ava12/unitcalc/langdef"
	"github.com/ava12/unitcalc/quantity"
	"github.com/ava12/unitcalc/units"
)

const calcGrammar = `
!extern $num $plus-num $minus-num $unit $sup;
!reserved 'e' 'pi' 'sqrt' 'log' 'ln';

equation = expr | expr '->' units;
expr = term | expr '+' term | expr '-' term;
term = factor | term '*' factor | term '·' factor | term '/' factor | term '%' factor | term group;
factor = power | '-' factor | '+' factor;
power = postfix | postfix '^' factor | postfix $sup;
postfix = group | postfix '!';
group = quantity | '(' expr ')' | 'sqrt' group | 'log' group | 'ln' group | 'e' | 'pi';
quantity = number | number units | number '^' number units;
number = $num | $plus-num | $minus-num;

# units expression has no numbers except exponents
units = unit-power | units unit-power | units '*' unit-power | units '·' unit-power | units '/' unit-power;
unit-power = $unit | $unit '^' number | $unit $sup;
`

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isNumber accepts decimal literals only, ParseFloat alone would also take "inf" or "0x1p3".
func isNumber(text string) bool {
	if text == "" || !(isDigit(text[0]) || text[0] == '.') {
		return false
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !isDigit(c) && c != '.' && c != 'e' && c != 'E' && c != '+' && c != '-' {
			return false
		}
	}
	_, e := strconv.ParseFloat(text, 64)
	return e == nil
}

func isSuperscript(text string) bool {
	_, ok := quantity.ParseSuperscript(text)
	return ok
}

func signedNumber(sign byte) grammar.Predicate {
	return func(text string) bool {
		return len(text) > 1 && text[0] == sign && isNumber(text[1:])
	}
}

// NewGrammar builds expression grammar, $unit terminal matches keys of r.
func NewGrammar(r *units.Registry) (*grammar.Grammar, error) {
	externs := map[string]grammar.Predicate{
		"num":       isNumber,
		"plus-num":  signedNumber('+'),
		"minus-num": signedNumber('-'),
		"unit":      r.IsUnit,
		"sup":       isSuperscript,
	}
	return langdef.ParseString("calc", calcGrammar, externs)
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ava12/unitcalc"
	"github.com/ava12/unitcalc/calc"
	"github.com/ava12/unitcalc/parser"
)

const helpText = `
Enter an expression to compute it, e.g.
  2 km + 500 m
  9.81 m/s^2 * 80 kg
  sqrt(16 m^2) / 2 s
  60 mph -> km/h

Numbers may be followed by units: 3 kg, 1.5 km/h, 2 m^2, 2 m², 10^3 m.
Operators are + - * · / % ^ ! and brackets, a number or bracketed expression
placed next to another one is multiplied by it. + - and % need operands
of the same dimension, ^ needs dimensionless exponent.
Functions sqrt, log, ln, and constants e, pi are available.
"expr -> units" shows the result in other units.

Incomplete expression may be continued on the next line.
Empty line exits.

`

// session is an interactive read-eval-print loop.
type session struct {
	calc        *calc.Calculator
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

func newSession(c *calc.Calculator, in io.Reader, out io.Writer, interactive bool) *session {
	return &session{c, bufio.NewReader(in), out, interactive}
}

func (s *session) scan() (string, error) {
	res, e := s.reader.ReadString('\n')
	res = strings.TrimRight(res, "\r\n")
	if e == io.EOF && res != "" {
		e = nil
	}
	return res, e
}

func (s *session) prompt(text string) {
	if s.interactive {
		fmt.Fprint(s.out, text)
	}
}

func (s *session) writeResult(text string) {
	fmt.Fprintln(s.out, " =", text)
}

func (s *session) writeError(text string) {
	fmt.Fprintln(s.out, color.RedString(" ! %s", text))
}

func (s *session) run() error {
	if s.interactive {
		fmt.Fprintln(s.out, "Unit calculator. help for quick help, empty line to exit.")
		fmt.Fprintln(s.out)
	}

	prevInput := ""
	appendInput := false
	for {
		if appendInput {
			s.prompt("-> ")
		} else {
			s.prompt(">> ")
		}

		input, e := s.scan()
		if e != nil && e != io.EOF {
			return e
		}
		if strings.TrimSpace(input) == "" {
			if appendInput {
				s.writeError("incomplete expression: " + prevInput)
			}
			break
		}

		if strings.TrimSpace(input) == "help" {
			appendInput = false
			fmt.Fprint(s.out, helpText)
			continue
		}

		if appendInput {
			input = prevInput + "\n" + input
			appendInput = false
		}

		q, e := s.calc.Evaluate(input)
		if e == nil {
			s.writeResult(q.String())
			continue
		}

		var ue *unitcalc.Error
		if errors.As(e, &ue) && ue.Code == parser.UnexpectedEoiError {
			appendInput = true
			prevInput = input
		} else {
			s.writeError(e.Error())
		}
	}

	if s.interactive {
		fmt.Fprintln(s.out)
	}
	return nil
}

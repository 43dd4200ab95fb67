// Package calc evaluates arithmetic expressions over physical quantities.
//
// Expression is tokenized using unit registry, parsed to a forest by Earley parser,
// and reduced to quantity.Quantity. If an expression is ambiguous, e.g. "1 m/s^2" may mean
// either 1 m/s² or (1 m/s)², derivations of each forest node are evaluated in grammar rule order
// and the first one that evaluates successfully is used.
//
// Expression language:
//
//	42, 1.5e-3, +2, -7        numbers
//	2 km, 9.81 m/s^2, 3 kg m  quantities, units follow a number
//	1 m², 2 s⁻¹               superscript exponents, same as ^
//	10^3 m                    power of ten for a quantity
//	+ - * · / %               arithmetics, + - and % need equal dimensions
//	2 m 3 s                   implicit multiplication
//	^ !                       power (dimensionless exponent), factorial (dimensionless operand)
//	sqrt log ln               square root, decimal and natural logarithms (dimensionless operand)
//	e pi                      constants
//	expr -> km/h              conversion to other units
package calc

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"sync"

	"github.com/ava12/unitcalc"
	"github.com/ava12/unitcalc/grammar"
	"github.com/ava12/unitcalc/lexer"
	"github.com/ava12/unitcalc/parser"
	"github.com/ava12/unitcalc/quantity"
	"github.com/ava12/unitcalc/source"
	"github.com/ava12/unitcalc/tree"
	"github.com/ava12/unitcalc/units"
)

// SourceName is the source name used for evaluated expressions.
const SourceName = "input"

// Calculator is immutable and safe for concurrent use.
type Calculator struct {
	registry   *units.Registry
	parser     *parser.Parser
	reductions []reduction
	logger     *slog.Logger
}

type Option func(c *Calculator)

// WithLogger sets logger for debug messages, slog.Default() is used if not set.
func WithLogger(l *slog.Logger) Option {
	return func(c *Calculator) {
		c.logger = l
	}
}

// New creates calculator using units of registry r.
func New(r *units.Registry, opts ...Option) (*Calculator, error) {
	g, e := NewGrammar(r)
	if e != nil {
		return nil, e
	}

	p, e := parser.New(g)
	if e != nil {
		return nil, e
	}

	rs := make([]reduction, len(g.Rules))
	for i, rule := range g.Rules {
		rs[i] = reductions[rule.Name]
		if rs[i] == nil {
			return nil, missingReductionError(rule.Name)
		}
	}

	c := &Calculator{registry: r, parser: p, reductions: rs}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// Registry returns calculator unit registry.
func (c *Calculator) Registry() *units.Registry {
	return c.registry
}

// Tokenize returns tokens of normalized input.
func (c *Calculator) Tokenize(input string) []*lexer.Token {
	return lexer.Tokenize(source.Normalize(SourceName, []byte(input)), c.registry)
}

// Grammar returns expression grammar.
func (c *Calculator) Grammar() *grammar.Grammar {
	return c.parser.Grammar()
}

// Parse returns parse forest for input.
// Syntax errors on identifiers that are not units get a hint with the most similar unit key.
func (c *Calculator) Parse(input string) (*tree.Node, error) {
	tokens := c.Tokenize(input)
	debug := c.logger.Enabled(context.Background(), slog.LevelDebug)
	if debug {
		c.logger.Debug("tokenized", "input", input, "tokens", tokenTexts(tokens))
	}

	root, e := c.parser.Parse(tokens)
	if e != nil {
		c.addHint(e)
		return nil, e
	}

	if debug {
		c.logger.Debug("parsed", "nodes", tree.CountNodes(root), "trees", tree.CountTrees(root))
	}
	return root, nil
}

// Evaluate parses and evaluates input.
// Returns *unitcalc.Error with parser.UnexpectedTokenError or parser.UnexpectedEoiError code
// on syntax errors and DimensionMismatchError code on incompatible operands.
func (c *Calculator) Evaluate(input string) (quantity.Quantity, error) {
	root, e := c.Parse(input)
	if e != nil {
		return quantity.Quantity{}, e
	}

	ec := &evalContext{c: c, results: make(map[*tree.Node]result)}
	q, e := ec.eval(root)
	if e != nil {
		c.logger.Debug("evaluation failed", "error", e)
		return quantity.Quantity{}, e
	}

	c.logger.Debug("evaluated", "result", q.String(), "dim", q.Dim.String())
	return q, nil
}

func tokenTexts(tokens []*lexer.Token) []string {
	result := make([]string, len(tokens))
	for i, t := range tokens {
		result[i] = t.Text()
	}
	return result
}

// addHint appends unit suggestion to message of unexpected identifier error.
func (c *Calculator) addHint(e error) {
	ue, f := e.(*unitcalc.Error)
	if !f || ue.Code != parser.UnexpectedTokenError {
		return
	}

	te, f := ue.Err.(*parser.TokenError)
	if !f {
		return
	}

	text := te.Token.Text()
	if te.Token.Type() != lexer.IdentType || c.registry.IsUnit(text) {
		return
	}

	if s, found := c.registry.Suggest(text); found {
		ue.Message += "; did you mean " + strconv.Quote(s) + "?"
	}
}

type result struct {
	q quantity.Quantity
	e error
}

type evalContext struct {
	c       *Calculator
	results map[*tree.Node]result
}

func (ec *evalContext) eval(n *tree.Node) (quantity.Quantity, error) {
	if r, has := ec.results[n]; has {
		return r.q, r.e
	}

	var r result
	if n.IsToken() {
		r.q, r.e = ec.terminal(n)
	} else {
		r.q, r.e = ec.nonterminal(n)
	}
	ec.results[n] = r
	return r.q, r.e
}

func (ec *evalContext) terminal(n *tree.Node) (quantity.Quantity, error) {
	t := n.Token
	switch n.Name {
	case "$num", "$plus-num", "$minus-num":
		x, e := strconv.ParseFloat(t.Text(), 64)
		if e != nil {
			return quantity.Quantity{}, numericParseError(t, e)
		}
		return quantity.Scalar(x), nil

	case "$sup":
		x, found := quantity.ParseSuperscript(t.Text())
		if !found {
			return quantity.Quantity{}, numericParseError(t, strconv.ErrSyntax)
		}
		return quantity.Scalar(x), nil

	case "$unit":
		q, found := ec.c.registry.Lookup(t.Text())
		if !found {
			return quantity.Quantity{}, unknownUnitError(t)
		}
		return q, nil

	case "e":
		return quantity.Scalar(math.E), nil

	case "pi":
		return quantity.Scalar(math.Pi), nil

	default:
		return quantity.Quantity{}, nil
	}
}

func (ec *evalContext) nonterminal(n *tree.Node) (quantity.Quantity, error) {
	var firstError error
	for _, d := range n.Derivations {
		q, e := ec.derivation(n, d)
		if e == nil {
			return q, nil
		}
		if firstError == nil {
			firstError = e
		}
	}
	return quantity.Quantity{}, firstError
}

func (ec *evalContext) derivation(n *tree.Node, d *tree.Derivation) (quantity.Quantity, error) {
	args := make([]quantity.Quantity, len(d.Children))
	for i, child := range d.Children {
		q, e := ec.eval(child)
		if e != nil {
			return quantity.Quantity{}, e
		}
		args[i] = q
	}

	q, e := ec.c.reductions[d.Rule](args)
	if e == nil {
		return q, nil
	}
	if isDimensionError(e) {
		return quantity.Quantity{}, dimensionMismatchError(operatorToken(n, d), e)
	}
	return quantity.Quantity{}, e
}

// operatorToken returns the first terminal child token or the first covered token.
func operatorToken(n *tree.Node, d *tree.Derivation) *lexer.Token {
	for _, child := range d.Children {
		if child.IsToken() {
			return child.Token
		}
	}
	return tree.FirstToken(n)
}

var defaultCalculator = sync.OnceValues(func() (*Calculator, error) {
	return New(units.Default())
})

// Evaluate evaluates input using calculator with embedded unit catalog.
func Evaluate(input string) (quantity.Quantity, error) {
	c, e := defaultCalculator()
	if e != nil {
		return quantity.Quantity{}, e
	}
	return c.Evaluate(input)
}

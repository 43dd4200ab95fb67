// Package parser defines Earley parser that builds parse forest for any context-free grammar
// without empty rules, including left-recursive and ambiguous ones.
package parser

import (
	"github.com/ava12/unitcalc/grammar"
	"github.com/ava12/unitcalc/internal/ints"
	"github.com/ava12/unitcalc/internal/queue"
	"github.com/ava12/unitcalc/lexer"
	"github.com/ava12/unitcalc/tree"
)

// Parser is immutable and safe for concurrent use.
type Parser struct {
	g *grammar.Grammar
}

// New creates parser for g.
// Returns error if g has no nonterminals, has empty rules, or has nonterminals without rules.
func New(g *grammar.Grammar) (*Parser, error) {
	if len(g.Nonterms) == 0 {
		return nil, emptyGrammarError()
	}
	for _, r := range g.Rules {
		if len(r.Body) == 0 {
			return nil, emptyRuleError(r.Name)
		}
	}
	for _, nt := range g.Nonterms {
		if len(nt.Rules) == 0 {
			return nil, emptyRuleError(nt.Name)
		}
	}
	return &Parser{g}, nil
}

// Grammar returns parser grammar.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.g
}

// item is a dotted rule: rule body symbols before dot derive tokens [origin, current set position).
type item struct {
	rule, dot, origin int
}

type completion struct {
	nonterm, origin int
}

type itemSet struct {
	items     []item
	index     map[item]bool
	completed map[completion]bool
}

func newItemSet() *itemSet {
	return &itemSet{index: make(map[item]bool), completed: make(map[completion]bool)}
}

type parseContext struct {
	g      *grammar.Grammar
	tokens []*lexer.Token
	terms  []*ints.Set
	sets   []*itemSet
	agenda *queue.Queue[item]
	nodes  map[nodeKey]*tree.Node
}

type nodeKey struct {
	symbol     grammar.Symbol
	start, end int
}

// Parse parses tokens (not including end-of-input token) and returns forest root
// covering all tokens and derived from the root nonterminal.
// Returns *unitcalc.Error with UnexpectedTokenError or UnexpectedEoiError code on failure,
// its Err field contains *TokenError.
func (p *Parser) Parse(tokens []*lexer.Token) (*tree.Node, error) {
	pc := &parseContext{
		g:      p.g,
		tokens: tokens,
		terms:  make([]*ints.Set, len(tokens)),
		sets:   make([]*itemSet, len(tokens)+1),
		agenda: queue.New[item](),
		nodes:  make(map[nodeKey]*tree.Node),
	}
	for i, t := range tokens {
		pc.terms[i] = ints.NewSet(p.g.MatchingTerms(t.Text())...)
	}
	for i := range pc.sets {
		pc.sets[i] = newItemSet()
	}

	if e := pc.recognize(); e != nil {
		return nil, e
	}
	return pc.buildNode(grammar.NontermSymbol(grammar.RootNonterm), 0, len(tokens)), nil
}

// add puts item to the set being processed and schedules it.
func (pc *parseContext) add(pos int, it item) {
	if pc.sets[pos].put(pc.g, it) {
		pc.agenda.Append(it)
	}
}

// put returns false if s already contains it.
func (s *itemSet) put(g *grammar.Grammar, it item) bool {
	if s.index[it] {
		return false
	}

	s.index[it] = true
	s.items = append(s.items, it)
	r := g.Rules[it.rule]
	if it.dot == len(r.Body) {
		s.completed[completion{r.Nonterm, it.origin}] = true
	}
	return true
}

func (pc *parseContext) predict(pos, nonterm int) {
	for _, ri := range pc.g.Nonterms[nonterm].Rules {
		pc.add(pos, item{ri, 0, pos})
	}
}

func (pc *parseContext) recognize() error {
	l := len(pc.tokens)
	pc.predict(0, grammar.RootNonterm)

	for pos := 0; pos <= l; pos++ {
		if pos > 0 {
			if len(pc.sets[pos].items) == 0 {
				return pc.unexpectedToken(pos - 1)
			}

			pc.agenda.Reset()
			for _, it := range pc.sets[pos].items {
				pc.agenda.Append(it)
			}
		}

		for !pc.agenda.IsEmpty() {
			it, _ := pc.agenda.First()
			r := pc.g.Rules[it.rule]
			if it.dot == len(r.Body) {
				pc.complete(pos, it, r.Nonterm)
				continue
			}

			next := r.Body[it.dot]
			if !next.IsTerm() {
				pc.predict(pos, next.Index())
			} else if pos < l && pc.terms[pos].Contains(next.Index()) {
				pc.sets[pos+1].put(pc.g, item{it.rule, it.dot + 1, it.origin})
			}
		}
	}

	if !pc.sets[l].completed[completion{grammar.RootNonterm, 0}] {
		return pc.unexpectedEoi()
	}
	return nil
}

func (pc *parseContext) complete(pos int, it item, nonterm int) {
	sym := grammar.NontermSymbol(nonterm)
	for _, waiting := range pc.sets[it.origin].items {
		r := pc.g.Rules[waiting.rule]
		if waiting.dot < len(r.Body) && r.Body[waiting.dot] == sym {
			pc.add(pos, item{waiting.rule, waiting.dot + 1, waiting.origin})
		}
	}
}

func (pc *parseContext) expected(pos int) []string {
	terms := ints.NewSet()
	for _, it := range pc.sets[pos].items {
		r := pc.g.Rules[it.rule]
		if it.dot < len(r.Body) && r.Body[it.dot].IsTerm() {
			terms.Add(r.Body[it.dot].Index())
		}
	}

	result := make([]string, 0, terms.Len())
	for _, ti := range terms.ToSlice() {
		result = append(result, pc.g.SymbolName(grammar.TermSymbol(ti)))
	}
	return result
}

func (pc *parseContext) unexpectedToken(pos int) error {
	return syntaxError(UnexpectedTokenError, pc.tokens[pos], pc.expected(pos))
}

func (pc *parseContext) unexpectedEoi() error {
	l := len(pc.tokens)
	var eoi *lexer.Token
	if l > 0 {
		eoi = lexer.EoiToken(pc.tokens[l-1].Source())
	} else {
		eoi = lexer.EoiToken(nil)
	}
	return syntaxError(UnexpectedEoiError, eoi, pc.expected(l))
}

// derives tells whether sym derives tokens [start, end).
func (pc *parseContext) derives(sym grammar.Symbol, start, end int) bool {
	if sym.IsTerm() {
		return end == start+1 && pc.terms[start].Contains(sym.Index())
	}
	return pc.sets[end].completed[completion{sym.Index(), start}]
}

// buildNode returns forest node for sym covering tokens [start, end).
// sym must derive that span.
func (pc *parseContext) buildNode(sym grammar.Symbol, start, end int) *tree.Node {
	key := nodeKey{sym, start, end}
	if n, has := pc.nodes[key]; has {
		return n
	}

	n := &tree.Node{Symbol: sym, Name: pc.g.SymbolName(sym), Start: start, End: end}
	pc.nodes[key] = n
	if sym.IsTerm() {
		n.Token = pc.tokens[start]
		return n
	}

	for _, ri := range pc.g.Nonterms[sym.Index()].Rules {
		for _, splits := range pc.splits(ri, start, end) {
			body := pc.g.Rules[ri].Body
			d := &tree.Derivation{Rule: ri, Name: pc.g.Rules[ri].Name, Children: make([]*tree.Node, len(body))}
			for i, s := range body {
				d.Children[i] = pc.buildNode(s, splits[i], splits[i+1])
			}
			n.Derivations = append(n.Derivations, d)
		}
	}
	return n
}

// splits returns all sequences of child boundaries for rule ri covering tokens [start, end),
// in ascending order of boundaries.
func (pc *parseContext) splits(ri, start, end int) [][]int {
	body := pc.g.Rules[ri].Body
	bl := len(body)
	var result [][]int
	bounds := make([]int, bl+1)
	bounds[0] = start

	var walk func(j int)
	walk = func(j int) {
		if j == bl {
			if bounds[bl] == end {
				result = append(result, append([]int(nil), bounds...))
			}
			return
		}

		from := bounds[j]
		last := end - (bl - j - 1)
		for p := from + 1; p <= last; p++ {
			if !pc.sets[p].index[item{ri, j + 1, start}] || !pc.derives(body[j], from, p) {
				continue
			}

			bounds[j+1] = p
			walk(j + 1)
		}
	}
	walk(0)
	return result
}

// Package grammar defines context-free grammar structure used by parser.
//
// Terminals are either literals matching token text exactly or external terminals
// matched by predicate functions. A token may match several terminals at once,
// parser keeps every derivation.
package grammar

import (
	"strings"
)

// RootNonterm is the index of the start nonterminal.
const RootNonterm = 0

type TermFlags int

const (
	// LiteralTerm matches token text equal to Term.Name.
	LiteralTerm TermFlags = 1 << iota
	// ExternalTerm matches token text accepted by Term.Match.
	ExternalTerm
	// ReservedTerm is a literal that no external terminal may match.
	ReservedTerm
)

// Predicate tells whether token text belongs to a terminal category.
type Predicate func(text string) bool

type Term struct {
	// Name contains literal text or external terminal name (without $ prefix).
	Name  string
	Flags TermFlags
	Match Predicate `json:"-"`
}

// Symbol is a grammar symbol: non-negative values are nonterminal indexes,
// negative values encode terminal indexes (see TermSymbol).
type Symbol int

// TermSymbol returns symbol for terminal with given index.
func TermSymbol(index int) Symbol {
	return Symbol(-index - 1)
}

// NontermSymbol returns symbol for nonterminal with given index.
func NontermSymbol(index int) Symbol {
	return Symbol(index)
}

func (s Symbol) IsTerm() bool {
	return s < 0
}

// Index returns terminal or nonterminal index.
func (s Symbol) Index() int {
	if s < 0 {
		return int(-s - 1)
	}
	return int(s)
}

type Rule struct {
	Nonterm int
	Body    []Symbol

	// Name is the rule in text form, e.g. "expr -> expr + term", used as a key by evaluators.
	Name string
}

type Nonterm struct {
	Name string

	// Rules contains indexes of Grammar.Rules in definition order.
	Rules []int
}

type Grammar struct {
	Terms    []Term
	Nonterms []Nonterm
	Rules    []Rule
}

// SymbolName returns nonterminal name, literal text, or external terminal name prefixed with $.
func (g *Grammar) SymbolName(s Symbol) string {
	if !s.IsTerm() {
		return g.Nonterms[s.Index()].Name
	}

	t := g.Terms[s.Index()]
	if t.Flags&ExternalTerm != 0 {
		return "$" + t.Name
	}
	return t.Name
}

// RuleName builds rule text form from nonterminal and body.
func (g *Grammar) RuleName(nonterm int, body []Symbol) string {
	parts := make([]string, len(body))
	for i, s := range body {
		parts[i] = g.SymbolName(s)
	}
	return g.Nonterms[nonterm].Name + " -> " + strings.Join(parts, " ")
}

// MatchingTerms returns indexes of all terminals matching token text.
// Text equal to a reserved literal matches literal terminals only.
func (g *Grammar) MatchingTerms(text string) []int {
	reserved := false
	for _, t := range g.Terms {
		if t.Flags&ReservedTerm != 0 && t.Name == text {
			reserved = true
			break
		}
	}

	var result []int
	for i, t := range g.Terms {
		if t.Flags&LiteralTerm != 0 {
			if t.Name == text {
				result = append(result, i)
			}
		} else if !reserved && t.Match != nil && t.Match(text) {
			result = append(result, i)
		}
	}
	return result
}

// Builder creates grammar step by step. The first added nonterminal is the root one.
type Builder struct {
	g        *Grammar
	literals map[string]int
	externs  map[string]int
	nonterms map[string]int
}

func NewBuilder() *Builder {
	return &Builder{
		g:        &Grammar{},
		literals: make(map[string]int),
		externs:  make(map[string]int),
		nonterms: make(map[string]int),
	}
}

// Literal returns symbol for literal terminal, adding it if needed.
func (b *Builder) Literal(text string) Symbol {
	index, has := b.literals[text]
	if !has {
		index = len(b.g.Terms)
		b.g.Terms = append(b.g.Terms, Term{Name: text, Flags: LiteralTerm})
		b.literals[text] = index
	}
	return TermSymbol(index)
}

// Reserve marks literal as reserved, adding it if needed.
func (b *Builder) Reserve(text string) Symbol {
	s := b.Literal(text)
	b.g.Terms[s.Index()].Flags |= ReservedTerm
	return s
}

// External returns symbol for external terminal, adding it if needed.
// Predicate of an existing terminal is replaced if match is not nil.
func (b *Builder) External(name string, match Predicate) Symbol {
	index, has := b.externs[name]
	if !has {
		index = len(b.g.Terms)
		b.g.Terms = append(b.g.Terms, Term{Name: name, Flags: ExternalTerm})
		b.externs[name] = index
	}
	if match != nil {
		b.g.Terms[index].Match = match
	}
	return TermSymbol(index)
}

// HasExternal tells whether external terminal is added.
func (b *Builder) HasExternal(name string) bool {
	_, has := b.externs[name]
	return has
}

// Nonterm returns symbol for nonterminal, adding it if needed.
func (b *Builder) Nonterm(name string) Symbol {
	index, has := b.nonterms[name]
	if !has {
		index = len(b.g.Nonterms)
		b.g.Nonterms = append(b.g.Nonterms, Nonterm{Name: name})
		b.nonterms[name] = index
	}
	return NontermSymbol(index)
}

// Rule adds rule for nonterminal nt and returns rule index.
func (b *Builder) Rule(nt Symbol, body ...Symbol) int {
	index := len(b.g.Rules)
	b.g.Rules = append(b.g.Rules, Rule{
		Nonterm: nt.Index(),
		Body:    body,
		Name:    b.g.RuleName(nt.Index(), body),
	})
	b.g.Nonterms[nt.Index()].Rules = append(b.g.Nonterms[nt.Index()].Rules, index)
	return index
}

// Grammar returns built grammar. Builder must not be used afterwards.
func (b *Builder) Grammar() *Grammar {
	return b.g
}

// Package tree defines parse forest produced by parser and functions to traverse it.
//
// A forest node covers a span of tokens and is shared by all derivations using that span.
// Nonterminal nodes hold one derivation per way the span can be derived, in grammar rule order,
// so an unambiguous parse is a plain tree with single-derivation nodes.
package tree

import (
	"math"
	"strconv"
	"strings"

	"github.com/ava12/unitcalc/grammar"
	"github.com/ava12/unitcalc/lexer"
)

type StringWriter interface {
	WriteString(string) (int, error)
}

// Node is a forest node covering tokens [Start, End).
type Node struct {
	Symbol grammar.Symbol

	// Name contains nonterminal name, literal text, or external terminal name prefixed with $.
	Name       string
	Start, End int

	// Token is not nil for terminal nodes only.
	Token *lexer.Token

	// Derivations is not empty for nonterminal nodes only.
	Derivations []*Derivation
}

// Derivation is an application of a grammar rule.
type Derivation struct {
	Rule int

	// Name is the rule name, e.g. "expr -> expr + term".
	Name     string
	Children []*Node
}

// IsToken tells whether n is a terminal node.
func (n *Node) IsToken() bool {
	return n.Token != nil
}

// IsAmbiguous tells whether n has more than one derivation.
func (n *Node) IsAmbiguous() bool {
	return len(n.Derivations) > 1
}

// FirstToken returns the leftmost token covered by n or nil.
func FirstToken(n *Node) *lexer.Token {
	for n != nil && n.Token == nil {
		if len(n.Derivations) == 0 || len(n.Derivations[0].Children) == 0 {
			return nil
		}
		n = n.Derivations[0].Children[0]
	}
	if n == nil {
		return nil
	}
	return n.Token
}

// Tokens returns tokens covered by n, following the first derivation of each node.
func Tokens(n *Node) []*lexer.Token {
	var result []*lexer.Token
	var collect func(n *Node)
	collect = func(n *Node) {
		if n.Token != nil {
			result = append(result, n.Token)
			return
		}
		if len(n.Derivations) > 0 {
			for _, c := range n.Derivations[0].Children {
				collect(c)
			}
		}
	}
	if n != nil {
		collect(n)
	}
	return result
}

// NodeVisitor is called for each node, returns false to skip node children.
type NodeVisitor func(n *Node) (walkChildren bool)

type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

// Walk visits every distinct node reachable from n once, parents before children,
// derivations in rule order.
func Walk(n *Node, mode WalkMode, visitor NodeVisitor) {
	if n == nil {
		return
	}

	visited := make(map[*Node]bool)
	rtl := (mode & WalkRtl) != 0
	var visit func(n *Node)
	visit = func(n *Node) {
		if visited[n] {
			return
		}
		visited[n] = true
		if !visitor(n) {
			return
		}

		for _, d := range n.Derivations {
			l := len(d.Children)
			for i := range d.Children {
				if rtl {
					visit(d.Children[l-1-i])
				} else {
					visit(d.Children[i])
				}
			}
		}
	}
	visit(n)
}

// CountNodes returns the number of distinct nodes reachable from n.
func CountNodes(n *Node) int {
	result := 0
	Walk(n, WalkLtr, func(*Node) bool {
		result++
		return true
	})
	return result
}

// CountTrees returns the number of distinct parse trees in the forest rooted at n,
// saturating at math.MaxInt.
func CountTrees(n *Node) int {
	counts := make(map[*Node]int)
	var count func(n *Node) int
	count = func(n *Node) int {
		if n.Token != nil {
			return 1
		}
		if c, has := counts[n]; has {
			return c
		}

		counts[n] = 0
		total := 0
		for _, d := range n.Derivations {
			product := 1
			for _, c := range d.Children {
				product = mulSat(product, count(c))
			}
			total = addSat(total, product)
		}
		counts[n] = total
		return total
	}

	if n == nil {
		return 0
	}
	return count(n)
}

func mulSat(a, b int) int {
	if a != 0 && b > math.MaxInt/a {
		return math.MaxInt
	}
	return a * b
}

func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// Dump writes indented text representation of the forest rooted at n.
// Alternative derivations of ambiguous nodes are listed with "|" markers.
func Dump(w StringWriter, n *Node) error {
	return dumpNode(w, n, 0)
}

func dumpNode(w StringWriter, n *Node, level int) error {
	indent := strings.Repeat("  ", level)
	if n.Token != nil {
		_, e := w.WriteString(indent + n.Name + " " + strconv.Quote(n.Token.Text()) + "\n")
		return e
	}

	if _, e := w.WriteString(indent + n.Name + "\n"); e != nil {
		return e
	}

	childLevel := level + 1
	for _, d := range n.Derivations {
		if n.IsAmbiguous() {
			if _, e := w.WriteString(indent + "| " + d.Name + "\n"); e != nil {
				return e
			}
			childLevel = level + 2
		}
		for _, c := range d.Children {
			if e := dumpNode(w, c, childLevel); e != nil {
				return e
			}
		}
	}
	return nil
}

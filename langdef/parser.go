package langdef

import (
	"regexp"

	"github.com/ava12/unitcalc/grammar"
	"github.com/ava12/unitcalc/internal/ints"
	"github.com/ava12/unitcalc/internal/queue"
	"github.com/ava12/unitcalc/source"
)

const (
	stringTok = "string"
	nameTok   = "name"
	externTok = "extern"
	dirTok    = "directive"
	opTok     = "op"
	wrongTok  = "char"
	eoiTok    = "end of input"
)

const (
	equTok       = "="
	pipeTok      = "|"
	semicolonTok = ";"
)

const (
	externDir   = "!extern"
	reservedDir = "!reserved"
)

var tokenRe = regexp.MustCompile(`^(?:([ \r\n\t\f]+|#[^\n]*)|("[^"]*"|'[^']*')|([a-zA-Z_][a-zA-Z_0-9-]*)|(\$[a-zA-Z_+-][a-zA-Z_0-9+-]*)|(![a-z]+)|([=|;])|(.))`)

var tokenKinds = []string{"", stringTok, nameTok, externTok, dirTok, opTok, wrongTok}

type token struct {
	kind, text string
	pos        source.Pos
}

type parseContext struct {
	src       *source.Source
	content   []byte
	pos       int
	saved     *token
	externs   map[string]grammar.Predicate
	declared  map[string]bool
	b         *grammar.Builder
	defined   map[string]bool
	mentioned map[string]*token
	order     []string
}

// ParseString parses grammar description and returns a grammar on success.
// externs maps external terminal names (without $) to predicates.
// Returns nil and *unitcalc.Error on error.
func ParseString(name, content string, externs map[string]grammar.Predicate) (*grammar.Grammar, error) {
	return Parse(source.New(name, []byte(content)), externs)
}

// Parse parses grammar description and returns a grammar on success.
// externs maps external terminal names (without $) to predicates.
// Returns nil and *unitcalc.Error on error.
func Parse(s *source.Source, externs map[string]grammar.Predicate) (*grammar.Grammar, error) {
	c := &parseContext{
		src:       s,
		content:   s.Content(),
		externs:   externs,
		declared:  make(map[string]bool),
		b:         grammar.NewBuilder(),
		defined:   make(map[string]bool),
		mentioned: make(map[string]*token),
	}

	e := c.parse()
	if e == nil {
		e = c.findUndefinedNonterms()
	}
	if e != nil {
		return nil, e
	}

	g := c.b.Grammar()
	e = findUnusedNonterms(g)
	if e != nil {
		return nil, e
	}
	return g, nil
}

func (c *parseContext) fetch() *token {
	if c.saved != nil {
		t := c.saved
		c.saved = nil
		return t
	}

	for c.pos < len(c.content) {
		match := tokenRe.FindSubmatchIndex(c.content[c.pos:])
		start := c.pos
		c.pos += match[1]
		for i := 2; i < len(match); i += 2 {
			if match[i] < 0 {
				continue
			}
			if i == 2 {
				break
			}
			return &token{tokenKinds[i>>1-1], string(c.content[start+match[i] : start+match[i+1]]), source.NewPos(c.src, start)}
		}
	}

	return &token{eoiTok, "", source.NewPos(c.src, len(c.content))}
}

func (c *parseContext) put(t *token) {
	c.saved = t
}

func (c *parseContext) next() (*token, error) {
	t := c.fetch()
	switch t.kind {
	case eoiTok:
		return t, eoiError(t)
	case wrongTok:
		return t, wrongCharError(t)
	default:
		return t, nil
	}
}

func (c *parseContext) expectOp(op string) error {
	t, e := c.next()
	if e == nil && (t.kind != opTok || t.text != op) {
		e = unexpectedTokenError(t)
	}
	return e
}

func (c *parseContext) parse() error {
	t := c.fetch()
	for t.kind == dirTok {
		if e := c.parseDirective(t); e != nil {
			return e
		}
		t = c.fetch()
	}

	if t.kind == eoiTok {
		return eoiError(t)
	}

	for t.kind != eoiTok {
		if t.kind != nameTok {
			if t.kind == wrongTok {
				return wrongCharError(t)
			}
			return unexpectedTokenError(t)
		}
		if e := c.parseRule(t); e != nil {
			return e
		}
		t = c.fetch()
	}
	return nil
}

func (c *parseContext) parseDirective(dir *token) error {
	if dir.text != externDir && dir.text != reservedDir {
		return unknownDirectiveError(dir)
	}

	for {
		t, e := c.next()
		if e != nil {
			return e
		}

		switch {
		case t.kind == opTok && t.text == semicolonTok:
			return nil

		case dir.text == externDir && t.kind == externTok:
			name := t.text[1:]
			predicate := c.externs[name]
			if predicate == nil {
				return unboundExternError(t)
			}
			c.declared[name] = true
			c.b.External(name, predicate)

		case dir.text == reservedDir && t.kind == stringTok && len(t.text) > 2:
			c.b.Reserve(t.text[1 : len(t.text)-1])

		default:
			return unexpectedTokenError(t)
		}
	}
}

func (c *parseContext) parseRule(name *token) error {
	if c.defined[name.text] {
		return nontermDefinedError(name)
	}

	c.defined[name.text] = true
	nt := c.b.Nonterm(name.text)
	if e := c.expectOp(equTok); e != nil {
		return e
	}

	var body []grammar.Symbol
	for {
		t, e := c.next()
		if e != nil {
			return e
		}

		if t.kind == opTok && t.text != equTok {
			if len(body) == 0 {
				return emptyAlternativeError(t)
			}
			c.b.Rule(nt, body...)
			body = nil
			if t.text == semicolonTok {
				return nil
			}
			continue
		}

		s, e := c.symbol(t)
		if e != nil {
			return e
		}
		body = append(body, s)
	}
}

func (c *parseContext) symbol(t *token) (grammar.Symbol, error) {
	switch t.kind {
	case nameTok:
		if c.mentioned[t.text] == nil {
			c.mentioned[t.text] = t
			c.order = append(c.order, t.text)
		}
		return c.b.Nonterm(t.text), nil

	case externTok:
		name := t.text[1:]
		if !c.declared[name] {
			return 0, unknownExternError(t)
		}
		return c.b.External(name, nil), nil

	case stringTok:
		if len(t.text) <= 2 {
			return 0, unexpectedTokenError(t)
		}
		return c.b.Literal(t.text[1 : len(t.text)-1]), nil

	default:
		return 0, unexpectedTokenError(t)
	}
}

func (c *parseContext) findUndefinedNonterms() error {
	var names []string
	for _, name := range c.order {
		if !c.defined[name] {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		return undefinedNontermError(names)
	}
	return nil
}

func findUnusedNonterms(g *grammar.Grammar) error {
	reached := ints.NewSet(grammar.RootNonterm)
	q := queue.New(grammar.RootNonterm)
	for !q.IsEmpty() {
		nt, _ := q.First()
		for _, ri := range g.Nonterms[nt].Rules {
			for _, s := range g.Rules[ri].Body {
				if !s.IsTerm() && !reached.Contains(s.Index()) {
					reached.Add(s.Index())
					q.Append(s.Index())
				}
			}
		}
	}

	var names []string
	for i, nt := range g.Nonterms {
		if !reached.Contains(i) {
			names = append(names, nt.Name)
		}
	}
	if len(names) > 0 {
		return unusedNontermError(names)
	}
	return nil
}

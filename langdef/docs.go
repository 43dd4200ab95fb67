/*
Package langdef converts textual grammar description to grammar.Grammar structure.

Grammar is described using language that resembles BNF. Self-definition of this language is:
*/
//  $space = /[ \r\n\t\f]+/; $comment = /#[^\n]*/;
//  $string = /(?:"[^"]*")|(?:'[^']*')/;
//  $name = /[a-zA-Z_][a-zA-Z_0-9-]*/;
//  $extern = /\$[a-zA-Z_+-][a-zA-Z_0-9+-]*/;
//  $dir = /![a-z]+/;
//  $op = /[=|;]/;
//
//  # first rule defines the root nonterminal
//  langdef = {directive}, rule, {rule};
//  directive = $dir, {$extern | $string}, ';';
//  rule = $name, '=', alternative, {'|', alternative}, ';';
//  alternative = item, {item};
//  item = $name | $extern | $string;
/*
Description must be a valid UTF-8 text. Line breaks are insignificant, text may be a one-liner.
Description may contain line comments starting with # and ending with line feed.

String literal is any non-empty sequence of symbols (except for delimiter)
delimited with either single (') or double (") quote signs. A literal matches tokens with the same text.

Name is a sequence of latin letters, digits, underscores, and hyphens, starting with letter or underscore.
Names are case-sensitive.

External terminal name is a sequence of latin letters, digits, underscores, hyphens, and plus signs
preceded by $, e.g. $num or $plus-num. External terminals match tokens using predicates supplied by caller.

Rule has a form:
   nonterminal-name = alternative | alternative ... ;

An alternative is a non-empty space-separated sequence of nonterminal names, external terminals,
and string literals. Empty alternatives are not allowed. Left and right recursion are both allowed,
as well as ambiguous rules:
   expr = term | expr '-' term;
   units = unit | units units;

The first rule defines the root nonterminal.
Order of other rules does not matter, rules may contain names of nonterminals that are defined later.
All alternatives of a nonterminal must be listed in a single rule, e.g.
   foo = bar baz; foo = qux; # error: foo already defined
   foo = bar baz | qux;     # correct

Every nonterminal mentioned must be defined, and every defined nonterminal must be reachable from the root one.

Directive has a form:
   !name {$extern-name | 'string' | "string"} ;

!extern directive lists external terminals. Each listed terminal must have a predicate supplied to Parse,
terminals used in rules must be listed.

!reserved directive lists string literals that are treated as reserved words.
If token text is a reserved word it can be matched as literal, but not as external terminal,
e.g. if both 'pi' literal and $unit terminal could match "pi" token, only the literal will.
*/
package langdef

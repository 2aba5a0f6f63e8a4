package node

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"sort"
	"strings"
	"unicode"
)

// Expr is the dynamically typed node kind: a node defined by a Go expression
// template in which inputs appear as '#' placeholders, e.g. "#l + #r".
//
// Each distinct placeholder names one input; input order is the order of
// first appearance in the template, and repeated placeholders reuse the same
// input. The expression produces one output. No type is attached to any
// placeholder, so mismatches surface only when the emitted program is
// compiled.
//
// Placeholders are recognized anywhere in the template text, including
// inside string literals; avoid '#' in literals.
//
// A stateful expression node references the reserved StateBinding
// identifier directly in its template.
type Expr struct {
	Base
	src    string
	inputs []string
}

// NewExpr parses a node from an expression template. The template with each
// placeholder replaced by an identifier must parse as a Go expression;
// otherwise an error wrapping ErrBadExpr is returned.
func NewExpr(src string) (*Expr, error) {
	inputs := scanPlaceholders(src)
	check := substitutePlaceholders(src, inputs, func(name string) string { return name })
	if _, err := parser.ParseExpr(check); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadExpr, src, err)
	}
	return &Expr{src: src, inputs: inputs}, nil
}

// MustExpr is NewExpr for templates known at compile time.
// It panics on malformed input.
func MustExpr(src string) *Expr {
	e, err := NewExpr(src)
	if err != nil {
		panic(err)
	}
	return e
}

// Inputs returns the placeholder names in input order.
func (e *Expr) Inputs() []string {
	out := make([]string, len(e.inputs))
	copy(out, e.inputs)
	return out
}

// Evaluator returns an expression-based evaluator whose generator splices
// the argument expressions into the template, parenthesized to preserve
// precedence.
func (e *Expr) Evaluator() Evaluator {
	src, inputs := e.src, e.inputs
	gen := func(args []ast.Expr) ast.Expr {
		if len(args) != len(inputs) {
			panic(fmt.Sprintf("node: expression %q declares %d inputs, generator invoked with %d arguments", src, len(inputs), len(args)))
		}
		byName := make(map[string]string, len(inputs))
		for i, name := range inputs {
			byName[name] = "(" + SprintExpr(args[i]) + ")"
		}
		out := substitutePlaceholders(src, inputs, func(name string) string { return byName[name] })
		expr, err := parser.ParseExpr(out)
		if err != nil {
			// The template was validated at construction and every
			// argument is an expression, so this is unreachable short
			// of a caller handing in a broken ast.Expr.
			panic(fmt.Sprintf("node: substituted expression %q does not parse: %v", out, err))
		}
		return expr
	}
	return ExprEvaluator{Gen: gen, Inputs: uint32(len(inputs)), Outputs: 1}
}

// KindExpr is the registry kind under which Expr nodes serialize.
const KindExpr = "expr"

// Kind implements Marshaler.
func (e *Expr) Kind() string { return KindExpr }

// MarshalDef implements Marshaler by emitting the template source.
func (e *Expr) MarshalDef() (json.RawMessage, error) {
	return json.Marshal(sourcePayload{Source: e.src})
}

func decodeExpr(_ *Registry, data json.RawMessage) (Node, error) {
	var payload sourcePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return NewExpr(payload.Source)
}

// scanPlaceholders collects distinct '#'-prefixed identifiers in order of
// first appearance.
func scanPlaceholders(src string) []string {
	var names []string
	seen := make(map[string]bool)
	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '#' {
			continue
		}
		j := i + 1
		for j < len(runes) && isIdentRune(runes[j], j > i+1) {
			j++
		}
		if j == i+1 {
			continue
		}
		name := string(runes[i+1 : j])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		i = j - 1
	}
	return names
}

// substitutePlaceholders rewrites each "#name" occurrence via repl. Longer
// names are replaced first so "#ab" is never clipped by "#a".
func substitutePlaceholders(src string, names []string, repl func(name string) string) string {
	ordered := make([]string, len(names))
	copy(ordered, names)
	sort.Slice(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })
	pairs := make([]string, 0, 2*len(ordered))
	for _, name := range ordered {
		pairs = append(pairs, "#"+name, repl(name))
	}
	return strings.NewReplacer(pairs...).Replace(src)
}

func isIdentRune(r rune, notFirst bool) bool {
	if unicode.IsLetter(r) || r == '_' {
		return true
	}
	return notFirst && unicode.IsDigit(r)
}

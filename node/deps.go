package node

import (
	"fmt"
	"strings"
)

// Dep describes one external module required by a node's generated code.
//
// Dep is a plain comparable value: two descriptors are the same dependency
// iff both fields are equal, and Dep can be used directly as a map key.
type Dep struct {
	// Name identifies the module, matching the left-hand side of a
	// dependency manifest entry. E.g. "foo".
	Name string

	// Source locates a version of the module, matching the right-hand side
	// of a dependency manifest entry. The text is opaque to this layer;
	// its grammar belongs to the manifest consumer. E.g. "0.10" or a
	// structured locator such as "{ git = \"https://example.com/foo\" }".
	Source string
}

// ParseDep parses a textual dependency descriptor of the form
// "<name> = <source>". The text is split on the first '=': the left side,
// trimmed, becomes Name and the remainder, trimmed, becomes Source. Source
// may itself contain '=' characters.
//
// Missing '=' or an empty name yields an error wrapping ErrDepParse. No
// validation of Source is performed here.
func ParseDep(s string) (Dep, error) {
	name, source, ok := strings.Cut(s, "=")
	if !ok {
		return Dep{}, fmt.Errorf("%w: no '=' in %q", ErrDepParse, s)
	}
	dep := Dep{Name: strings.TrimSpace(name), Source: strings.TrimSpace(source)}
	if dep.Name == "" {
		return Dep{}, fmt.Errorf("%w: empty name in %q", ErrDepParse, s)
	}
	return dep, nil
}

// MustDep is ParseDep for descriptor literals known at compile time.
// It panics on malformed input.
func MustDep(s string) Dep {
	dep, err := ParseDep(s)
	if err != nil {
		panic(err)
	}
	return dep
}

// String renders the descriptor back to its textual form.
func (d Dep) String() string {
	return d.Name + " = " + d.Source
}

// DedupDeps aggregates the dependency declarations of the given nodes into
// one manifest slice, collapsing duplicates. Order is first appearance, so
// aggregation is deterministic for a fixed node order and idempotent under
// repeated declarations.
func DedupDeps(nodes ...Node) []Dep {
	seen := make(map[Dep]struct{})
	var manifest []Dep
	for _, n := range nodes {
		for _, dep := range n.Deps() {
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			manifest = append(manifest, dep)
		}
	}
	return manifest
}

// WithDeps wraps a node so that it additionally declares the given external
// modules, after any the inner node already declares. Every other contract
// operation is forwarded unchanged.
func WithDeps(n Node, deps ...Dep) Node {
	return &depsNode{Node: n, deps: deps}
}

type depsNode struct {
	Node
	deps []Dep
}

func (d *depsNode) Deps() []Dep {
	inner := d.Node.Deps()
	out := make([]Dep, 0, len(inner)+len(d.deps))
	out = append(out, inner...)
	out = append(out, d.deps...)
	return out
}

// Package names derives human-readable names for syntax nodes.
//
// Naming is a closed table from type tag to rule. Tags without a rule have no
// name, which is the correct default for the vast majority of node types.
package names

import (
	"fmt"
	"sort"

	"github.com/mvp-joe/code-outline/internal/syntax"
)

// Rule derives a name for node, or "" when it has none. The registry is
// passed so a rule can name nested declarations.
type Rule func(node syntax.Node, source []byte, reg *Registry) string

// Strategy groups the rules for related type tags.
type Strategy struct {
	Name  string
	Rules map[string]Rule
}

// Registry maps type tags to naming rules. It is immutable once built and
// safe for concurrent use.
type Registry struct {
	rules map[string]Rule
	owner map[string]string
}

// NewRegistry builds a registry from strategies. A tag claimed by two
// strategies is an error.
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	reg := &Registry{
		rules: make(map[string]Rule),
		owner: make(map[string]string),
	}
	for _, s := range strategies {
		for kind, rule := range s.Rules {
			if prev, ok := reg.owner[kind]; ok {
				return nil, fmt.Errorf("type %q registered by both %s and %s strategies", kind, prev, s.Name)
			}
			reg.rules[kind] = rule
			reg.owner[kind] = s.Name
		}
	}
	return reg, nil
}

// NewDefaultRegistry builds the registry for every shipped grammar.
func NewDefaultRegistry() *Registry {
	reg, err := NewRegistry(DefaultStrategies()...)
	if err != nil {
		panic(err)
	}
	return reg
}

// DefaultStrategies returns the built-in strategy groups.
func DefaultStrategies() []Strategy {
	return []Strategy{
		Functions(),
		Classes(),
		Bindings(),
		Modules(),
		TypeDeclarations(),
	}
}

// Lookup returns the rule registered for kind.
func (r *Registry) Lookup(kind string) (Rule, bool) {
	rule, ok := r.rules[kind]
	return rule, ok
}

// Strategy returns the name of the strategy that owns kind.
func (r *Registry) Strategy(kind string) (string, bool) {
	name, ok := r.owner[kind]
	return name, ok
}

// Name implements outline.Namer.
func (r *Registry) Name(node syntax.Node, source []byte) string {
	if node == nil {
		return ""
	}
	rule, ok := r.rules[node.Kind()]
	if !ok {
		return ""
	}
	return rule(node, source, r)
}

// Kinds returns every registered type tag, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.rules))
	for kind := range r.rules {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Package scope resolves names to tree nodes: classifiers and features of
// output units, the library unit, and well-known host types.
package scope

import (
	"strings"

	"github.com/teranos/xcore/notation"
)

// Resolver looks up a name in the context of a node. A miss is not an
// error; callers leave the reference unresolved.
type Resolver interface {
	Resolve(name string, ctx notation.Node) (notation.Node, bool)
}

// Func adapts a function to Resolver.
type Func func(name string, ctx notation.Node) (notation.Node, bool)

// Resolve calls f.
func (f Func) Resolve(name string, ctx notation.Node) (notation.Node, bool) {
	return f(name, ctx)
}

// Empty resolves nothing.
var Empty Resolver = Func(func(string, notation.Node) (notation.Node, bool) { return nil, false })

// Index resolves qualified classifier names and qualified feature names
// ("pkg.Class.feature") across a set of units plus the library unit.
// Simple names resolve against the library unit only.
//
// Index is not safe for concurrent Add; build it once all units exist.
type Index struct {
	nodes  map[string]notation.Node
	simple map[string]notation.Node
}

// NewIndex returns an index over units and the library unit.
func NewIndex(units ...*notation.Package) *Index {
	idx := &Index{nodes: make(map[string]notation.Node), simple: make(map[string]notation.Node)}
	lib := notation.Library()
	idx.Add(lib)
	for _, c := range lib.Classifiers {
		idx.simple[c.Classifier().Name] = c
	}
	for _, u := range units {
		idx.Add(u)
	}
	return idx
}

// Add indexes the classifiers and features of unit. Later units shadow
// earlier ones with the same qualified names.
func (idx *Index) Add(unit *notation.Package) {
	for _, c := range unit.Classifiers {
		qn := unit.Name + "." + c.Classifier().Name
		idx.nodes[qn] = c
		cls, ok := c.(*notation.Class)
		if !ok {
			continue
		}
		for _, m := range cls.Members {
			if _, isOp := m.(*notation.Operation); isOp {
				continue
			}
			idx.nodes[qn+"."+m.Member().Name] = m
		}
	}
}

// Resolve implements Resolver.
func (idx *Index) Resolve(name string, _ notation.Node) (notation.Node, bool) {
	if n, ok := idx.nodes[name]; ok {
		return n, true
	}
	if !strings.Contains(name, ".") {
		n, ok := idx.simple[name]
		return n, ok
	}
	return nil, false
}

// Len returns the number of indexed qualified names.
func (idx *Index) Len() int { return len(idx.nodes) }

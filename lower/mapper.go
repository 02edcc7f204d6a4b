package lower

import (
	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/notation"
)

// Mapper associates source elements with the nodes lowered from them, and
// generic type instances with their lowered counterparts. Keys are
// identities: two equal-looking generic types are two entries.
type Mapper struct {
	nodes    map[ecore.Element]notation.Node
	elements map[notation.Node]ecore.Element
	types    map[*ecore.GenericType]*notation.GenericType
}

// NewMapper returns an empty mapper.
func NewMapper() *Mapper {
	return &Mapper{
		nodes:    make(map[ecore.Element]notation.Node),
		elements: make(map[notation.Node]ecore.Element),
		types:    make(map[*ecore.GenericType]*notation.GenericType),
	}
}

// Map records that n was lowered from el.
func (m *Mapper) Map(el ecore.Element, n notation.Node) {
	m.nodes[el] = n
	m.elements[n] = el
}

// Node returns the node lowered from el, or nil.
func (m *Mapper) Node(el ecore.Element) notation.Node {
	return m.nodes[el]
}

// Element returns the element n was lowered from, or nil.
func (m *Mapper) Element(n notation.Node) ecore.Element {
	return m.elements[n]
}

// MapType records that x was lowered from g.
func (m *Mapper) MapType(g *ecore.GenericType, x *notation.GenericType) {
	m.types[g] = x
}

// Type returns the generic type lowered from g, or nil.
func (m *Mapper) Type(g *ecore.GenericType) *notation.GenericType {
	return m.types[g]
}

// Types returns the number of mapped generic type instances.
func (m *Mapper) Types() int { return len(m.types) }

// Len returns the number of mapped elements.
func (m *Mapper) Len() int { return len(m.nodes) }

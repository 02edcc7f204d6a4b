package scope

import (
	"strings"

	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/notation"
)

// KnownTypes resolves host type names. Qualified names and unambiguous
// simple names of registered types resolve directly; nested types are
// reached through "$" ("java.util.Map$Entry"). Anything else falls through
// to the parent.
type KnownTypes struct {
	parent    Resolver
	qualified map[string]*notation.JvmType
	simple    map[string]*notation.JvmType
	ambiguous map[string]bool
}

// NewKnownTypes returns an empty known-types scope in front of parent.
// A nil parent resolves nothing.
func NewKnownTypes(parent Resolver) *KnownTypes {
	if parent == nil {
		parent = Empty
	}
	return &KnownTypes{
		parent:    parent,
		qualified: make(map[string]*notation.JvmType),
		simple:    make(map[string]*notation.JvmType),
		ambiguous: make(map[string]bool),
	}
}

// DefaultKnownTypes registers the primitives, java.lang and the instance
// types of the built-in data types.
func DefaultKnownTypes(parent Resolver) *KnownTypes {
	k := NewKnownTypes(parent)
	for _, name := range defaultTypes {
		k.Add(name)
	}
	for _, c := range ecore.Builtins().Classifiers {
		if name := c.Classifier().InstanceTypeName; name != "" && !strings.HasSuffix(name, "[]") {
			k.Add(name)
		}
	}
	return k
}

// Add registers a type, creating its enclosing types for "$" names, and
// returns it.
func (k *KnownTypes) Add(qualifiedName string) *notation.JvmType {
	if t, ok := k.qualified[qualifiedName]; ok {
		return t
	}
	t := &notation.JvmType{QualifiedName: qualifiedName}
	if i := strings.LastIndexByte(qualifiedName, '$'); i > 0 {
		outer := k.Add(qualifiedName[:i])
		t.Outer = outer
		outer.Nested = append(outer.Nested, t)
	} else {
		simple := t.SimpleName()
		if prev, ok := k.simple[simple]; ok && prev != t {
			k.ambiguous[simple] = true
		}
		k.simple[simple] = t
	}
	k.qualified[qualifiedName] = t
	return t
}

// Resolve implements Resolver.
func (k *KnownTypes) Resolve(name string, ctx notation.Node) (notation.Node, bool) {
	if t := k.lookup(name); t != nil {
		return t, true
	}
	return k.parent.Resolve(name, ctx)
}

func (k *KnownTypes) lookup(name string) *notation.JvmType {
	segments := strings.Split(name, "$")
	first := segments[0]
	if first == "" {
		return nil
	}

	t := k.qualified[first]
	if t == nil && !strings.Contains(first, ".") && !k.ambiguous[first] {
		t = k.simple[first]
	}
	for _, s := range segments[1:] {
		if t == nil {
			return nil
		}
		t = t.NestedType(s)
	}
	return t
}

var defaultTypes = []string{
	"boolean", "byte", "char", "double", "float", "int", "long", "short", "void",
	"java.lang.Boolean", "java.lang.Byte", "java.lang.Character", "java.lang.Class",
	"java.lang.Double", "java.lang.Float", "java.lang.Integer", "java.lang.Iterable",
	"java.lang.Long", "java.lang.Number", "java.lang.Object", "java.lang.Short",
	"java.lang.String", "java.lang.Comparable",
	"java.util.Collection", "java.util.List", "java.util.Set", "java.util.Map",
	"java.util.Map$Entry", "java.util.Iterator",
}

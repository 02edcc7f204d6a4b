package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/xcore/notation"
)

func unit(name string) (*notation.Package, *notation.Class, *notation.Reference) {
	p := &notation.Package{Name: name}
	c := &notation.Class{}
	c.Name = "Shape"
	p.AddClassifier(c)
	ref := &notation.Reference{}
	ref.Name = "children"
	c.AddMember(ref)
	op := &notation.Operation{}
	op.Name = "validate"
	c.AddMember(op)
	return p, c, ref
}

func TestIndexResolve(t *testing.T) {
	p, shape, children := unit("org.example.shapes")
	idx := NewIndex(p)

	tests := []struct {
		name string
		want notation.Node
	}{
		{"org.example.shapes.Shape", shape},
		{"org.example.shapes.Shape.children", children},
		{"org.eclipse.emf.ecore.EString", notation.Library().Classifier("EString")},
		{"EString", notation.Library().Classifier("EString")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := idx.Resolve(tt.name, nil)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, miss := range []string{"Shape", "org.example.shapes.Shape.validate", "org.example.Other", ""} {
		_, ok := idx.Resolve(miss, nil)
		assert.False(t, ok, miss)
	}
}

func TestIndexLaterUnitsShadow(t *testing.T) {
	a, _, _ := unit("m")
	b, shapeB, _ := unit("m")
	idx := NewIndex(a, b)

	got, ok := idx.Resolve("m.Shape", nil)
	require.True(t, ok)
	assert.Same(t, shapeB, got)
}

func TestKnownTypes(t *testing.T) {
	k := DefaultKnownTypes(nil)

	got, ok := k.Resolve("java.util.Map$Entry", nil)
	require.True(t, ok)
	entry := got.(*notation.JvmType)
	assert.Equal(t, "java.util.Map$Entry", entry.QualifiedName)
	assert.Equal(t, "java.util.Map", entry.Outer.QualifiedName)

	got, ok = k.Resolve("String", nil)
	require.True(t, ok)
	assert.Equal(t, "java.lang.String", got.(*notation.JvmType).QualifiedName)

	got, ok = k.Resolve("Map$Entry", nil)
	require.True(t, ok)
	assert.Same(t, entry, got)

	_, ok = k.Resolve("java.util.Map$Missing", nil)
	assert.False(t, ok)
	_, ok = k.Resolve("com.acme.Widget", nil)
	assert.False(t, ok)
	_, ok = k.Resolve("$Entry", nil)
	assert.False(t, ok)
}

func TestKnownTypesAmbiguousSimpleName(t *testing.T) {
	k := NewKnownTypes(nil)
	k.Add("java.util.List")
	k.Add("java.awt.List")

	_, ok := k.Resolve("List", nil)
	assert.False(t, ok)
	_, ok = k.Resolve("java.awt.List", nil)
	assert.True(t, ok)
}

func TestKnownTypesFallsBackToParent(t *testing.T) {
	p, shape, _ := unit("shapes")
	k := DefaultKnownTypes(NewIndex(p))

	got, ok := k.Resolve("shapes.Shape", nil)
	require.True(t, ok)
	assert.Same(t, shape, got)

	calls := 0
	counting := NewKnownTypes(Func(func(name string, _ notation.Node) (notation.Node, bool) {
		calls++
		return nil, false
	}))
	counting.Add("int")
	_, ok = counting.Resolve("int", nil)
	assert.True(t, ok)
	_, ok = counting.Resolve("float", nil)
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}

package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/errors"
)

func TestAnnotateReusesAnnotation(t *testing.T) {
	p := &Package{Name: "shapes"}
	d := p.AddDirective("GenModel", ecore.GenModelNsURI)

	a := p.Annotate(d)
	a.Details.Set("documentation", "x")
	b := p.Annotate(d)

	assert.Same(t, a, b)
	assert.Len(t, p.Annotations, 1)
	assert.Same(t, d, p.Directive(ecore.GenModelNsURI))
	assert.Same(t, d, p.DirectiveNamed("GenModel"))
	assert.Nil(t, p.Directive(ecore.NsURI))
}

func TestQualifiedNameAndMembers(t *testing.T) {
	p := &Package{Name: "org.example.shapes"}
	c := &Class{}
	c.Name = "Shape"
	p.AddClassifier(c)
	ref := &Reference{}
	ref.Name = "children"
	c.AddMember(ref)

	assert.Equal(t, "org.example.shapes.Shape", c.QualifiedName())
	assert.Same(t, c, p.Classifier("Shape"))
	assert.Same(t, c, ref.Class)
	assert.Equal(t, Member(ref), c.Member("children"))
	assert.Nil(t, c.Member("nope"))
}

func TestJvmType(t *testing.T) {
	outer := &JvmType{QualifiedName: "java.util.Map"}
	entry := &JvmType{QualifiedName: "java.util.Map$Entry", Outer: outer}
	outer.Nested = append(outer.Nested, entry)

	assert.Equal(t, "Map", outer.SimpleName())
	assert.Equal(t, "Entry", entry.SimpleName())
	assert.Same(t, entry, outer.NestedType("Entry"))
	assert.Nil(t, outer.NestedType("Value"))
}

func TestLibrary(t *testing.T) {
	lib := Library()
	require.Same(t, lib, Library())

	assert.Equal(t, EcoreDirective, lib.Directive(ecore.NsURI).Name)
	assert.Equal(t, GenModelDirective, lib.Directive(ecore.GenModelNsURI).Name)
	assert.Equal(t, ExtendedMetaDataDirective, lib.Directive(ecore.ExtendedMetaDataNsURI).Name)
	assert.Nil(t, lib.Directive(ecore.XcoreNsURI))

	emap, ok := lib.Classifier("EMap").(*DataType)
	require.True(t, ok)
	assert.Len(t, emap.TypeParameters, 2)
	assert.Equal(t, "java.util.Map", emap.InstanceType.Type.QualifiedName)
	assert.Equal(t, "org.eclipse.emf.ecore.EMap", emap.QualifiedName())
	assert.IsType(t, &Class{}, lib.Classifier("EObject"))
}

func TestIsImplicitImport(t *testing.T) {
	assert.True(t, IsImplicitImport("org.eclipse.emf.ecore.EString"))
	assert.False(t, IsImplicitImport("org.eclipse.emf.ecore.xml.type.AnyType"))
	assert.False(t, IsImplicitImport("org.example.shapes.Shape"))
}

func TestWalkVisitsGenericTypesInPreOrder(t *testing.T) {
	arg := &GenericType{Type: &TypeRef{QualifiedName: "a.B"}}
	lower := &GenericType{Type: &TypeRef{QualifiedName: "a.L"}}
	wildcard := &GenericType{LowerBound: lower}
	top := &GenericType{Type: &TypeRef{QualifiedName: "a.Map"}, TypeArguments: []*GenericType{wildcard, arg}}

	op := &Operation{}
	op.Name = "op"
	op.Type = top
	cls := &Class{}
	cls.Name = "C"
	cls.AddMember(op)
	p := &Package{Name: "a"}
	p.AddClassifier(cls)

	var seen []Node
	require.NoError(t, Walk(p, func(n Node) error {
		seen = append(seen, n)
		return nil
	}))
	assert.Equal(t, []Node{p, cls, op, top, wildcard, lower, arg}, seen)
}

func TestWalkStops(t *testing.T) {
	p := &Package{Name: "a"}
	for _, name := range []string{"A", "B", "C"} {
		dt := &DataType{}
		dt.Name = name
		p.AddClassifier(dt)
	}
	stop := errors.New("stop")
	count := 0
	err := Walk(p, func(n Node) error {
		count++
		if _, ok := n.(*DataType); ok {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, count)
}

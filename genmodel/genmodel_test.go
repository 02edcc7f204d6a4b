package genmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/errors"
)

func loadShapes(t *testing.T) *ecore.Document {
	t.Helper()
	doc, err := ecore.LoadFile("../ecore/testdata/shapes.yaml")
	require.NoError(t, err)
	return doc
}

func TestInitializeDefaults(t *testing.T) {
	doc := loadShapes(t)
	gm := Initialize(doc.Packages, StandardDefaults())

	assert.Equal(t, "Shapes", gm.ModelName)
	assert.Equal(t, "shapes", gm.ModelPluginID)
	assert.Equal(t, "8.0", gm.ComplianceLevel)
	assert.True(t, gm.OperationReflection)
	assert.False(t, gm.ContainmentProxies)

	require.Len(t, gm.GenPackages, 1)
	gp := gm.GenPackages[0]
	assert.Equal(t, "Shapes", gp.Prefix)
	assert.Equal(t, "shapes", gp.FileExtensions)
	assert.Equal(t, "", gp.BasePackage)
	assert.Equal(t, "shapes", gp.QualifiedName())
	assert.Len(t, gp.GenClassifiers, 5)

	shape := gm.FindGenClass(doc.Packages[0].Classifier("Shape").(*ecore.Class))
	require.NotNil(t, shape)
	assert.True(t, shape.Image)
	require.Len(t, shape.GenFeatures, 3)
	assert.True(t, shape.GenFeatures[1].Children, "containment creates children")
	assert.False(t, shape.GenFeatures[2].Children)
	require.Len(t, shape.GenOperations, 1)
	assert.Len(t, shape.GenOperations[0].GenParameters, 2)
	assert.True(t, shape.GenOperations[0].IsInvariant())
}

func TestContentsLockstep(t *testing.T) {
	doc := loadShapes(t)
	a := Initialize(doc.Packages, StandardDefaults())
	b := Initialize(doc.Packages, StandardDefaults())

	var walk func(x, y Node)
	walk = func(x, y Node) {
		assert.Equal(t, Kind(x), Kind(y))
		if x.Element() == nil {
			assert.Nil(t, y.Element(), "%s has no model element", Kind(x))
		} else {
			assert.Same(t, x.Element(), y.Element())
		}
		xs, ys := x.Contents(), y.Contents()
		require.Equal(t, len(xs), len(ys))
		for i := range xs {
			walk(xs[i], ys[i])
		}
	}
	assert.Nil(t, a.Element(), "the root carries no model element")
	walk(a, b)
}

func TestLookup(t *testing.T) {
	doc := loadShapes(t)
	p := doc.Packages[0]
	gm := Initialize(doc.Packages, StandardDefaults())

	group := p.Classifier("Group").(*ecore.Class)
	gtp := gm.FindGenTypeParameter(group.TypeParameters[0])
	require.NotNil(t, gtp)
	assert.Same(t, group.TypeParameters[0], gtp.TypeParameter)

	members := gm.FindGenFeature(group.Feature("members"))
	require.NotNil(t, members)
	assert.False(t, members.ResolveProxies(gm))

	shape := p.Classifier("Shape").(*ecore.Class)
	children := gm.FindGenFeature(shape.Feature("children"))
	assert.False(t, children.ResolveProxies(gm))
	gm.ContainmentProxies = true
	assert.True(t, children.ResolveProxies(gm))
	assert.False(t, gm.FindGenFeature(shape.Feature("parent")).ResolveProxies(gm))
	assert.False(t, gm.FindGenFeature(shape.Feature("id")).ResolveProxies(gm))

	assert.Nil(t, gm.FindGenClass(ecore.Builtin("EObject").(*ecore.Class)))
	assert.NotNil(t, gm.FindGenClassifier(p.Classifier("Color")))
	assert.NotNil(t, gm.FindGenOperation(shape.Operations[0]))
}

func TestLookupAfterManualAssembly(t *testing.T) {
	p := &ecore.Package{Name: "m"}
	c := &ecore.Class{ClassifierBase: ecore.ClassifierBase{Name: "A"}}
	p.AddClassifier(c)
	gm := &GenModel{GenPackages: []*GenPackage{{
		Package:        p,
		GenClassifiers: []Node{&GenClass{Class: c}},
	}}}

	assert.NotNil(t, gm.FindGenPackage(p))
	assert.NotNil(t, gm.FindGenClass(c))
}

func TestQualifiedName(t *testing.T) {
	doc := loadShapes(t)
	p := doc.Packages[0]
	gm := Initialize(doc.Packages, StandardDefaults())

	assert.Equal(t, "shapes.Shape", gm.QualifiedName(p.Classifier("Shape")))
	gm.GenPackages[0].BasePackage = "org.example"
	assert.Equal(t, "org.example.shapes.Shape", gm.QualifiedName(p.Classifier("Shape")))
	assert.Equal(t, "org.eclipse.emf.ecore.EString", gm.QualifiedName(ecore.Builtin("EString")))
}

func TestAttributes(t *testing.T) {
	gc := &GenClass{Provider: "Singleton", Image: true}

	assert.Equal(t, []string{"provider", "image", "dynamic"}, Names(gc))
	v, ok := Get(gc, "image")
	require.True(t, ok)
	assert.Equal(t, true, v)
	_, ok = Get(gc, "nope")
	assert.False(t, ok)

	require.NoError(t, Set(gc, "image", "false"))
	assert.False(t, gc.Image)
	require.NoError(t, Set(gc, "provider", "Stateful"))
	assert.Equal(t, "Stateful", gc.Provider)

	err := Set(gc, "image", "maybe")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidModel(err))

	err = Set(gc, "unknown", "x")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidModel(err))
	assert.Contains(t, err.Error(), "GenClass")
	assert.NotEmpty(t, errors.GetAllHints(err))

	assert.Empty(t, Names(&GenParameter{}))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		value interface{}
		want  string
	}{
		{"Singleton", "Singleton"},
		{true, "true"},
		{false, "false"},
		{42, "42"},
		{nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.value))
		})
	}
}

func TestCapName(t *testing.T) {
	assert.Equal(t, "Shapes", capName("shapes"))
	assert.Equal(t, "Élan", capName("élan"))
	assert.Equal(t, "", capName(""))
}

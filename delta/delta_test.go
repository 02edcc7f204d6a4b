package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/genmodel"
	"github.com/teranos/xcore/lower"
	"github.com/teranos/xcore/notation"
)

type setting struct {
	el    ecore.Element
	name  string
	value string
}

type recorder struct {
	settings []setting
}

func (r *recorder) RecordSetting(el ecore.Element, name, value string) bool {
	r.settings = append(r.settings, setting{el, name, value})
	return true
}

// testClass is a minimal customization node with a name and a flag.
type testClass struct {
	Abstract bool   `gen:"abstract"`
	Name     string `gen:"name"`
	Count    int    `gen:"count"`

	el       ecore.Element
	children []genmodel.Node
}

func (c *testClass) Element() ecore.Element     { return c.el }
func (c *testClass) Contents() []genmodel.Node { return c.children }

type otherNode struct {
	Flag bool `gen:"flag"`
}

func (o *otherNode) Element() ecore.Element     { return nil }
func (o *otherNode) Contents() []genmodel.Node { return nil }

func TestAnnotateWritesOnlyDifferences(t *testing.T) {
	el := &ecore.Class{}
	defaults := &testClass{Abstract: false, Name: "Foo", el: el}
	actual := &testClass{Abstract: true, Name: "Foo", el: el}

	r := &recorder{}
	n, err := Annotate(defaults, actual, r)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []setting{{el, "abstract", "true"}}, r.settings)
}

func TestAnnotateIdenticalTrees(t *testing.T) {
	doc, err := ecore.LoadFile("../ecore/testdata/shapes.yaml")
	require.NoError(t, err)
	a := genmodel.Initialize(doc.Packages, genmodel.StandardDefaults())
	b := genmodel.Initialize(doc.Packages, genmodel.StandardDefaults())

	r := &recorder{}
	n, err := Annotate(a, b, r)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, r.settings)

	n, err = Annotate(a, a, r)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAnnotateLockstep(t *testing.T) {
	first, second := &ecore.Class{}, &ecore.Class{}
	defaults := &testClass{children: []genmodel.Node{
		&testClass{el: first},
		&testClass{el: second},
	}}
	actual := &testClass{Count: 3, children: []genmodel.Node{
		&testClass{Name: "changed", el: first},
		&otherNode{Flag: true},
		&testClass{Abstract: true},
	}}

	r := &recorder{}
	n, err := Annotate(defaults, actual, r)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []setting{
		{nil, "count", "3"},
		{first, "name", "changed"},
	}, r.settings, "mismatched kinds end the branch and extra children are ignored")
}

func TestAnnotateMismatchIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	a := Annotator{Logger: zap.New(core).Sugar()}

	n, err := a.Annotate(&testClass{}, &otherNode{Flag: true}, &recorder{})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, logs.FilterMessage("Customization trees diverge").Len())
}

func TestAnnotatePreconditions(t *testing.T) {
	_, err := Annotate(nil, &testClass{}, &recorder{})
	assert.True(t, errors.IsPrecondition(err))
	_, err = Annotate(&testClass{}, &testClass{}, nil)
	assert.True(t, errors.IsPrecondition(err))
}

func TestAnnotateLoweredUnit(t *testing.T) {
	doc, err := ecore.LoadFile("../ecore/testdata/shapes.yaml")
	require.NoError(t, err)
	defaults := genmodel.Initialize(doc.Packages, genmodel.StandardDefaults())
	actual, err := genmodel.Reconcile(doc.Packages, genmodel.FromDocument(doc), genmodel.StandardDefaults())
	require.NoError(t, err)

	b := lower.NewBuilder(actual, lower.Options{})
	unit, err := b.Package(doc.Packages[0])
	require.NoError(t, err)
	require.NoError(t, b.Link())

	n, err := Annotate(defaults, actual, b)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "complianceLevel and image; basePackage is part of the unit name")

	gen := notation.Library().Directive(ecore.GenModelNsURI)
	unitAnn := unit.Annotation(gen)
	require.NotNil(t, unitAnn)
	v, ok := unitAnn.Details.Get("complianceLevel")
	assert.True(t, ok)
	assert.Equal(t, "11.0", v)
	_, ok = unitAnn.Details.Get("basePackage")
	assert.False(t, ok)

	shape := unit.Classifier("Shape").Base().Annotation(gen)
	require.NotNil(t, shape)
	assert.Equal(t, ecore.Details{{Key: "image", Value: "false"}}, shape.Details)
}

func TestAnnotateSkipsOtherUnits(t *testing.T) {
	doc, err := ecore.Load(stringsReader(`
packages:
  - name: a
    classifiers:
      - class: A
  - name: b
    classifiers:
      - class: B
        gen:
          image: "false"
`))
	require.NoError(t, err)
	defaults := genmodel.Initialize(doc.Packages, genmodel.StandardDefaults())
	actual, err := genmodel.Reconcile(doc.Packages, genmodel.FromDocument(doc), genmodel.StandardDefaults())
	require.NoError(t, err)

	b := lower.NewBuilder(actual, lower.Options{})
	_, err = b.Package(doc.Packages[0])
	require.NoError(t, err)
	require.NoError(t, b.Link())

	n, err := Annotate(defaults, actual, b)
	require.NoError(t, err)
	assert.Zero(t, n)
}

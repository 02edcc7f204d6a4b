package lower

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/genmodel"
	"github.com/teranos/xcore/notation"
)

type fixture struct {
	doc     *ecore.Document
	gen     *genmodel.GenModel
	builder *Builder
	unit    *notation.Package
}

func lowerDoc(t *testing.T, doc *ecore.Document, opts Options) fixture {
	t.Helper()
	gen, err := genmodel.Reconcile(doc.Packages, genmodel.FromDocument(doc), genmodel.StandardDefaults())
	require.NoError(t, err)
	b := NewBuilder(gen, opts)
	unit, err := b.Package(doc.Packages[0])
	require.NoError(t, err)
	require.NoError(t, b.Link())
	return fixture{doc: doc, gen: gen, builder: b, unit: unit}
}

func lowerShapes(t *testing.T, opts Options) fixture {
	t.Helper()
	doc, err := ecore.LoadFile("../ecore/testdata/shapes.yaml")
	require.NoError(t, err)
	return lowerDoc(t, doc, opts)
}

func lowerYAML(t *testing.T, src string, opts Options) fixture {
	t.Helper()
	doc, err := ecore.Load(strings.NewReader(src))
	require.NoError(t, err)
	return lowerDoc(t, doc, opts)
}

func class(t *testing.T, unit *notation.Package, name string) *notation.Class {
	t.Helper()
	c, ok := unit.Classifier(name).(*notation.Class)
	require.True(t, ok, "class %s", name)
	return c
}

func annotation(n notation.Annotated, uri string) *notation.Annotation {
	for _, a := range n.Base().Annotations {
		if a.Directive.SourceURI == uri {
			return a
		}
	}
	return nil
}

func detail(t *testing.T, a *notation.Annotation, key string) string {
	t.Helper()
	require.NotNil(t, a)
	v, ok := a.Details.Get(key)
	require.True(t, ok, "detail %s", key)
	return v
}

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}

package lower

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
	"github.com/teranos/xcore/notation"
	"github.com/teranos/xcore/scope"
	"github.com/teranos/xcore/typeexpr"
)

func TestLowerShapesPackage(t *testing.T) {
	f := lowerShapes(t, Options{})
	unit := f.unit

	assert.Equal(t, "org.example.shapes", unit.Name)
	require.Len(t, unit.Annotations, 2)

	ecoreAnn := unit.Annotations[0]
	assert.Same(t, notation.Library().Directive(ecore.NsURI), ecoreAnn.Directive)
	assert.Equal(t, ecore.Details{{Key: "nsURI", Value: "http://www.example.com/models/shapes"}}, ecoreAnn.Details,
		"nsPrefix equals the name and is dropped")

	genAnn := unit.Annotations[1]
	assert.Equal(t, ecore.GenModelNsURI, genAnn.Directive.SourceURI)
	assert.Equal(t, ecore.Details{{Key: "documentation", Value: "Geometric shapes."}}, genAnn.Details,
		"basePackage is folded into the name")

	require.Len(t, unit.Directives, 2)
	assert.Equal(t, "Doc", unit.Directives[0].Name)
	assert.Equal(t, "http://www.example.com/doc", unit.Directives[0].SourceURI)
	assert.Equal(t, "custom", unit.Directives[1].Name)
}

func TestLowerShapesClasses(t *testing.T) {
	f := lowerShapes(t, Options{})
	shape := class(t, f.unit, "Shape")
	assert.True(t, shape.Abstract)
	assert.False(t, shape.Interface)
	require.Len(t, shape.Members, 4)

	id := shape.Member("id").(*notation.Attribute)
	assert.True(t, id.ID)
	assert.Nil(t, id.Multiplicity)

	children := shape.Member("children").(*notation.Reference)
	assert.True(t, children.Containment)
	assert.False(t, children.ResolveProxies)
	assert.Equal(t, notation.Multiplicity{}, children.Multiplicity)
	assert.True(t, children.Unordered)
	assert.False(t, children.Unique, "references never carry unique")
	require.NotNil(t, children.Opposite)
	assert.Equal(t, "parent", children.Opposite.Name)
	assert.Equal(t, "org.example.shapes.Shape.parent", children.Opposite.QualifiedName())

	parent := shape.Member("parent").(*notation.Reference)
	assert.True(t, parent.Container)
	assert.True(t, parent.Transient)
	assert.False(t, parent.Local)
	assert.Same(t, children, parent.Opposite.Target)
	assert.Same(t, parent, children.Opposite.Target)
	assert.Same(t, shape, parent.Type.Type.Target)

	circle := class(t, f.unit, "Circle")
	require.Len(t, circle.SuperTypes, 1)
	assert.Same(t, shape, circle.SuperTypes[0].Type.Target)
	radius := circle.Member("radius").(*notation.Attribute)
	assert.Equal(t, "1.0", radius.DefaultValueLiteral)
	assert.Equal(t, "org.eclipse.emf.ecore.EDouble", radius.Type.Type.QualifiedName)
	assert.Same(t, notation.Library().Classifier("EDouble"), radius.Type.Type.Target)

	group := class(t, f.unit, "Group")
	require.Len(t, group.TypeParameters, 1)
	tp := group.TypeParameters[0]
	require.Len(t, tp.Bounds, 1)
	assert.Same(t, shape, tp.Bounds[0].Type.Target)

	members := group.Member("members").(*notation.Reference)
	assert.True(t, members.Local)
	assert.Equal(t, notation.Multiplicity{notation.OneOrMore}, members.Multiplicity)
	assert.Same(t, tp, members.Type.Type.Target)

	tags := group.Member("tags").(*notation.Attribute)
	assert.True(t, tags.Unique)
	assert.False(t, tags.Unordered)
}

func TestLowerOperation(t *testing.T) {
	f := lowerShapes(t, Options{})
	op := class(t, f.unit, "Shape").Member("validate").(*notation.Operation)

	require.Len(t, op.Parameters, 2)
	assert.Equal(t, "diagnostics", op.Parameters[0].Name)
	ctx := op.Parameters[1].Type
	assert.Equal(t, "org.eclipse.emf.ecore.EMap", ctx.Type.QualifiedName)
	assert.Len(t, ctx.TypeArguments, 2)

	require.NotNil(t, op.Body)
	assert.Equal(t, "return true;", op.Body.Text)

	require.Len(t, op.Annotations, 1, "the body bundle is not re-emitted")
	assert.Equal(t, "true", detail(t, annotation(op, ecore.NsURI), "invariant"))
}

func TestLowerEnumAndDataType(t *testing.T) {
	f := lowerShapes(t, Options{})

	color, ok := f.unit.Classifier("Color").(*notation.Enum)
	require.True(t, ok)
	require.Len(t, color.Literals, 3)
	assert.Equal(t, "", color.Literals[0].Literal)
	assert.Equal(t, "G", color.Literals[1].Literal)
	assert.Equal(t, 1, color.Literals[1].Value)
	assert.Equal(t, "", color.Literals[2].Literal)
	assert.Equal(t, 7, color.Literals[2].Value)

	point, ok := f.unit.Classifier("Point").(*notation.DataType)
	require.True(t, ok)
	require.NotNil(t, point.InstanceType)
	it := point.InstanceType
	assert.Equal(t, "java.util.Map$Entry", it.Type.QualifiedName)
	entry, ok := it.Type.Target.(*notation.JvmType)
	require.True(t, ok)
	assert.Equal(t, "java.util.Map", entry.Outer.QualifiedName)
	require.Len(t, it.TypeArguments, 2)
	assert.Equal(t, "java.lang.Integer", it.TypeArguments[0].Type.QualifiedName)
	assert.True(t, it.TypeArguments[0].Type.Resolved())

	custom := annotation(point, "http://www.example.com/custom")
	require.NotNil(t, custom, "non-structural bundles are kept even when empty")
	assert.Empty(t, custom.Details)
}

func TestEnumLiteralOmission(t *testing.T) {
	f := lowerYAML(t, `
packages:
  - name: colors
    classifiers:
      - enum: Color
        literals:
          - name: RED
            literal: RED
          - name: GREEN
            literal: R
`, Options{})
	color := f.unit.Classifier("Color").(*notation.Enum)
	assert.Equal(t, "", color.Literals[0].Literal)
	assert.Equal(t, 0, color.Literals[0].Value)
	assert.Equal(t, "R", color.Literals[1].Literal)
	assert.Equal(t, 1, color.Literals[1].Value)
}

func TestEndToEndUnorderedReferenceAndInvariant(t *testing.T) {
	doc, err := ecore.Load(stringsReader(`
packages:
  - name: library
    nsURI: http://example.org/library
    classifiers:
      - class: Library
        features:
          - reference: books
            type: Library
            upper: -1
            ordered: false
        operations:
          - name: wellFormed
            type: EBoolean
            parameters:
              - name: diagnostics
                type: EDiagnosticChain
              - name: context
                type: EMap<EJavaObject, EJavaObject>
`))
	require.NoError(t, err)
	gen := genmodel.Initialize(doc.Packages, genmodel.StandardDefaults())
	b := NewBuilder(gen, Options{})
	unit, err := b.Package(doc.Packages[0])
	require.NoError(t, err)

	lib := class(t, unit, "Library")
	op := lib.Member("wellFormed").(*notation.Operation)
	assert.Empty(t, op.Annotations, "invariant tagging waits for link")

	require.NoError(t, b.Link())

	books := lib.Member("books").(*notation.Reference)
	assert.NotNil(t, books.Multiplicity)
	assert.Empty(t, books.Multiplicity)
	assert.True(t, books.Unordered)
	assert.Equal(t, "true", detail(t, annotation(op, ecore.NsURI), "invariant"))
}

func TestIdentityMapCompleteness(t *testing.T) {
	f := lowerShapes(t, Options{})
	types := ecore.GenericTypes(f.doc.Packages[0])
	require.Len(t, types, 14)
	assert.Equal(t, len(types), f.builder.Mapper().Types())

	reachable := map[*notation.GenericType]bool{}
	require.NoError(t, notation.Walk(f.unit, func(n notation.Node) error {
		if g, ok := n.(*notation.GenericType); ok {
			reachable[g] = true
		}
		return nil
	}))

	seen := map[*notation.GenericType]bool{}
	for _, g := range types {
		x := f.builder.Mapper().Type(g)
		require.NotNil(t, x)
		assert.False(t, seen[x], "two instances share a node")
		seen[x] = true
		assert.True(t, reachable[x], "mapped type is not in the unit")
	}
}

func TestEveryElementIsMapped(t *testing.T) {
	f := lowerShapes(t, Options{})
	m := f.builder.Mapper()
	require.NoError(t, ecore.Walk(f.doc.Packages[0], func(el ecore.Element) error {
		n := m.Node(el)
		assert.NotNil(t, n, ecore.Path(el))
		assert.Equal(t, el, m.Element(n))
		return nil
	}))
}

func TestLinkPreconditions(t *testing.T) {
	doc, err := ecore.LoadFile("../ecore/testdata/shapes.yaml")
	require.NoError(t, err)
	gen := genmodel.Initialize(doc.Packages, genmodel.StandardDefaults())

	t.Run("link before package", func(t *testing.T) {
		err := NewBuilder(gen, Options{}).Link()
		assert.True(t, errors.IsPrecondition(err))
	})

	t.Run("link twice", func(t *testing.T) {
		b := NewBuilder(gen, Options{})
		_, err := b.Package(doc.Packages[0])
		require.NoError(t, err)
		require.NoError(t, b.Link())
		assert.True(t, b.Linked())
		assert.Zero(t, b.Pending())
		assert.True(t, errors.IsPrecondition(b.Link()))
	})

	t.Run("second package", func(t *testing.T) {
		b := NewBuilder(gen, Options{})
		_, err := b.Package(doc.Packages[0])
		require.NoError(t, err)
		_, err = b.Package(doc.Packages[0])
		assert.True(t, errors.IsPrecondition(err))
	})

	t.Run("uncustomized package", func(t *testing.T) {
		_, err := NewBuilder(gen, Options{}).Package(&ecore.Package{Name: "stray"})
		assert.True(t, errors.IsPrecondition(err))
	})

	t.Run("enqueue while linking", func(t *testing.T) {
		b := NewBuilder(gen, Options{})
		_, err := b.Package(doc.Packages[0])
		require.NoError(t, err)
		b.enqueue("outer", func() error {
			b.enqueue("inner", func() error { return nil })
			return nil
		})
		err = b.Link()
		assert.True(t, errors.IsPrecondition(err))
		assert.Contains(t, err.Error(), "inner")
	})

	t.Run("link again after a failed link", func(t *testing.T) {
		b := NewBuilder(gen, Options{})
		_, err := b.Package(doc.Packages[0])
		require.NoError(t, err)
		b.enqueue("failing", func() error { return errors.New("boom") })

		err = b.Link()
		require.Error(t, err)
		assert.False(t, errors.IsPrecondition(err))
		assert.False(t, b.Linked())
		assert.Zero(t, b.Pending())

		assert.True(t, errors.IsPrecondition(b.Link()))
	})
}

func TestParameterCountMismatch(t *testing.T) {
	doc, err := ecore.LoadFile("../ecore/testdata/shapes.yaml")
	require.NoError(t, err)
	gen := genmodel.Initialize(doc.Packages, genmodel.StandardDefaults())
	op := doc.Packages[0].Classifier("Shape").(*ecore.Class).Operations[0]
	gop := gen.FindGenOperation(op)
	gop.GenParameters = gop.GenParameters[:1]

	_, err = NewBuilder(gen, Options{}).Package(doc.Packages[0])
	require.Error(t, err)
	assert.True(t, errors.IsPrecondition(err))
	assert.Contains(t, err.Error(), "2 parameters but 1")
}

func TestTypeParameterOrderMismatch(t *testing.T) {
	doc, err := ecore.Load(stringsReader(`
packages:
  - name: pairs
    classifiers:
      - class: Pair
        typeParameters: [A, B]
`))
	require.NoError(t, err)
	gen := genmodel.Initialize(doc.Packages, genmodel.StandardDefaults())
	gc := gen.FindGenClass(doc.Packages[0].Classifier("Pair").(*ecore.Class))
	gc.GenTypeParameters[0], gc.GenTypeParameters[1] = gc.GenTypeParameters[1], gc.GenTypeParameters[0]

	_, err = NewBuilder(gen, Options{}).Package(doc.Packages[0])
	assert.True(t, errors.IsPrecondition(err))
}

func TestInstanceTypeParseError(t *testing.T) {
	doc, err := ecore.Load(stringsReader(`
packages:
  - name: broken
    classifiers:
      - dataType: Bad
        instanceTypeName: java.util.List<
`))
	require.NoError(t, err)
	gen := genmodel.Initialize(doc.Packages, genmodel.StandardDefaults())
	b := NewBuilder(gen, Options{})
	_, err = b.Package(doc.Packages[0])
	require.NoError(t, err, "instance types are parsed during link")

	err = b.Link()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidModel(err))
	var pe *typeexpr.ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestUnresolvedTypesAreLeftAlone(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := lowerShapes(t, Options{Resolver: scope.Empty, Logger: zap.New(core).Sugar()})

	radius := class(t, f.unit, "Circle").Member("radius").(*notation.Attribute)
	assert.False(t, radius.Type.Type.Resolved())
	assert.Equal(t, "org.eclipse.emf.ecore.EDouble", radius.Type.Type.QualifiedName)

	point := f.unit.Classifier("Point").(*notation.DataType)
	assert.False(t, point.InstanceType.Type.Resolved())

	shape := class(t, f.unit, "Shape")
	assert.Same(t, shape, class(t, f.unit, "Circle").SuperTypes[0].Type.Target, "in-unit targets bind without a resolver")

	assert.NotZero(t, logs.FilterMessage("Unresolved type").Len())
}

func TestRecordSetting(t *testing.T) {
	f := lowerShapes(t, Options{})
	shape := f.doc.Packages[0].Classifier("Shape")

	assert.True(t, f.builder.RecordSetting(shape, "image", "false"))
	assert.True(t, f.builder.RecordSetting(shape, "provider", "Stateful"))
	a := annotation(class(t, f.unit, "Shape"), ecore.GenModelNsURI)
	assert.Equal(t, ecore.Details{{Key: "image", Value: "false"}, {Key: "provider", Value: "Stateful"}}, a.Details)

	assert.True(t, f.builder.RecordSetting(nil, "complianceLevel", "11.0"))
	assert.False(t, f.builder.RecordSetting(nil, "basePackage", "org.example"))
	unitGen := annotation(f.unit, ecore.GenModelNsURI)
	assert.Equal(t, "11.0", detail(t, unitGen, "complianceLevel"))
	_, ok := unitGen.Details.Get("basePackage")
	assert.False(t, ok)

	assert.False(t, f.builder.RecordSetting(&ecore.Package{Name: "elsewhere"}, "prefix", "X"))
	assert.False(t, NewBuilder(f.gen, Options{}).RecordSetting(nil, "prefix", "X"))
}

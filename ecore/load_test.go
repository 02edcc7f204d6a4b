package ecore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/xcore/errors"
)

func loadShapes(t *testing.T) *Document {
	t.Helper()
	doc, err := LoadFile("testdata/shapes.yaml")
	require.NoError(t, err)
	return doc
}

func TestLoadShapes(t *testing.T) {
	doc := loadShapes(t)
	require.Len(t, doc.Packages, 1)

	p := doc.Package("shapes")
	require.NotNil(t, p)
	assert.Equal(t, "http://www.example.com/models/shapes", p.NsURI)
	require.Len(t, p.Classifiers, 5)

	shape, ok := p.Classifier("Shape").(*Class)
	require.True(t, ok)
	assert.True(t, shape.Abstract)
	assert.Same(t, p, shape.Package)

	children, ok := shape.Feature("children").(*Reference)
	require.True(t, ok)
	parent, ok := shape.Feature("parent").(*Reference)
	require.True(t, ok)

	assert.True(t, children.Containment)
	assert.False(t, children.Ordered)
	assert.True(t, children.Unique, "unique defaults to true")
	assert.True(t, children.Many())
	assert.Same(t, parent, children.Opposite)
	assert.Same(t, children, parent.Opposite)
	assert.True(t, parent.Container())
	assert.False(t, children.Container())
	assert.True(t, parent.Changeable, "changeable defaults to true")
	assert.True(t, parent.Transient)
	assert.Same(t, shape, children.Type.Classifier)

	id := shape.Feature("id").(*Attribute)
	assert.True(t, id.ID)
	assert.Same(t, Builtin("EString"), id.Type.Classifier)
}

func TestLoadOperation(t *testing.T) {
	doc := loadShapes(t)
	shape := doc.Package("shapes").Classifier("Shape").(*Class)
	require.Len(t, shape.Operations, 1)

	op := shape.Operations[0]
	assert.Equal(t, "validate", op.Name)
	assert.Same(t, shape, op.Class)
	require.Len(t, op.Parameters, 2)
	assert.Same(t, op, op.Parameters[0].Operation)
	require.Len(t, op.Parameters[1].Type.TypeArguments, 2)
	assert.True(t, op.InvariantSignature())

	body := op.Body()
	require.NotNil(t, body)
	assert.Equal(t, "return true;", body.Text)
}

func TestLoadGenerics(t *testing.T) {
	doc := loadShapes(t)
	p := doc.Package("shapes")
	group := p.Classifier("Group").(*Class)

	require.Len(t, group.TypeParameters, 1)
	tp := group.TypeParameters[0]
	require.Len(t, tp.Bounds, 1)
	assert.Same(t, p.Classifier("Shape"), tp.Bounds[0].Classifier)

	members := group.Feature("members").(*Reference)
	assert.Same(t, tp, members.Type.TypeParameter)
	assert.False(t, members.ResolveProxies)
	assert.Equal(t, 1, members.Lower)
	assert.Equal(t, Unbounded, members.Upper)
}

func TestLoadEnumAndDataType(t *testing.T) {
	doc := loadShapes(t)
	p := doc.Package("shapes")

	color := p.Classifier("Color").(*Enum)
	require.Len(t, color.Literals, 3)
	assert.Equal(t, 0, color.Literals[0].Value)
	assert.Equal(t, 1, color.Literals[1].Value)
	assert.Equal(t, 7, color.Literals[2].Value)
	assert.Equal(t, "G", color.Literals[1].Literal)

	point := p.Classifier("Point").(*DataType)
	assert.True(t, point.Serializable)
	assert.Equal(t, "java.util.Map$Entry<java.lang.Integer, java.lang.Integer>", point.InstanceTypeName)
	custom := point.Annotation("http://www.example.com/custom")
	require.NotNil(t, custom)
	assert.Empty(t, custom.Details)
}

func TestLoadAnnotationsAndSettings(t *testing.T) {
	doc := loadShapes(t)
	p := doc.Package("shapes")

	gen := p.Annotation(GenModelNsURI)
	require.NotNil(t, gen)
	assert.Equal(t, []string{"documentation", "basePackage"}, gen.Details.Keys())

	assert.Equal(t, "11.0", doc.ModelSettings["complianceLevel"])
	assert.Equal(t, "org.example", doc.Settings[p]["basePackage"])
	assert.Equal(t, "false", doc.Settings[p.Classifier("Shape")]["image"])
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "empty"},
		{"unknown field", "packages:\n  - name: a\n    bogus: 1\n", "bogus"},
		{"unknown type", `
packages:
  - name: a
    classifiers:
      - class: A
        features:
          - attribute: x
            type: Nope
`, `unknown type "Nope"`},
		{"duplicate classifier", `
packages:
  - name: a
    classifiers:
      - class: A
      - dataType: A
`, "duplicate classifier"},
		{"two kinds", `
packages:
  - name: a
    classifiers:
      - class: A
        enum: A
`, "exactly one of"},
		{"array type", `
packages:
  - name: a
    classifiers:
      - class: A
        features:
          - attribute: x
            type: EInt[]
`, "array type"},
		{"opposite not a reference", `
packages:
  - name: a
    classifiers:
      - class: A
        features:
          - attribute: x
            type: EInt
          - reference: self
            type: A
            opposite: x
`, "opposite"},
		{"bad bounds", `
packages:
  - name: a
    classifiers:
      - class: A
        features:
          - attribute: x
            type: EInt
            lower: 3
            upper: 2
`, "invalid bounds"},
		{"syntax", `
packages:
  - name: a
    classifiers:
      - class: A
        features:
          - attribute: x
            type: "EMap<EString"
`, "expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidModel(err), "error should be marked invalid model: %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadCrossPackageReference(t *testing.T) {
	doc, err := Load(strings.NewReader(`
packages:
  - name: base
    classifiers:
      - class: Named
  - name: app
    classifiers:
      - class: Thing
        superTypes: [base.Named]
        features:
          - attribute: label
            type: ecore.EString
`))
	require.NoError(t, err)

	thing := doc.Package("app").Classifier("Thing").(*Class)
	assert.Same(t, doc.Package("base").Classifier("Named"), thing.SuperTypes[0].Classifier)
	assert.Same(t, Builtin("EString"), thing.Feature("label").Feature().Type.Classifier)
}

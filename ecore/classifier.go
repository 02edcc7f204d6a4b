package ecore

// Classifier is one of *Class, *Enum or *DataType.
type Classifier interface {
	Element
	Classifier() *ClassifierBase
}

// ClassifierBase holds the state shared by all classifier variants.
type ClassifierBase struct {
	ModelElement
	Name             string
	InstanceTypeName string
	TypeParameters   []*TypeParameter
	Package          *Package
}

// Classifier returns c.
func (c *ClassifierBase) Classifier() *ClassifierBase {
	return c
}

// Class is a classifier with structure and behaviour.
type Class struct {
	ClassifierBase
	Abstract   bool
	Interface  bool
	SuperTypes []*GenericType
	Features   []StructuralFeature
	Operations []*Operation
}

// AddFeature appends f and sets its containing class.
func (c *Class) AddFeature(f StructuralFeature) {
	f.Feature().Class = c
	c.Features = append(c.Features, f)
}

// AddOperation appends op and sets its containing class.
func (c *Class) AddOperation(op *Operation) {
	op.Class = c
	c.Operations = append(c.Operations, op)
}

// Feature returns the structural feature with the given name, or nil.
func (c *Class) Feature(name string) StructuralFeature {
	for _, f := range c.Features {
		if f.Feature().Name == name {
			return f
		}
	}
	return nil
}

// DataType is a leaf classifier wrapping a host type.
type DataType struct {
	ClassifierBase
	Serializable bool
}

// Enum is a data type with an ordered set of literals.
type Enum struct {
	ClassifierBase
	Literals []*EnumLiteral
}

// AddLiteral appends l and sets its owning enum.
func (e *Enum) AddLiteral(l *EnumLiteral) {
	l.Enum = e
	e.Literals = append(e.Literals, l)
}

// EnumLiteral is a named value of an enum. Literal is the display string;
// empty means the same as Name.
type EnumLiteral struct {
	ModelElement
	Name    string
	Value   int
	Literal string
	Enum    *Enum
}

// TypeParameter is a generic parameter of a classifier or operation.
type TypeParameter struct {
	ModelElement
	Name   string
	Bounds []*GenericType
	Owner  Element
}

package ecore

// TypedElement is the state shared by features, operations and parameters.
type TypedElement struct {
	ModelElement
	Name    string
	Type    *GenericType
	Lower   int
	Upper   int
	Ordered bool
	Unique  bool
}

// Many reports whether the element can hold more than one value.
func (t *TypedElement) Many() bool {
	return t.Upper > 1 || t.Upper == Unbounded
}

// Typed returns t.
func (t *TypedElement) Typed() *TypedElement {
	return t
}

// StructuralFeature is one of *Attribute or *Reference.
type StructuralFeature interface {
	Element
	Feature() *FeatureBase
}

// FeatureBase holds the state shared by attributes and references.
type FeatureBase struct {
	TypedElement
	Changeable          bool
	Volatile            bool
	Transient           bool
	Unsettable          bool
	Derived             bool
	DefaultValueLiteral string
	Class               *Class
}

// Feature returns f.
func (f *FeatureBase) Feature() *FeatureBase {
	return f
}

// Attribute is a structural feature typed by a data type.
type Attribute struct {
	FeatureBase
	ID bool
}

// Reference is a structural feature typed by a class.
type Reference struct {
	FeatureBase
	Containment    bool
	ResolveProxies bool
	Opposite       *Reference
	Keys           []*Attribute
}

// Container reports whether the reference is the inverse of a containment.
func (r *Reference) Container() bool {
	return r.Opposite != nil && r.Opposite.Containment
}

// Operation is a behavioural member of a class.
type Operation struct {
	TypedElement
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	Exceptions     []*GenericType
	Class          *Class
}

// AddParameter appends p and sets its owning operation.
func (o *Operation) AddParameter(p *Parameter) {
	p.Operation = o
	o.Parameters = append(o.Parameters, p)
}

// Body returns the body expression stored as the first content of the
// structural or reserved namespace bundle, or nil.
func (o *Operation) Body() *Block {
	for _, source := range []string{NsURI, XcoreNsURI} {
		a := o.Annotation(source)
		if a == nil || len(a.Contents) == 0 {
			continue
		}
		if b, ok := a.Contents[0].(*Block); ok {
			return b
		}
	}
	return nil
}

// InvariantSignature reports whether the operation has the shape of a
// validation invariant: a boolean result and exactly a diagnostic chain
// and a context map as parameters.
func (o *Operation) InvariantSignature() bool {
	if !IsBuiltin(o.Type, "EBoolean") || len(o.Parameters) != 2 {
		return false
	}
	return IsBuiltin(o.Parameters[0].Type, "EDiagnosticChain") && IsBuiltin(o.Parameters[1].Type, "EMap")
}

// Parameter is a typed operation parameter.
type Parameter struct {
	TypedElement
	Operation *Operation
}

// GenericType is a generic type expression. Exactly one of Classifier or
// TypeParameter is set, or neither for a wildcard with optional bounds.
// Instances are never shared; identity is the pointer.
type GenericType struct {
	Classifier    Classifier
	TypeParameter *TypeParameter
	LowerBound    *GenericType
	UpperBound    *GenericType
	TypeArguments []*GenericType
}

// TypeOf returns a generic type bound to c with the given arguments.
func TypeOf(c Classifier, args ...*GenericType) *GenericType {
	return &GenericType{Classifier: c, TypeArguments: args}
}

// Wildcard reports whether g is a wildcard.
func (g *GenericType) Wildcard() bool {
	return g.Classifier == nil && g.TypeParameter == nil
}

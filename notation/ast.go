// Package notation is the syntax tree of the textual model notation. A
// *Package is one output unit; everything else hangs off it.
package notation

import "github.com/teranos/xcore/ecore"

// Node is implemented by every tree node.
type Node interface {
	isNode()
}

// Annotated is implemented by nodes that can carry annotations.
type Annotated interface {
	Node
	Base() *Element
}

// Element holds the annotations of a node.
type Element struct {
	Annotations []*Annotation
}

func (*Element) isNode() {}

// Base returns e.
func (e *Element) Base() *Element { return e }

// Annotation returns the annotation referencing d, or nil.
func (e *Element) Annotation(d *Directive) *Annotation {
	for _, a := range e.Annotations {
		if a.Directive == d {
			return a
		}
	}
	return nil
}

// Annotate returns the annotation referencing d, creating it if needed.
// A node never carries two annotations for the same directive.
func (e *Element) Annotate(d *Directive) *Annotation {
	if a := e.Annotation(d); a != nil {
		return a
	}
	a := &Annotation{Directive: d}
	e.Annotations = append(e.Annotations, a)
	return a
}

// Directive binds a short name to a namespace identifier within a unit.
type Directive struct {
	Name      string
	SourceURI string
}

// Annotation is a set of details under a directive.
type Annotation struct {
	Directive *Directive
	Details   ecore.Details
}

// Package is an output unit.
type Package struct {
	Element
	Name        string
	Directives  []*Directive
	Imports     []string
	Classifiers []Classifier
}

// Directive returns the directive bound to uri, or nil.
func (p *Package) Directive(uri string) *Directive {
	for _, d := range p.Directives {
		if d.SourceURI == uri {
			return d
		}
	}
	return nil
}

// DirectiveNamed returns the directive with the given name, or nil.
func (p *Package) DirectiveNamed(name string) *Directive {
	for _, d := range p.Directives {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// AddDirective appends a directive. Callers look up before adding.
func (p *Package) AddDirective(name, uri string) *Directive {
	d := &Directive{Name: name, SourceURI: uri}
	p.Directives = append(p.Directives, d)
	return d
}

// Classifier returns the classifier with the given name, or nil.
func (p *Package) Classifier(name string) Classifier {
	for _, c := range p.Classifiers {
		if c.Classifier().Name == name {
			return c
		}
	}
	return nil
}

// AddClassifier appends c and sets its package.
func (p *Package) AddClassifier(c Classifier) {
	c.Classifier().Package = p
	p.Classifiers = append(p.Classifiers, c)
}

// Classifier is one of *Class, *Enum or *DataType.
type Classifier interface {
	Annotated
	Classifier() *ClassifierBase
}

// ClassifierBase holds what every classifier has.
type ClassifierBase struct {
	Element
	Name           string
	InstanceType   *GenericType
	TypeParameters []*TypeParameter
	Package        *Package
}

// Classifier returns c.
func (c *ClassifierBase) Classifier() *ClassifierBase { return c }

// QualifiedName returns the package name and the classifier name.
func (c *ClassifierBase) QualifiedName() string {
	if c.Package == nil {
		return c.Name
	}
	return c.Package.Name + "." + c.Name
}

// Class is a class declaration.
type Class struct {
	ClassifierBase
	Abstract   bool
	Interface  bool
	SuperTypes []*GenericType
	Members    []Member
}

// AddMember appends m and sets its containing class.
func (c *Class) AddMember(m Member) {
	m.Member().Class = c
	c.Members = append(c.Members, m)
}

// Member returns the member with the given name, or nil.
func (c *Class) Member(name string) Member {
	for _, m := range c.Members {
		if m.Member().Name == name {
			return m
		}
	}
	return nil
}

// DataType is a data type wrapping a host type.
type DataType struct {
	ClassifierBase
}

// Enum is an enum declaration.
type Enum struct {
	ClassifierBase
	Literals []*EnumLiteral
}

// EnumLiteral is one enum value. An empty Literal means the name is used.
type EnumLiteral struct {
	Element
	Name    string
	Literal string
	Value   int
}

// Member is one of *Attribute, *Reference or *Operation.
type Member interface {
	Annotated
	Member() *TypedElement
}

// TypedElement holds what members and parameters have in common.
type TypedElement struct {
	Element
	Name         string
	Type         *GenericType
	Multiplicity Multiplicity
	Unordered    bool
	Unique       bool
	Class        *Class
}

// Member returns t.
func (t *TypedElement) Member() *TypedElement { return t }

// Feature holds the flags of attributes and references.
type Feature struct {
	TypedElement
	Readonly   bool
	Transient  bool
	Volatile   bool
	Derived    bool
	Unsettable bool
}

// Attribute is an attribute declaration.
type Attribute struct {
	Feature
	ID                  bool
	DefaultValueLiteral string
}

// Reference is a reference declaration. At most one of Containment,
// Container and Local is set.
type Reference struct {
	Feature
	Containment    bool
	Container      bool
	Local          bool
	ResolveProxies bool
	Opposite       *FeatureRef
	Keys           []*FeatureRef
}

// FeatureRef names a feature of a class. Target is set once the name is
// resolved.
type FeatureRef struct {
	Class  string // qualified name of the declaring class
	Name   string
	Target Member
}

// QualifiedName returns the class name and the feature name.
func (r *FeatureRef) QualifiedName() string {
	return r.Class + "." + r.Name
}

// Operation is an operation declaration.
type Operation struct {
	TypedElement
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	Exceptions     []*GenericType
	Body           *ecore.Block
}

// Parameter is an operation parameter.
type Parameter struct {
	TypedElement
}

// TypeParameter is a generic parameter of a classifier or operation.
type TypeParameter struct {
	Element
	Name   string
	Bounds []*GenericType
}

// GenericType is a type expression. A nil Type is a wildcard.
type GenericType struct {
	Type          *TypeRef
	LowerBound    *GenericType
	UpperBound    *GenericType
	TypeArguments []*GenericType
}

func (*GenericType) isNode() {}

// Wildcard reports whether g is a wildcard.
func (g *GenericType) Wildcard() bool { return g.Type == nil }

// TypeRef is a type name resolved lazily. Target is a Classifier, a
// *TypeParameter or a *JvmType once resolved.
type TypeRef struct {
	QualifiedName string
	Target        Node
}

// Resolved reports whether the reference has a target.
func (r *TypeRef) Resolved() bool { return r != nil && r.Target != nil }

// JvmType is a host type named by an instance type expression.
type JvmType struct {
	QualifiedName string
	Nested        []*JvmType
	Outer         *JvmType
}

func (*JvmType) isNode() {}

// NestedType returns the directly nested type with the given simple name.
func (j *JvmType) NestedType(name string) *JvmType {
	for _, n := range j.Nested {
		if n.SimpleName() == name {
			return n
		}
	}
	return nil
}

// SimpleName returns the last segment of the qualified name.
func (j *JvmType) SimpleName() string {
	name := j.QualifiedName
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' || name[i] == '$' {
			return name[i+1:]
		}
	}
	return name
}

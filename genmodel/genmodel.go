// Package genmodel holds the generator customization tree layered on top of
// a source model.
//
// Every node mirrors one source element. Single-valued settings are plain
// struct fields tagged `gen:"name"`; they are what the settings-delta
// annotator compares. Child lists are returned by Contents in a fixed order
// so that two trees built from the same packages can be walked in lockstep.
package genmodel

import "github.com/teranos/xcore/ecore"

// Node is implemented by every customization node.
type Node interface {
	// Element returns the source element the node customizes; nil for the root.
	Element() ecore.Element
	// Contents returns the child nodes in lockstep order. Annotations are excluded.
	Contents() []Node
}

// GenAnnotation is a free-form annotation attached to a customization node.
// It is carried by every node but never compared.
type GenAnnotation struct {
	Source  string
	Details ecore.Details
}

// GenBase holds the annotations shared by every node.
type GenBase struct {
	GenAnnotations []*GenAnnotation
}

// GenModel is the root of a customization tree.
type GenModel struct {
	GenBase
	ModelName                string `gen:"modelName"`
	ModelPluginID            string `gen:"modelPluginID"`
	ModelDirectory           string `gen:"modelDirectory"`
	CopyrightText            string `gen:"copyrightText"`
	ComplianceLevel          string `gen:"complianceLevel"`
	RuntimeVersion           string `gen:"runtimeVersion"`
	RootExtendsClass         string `gen:"rootExtendsClass"`
	RootExtendsInterface     string `gen:"rootExtendsInterface"`
	FeatureDelegation        string `gen:"featureDelegation"`
	OperationReflection      bool   `gen:"operationReflection"`
	SuppressEMFTypes         bool   `gen:"suppressEMFTypes"`
	SuppressInterfaces       bool   `gen:"suppressInterfaces"`
	ContainmentProxies       bool   `gen:"containmentProxies"`
	MinimalReflectiveMethods bool   `gen:"minimalReflectiveMethods"`
	PublicConstructors       bool   `gen:"publicConstructors"`
	CodeFormatting           bool   `gen:"codeFormatting"`
	BundleManifest           bool   `gen:"bundleManifest"`

	GenPackages []*GenPackage

	index map[ecore.Element]Node
}

// Element returns nil; the root customizes no single element.
func (g *GenModel) Element() ecore.Element { return nil }

// Contents returns the gen packages.
func (g *GenModel) Contents() []Node {
	out := make([]Node, 0, len(g.GenPackages))
	for _, gp := range g.GenPackages {
		out = append(out, gp)
	}
	return out
}

// GenPackage customizes one package.
type GenPackage struct {
	GenBase
	Prefix                    string `gen:"prefix"`
	BasePackage               string `gen:"basePackage"`
	Resource                  string `gen:"resource"`
	FileExtensions            string `gen:"fileExtensions"`
	ContentTypeIdentifier     string `gen:"contentTypeIdentifier"`
	AdapterFactory            bool   `gen:"adapterFactory"`
	LoadInitialization        bool   `gen:"loadInitialization"`
	LiteralsInterface         bool   `gen:"literalsInterface"`
	DataTypeConverters        bool   `gen:"dataTypeConverters"`
	MultipleEditorPages       bool   `gen:"multipleEditorPages"`
	GenerateModelWizard       bool   `gen:"generateModelWizard"`
	DisposableProviderFactory bool   `gen:"disposableProviderFactory"`

	Package        *ecore.Package
	GenClassifiers []Node
}

// Element returns the package.
func (g *GenPackage) Element() ecore.Element { return g.Package }

// Contents returns the gen classifiers in declaration order.
func (g *GenPackage) Contents() []Node { return g.GenClassifiers }

// QualifiedName returns the package name prefixed with the base package.
func (g *GenPackage) QualifiedName() string {
	if g.BasePackage == "" {
		return g.Package.Name
	}
	return g.BasePackage + "." + g.Package.Name
}

// GenClassifier is implemented by GenClass, GenEnum and GenDataType.
type GenClassifier interface {
	Node
	TypeParameters() []*GenTypeParameter
}

// GenClass customizes a class.
type GenClass struct {
	GenBase
	Provider string `gen:"provider"`
	Image    bool   `gen:"image"`
	Dynamic  bool   `gen:"dynamic"`

	Class             *ecore.Class
	GenTypeParameters []*GenTypeParameter
	GenFeatures       []*GenFeature
	GenOperations     []*GenOperation
}

// Element returns the class.
func (g *GenClass) Element() ecore.Element { return g.Class }

// TypeParameters returns the gen type parameters.
func (g *GenClass) TypeParameters() []*GenTypeParameter { return g.GenTypeParameters }

// Contents returns type parameters, features, then operations.
func (g *GenClass) Contents() []Node {
	out := make([]Node, 0, len(g.GenTypeParameters)+len(g.GenFeatures)+len(g.GenOperations))
	for _, tp := range g.GenTypeParameters {
		out = append(out, tp)
	}
	for _, f := range g.GenFeatures {
		out = append(out, f)
	}
	for _, op := range g.GenOperations {
		out = append(out, op)
	}
	return out
}

// GenDataType customizes a data type.
type GenDataType struct {
	GenBase
	DataType          *ecore.DataType
	GenTypeParameters []*GenTypeParameter
}

// Element returns the data type.
func (g *GenDataType) Element() ecore.Element { return g.DataType }

// TypeParameters returns the gen type parameters.
func (g *GenDataType) TypeParameters() []*GenTypeParameter { return g.GenTypeParameters }

// Contents returns the type parameters.
func (g *GenDataType) Contents() []Node {
	out := make([]Node, 0, len(g.GenTypeParameters))
	for _, tp := range g.GenTypeParameters {
		out = append(out, tp)
	}
	return out
}

// GenEnum customizes an enum.
type GenEnum struct {
	GenBase
	TypeSafeEnumCompatible bool `gen:"typeSafeEnumCompatible"`

	Enum              *ecore.Enum
	GenTypeParameters []*GenTypeParameter
	GenEnumLiterals   []*GenEnumLiteral
}

// Element returns the enum.
func (g *GenEnum) Element() ecore.Element { return g.Enum }

// TypeParameters returns the gen type parameters.
func (g *GenEnum) TypeParameters() []*GenTypeParameter { return g.GenTypeParameters }

// Contents returns type parameters, then literals.
func (g *GenEnum) Contents() []Node {
	out := make([]Node, 0, len(g.GenTypeParameters)+len(g.GenEnumLiterals))
	for _, tp := range g.GenTypeParameters {
		out = append(out, tp)
	}
	for _, l := range g.GenEnumLiterals {
		out = append(out, l)
	}
	return out
}

// GenEnumLiteral customizes an enum literal.
type GenEnumLiteral struct {
	GenBase
	Literal *ecore.EnumLiteral
}

// Element returns the literal.
func (g *GenEnumLiteral) Element() ecore.Element { return g.Literal }

// Contents returns nil.
func (g *GenEnumLiteral) Contents() []Node { return nil }

// GenFeature customizes an attribute or reference.
type GenFeature struct {
	GenBase
	Property            string `gen:"property"`
	PropertyCategory    string `gen:"propertyCategory"`
	Notify              bool   `gen:"notify"`
	Children            bool   `gen:"children"`
	CreateChild         bool   `gen:"createChild"`
	PropertyMultiLine   bool   `gen:"propertyMultiLine"`
	PropertySortChoices bool   `gen:"propertySortChoices"`

	Feature ecore.StructuralFeature
}

// Element returns the feature.
func (g *GenFeature) Element() ecore.Element { return g.Feature }

// Contents returns nil.
func (g *GenFeature) Contents() []Node { return nil }

// ResolveProxies reports whether references through this feature resolve
// proxies. Container references never do; containments do only when the
// model enables containment proxies.
func (g *GenFeature) ResolveProxies(model *GenModel) bool {
	ref, ok := g.Feature.(*ecore.Reference)
	if !ok || !ref.ResolveProxies || ref.Container() {
		return false
	}
	if ref.Containment {
		return model != nil && model.ContainmentProxies
	}
	return true
}

// GenOperation customizes an operation.
type GenOperation struct {
	GenBase
	SuppressedVisibility bool `gen:"suppressedVisibility"`

	Operation         *ecore.Operation
	GenParameters     []*GenParameter
	GenTypeParameters []*GenTypeParameter
}

// Element returns the operation.
func (g *GenOperation) Element() ecore.Element { return g.Operation }

// Contents returns parameters, then type parameters.
func (g *GenOperation) Contents() []Node {
	out := make([]Node, 0, len(g.GenParameters)+len(g.GenTypeParameters))
	for _, p := range g.GenParameters {
		out = append(out, p)
	}
	for _, tp := range g.GenTypeParameters {
		out = append(out, tp)
	}
	return out
}

// IsInvariant reports whether the operation is generated as a validation
// invariant rather than an ordinary method.
func (g *GenOperation) IsInvariant() bool {
	return g.Operation.InvariantSignature()
}

// GenParameter customizes an operation parameter.
type GenParameter struct {
	GenBase
	Parameter *ecore.Parameter
}

// Element returns the parameter.
func (g *GenParameter) Element() ecore.Element { return g.Parameter }

// Contents returns nil.
func (g *GenParameter) Contents() []Node { return nil }

// GenTypeParameter customizes a type parameter.
type GenTypeParameter struct {
	GenBase
	TypeParameter *ecore.TypeParameter
}

// Element returns the type parameter.
func (g *GenTypeParameter) Element() ecore.Element { return g.TypeParameter }

// Contents returns nil.
func (g *GenTypeParameter) Contents() []Node { return nil }

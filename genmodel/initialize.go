package genmodel

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/teranos/xcore/ecore"
)

// Defaults are the project-level values a fresh customization tree starts
// from. Both the defaults tree and the actual tree are initialized with the
// same Defaults so that only per-model choices show up as differences.
type Defaults struct {
	ModelPluginID       string
	ModelDirectory      string
	CopyrightText       string
	ComplianceLevel     string
	RuntimeVersion      string
	OperationReflection bool
}

// StandardDefaults returns the values used when no configuration is present.
func StandardDefaults() Defaults {
	return Defaults{
		ModelDirectory:      "/src",
		ComplianceLevel:     "8.0",
		RuntimeVersion:      "2.20",
		OperationReflection: true,
	}
}

// Initialize builds a fresh customization tree for packages with every
// setting at its computed default.
func Initialize(packages []*ecore.Package, d Defaults) *GenModel {
	gm := &GenModel{
		ModelPluginID:            d.ModelPluginID,
		ModelDirectory:           d.ModelDirectory,
		CopyrightText:            d.CopyrightText,
		ComplianceLevel:          d.ComplianceLevel,
		RuntimeVersion:           d.RuntimeVersion,
		RootExtendsClass:         "org.eclipse.emf.ecore.impl.MinimalEObjectImpl$Container",
		RootExtendsInterface:     "org.eclipse.emf.ecore.EObject",
		FeatureDelegation:        "None",
		OperationReflection:      d.OperationReflection,
		MinimalReflectiveMethods: true,
		BundleManifest:           true,
		index:                    make(map[ecore.Element]Node),
	}
	if len(packages) > 0 {
		gm.ModelName = capName(packages[0].Name)
		if gm.ModelPluginID == "" {
			gm.ModelPluginID = packages[0].Name
		}
	}

	for _, p := range packages {
		gp := &GenPackage{
			Prefix:                    capName(p.Name),
			Resource:                  "None",
			FileExtensions:            strings.ToLower(p.Name),
			AdapterFactory:            true,
			LiteralsInterface:         true,
			MultipleEditorPages:       true,
			GenerateModelWizard:       true,
			DisposableProviderFactory: true,
			Package:                   p,
		}
		gm.register(gp)
		for _, c := range p.Classifiers {
			gp.GenClassifiers = append(gp.GenClassifiers, gm.initClassifier(c))
		}
		gm.GenPackages = append(gm.GenPackages, gp)
	}
	return gm
}

func (gm *GenModel) initClassifier(c ecore.Classifier) Node {
	tps := gm.initTypeParameters(c.Classifier().TypeParameters)
	switch c := c.(type) {
	case *ecore.Class:
		gc := &GenClass{Provider: "Singleton", Image: true, Class: c, GenTypeParameters: tps}
		gm.register(gc)
		for _, f := range c.Features {
			gc.GenFeatures = append(gc.GenFeatures, gm.initFeature(f))
		}
		for _, op := range c.Operations {
			gc.GenOperations = append(gc.GenOperations, gm.initOperation(op))
		}
		return gc
	case *ecore.Enum:
		ge := &GenEnum{Enum: c, GenTypeParameters: tps}
		gm.register(ge)
		for _, l := range c.Literals {
			gl := &GenEnumLiteral{Literal: l}
			gm.register(gl)
			ge.GenEnumLiterals = append(ge.GenEnumLiterals, gl)
		}
		return ge
	case *ecore.DataType:
		gd := &GenDataType{DataType: c, GenTypeParameters: tps}
		gm.register(gd)
		return gd
	}
	return nil
}

func (gm *GenModel) initFeature(f ecore.StructuralFeature) *GenFeature {
	gf := &GenFeature{Property: "Editable", Notify: true, Feature: f}
	if !f.Feature().Changeable {
		gf.Property = "Readonly"
	}
	if ref, ok := f.(*ecore.Reference); ok && ref.Containment {
		gf.Children = true
		gf.CreateChild = true
	}
	gm.register(gf)
	return gf
}

func (gm *GenModel) initOperation(op *ecore.Operation) *GenOperation {
	gop := &GenOperation{Operation: op}
	gm.register(gop)
	for _, p := range op.Parameters {
		gp := &GenParameter{Parameter: p}
		gm.register(gp)
		gop.GenParameters = append(gop.GenParameters, gp)
	}
	gop.GenTypeParameters = gm.initTypeParameters(op.TypeParameters)
	return gop
}

func (gm *GenModel) initTypeParameters(tps []*ecore.TypeParameter) []*GenTypeParameter {
	var out []*GenTypeParameter
	for _, tp := range tps {
		gtp := &GenTypeParameter{TypeParameter: tp}
		gm.register(gtp)
		out = append(out, gtp)
	}
	return out
}

func (gm *GenModel) register(n Node) {
	gm.index[n.Element()] = n
}

// capName upper-cases the first rune of name.
func capName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

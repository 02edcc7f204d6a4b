package notation

import (
	"strings"
	"sync"

	"github.com/teranos/xcore/ecore"
)

// Directive names declared by the library unit.
const (
	EcoreDirective            = "Ecore"
	GenModelDirective         = "GenModel"
	ExtendedMetaDataDirective = "ExtendedMetaData"
)

var (
	library     *Package
	libraryOnce sync.Once
)

// Library returns the shared unit every output unit implicitly sees. It
// declares the well-known directives and mirrors the built-in classifiers.
// It must not be modified.
func Library() *Package {
	libraryOnce.Do(func() {
		p := &Package{Name: ecore.BuiltinsQualifier}
		p.AddDirective(EcoreDirective, ecore.NsURI)
		p.AddDirective(GenModelDirective, ecore.GenModelNsURI)
		p.AddDirective(ExtendedMetaDataDirective, ecore.ExtendedMetaDataNsURI)

		for _, c := range ecore.Builtins().Classifiers {
			base := c.Classifier()
			var tps []*TypeParameter
			for _, tp := range base.TypeParameters {
				tps = append(tps, &TypeParameter{Name: tp.Name})
			}
			switch c.(type) {
			case *ecore.Class:
				cls := &Class{}
				cls.Name = base.Name
				cls.TypeParameters = tps
				p.AddClassifier(cls)
			default:
				dt := &DataType{}
				dt.Name = base.Name
				dt.TypeParameters = tps
				if base.InstanceTypeName != "" {
					dt.InstanceType = &GenericType{Type: &TypeRef{QualifiedName: base.InstanceTypeName}}
				}
				p.AddClassifier(dt)
			}
		}
		library = p
	})
	return library
}

// IsImplicitImport reports whether a qualified name is visible in every
// unit without an import.
func IsImplicitImport(qualifiedName string) bool {
	return strings.HasPrefix(qualifiedName, ecore.BuiltinsQualifier+".") &&
		!strings.Contains(strings.TrimPrefix(qualifiedName, ecore.BuiltinsQualifier+"."), ".")
}

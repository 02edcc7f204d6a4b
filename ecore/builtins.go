package ecore

import "sync"

// BuiltinsQualifier is the qualified package name of the built-in classifiers.
const BuiltinsQualifier = "org.eclipse.emf.ecore"

var builtinTypes = []struct {
	name         string
	instanceType string
	params       []string
}{
	{"EBigDecimal", "java.math.BigDecimal", nil},
	{"EBigInteger", "java.math.BigInteger", nil},
	{"EBoolean", "boolean", nil},
	{"EBooleanObject", "java.lang.Boolean", nil},
	{"EByte", "byte", nil},
	{"EByteArray", "byte[]", nil},
	{"EByteObject", "java.lang.Byte", nil},
	{"EChar", "char", nil},
	{"ECharacterObject", "java.lang.Character", nil},
	{"EDate", "java.util.Date", nil},
	{"EDiagnosticChain", "org.eclipse.emf.common.util.DiagnosticChain", nil},
	{"EDouble", "double", nil},
	{"EDoubleObject", "java.lang.Double", nil},
	{"EEList", "org.eclipse.emf.common.util.EList", []string{"E"}},
	{"EEnumerator", "org.eclipse.emf.common.util.Enumerator", nil},
	{"EFloat", "float", nil},
	{"EFloatObject", "java.lang.Float", nil},
	{"EInt", "int", nil},
	{"EIntegerObject", "java.lang.Integer", nil},
	{"EJavaClass", "java.lang.Class", []string{"T"}},
	{"EJavaObject", "java.lang.Object", nil},
	{"ELong", "long", nil},
	{"ELongObject", "java.lang.Long", nil},
	{"EMap", "java.util.Map", []string{"K", "V"}},
	{"EResource", "org.eclipse.emf.ecore.resource.Resource", nil},
	{"EResourceSet", "org.eclipse.emf.ecore.resource.ResourceSet", nil},
	{"EShort", "short", nil},
	{"EShortObject", "java.lang.Short", nil},
	{"EString", "java.lang.String", nil},
	{"ETreeIterator", "org.eclipse.emf.common.util.TreeIterator", []string{"E"}},
	{"EInvocationTargetException", "java.lang.reflect.InvocationTargetException", nil},
}

var (
	builtins     *Package
	builtinsOnce sync.Once
)

// Builtins returns the shared package of built-in data types. The package
// is created once and must not be modified.
func Builtins() *Package {
	builtinsOnce.Do(func() {
		p := &Package{Name: "ecore", NsURI: NsURI, NsPrefix: "ecore"}
		p.AddClassifier(&Class{ClassifierBase: ClassifierBase{Name: "EObject"}})
		for _, bt := range builtinTypes {
			dt := &DataType{
				ClassifierBase: ClassifierBase{Name: bt.name, InstanceTypeName: bt.instanceType},
				Serializable:   true,
			}
			for _, name := range bt.params {
				dt.TypeParameters = append(dt.TypeParameters, &TypeParameter{Name: name, Owner: dt})
			}
			p.AddClassifier(dt)
		}
		builtins = p
	})
	return builtins
}

// Builtin returns the built-in classifier with the given name, or nil.
func Builtin(name string) Classifier {
	return Builtins().Classifier(name)
}

// IsBuiltin reports whether g is bound to the built-in classifier name.
func IsBuiltin(g *GenericType, name string) bool {
	if g == nil || g.Classifier == nil {
		return false
	}
	base := g.Classifier.Classifier()
	return base.Name == name && base.Package == Builtins()
}

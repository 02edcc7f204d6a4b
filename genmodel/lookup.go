package genmodel

import "github.com/teranos/xcore/ecore"

// Lookup returns the node customizing el, or nil.
func (gm *GenModel) Lookup(el ecore.Element) Node {
	if gm.index == nil {
		gm.reindex()
	}
	return gm.index[el]
}

// reindex rebuilds the element index for trees assembled by hand.
func (gm *GenModel) reindex() {
	gm.index = make(map[ecore.Element]Node)
	var visit func(n Node)
	visit = func(n Node) {
		if el := n.Element(); el != nil {
			gm.index[el] = n
		}
		for _, child := range n.Contents() {
			visit(child)
		}
	}
	visit(gm)
}

// FindGenPackage returns the node customizing p, or nil.
func (gm *GenModel) FindGenPackage(p *ecore.Package) *GenPackage {
	gp, _ := gm.Lookup(p).(*GenPackage)
	return gp
}

// FindGenClassifier returns the node customizing c, or nil.
func (gm *GenModel) FindGenClassifier(c ecore.Classifier) GenClassifier {
	gc, _ := gm.Lookup(c).(GenClassifier)
	return gc
}

// FindGenClass returns the node customizing c, or nil.
func (gm *GenModel) FindGenClass(c *ecore.Class) *GenClass {
	gc, _ := gm.Lookup(c).(*GenClass)
	return gc
}

// FindGenFeature returns the node customizing f, or nil.
func (gm *GenModel) FindGenFeature(f ecore.StructuralFeature) *GenFeature {
	gf, _ := gm.Lookup(f).(*GenFeature)
	return gf
}

// FindGenOperation returns the node customizing op, or nil.
func (gm *GenModel) FindGenOperation(op *ecore.Operation) *GenOperation {
	gop, _ := gm.Lookup(op).(*GenOperation)
	return gop
}

// FindGenTypeParameter returns the node customizing tp, or nil.
func (gm *GenModel) FindGenTypeParameter(tp *ecore.TypeParameter) *GenTypeParameter {
	gtp, _ := gm.Lookup(tp).(*GenTypeParameter)
	return gtp
}

// QualifiedName returns the fully qualified name of c as seen from
// generated code: the base package, the package name, then the classifier.
func (gm *GenModel) QualifiedName(c ecore.Classifier) string {
	base := c.Classifier()
	if base.Package == nil {
		return base.Name
	}
	if base.Package == ecore.Builtins() {
		return ecore.BuiltinsQualifier + "." + base.Name
	}
	if gp := gm.FindGenPackage(base.Package); gp != nil {
		return gp.QualifiedName() + "." + base.Name
	}
	return base.Package.Name + "." + base.Name
}

package ecore

import (
	"strings"

	"github.com/teranos/xcore/errors"
)

// Walk calls fn for p and every element it contains, parents before children,
// in declaration order. A non-nil error from fn stops the walk.
func Walk(p *Package, fn func(Element) error) error {
	if err := fn(p); err != nil {
		return err
	}
	for _, c := range p.Classifiers {
		if err := walkClassifier(c, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkClassifier(c Classifier, fn func(Element) error) error {
	if err := fn(c); err != nil {
		return err
	}
	for _, tp := range c.Classifier().TypeParameters {
		if err := fn(tp); err != nil {
			return err
		}
	}
	switch c := c.(type) {
	case *Class:
		for _, f := range c.Features {
			if err := fn(f); err != nil {
				return err
			}
		}
		for _, op := range c.Operations {
			if err := fn(op); err != nil {
				return err
			}
			for _, tp := range op.TypeParameters {
				if err := fn(tp); err != nil {
					return err
				}
			}
			for _, param := range op.Parameters {
				if err := fn(param); err != nil {
					return err
				}
			}
		}
	case *Enum:
		for _, l := range c.Literals {
			if err := fn(l); err != nil {
				return err
			}
		}
	}
	return nil
}

// GenericTypes returns every generic type instance reachable from p, each
// once, in pre-order: the expression, its lower bound, upper bound, then
// its type arguments.
func GenericTypes(p *Package) []*GenericType {
	var out []*GenericType
	var visit func(g *GenericType)
	visit = func(g *GenericType) {
		if g == nil {
			return
		}
		out = append(out, g)
		visit(g.LowerBound)
		visit(g.UpperBound)
		for _, arg := range g.TypeArguments {
			visit(arg)
		}
	}
	visitParams := func(tps []*TypeParameter) {
		for _, tp := range tps {
			for _, b := range tp.Bounds {
				visit(b)
			}
		}
	}

	for _, c := range p.Classifiers {
		visitParams(c.Classifier().TypeParameters)
		cls, ok := c.(*Class)
		if !ok {
			continue
		}
		for _, st := range cls.SuperTypes {
			visit(st)
		}
		for _, f := range cls.Features {
			visit(f.Feature().Type)
		}
		for _, op := range cls.Operations {
			visit(op.Type)
			visitParams(op.TypeParameters)
			for _, param := range op.Parameters {
				visit(param.Type)
			}
			for _, ex := range op.Exceptions {
				visit(ex)
			}
		}
	}
	return out
}

// Name returns the simple name of el, or "" for elements without one.
func Name(el Element) string {
	switch el := el.(type) {
	case *Package:
		return el.Name
	case Classifier:
		return el.Classifier().Name
	case StructuralFeature:
		return el.Feature().Name
	case *Operation:
		return el.Name
	case *Parameter:
		return el.Name
	case *TypeParameter:
		return el.Name
	case *EnumLiteral:
		return el.Name
	}
	return ""
}

// Parent returns the element containing el, or nil for a package.
func Parent(el Element) Element {
	switch el := el.(type) {
	case Classifier:
		if p := el.Classifier().Package; p != nil {
			return p
		}
	case StructuralFeature:
		if c := el.Feature().Class; c != nil {
			return c
		}
	case *Operation:
		if el.Class != nil {
			return el.Class
		}
	case *Parameter:
		if el.Operation != nil {
			return el.Operation
		}
	case *TypeParameter:
		return el.Owner
	case *EnumLiteral:
		if el.Enum != nil {
			return el.Enum
		}
	}
	return nil
}

// Path returns the dotted path of el from its package,
// e.g. "shapes.Shape.children".
func Path(el Element) string {
	var parts []string
	for cur := el; cur != nil; cur = Parent(cur) {
		parts = append(parts, Name(cur))
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Find returns the element at a dotted path, or nil.
func Find(packages []*Package, path string) Element {
	var found Element
	for _, p := range packages {
		_ = Walk(p, func(el Element) error {
			if Path(el) == path {
				found = el
				return errStop
			}
			return nil
		})
		if found != nil {
			return found
		}
	}
	return nil
}

var errStop = errors.New("stop walk")

package lower

import (
	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/genmodel"
	"github.com/teranos/xcore/logger"
	"github.com/teranos/xcore/notation"
)

func (b *Builder) classifier(c ecore.Classifier) (notation.Classifier, error) {
	gc := b.gen.FindGenClassifier(c)
	if gc == nil {
		return nil, errors.NewPreconditionf("classifier %s has no customization", ecore.Path(c))
	}

	var out notation.Classifier
	switch c := c.(type) {
	case *ecore.Class:
		x, err := b.class(c)
		if err != nil {
			return nil, err
		}
		out = x
	case *ecore.Enum:
		out = b.enum(c)
	case *ecore.DataType:
		x := &notation.DataType{}
		b.mapper.Map(c, x)
		out = x
	default:
		return nil, errors.NewPreconditionf("unsupported classifier %T", c)
	}

	src, base := c.Classifier(), out.Classifier()
	base.Name = src.Name
	b.triage(c, out)
	if src.InstanceTypeName != "" {
		b.instanceType(out, src.InstanceTypeName)
	}

	tps, err := b.typeParameters(src.TypeParameters, gc.TypeParameters())
	if err != nil {
		return nil, errors.Wrap(err, "type parameters")
	}
	base.TypeParameters = tps
	return out, nil
}

func (b *Builder) class(c *ecore.Class) (*notation.Class, error) {
	x := &notation.Class{}
	b.mapper.Map(c, x)
	if c.Interface {
		x.Interface = true
	} else if c.Abstract {
		x.Abstract = true
	}

	for _, st := range c.SuperTypes {
		x.SuperTypes = append(x.SuperTypes, b.genericType(st))
	}

	for _, f := range c.Features {
		gf := b.gen.FindGenFeature(f)
		if gf == nil {
			return nil, errors.NewPreconditionf("feature %s has no customization", ecore.Path(f))
		}
		switch f := f.(type) {
		case *ecore.Reference:
			x.AddMember(b.reference(f, gf))
		case *ecore.Attribute:
			x.AddMember(b.attribute(f))
		default:
			return nil, errors.NewPreconditionf("unsupported feature %T", f)
		}
	}

	for _, op := range c.Operations {
		xop, err := b.operation(op)
		if err != nil {
			return nil, errors.Wrapf(err, "operation %s", op.Name)
		}
		x.AddMember(xop)
	}
	return x, nil
}

func (b *Builder) enum(e *ecore.Enum) *notation.Enum {
	x := &notation.Enum{}
	b.mapper.Map(e, x)
	for _, l := range e.Literals {
		xl := &notation.EnumLiteral{Name: l.Name, Value: l.Value}
		if l.Literal != "" && l.Literal != l.Name {
			xl.Literal = l.Literal
		}
		b.mapper.Map(l, xl)
		b.triage(l, xl)
		x.Literals = append(x.Literals, xl)
	}
	return x
}

func (b *Builder) reference(r *ecore.Reference, gf *genmodel.GenFeature) *notation.Reference {
	x := &notation.Reference{}
	b.mapper.Map(r, x)
	switch {
	case r.Containment:
		x.Containment = true
		x.ResolveProxies = gf.ResolveProxies(b.gen)
	case r.Container():
		x.Container = true
		x.ResolveProxies = gf.ResolveProxies(b.gen)
	case !r.ResolveProxies:
		x.Local = true
	}

	if r.Opposite != nil {
		x.Opposite = b.featureRef(r.Opposite)
	}
	for _, key := range r.Keys {
		x.Keys = append(x.Keys, b.featureRef(key))
	}

	b.feature(&x.Feature, r, true)
	return x
}

func (b *Builder) attribute(a *ecore.Attribute) *notation.Attribute {
	x := &notation.Attribute{ID: a.ID, DefaultValueLiteral: a.DefaultValueLiteral}
	b.mapper.Map(a, x)
	b.feature(&x.Feature, a, false)
	return x
}

func (b *Builder) feature(x *notation.Feature, f ecore.StructuralFeature, reference bool) {
	src := f.Feature()
	x.Readonly = !src.Changeable
	x.Transient = src.Transient
	x.Volatile = src.Volatile
	x.Derived = src.Derived
	x.Unsettable = src.Unsettable
	b.typedElement(&x.TypedElement, &src.TypedElement, reference)
	b.triage(f, b.mapper.Node(f).(notation.Annotated))
}

func (b *Builder) typedElement(x *notation.TypedElement, t *ecore.TypedElement, reference bool) {
	x.Name = t.Name
	x.Type = b.genericType(t.Type)
	enc := notation.EncodeBounds(notation.Bounds{
		Lower:   t.Lower,
		Upper:   t.Upper,
		Ordered: t.Ordered,
		Unique:  t.Unique && t.Many() && !reference,
	})
	x.Multiplicity = enc.Multiplicity
	x.Unordered = enc.Unordered
	x.Unique = enc.Unique
}

// featureRef names f and queues its binding. Features of this unit bind
// through the mapper, others through the resolver.
func (b *Builder) featureRef(f ecore.StructuralFeature) *notation.FeatureRef {
	src := f.Feature()
	ref := &notation.FeatureRef{Name: src.Name}
	if src.Class != nil {
		ref.Class = b.gen.QualifiedName(src.Class)
	}
	b.enqueue("feature "+ecore.Path(f), func() error {
		if m, ok := b.mapper.Node(f).(notation.Member); ok {
			ref.Target = m
			return nil
		}
		if n, ok := b.opts.Resolver.Resolve(ref.QualifiedName(), b.unit); ok {
			if m, ok := n.(notation.Member); ok {
				ref.Target = m
				return nil
			}
		}
		b.log.Debugw("Unresolved feature", logger.FieldElement, ref.QualifiedName())
		return nil
	})
	return ref
}

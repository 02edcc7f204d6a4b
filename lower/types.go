package lower

import (
	"strings"

	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/logger"
	"github.com/teranos/xcore/notation"
	"github.com/teranos/xcore/typeexpr"
)

// genericType lowers g and everything below it. The node is mapped before
// its bounds and arguments; its type reference binds during Link.
func (b *Builder) genericType(g *ecore.GenericType) *notation.GenericType {
	if g == nil {
		return nil
	}
	x := &notation.GenericType{}
	b.mapper.MapType(g, x)
	x.LowerBound = b.genericType(g.LowerBound)
	x.UpperBound = b.genericType(g.UpperBound)
	for _, arg := range g.TypeArguments {
		x.TypeArguments = append(x.TypeArguments, b.genericType(arg))
	}

	switch {
	case g.Classifier != nil:
		c := g.Classifier
		ref := &notation.TypeRef{QualifiedName: b.gen.QualifiedName(c)}
		x.Type = ref
		b.enqueue("type "+ref.QualifiedName, func() error {
			if n := b.mapper.Node(c); n != nil {
				ref.Target = n
				return nil
			}
			b.resolve(ref, x)
			return nil
		})
	case g.TypeParameter != nil:
		tp := g.TypeParameter
		ref := &notation.TypeRef{QualifiedName: tp.Name}
		x.Type = ref
		b.enqueue("type parameter "+ecore.Path(tp), func() error {
			if n := b.mapper.Node(tp); n != nil {
				ref.Target = n
				return nil
			}
			b.log.Debugw("Unresolved type parameter", logger.FieldElement, ecore.Path(tp))
			return nil
		})
	}
	return x
}

// instanceType queues the parsing of a host type spelling for c.
func (b *Builder) instanceType(c notation.Classifier, spelling string) {
	b.enqueue("instance type of "+c.Classifier().Name, func() error {
		e, err := typeexpr.Parse(spelling)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "instance type of %s", c.Classifier().Name), errors.ErrInvalidModel)
		}
		c.Classifier().InstanceType = b.hostType(e, c)
		return nil
	})
}

func (b *Builder) hostType(e *typeexpr.Expr, ctx notation.Node) *notation.GenericType {
	x := &notation.GenericType{}
	if e.Wildcard {
		if e.Extends != nil {
			x.UpperBound = b.hostType(e.Extends, ctx)
		}
		if e.Super != nil {
			x.LowerBound = b.hostType(e.Super, ctx)
		}
		return x
	}

	x.Type = &notation.TypeRef{QualifiedName: e.Name + strings.Repeat("[]", e.Dims)}
	if e.Dims == 0 {
		b.resolve(x.Type, ctx)
	}
	for _, arg := range e.Args {
		x.TypeArguments = append(x.TypeArguments, b.hostType(arg, ctx))
	}
	return x
}

// resolve asks the resolver for ref's target. A miss leaves it unresolved.
func (b *Builder) resolve(ref *notation.TypeRef, ctx notation.Node) {
	if n, ok := b.opts.Resolver.Resolve(ref.QualifiedName, ctx); ok {
		ref.Target = n
		return
	}
	b.log.Debugw("Unresolved type", logger.FieldElement, ref.QualifiedName)
}

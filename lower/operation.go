package lower

import (
	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/genmodel"
	"github.com/teranos/xcore/notation"
)

func (b *Builder) operation(op *ecore.Operation) (*notation.Operation, error) {
	gop := b.gen.FindGenOperation(op)
	if gop == nil {
		return nil, errors.NewPreconditionf("operation %s has no customization", ecore.Path(op))
	}

	x := &notation.Operation{}
	b.mapper.Map(op, x)
	b.triage(op, x)
	b.typedElement(&x.TypedElement, &op.TypedElement, false)

	// Parameters pair with their customizations by position.
	if len(op.Parameters) != len(gop.GenParameters) {
		return nil, errors.NewPreconditionf("%d parameters but %d customizations",
			len(op.Parameters), len(gop.GenParameters))
	}
	for i, p := range op.Parameters {
		if gop.GenParameters[i].Parameter != p {
			return nil, errors.NewPreconditionf("parameter %d (%s) is out of order with its customization", i, p.Name)
		}
		xp := &notation.Parameter{}
		b.mapper.Map(p, xp)
		b.triage(p, xp)
		b.typedElement(&xp.TypedElement, &p.TypedElement, false)
		x.Parameters = append(x.Parameters, xp)
	}

	tps, err := b.typeParameters(op.TypeParameters, gop.GenTypeParameters)
	if err != nil {
		return nil, errors.Wrap(err, "type parameters")
	}
	x.TypeParameters = tps

	for _, ex := range op.Exceptions {
		x.Exceptions = append(x.Exceptions, b.genericType(ex))
	}

	x.Body = op.Body()

	if gop.IsInvariant() {
		b.enqueue("invariant "+ecore.Path(op), func() error {
			a := x.Annotate(b.directive(ecore.NsURI))
			a.Details.Set("invariant", "true")
			return nil
		})
	}
	return x, nil
}

// typeParameters lowers tps, pairing each with the customization at the
// same position.
func (b *Builder) typeParameters(tps []*ecore.TypeParameter, gtps []*genmodel.GenTypeParameter) ([]*notation.TypeParameter, error) {
	if len(tps) != len(gtps) {
		return nil, errors.NewPreconditionf("%d type parameters but %d customizations", len(tps), len(gtps))
	}
	var out []*notation.TypeParameter
	for i, tp := range tps {
		if gtps[i].TypeParameter != tp {
			return nil, errors.NewPreconditionf("type parameter %d (%s) is out of order with its customization", i, tp.Name)
		}
		x := &notation.TypeParameter{Name: tp.Name}
		b.mapper.Map(tp, x)
		b.triage(tp, x)
		for _, bound := range tp.Bounds {
			x.Bounds = append(x.Bounds, b.genericType(bound))
		}
		out = append(out, x)
	}
	return out, nil
}

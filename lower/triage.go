package lower

import (
	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/notation"
)

// triageRule decides what happens to one annotation bundle of a source
// element. Rules are tried in order; the first match wins.
type triageRule struct {
	name  string
	match func(el ecore.Element, a *ecore.Annotation) bool
	apply func(b *Builder, n notation.Annotated, a *ecore.Annotation)
}

var triageRules = []triageRule{
	{
		name:  "generator package settings",
		match: packageBundle(ecore.GenModelNsURI),
		apply: foldExcept(ecore.GenModelNsURI, "basePackage"),
	},
	{
		name:  "structural package hints",
		match: packageBundle(ecore.NsURI),
		apply: foldExcept(ecore.NsURI, "nsPrefix", "nsURI"),
	},
	{
		name: "reserved namespace",
		match: func(_ ecore.Element, a *ecore.Annotation) bool {
			return a.Source == ecore.XcoreNsURI
		},
		apply: func(*Builder, notation.Annotated, *ecore.Annotation) {},
	},
	{
		// Empty structural bundles only hold operation bodies.
		name: "verbatim",
		match: func(_ ecore.Element, a *ecore.Annotation) bool {
			return a.Source != ecore.NsURI || len(a.Details) > 0
		},
		apply: func(b *Builder, n notation.Annotated, a *ecore.Annotation) {
			x := n.Base().Annotate(b.directive(a.Source))
			for _, d := range a.Details {
				x.Details.Set(d.Key, d.Value)
			}
		},
	},
}

// ruleFor returns the rule handling a, or nil when a is dropped silently.
func ruleFor(el ecore.Element, a *ecore.Annotation) *triageRule {
	for i := range triageRules {
		if triageRules[i].match(el, a) {
			return &triageRules[i]
		}
	}
	return nil
}

func packageBundle(source string) func(ecore.Element, *ecore.Annotation) bool {
	return func(el ecore.Element, a *ecore.Annotation) bool {
		_, ok := el.(*ecore.Package)
		return ok && a.Source == source
	}
}

// foldExcept copies every detail but the skipped keys into the node's
// single annotation for source, creating it only if something survives.
func foldExcept(source string, skip ...string) func(*Builder, notation.Annotated, *ecore.Annotation) {
	return func(b *Builder, n notation.Annotated, a *ecore.Annotation) {
		var x *notation.Annotation
		for _, d := range a.Details {
			if contains(skip, d.Key) {
				continue
			}
			if x == nil {
				x = n.Base().Annotate(b.directive(source))
			}
			x.Details.Set(d.Key, d.Value)
		}
	}
}

// triage queues the handling of el's annotation bundles for n.
func (b *Builder) triage(el ecore.Element, n notation.Annotated) {
	if len(el.Base().Annotations) == 0 {
		return
	}
	b.enqueue("annotations of "+ecore.Path(el), func() error {
		for _, a := range el.Base().Annotations {
			if rule := ruleFor(el, a); rule != nil {
				rule.apply(b, n, a)
			}
		}
		return nil
	})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

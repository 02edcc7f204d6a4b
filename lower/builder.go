// Package lower translates source packages into notation units.
//
// A Builder lowers one package top-down and queues the work that needs the
// whole unit to exist: annotation triage, type binding, instance type
// parsing and invariant tagging. Link drains that queue exactly once.
package lower

import (
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/genmodel"
	"github.com/teranos/xcore/logger"
	"github.com/teranos/xcore/naming"
	"github.com/teranos/xcore/notation"
	"github.com/teranos/xcore/scope"
)

// Options configures a Builder.
type Options struct {
	Resolver scope.Resolver     // Optional resolver for instance types and foreign classifiers (default: known host types over the library unit)
	Locale   language.Tag       // Casing rules for synthesized directive names (default: language.Und)
	Logger   *zap.SugaredLogger // Optional logger for debug output (default: nil, no logging)
}

// Builder lowers one source package into one unit. It is not safe for
// concurrent use; use one Builder per unit.
type Builder struct {
	gen    *genmodel.GenModel
	opts   Options
	log    *zap.SugaredLogger
	mapper *Mapper
	unit   *notation.Package

	queue    []action
	draining bool
	drained  bool
	linked   bool
	late     []string
}

type action struct {
	name string
	run  func() error
}

// NewBuilder returns a builder that reads customizations from gen.
func NewBuilder(gen *genmodel.GenModel, opts Options) *Builder {
	if opts.Resolver == nil {
		opts.Resolver = scope.DefaultKnownTypes(scope.NewIndex())
	}
	return &Builder{
		gen:    gen,
		opts:   opts,
		log:    logger.OrNop(opts.Logger),
		mapper: NewMapper(),
	}
}

// Mapper returns the element and generic type associations.
func (b *Builder) Mapper() *Mapper { return b.mapper }

// Unit returns the unit being built, or nil before Package.
func (b *Builder) Unit() *notation.Package { return b.unit }

// Pending returns the number of queued actions.
func (b *Builder) Pending() int { return len(b.queue) }

// Linked reports whether Link has completed.
func (b *Builder) Linked() bool { return b.linked }

func (b *Builder) enqueue(name string, run func() error) {
	if b.draining {
		b.late = append(b.late, name)
		return
	}
	b.queue = append(b.queue, action{name: name, run: run})
}

// Link runs every queued action once, in the order queued, and clears the
// queue. Actions cannot queue further actions, and a builder links once,
// even when the first attempt failed.
func (b *Builder) Link() error {
	if b.unit == nil {
		return errors.NewPreconditionf("link before any package was lowered")
	}
	if b.drained {
		return errors.NewPreconditionf("unit %s is already linked", b.unit.Name)
	}

	b.draining = true
	defer func() {
		b.draining = false
		b.drained = true
		b.queue = nil
	}()
	for _, a := range b.queue {
		if err := a.run(); err != nil {
			return errors.Wrapf(err, "link %s: %s", b.unit.Name, a.name)
		}
		if len(b.late) > 0 {
			return errors.NewPreconditionf("action %q queued %v while linking", a.name, b.late)
		}
	}
	b.linked = true
	b.log.Debugw("Linked unit", logger.FieldUnit, b.unit.Name, logger.FieldCount, len(b.queue))
	return nil
}

// RecordSetting writes a generator setting into the generator namespace
// annotation of the node lowered from el. A nil el addresses the unit. It
// reports whether a detail was written; settings of elements this builder
// did not lower, and the unit's base package, are not.
func (b *Builder) RecordSetting(el ecore.Element, name, value string) bool {
	if b.unit == nil {
		return false
	}
	var n notation.Node = b.unit
	if el != nil {
		n = b.mapper.Node(el)
	}
	if n == nil {
		return false
	}
	target, ok := n.(notation.Annotated)
	if !ok {
		return false
	}
	if _, isUnit := n.(*notation.Package); isUnit && name == "basePackage" {
		// Already part of the unit name.
		return false
	}
	a := target.Base().Annotate(b.directive(ecore.GenModelNsURI))
	a.Details.Set(name, value)
	return true
}

// Package lowers p into a new unit. A builder lowers a single package.
func (b *Builder) Package(p *ecore.Package) (*notation.Package, error) {
	if b.unit != nil {
		return nil, errors.NewPreconditionf("builder already lowered %s", b.unit.Name)
	}
	gp := b.gen.FindGenPackage(p)
	if gp == nil {
		return nil, errors.NewPreconditionf("package %s has no customization", p.Name)
	}

	unit := &notation.Package{Name: gp.QualifiedName()}
	b.unit = unit
	b.mapper.Map(p, unit)
	b.triage(p, unit)

	if a := p.Annotation(ecore.XcoreNsURI); a != nil {
		for _, d := range a.Details {
			if unit.Directive(d.Value) != nil || unit.DirectiveNamed(d.Key) != nil {
				b.log.Debugw("Skipping duplicate directive", logger.FieldDirective, d.Key, logger.FieldNamespace, d.Value)
				continue
			}
			unit.AddDirective(d.Key, d.Value)
		}
	}

	nsPrefix, nsURI := p.NsPrefix, p.NsURI
	if nsPrefix == p.Name {
		nsPrefix = ""
	}
	if nsURI == unit.Name {
		nsURI = ""
	}
	if nsPrefix != "" || nsURI != "" {
		a := unit.Annotate(b.directive(ecore.NsURI))
		if nsPrefix != "" {
			a.Details.Set("nsPrefix", nsPrefix)
		}
		if nsURI != "" {
			a.Details.Set("nsURI", nsURI)
		}
	}

	for _, c := range p.Classifiers {
		x, err := b.classifier(c)
		if err != nil {
			return nil, errors.Wrapf(err, "lower %s", ecore.Path(c))
		}
		unit.AddClassifier(x)
	}

	b.log.Debugw("Lowered package",
		logger.FieldPackage, p.Name,
		logger.FieldUnit, unit.Name,
		logger.FieldCount, b.mapper.Len())
	return unit, nil
}

// directive returns the directive for uri: the unit's, else the library's,
// else a new one named after uri and appended to the unit.
func (b *Builder) directive(uri string) *notation.Directive {
	if d := b.unit.Directive(uri); d != nil {
		return d
	}
	if d := notation.Library().Directive(uri); d != nil {
		return d
	}
	name := naming.Unique(naming.Identifier(naming.Synthesize(uri), b.opts.Locale), func(s string) bool {
		return b.unit.DirectiveNamed(s) != nil
	})
	b.log.Debugw("Created directive", logger.FieldDirective, name, logger.FieldNamespace, uri)
	return b.unit.AddDirective(name, uri)
}

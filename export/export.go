// Package export runs the lowering pipeline over a model document. For every
// package it reconciles customizations, lowers, links and records changed
// generator settings; once all units exist it resolves references across
// them and computes each unit's imports.
package export

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/teranos/xcore/delta"
	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/genmodel"
	"github.com/teranos/xcore/logger"
	"github.com/teranos/xcore/lower"
	"github.com/teranos/xcore/notation"
	"github.com/teranos/xcore/scope"
)

// Options configures an Exporter.
type Options struct {
	Defaults  genmodel.Defaults  // Project-level generator defaults (default: genmodel.StandardDefaults())
	Overrides genmodel.Overrides // Extra customizations applied over the document's own (default: none)
	Locale    language.Tag       // Casing rules for synthesized directive names (default: language.Und)
	Logger    *zap.SugaredLogger // Optional logger (default: nil, no logging)
}

// Artifact is one exported unit.
type Artifact struct {
	Package  *ecore.Package
	Unit     *notation.Package
	Location string // file name the unit is written to, relative to the output directory
	Settings int    // generator settings recorded as annotations
}

// Result is the outcome of one export run.
type Result struct {
	RunID      string
	Artifacts  []*Artifact
	Unresolved int // references no unit or known type could resolve
	Duration   time.Duration
}

// Artifact returns the artifact of the named package, or nil.
func (r *Result) Artifact(name string) *Artifact {
	for _, a := range r.Artifacts {
		if a.Package.Name == name {
			return a
		}
	}
	return nil
}

// Exporter turns model documents into notation units.
type Exporter struct {
	opts Options
	log  *zap.SugaredLogger
}

// New returns an exporter.
func New(opts Options) *Exporter {
	if opts.Defaults == (genmodel.Defaults{}) {
		opts.Defaults = genmodel.StandardDefaults()
	}
	return &Exporter{opts: opts, log: logger.OrNop(opts.Logger)}
}

// ExportAll exports every package of doc. Packages are lowered concurrently,
// one builder each; cancellation is observed between packages. Any error
// fails the whole run.
func (e *Exporter) ExportAll(ctx context.Context, doc *ecore.Document) (*Result, error) {
	if doc == nil || len(doc.Packages) == 0 {
		return nil, errors.NewPreconditionf("document has no packages")
	}

	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.LoggerFromContext(ctx, e.log)
	start := time.Now()

	overrides := genmodel.FromDocument(doc).Merge(e.opts.Overrides)
	actual, err := genmodel.Reconcile(doc.Packages, overrides, e.opts.Defaults)
	if err != nil {
		return nil, errors.Wrap(err, "reconcile customizations")
	}
	defaults := genmodel.Initialize(doc.Packages, e.opts.Defaults)

	artifacts := make([]*Artifact, len(doc.Packages))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range doc.Packages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := e.lower(p, defaults, actual, log)
			if err != nil {
				return errors.Wrapf(err, "export package %s", p.Name)
			}
			artifacts[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	units := make([]*notation.Package, len(artifacts))
	for i, a := range artifacts {
		units[i] = a.Unit
	}
	resolver := scope.DefaultKnownTypes(scope.NewIndex(units...))

	result := &Result{RunID: runID, Artifacts: artifacts}
	for _, a := range artifacts {
		result.Unresolved += ResolveReferences(a.Unit, resolver)
		a.Unit.Imports = Imports(a.Unit)
	}
	result.Duration = time.Since(start)

	log.Infow("Exported model",
		logger.FieldCount, len(artifacts),
		"unresolved", result.Unresolved,
		logger.FieldDurationMS, result.Duration.Milliseconds())
	return result, nil
}

// Export exports doc and returns the artifact of the named package. The
// other packages are still lowered so that references into them resolve.
func (e *Exporter) Export(ctx context.Context, doc *ecore.Document, name string) (*Artifact, error) {
	if doc == nil || doc.Package(name) == nil {
		return nil, errors.WithHintf(
			errors.NewNotFoundf("package %q", name),
			"export one of the packages declared in the model document")
	}
	result, err := e.ExportAll(ctx, doc)
	if err != nil {
		return nil, err
	}
	return result.Artifact(name), nil
}

func (e *Exporter) lower(p *ecore.Package, defaults, actual *genmodel.GenModel, log *zap.SugaredLogger) (*Artifact, error) {
	log = log.With(logger.FieldPackage, p.Name)

	b := lower.NewBuilder(actual, lower.Options{Locale: e.opts.Locale, Logger: log})
	unit, err := b.Package(p)
	if err != nil {
		return nil, err
	}
	if err := b.Link(); err != nil {
		return nil, err
	}

	settings, err := delta.Annotator{Logger: log}.Annotate(defaults, actual, b)
	if err != nil {
		return nil, err
	}

	location := Location(actual.FindGenPackage(p))
	if err := CheckLocation(location); err != nil {
		return nil, err
	}

	log.Debugw("Exported package",
		logger.FieldUnit, unit.Name,
		logger.FieldPath, location,
		"settings", settings)
	return &Artifact{Package: p, Unit: unit, Location: location, Settings: settings}, nil
}

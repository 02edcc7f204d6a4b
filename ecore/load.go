package ecore

import (
	"bytes"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/typeexpr"
)

// LoadFile reads a model document from a YAML or JSON file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model %s", path)
	}
	doc, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load model %s", path)
	}
	doc.Path = path
	return doc, nil
}

// Load decodes a model document and builds its package graph.
func Load(r io.Reader) (*Document, error) {
	var file docFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.NewInvalidModelf("model document is empty")
		}
		return nil, errors.Mark(errors.Wrap(err, "failed to decode model document"), errors.ErrInvalidModel)
	}

	l := &loader{
		doc: &Document{
			ModelSettings: file.Gen,
			Settings:      make(map[Element]map[string]string),
		},
		classifiers: make(map[Classifier]*docClassifier),
	}
	if err := l.declare(file.Packages); err != nil {
		return nil, err
	}
	if err := l.define(); err != nil {
		return nil, err
	}
	if err := l.link(); err != nil {
		return nil, err
	}
	return l.doc, nil
}

type pendingReference struct {
	ref      *Reference
	opposite string
	keys     []string
}

type loader struct {
	doc         *Document
	order       []Classifier
	classifiers map[Classifier]*docClassifier
	references  []pendingReference
}

// declare creates every package and classifier so that type names can be
// resolved in any order.
func (l *loader) declare(packages []docPackage) error {
	for i := range packages {
		dp := &packages[i]
		if dp.Name == "" {
			return errors.NewInvalidModelf("package %d has no name", i)
		}
		if l.doc.Package(dp.Name) != nil {
			return errors.NewInvalidModelf("duplicate package %q", dp.Name)
		}
		p := &Package{Name: dp.Name, NsURI: dp.NsURI, NsPrefix: dp.NsPrefix}
		l.meta(p, dp.docMeta)
		l.doc.Packages = append(l.doc.Packages, p)

		for j := range dp.Classifiers {
			dc := &dp.Classifiers[j]
			c, err := newClassifier(dc)
			if err != nil {
				return errors.Wrapf(err, "package %s", p.Name)
			}
			if p.Classifier(c.Classifier().Name) != nil {
				return errors.NewInvalidModelf("package %s: duplicate classifier %q", p.Name, c.Classifier().Name)
			}
			p.AddClassifier(c)
			for _, dtp := range dc.TypeParameters {
				tp := &TypeParameter{Name: dtp.Name, Owner: c}
				l.meta(tp, dtp.docMeta)
				c.Classifier().TypeParameters = append(c.Classifier().TypeParameters, tp)
			}
			l.meta(c, dc.docMeta)
			l.order = append(l.order, c)
			l.classifiers[c] = dc
		}
	}
	return nil
}

func newClassifier(dc *docClassifier) (Classifier, error) {
	set := 0
	for _, name := range []string{dc.Class, dc.Enum, dc.DataType} {
		if name != "" {
			set++
		}
	}
	if set != 1 {
		return nil, errors.NewInvalidModelf("classifier needs exactly one of class, enum or dataType (got %d)", set)
	}
	base := ClassifierBase{InstanceTypeName: dc.InstanceTypeName}
	switch {
	case dc.Class != "":
		base.Name = dc.Class
		return &Class{ClassifierBase: base, Abstract: dc.Abstract, Interface: dc.Interface}, nil
	case dc.Enum != "":
		base.Name = dc.Enum
		return &Enum{ClassifierBase: base}, nil
	default:
		base.Name = dc.DataType
		return &DataType{ClassifierBase: base, Serializable: boolOr(dc.Serializable, true)}, nil
	}
}

// define fills in the structure of every declared classifier.
func (l *loader) define() error {
	for _, c := range l.order {
		dc := l.classifiers[c]
		base := c.Classifier()
		scope := [][]*TypeParameter{base.TypeParameters}

		for i, dtp := range dc.TypeParameters {
			bounds, err := l.types(dtp.Bounds, base.Package, scope)
			if err != nil {
				return errors.Wrapf(err, "%s type parameter %s", Path(c), dtp.Name)
			}
			base.TypeParameters[i].Bounds = bounds
		}

		var err error
		switch c := c.(type) {
		case *Class:
			err = l.defineClass(c, dc, scope)
		case *Enum:
			err = l.defineEnum(c, dc)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) defineClass(c *Class, dc *docClassifier, scope [][]*TypeParameter) error {
	supers, err := l.types(dc.SuperTypes, c.Package, scope)
	if err != nil {
		return errors.Wrapf(err, "%s supertypes", Path(c))
	}
	c.SuperTypes = supers

	for i := range dc.Features {
		f, err := l.feature(&dc.Features[i], c, scope)
		if err != nil {
			return err
		}
		c.AddFeature(f)
	}

	for i := range dc.Operations {
		op, err := l.operation(&dc.Operations[i], c, scope)
		if err != nil {
			return err
		}
		c.AddOperation(op)
	}
	return nil
}

func (l *loader) defineEnum(e *Enum, dc *docClassifier) error {
	for i, dl := range dc.Literals {
		if dl.Name == "" {
			return errors.NewInvalidModelf("%s literal %d has no name", Path(e), i)
		}
		value := i
		if dl.Value != nil {
			value = *dl.Value
		}
		lit := &EnumLiteral{Name: dl.Name, Value: value, Literal: dl.Literal}
		l.meta(lit, dl.docMeta)
		e.AddLiteral(lit)
	}
	return nil
}

func (l *loader) feature(df *docFeature, c *Class, scope [][]*TypeParameter) (StructuralFeature, error) {
	if (df.Attribute == "") == (df.Reference == "") {
		return nil, errors.NewInvalidModelf("%s: feature needs exactly one of attribute or reference", Path(c))
	}
	name := df.Attribute + df.Reference

	typed, err := l.typed(name, df.docBounds, c.Package, scope)
	if err != nil {
		return nil, errors.Wrapf(err, "%s.%s", Path(c), name)
	}
	base := FeatureBase{
		TypedElement: typed,
		Changeable:   boolOr(df.Changeable, true),
		Volatile:     df.Volatile,
		Transient:    df.Transient,
		Unsettable:   df.Unsettable,
		Derived:      df.Derived,
	}
	if df.Default != nil {
		base.DefaultValueLiteral = *df.Default
	}

	var f StructuralFeature
	if df.Attribute != "" {
		if df.Containment || df.Opposite != "" || len(df.Keys) > 0 {
			return nil, errors.NewInvalidModelf("%s.%s: attributes cannot be containments or have opposites or keys", Path(c), name)
		}
		f = &Attribute{FeatureBase: base, ID: df.ID}
	} else {
		if df.ID {
			return nil, errors.NewInvalidModelf("%s.%s: references cannot be IDs", Path(c), name)
		}
		ref := &Reference{
			FeatureBase:    base,
			Containment:    df.Containment,
			ResolveProxies: boolOr(df.ResolveProxies, true),
		}
		if df.Opposite != "" || len(df.Keys) > 0 {
			l.references = append(l.references, pendingReference{ref: ref, opposite: df.Opposite, keys: df.Keys})
		}
		f = ref
	}
	l.meta(f, df.docMeta)
	return f, nil
}

func (l *loader) operation(do *docOperation, c *Class, scope [][]*TypeParameter) (*Operation, error) {
	op := &Operation{}
	op.Class = c
	for _, dtp := range do.TypeParameters {
		tp := &TypeParameter{Name: dtp.Name, Owner: op}
		l.meta(tp, dtp.docMeta)
		op.TypeParameters = append(op.TypeParameters, tp)
	}
	// Operation type parameters shadow the class's.
	scope = append([][]*TypeParameter{op.TypeParameters}, scope...)

	for i, dtp := range do.TypeParameters {
		bounds, err := l.types(dtp.Bounds, c.Package, scope)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s type parameter %s", Path(c), do.Name, dtp.Name)
		}
		op.TypeParameters[i].Bounds = bounds
	}

	typed, err := l.typed(do.Name, do.docBounds, c.Package, scope)
	if err != nil {
		return nil, errors.Wrapf(err, "%s.%s", Path(c), do.Name)
	}
	op.TypedElement = typed

	for i := range do.Parameters {
		dp := &do.Parameters[i]
		ptyped, err := l.typed(dp.Name, dp.docBounds, c.Package, scope)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s(%s)", Path(c), do.Name, dp.Name)
		}
		param := &Parameter{TypedElement: ptyped}
		l.meta(param, dp.docMeta)
		op.AddParameter(param)
	}

	exceptions, err := l.types(do.Exceptions, c.Package, scope)
	if err != nil {
		return nil, errors.Wrapf(err, "%s.%s exceptions", Path(c), do.Name)
	}
	op.Exceptions = exceptions

	l.meta(op, do.docMeta)
	if do.Body != nil {
		a := op.Annotation(NsURI)
		if a == nil {
			a = op.Annotate(NsURI)
		}
		a.Contents = append(a.Contents, &Block{Text: *do.Body})
	}
	return op, nil
}

func (l *loader) typed(name string, db docBounds, p *Package, scope [][]*TypeParameter) (TypedElement, error) {
	if name == "" {
		return TypedElement{}, errors.NewInvalidModelf("element has no name")
	}
	t := TypedElement{
		Name:    name,
		Lower:   db.Lower,
		Upper:   1,
		Ordered: boolOr(db.Ordered, true),
		Unique:  boolOr(db.Unique, true),
	}
	if db.Upper != nil {
		t.Upper = *db.Upper
	}
	if t.Lower < 0 || (t.Upper != Unbounded && t.Upper < t.Lower) || t.Upper == 0 {
		return TypedElement{}, errors.NewInvalidModelf("invalid bounds [%d, %d]", t.Lower, t.Upper)
	}
	if db.Type != "" {
		g, err := l.resolve(db.Type, p, scope)
		if err != nil {
			return TypedElement{}, err
		}
		t.Type = g
	}
	return t, nil
}

// link resolves opposites and keys once every feature exists.
func (l *loader) link() error {
	for _, pr := range l.references {
		target, ok := pr.ref.Type.classifierOrNil().(*Class)
		if !ok {
			return errors.NewInvalidModelf("%s: opposite and keys need a class type", Path(pr.ref))
		}
		if pr.opposite != "" {
			opp, ok := target.Feature(pr.opposite).(*Reference)
			if !ok {
				return errors.NewInvalidModelf("%s: opposite %q is not a reference of %s", Path(pr.ref), pr.opposite, target.Name)
			}
			pr.ref.Opposite = opp
		}
		for _, key := range pr.keys {
			attr, ok := target.Feature(key).(*Attribute)
			if !ok {
				return errors.NewInvalidModelf("%s: key %q is not an attribute of %s", Path(pr.ref), key, target.Name)
			}
			pr.ref.Keys = append(pr.ref.Keys, attr)
		}
	}
	return nil
}

func (g *GenericType) classifierOrNil() Classifier {
	if g == nil {
		return nil
	}
	return g.Classifier
}

func (l *loader) meta(el Element, m docMeta) {
	for _, da := range m.Annotations {
		el.Base().Annotate(da.Source, da.Details...)
	}
	if len(m.Gen) > 0 {
		l.doc.Settings[el] = m.Gen
	}
}

func (l *loader) types(srcs []string, p *Package, scope [][]*TypeParameter) ([]*GenericType, error) {
	var out []*GenericType
	for _, src := range srcs {
		g, err := l.resolve(src, p, scope)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// resolve parses a type spelling and binds its names. Lookup order is
// type parameters (innermost first), the current package, "pkg.Name"
// across the document, then the built-in types.
func (l *loader) resolve(src string, p *Package, scope [][]*TypeParameter) (*GenericType, error) {
	expr, err := typeexpr.Parse(src)
	if err != nil {
		return nil, errors.Mark(err, errors.ErrInvalidModel)
	}
	return l.bind(expr, p, scope)
}

func (l *loader) bind(e *typeexpr.Expr, p *Package, scope [][]*TypeParameter) (*GenericType, error) {
	if e.Dims > 0 {
		return nil, errors.WithHint(
			errors.NewInvalidModelf("array type %q is not a model type", e.String()),
			"declare a dataType with instanceTypeName set to the array spelling")
	}
	if e.Wildcard {
		g := &GenericType{}
		var err error
		if e.Extends != nil {
			if g.UpperBound, err = l.bind(e.Extends, p, scope); err != nil {
				return nil, err
			}
		}
		if e.Super != nil {
			if g.LowerBound, err = l.bind(e.Super, p, scope); err != nil {
				return nil, err
			}
		}
		return g, nil
	}

	g := &GenericType{}
	if tp := lookupTypeParameter(e.Name, scope); tp != nil && len(e.Args) == 0 {
		g.TypeParameter = tp
		return g, nil
	}
	c := l.lookupClassifier(e.Name, p)
	if c == nil {
		return nil, errors.WithHint(
			errors.NewInvalidModelf("unknown type %q", e.Name),
			"qualify types from other packages as package.Name")
	}
	g.Classifier = c
	for _, arg := range e.Args {
		ga, err := l.bind(arg, p, scope)
		if err != nil {
			return nil, err
		}
		g.TypeArguments = append(g.TypeArguments, ga)
	}
	return g, nil
}

func lookupTypeParameter(name string, scope [][]*TypeParameter) *TypeParameter {
	for _, tps := range scope {
		for _, tp := range tps {
			if tp.Name == name {
				return tp
			}
		}
	}
	return nil
}

func (l *loader) lookupClassifier(name string, p *Package) Classifier {
	if i := strings.LastIndex(name, "."); i >= 0 {
		pkgName, simple := name[:i], name[i+1:]
		if pkgName == Builtins().Name || pkgName == BuiltinsQualifier {
			return Builtin(simple)
		}
		if other := l.doc.Package(pkgName); other != nil {
			return other.Classifier(simple)
		}
		return nil
	}
	if c := p.Classifier(name); c != nil {
		return c
	}
	return Builtin(name)
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

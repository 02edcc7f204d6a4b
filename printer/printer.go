// Package printer renders notation units as text.
package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/notation"
)

// Print writes unit to w.
func Print(w io.Writer, unit *notation.Package) error {
	p := &printer{unit: unit, imported: make(map[string]bool)}
	for _, qn := range unit.Imports {
		p.imported[qn] = true
	}
	p.pkg()
	_, err := io.WriteString(w, p.sb.String())
	return err
}

// String returns the text of unit.
func String(unit *notation.Package) string {
	var sb strings.Builder
	_ = Print(&sb, unit)
	return sb.String()
}

type printer struct {
	sb       strings.Builder
	unit     *notation.Package
	imported map[string]bool
	indent   int
}

func (p *printer) line(format string, args ...interface{}) {
	p.sb.WriteString(strings.Repeat("\t", p.indent))
	p.sb.WriteString(fmt.Sprintf(format, args...))
	p.sb.WriteString("\n")
}

func (p *printer) blank() {
	p.sb.WriteString("\n")
}

func (p *printer) pkg() {
	u := p.unit
	p.annotations(u.Base())
	p.line("package %s", u.Name)

	if len(u.Imports) > 0 {
		p.blank()
		for _, qn := range u.Imports {
			p.line("import %s", qn)
		}
	}
	if len(u.Directives) > 0 {
		p.blank()
		for _, d := range u.Directives {
			p.line("annotation %s as %s", strconv.Quote(d.SourceURI), d.Name)
		}
	}

	for _, c := range u.Classifiers {
		p.blank()
		switch c := c.(type) {
		case *notation.Class:
			p.class(c)
		case *notation.Enum:
			p.enum(c)
		case *notation.DataType:
			p.dataType(c)
		}
	}
}

// Keyword returns the declaration keyword of c.
func Keyword(c notation.Classifier) string {
	switch c := c.(type) {
	case *notation.Class:
		switch {
		case c.Interface:
			return "interface"
		case c.Abstract:
			return "abstract class"
		}
		return "class"
	case *notation.Enum:
		return "enum"
	case *notation.DataType:
		return "type"
	}
	return ""
}

func (p *printer) annotations(e *notation.Element) {
	for _, a := range e.Annotations {
		if len(a.Details) == 0 {
			p.line("@%s", a.Directive.Name)
			continue
		}
		parts := make([]string, len(a.Details))
		for i, kv := range a.Details {
			parts[i] = kv.Key + "=" + strconv.Quote(kv.Value)
		}
		p.line("@%s(%s)", a.Directive.Name, strings.Join(parts, ", "))
	}
}

func (p *printer) class(c *notation.Class) {
	p.annotations(c.Base())
	var sb strings.Builder
	sb.WriteString(Keyword(c) + " ")
	sb.WriteString(c.Name)
	sb.WriteString(p.typeParameters(c.TypeParameters))
	if c.InstanceType != nil {
		sb.WriteString(" wraps " + p.genericType(c.InstanceType))
	}
	if len(c.SuperTypes) > 0 {
		sb.WriteString(" extends " + p.genericTypes(c.SuperTypes))
	}

	if len(c.Members) == 0 {
		p.line("%s {}", sb.String())
		return
	}
	p.line("%s {", sb.String())
	p.indent++
	for _, m := range c.Members {
		switch m := m.(type) {
		case *notation.Attribute:
			p.attribute(m)
		case *notation.Reference:
			p.reference(m)
		case *notation.Operation:
			p.operation(m)
		}
	}
	p.indent--
	p.line("}")
}

func (p *printer) attribute(a *notation.Attribute) {
	p.annotations(a.Base())
	mods := p.featureModifiers(&a.Feature)
	if a.ID {
		mods = append(mods, "id")
	}
	decl := joinWords(mods, p.typed(&a.TypedElement), a.Name)
	if a.DefaultValueLiteral != "" {
		decl += " = " + strconv.Quote(a.DefaultValueLiteral)
	}
	p.line("%s", decl)
}

func (p *printer) reference(r *notation.Reference) {
	p.annotations(r.Base())
	var kind []string
	switch {
	case r.Containment:
		kind = []string{"contains"}
		if r.ResolveProxies {
			kind = append(kind, "resolving")
		}
	case r.Container:
		kind = []string{"container"}
		if r.ResolveProxies {
			kind = append(kind, "resolving")
		}
	default:
		kind = []string{"refers"}
		if r.Local {
			kind = append(kind, "local")
		}
	}
	mods := append(kind, p.featureModifiers(&r.Feature)...)
	decl := joinWords(mods, p.typed(&r.TypedElement), r.Name)
	if r.Opposite != nil {
		decl += " opposite " + r.Opposite.Name
	}
	if len(r.Keys) > 0 {
		names := make([]string, len(r.Keys))
		for i, k := range r.Keys {
			names[i] = k.Name
		}
		decl += " keys " + strings.Join(names, ", ")
	}
	p.line("%s", decl)
}

func (p *printer) operation(op *notation.Operation) {
	p.annotations(op.Base())
	var mods []string
	if op.Unordered {
		mods = append(mods, "unordered")
	}
	if op.Unique {
		mods = append(mods, "unique")
	}
	result := "void"
	if op.Type != nil {
		result = p.typed(&op.TypedElement)
	}

	var sb strings.Builder
	sb.WriteString(joinWords(append([]string{"op"}, mods...), p.typeParameters(op.TypeParameters), result, op.Name))
	params := make([]string, len(op.Parameters))
	for i, param := range op.Parameters {
		var pm []string
		if param.Unordered {
			pm = append(pm, "unordered")
		}
		if param.Unique {
			pm = append(pm, "unique")
		}
		params[i] = joinWords(pm, p.typed(&param.TypedElement), param.Name)
	}
	sb.WriteString("(" + strings.Join(params, ", ") + ")")
	if len(op.Exceptions) > 0 {
		sb.WriteString(" throws " + p.genericTypes(op.Exceptions))
	}

	if op.Body == nil {
		p.line("%s", sb.String())
		return
	}
	p.line("%s {", sb.String())
	p.indent++
	for _, l := range strings.Split(strings.TrimSpace(op.Body.Text), "\n") {
		p.line("%s", strings.TrimSpace(l))
	}
	p.indent--
	p.line("}")
}

func (p *printer) featureModifiers(f *notation.Feature) []string {
	var mods []string
	if f.Unordered {
		mods = append(mods, "unordered")
	}
	if f.Unique {
		mods = append(mods, "unique")
	}
	if f.Readonly {
		mods = append(mods, "readonly")
	}
	if f.Transient {
		mods = append(mods, "transient")
	}
	if f.Volatile {
		mods = append(mods, "volatile")
	}
	if f.Unsettable {
		mods = append(mods, "unsettable")
	}
	if f.Derived {
		mods = append(mods, "derived")
	}
	return mods
}

func (p *printer) enum(e *notation.Enum) {
	p.annotations(e.Base())
	p.line("enum %s {", e.Name)
	p.indent++
	for i, l := range e.Literals {
		p.annotations(l.Base())
		decl := l.Name
		if l.Literal != "" {
			decl += " as " + strconv.Quote(l.Literal)
		}
		decl += " = " + strconv.Itoa(l.Value)
		if i < len(e.Literals)-1 {
			decl += ","
		}
		p.line("%s", decl)
	}
	p.indent--
	p.line("}")
}

func (p *printer) dataType(d *notation.DataType) {
	p.annotations(d.Base())
	decl := "type " + d.Name + p.typeParameters(d.TypeParameters)
	if d.InstanceType != nil {
		decl += " wraps " + p.genericType(d.InstanceType)
	}
	p.line("%s", decl)
}

func (p *printer) typeParameters(tps []*notation.TypeParameter) string {
	if len(tps) == 0 {
		return ""
	}
	parts := make([]string, len(tps))
	for i, tp := range tps {
		parts[i] = tp.Name
		if len(tp.Bounds) > 0 {
			bounds := make([]string, len(tp.Bounds))
			for j, b := range tp.Bounds {
				bounds[j] = p.genericType(b)
			}
			parts[i] += " extends " + strings.Join(bounds, " & ")
		}
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// typed renders the type and multiplicity of t.
func (p *printer) typed(t *notation.TypedElement) string {
	return p.genericType(t.Type) + Multiplicity(t.Multiplicity)
}

func (p *printer) genericTypes(gs []*notation.GenericType) string {
	parts := make([]string, len(gs))
	for i, g := range gs {
		parts[i] = p.genericType(g)
	}
	return strings.Join(parts, ", ")
}

func (p *printer) genericType(g *notation.GenericType) string {
	if g == nil {
		return "?"
	}
	if g.Wildcard() {
		switch {
		case g.UpperBound != nil:
			return "? extends " + p.genericType(g.UpperBound)
		case g.LowerBound != nil:
			return "? super " + p.genericType(g.LowerBound)
		}
		return "?"
	}
	s := p.typeName(g.Type)
	if len(g.TypeArguments) > 0 {
		s += "<" + p.genericTypes(g.TypeArguments) + ">"
	}
	return s
}

// typeName shortens classifier names that are visible without
// qualification: those of the unit itself, imported ones and built-ins.
func (p *printer) typeName(ref *notation.TypeRef) string {
	c, ok := ref.Target.(notation.Classifier)
	if !ok {
		return ref.QualifiedName
	}
	base := c.Classifier()
	qn := base.QualifiedName()
	if base.Package == p.unit || p.imported[qn] || notation.IsImplicitImport(qn) {
		return base.Name
	}
	return qn
}

// Multiplicity renders m as written after a type: "" for the default,
// "[]" for many, "[+]" for at least one, otherwise "[n]" or
// "[lower..upper]" with "*" for unbounded.
func Multiplicity(m notation.Multiplicity) string {
	switch {
	case m == nil:
		return ""
	case len(m) == 0:
		return "[]"
	case len(m) == 1 && m[0] == notation.OneOrMore:
		return "[+]"
	case len(m) == 1:
		return "[" + bound(m[0]) + "]"
	}
	return "[" + bound(m[0]) + ".." + bound(m[1]) + "]"
}

func bound(n int) string {
	if n == ecore.Unbounded {
		return "*"
	}
	return strconv.Itoa(n)
}

func joinWords(mods []string, words ...string) string {
	all := make([]string, 0, len(mods)+len(words))
	all = append(all, mods...)
	for _, w := range words {
		if w != "" {
			all = append(all, w)
		}
	}
	return strings.Join(all, " ")
}

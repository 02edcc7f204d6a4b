// Package typeexpr parses type spellings such as
// "java.util.Map<K, ? extends java.util.List<V>>[]" into expression trees.
//
// The loader uses it for the type columns of model documents and the
// lowering engine uses it for instance type names.
package typeexpr

import "strings"

// Expr is a parsed type expression. A wildcard has an empty Name and at
// most one of Extends or Super.
type Expr struct {
	Name     string
	Args     []*Expr
	Wildcard bool
	Extends  *Expr
	Super    *Expr
	Dims     int
	Offset   int
}

// String renders the expression in canonical spelling.
func (e *Expr) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Expr) write(b *strings.Builder) {
	if e.Wildcard {
		b.WriteString("?")
		switch {
		case e.Extends != nil:
			b.WriteString(" extends ")
			e.Extends.write(b)
		case e.Super != nil:
			b.WriteString(" super ")
			e.Super.write(b)
		}
		return
	}
	b.WriteString(e.Name)
	if len(e.Args) > 0 {
		b.WriteString("<")
		for i, arg := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			arg.write(b)
		}
		b.WriteString(">")
	}
	for i := 0; i < e.Dims; i++ {
		b.WriteString("[]")
	}
}

// Names returns every type name referenced by e, depth first.
func (e *Expr) Names() []string {
	var out []string
	var visit func(x *Expr)
	visit = func(x *Expr) {
		if x == nil {
			return
		}
		if x.Name != "" {
			out = append(out, x.Name)
		}
		for _, arg := range x.Args {
			visit(arg)
		}
		visit(x.Extends)
		visit(x.Super)
	}
	visit(e)
	return out
}

package notation

// Walk calls fn for n and every node below it, parents first, in
// declaration order. Generic types are visited as self, lower bound, upper
// bound, then type arguments. Targets of type and feature references are
// not followed. A non-nil error from fn stops the walk.
func Walk(n Node, fn func(Node) error) error {
	w := walker{fn: fn}
	w.node(n)
	return w.err
}

type walker struct {
	fn  func(Node) error
	err error
}

func (w *walker) visit(n Node) bool {
	if w.err != nil {
		return false
	}
	w.err = w.fn(n)
	return w.err == nil
}

func (w *walker) node(n Node) {
	switch n := n.(type) {
	case *Package:
		if w.visit(n) {
			for _, c := range n.Classifiers {
				w.node(c)
			}
		}
	case *Class:
		if w.visit(n) {
			w.classifier(&n.ClassifierBase)
			w.types(n.SuperTypes)
			for _, m := range n.Members {
				w.node(m)
			}
		}
	case *DataType:
		if w.visit(n) {
			w.classifier(&n.ClassifierBase)
		}
	case *Enum:
		if w.visit(n) {
			w.classifier(&n.ClassifierBase)
			for _, l := range n.Literals {
				w.visit(l)
			}
		}
	case *Attribute:
		if w.visit(n) {
			w.genericType(n.Type)
		}
	case *Reference:
		if w.visit(n) {
			w.genericType(n.Type)
		}
	case *Operation:
		if w.visit(n) {
			w.genericType(n.Type)
			w.typeParameters(n.TypeParameters)
			for _, p := range n.Parameters {
				if w.visit(p) {
					w.genericType(p.Type)
				}
			}
			w.types(n.Exceptions)
		}
	case *GenericType:
		w.genericType(n)
	default:
		w.visit(n)
	}
}

func (w *walker) classifier(c *ClassifierBase) {
	w.typeParameters(c.TypeParameters)
	w.genericType(c.InstanceType)
}

func (w *walker) typeParameters(tps []*TypeParameter) {
	for _, tp := range tps {
		if w.visit(tp) {
			w.types(tp.Bounds)
		}
	}
}

func (w *walker) types(gs []*GenericType) {
	for _, g := range gs {
		w.genericType(g)
	}
}

func (w *walker) genericType(g *GenericType) {
	if g == nil || !w.visit(g) {
		return
	}
	w.genericType(g.LowerBound)
	w.genericType(g.UpperBound)
	w.types(g.TypeArguments)
}

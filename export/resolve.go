package export

import (
	"path"
	"sort"
	"strings"

	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/genmodel"
	"github.com/teranos/xcore/notation"
	"github.com/teranos/xcore/scope"
)

// Extension is the file extension of exported units.
const Extension = ".xcore"

// ResolveReferences binds the type references, opposites and keys of unit
// that are still unresolved after linking. It returns how many remain
// unresolved. Array spellings such as "byte[]" are never bound and are not
// counted.
func ResolveReferences(unit *notation.Package, r scope.Resolver) int {
	missing := 0
	_ = notation.Walk(unit, func(n notation.Node) error {
		switch n := n.(type) {
		case *notation.GenericType:
			if n.Type == nil || n.Type.Resolved() {
				return nil
			}
			// Array spellings of host types are kept as written
			if strings.HasSuffix(n.Type.QualifiedName, "[]") {
				return nil
			}
			if t, ok := r.Resolve(n.Type.QualifiedName, unit); ok {
				n.Type.Target = t
			} else {
				missing++
			}
		case *notation.Reference:
			refs := n.Keys
			if n.Opposite != nil {
				refs = append([]*notation.FeatureRef{n.Opposite}, refs...)
			}
			for _, ref := range refs {
				if ref.Target != nil {
					continue
				}
				t, ok := r.Resolve(ref.QualifiedName(), unit)
				if m, isMember := t.(notation.Member); ok && isMember {
					ref.Target = m
				} else {
					missing++
				}
			}
		}
		return nil
	})
	return missing
}

// Imports returns the sorted qualified names of the classifiers unit refers
// to in other units. Built-in classifiers are visible everywhere and are
// left out.
func Imports(unit *notation.Package) []string {
	seen := make(map[string]bool)
	_ = notation.Walk(unit, func(n notation.Node) error {
		g, ok := n.(*notation.GenericType)
		if !ok || !g.Type.Resolved() {
			return nil
		}
		c, ok := g.Type.Target.(notation.Classifier)
		if !ok {
			return nil
		}
		base := c.Classifier()
		if base.Package == nil || base.Package == unit {
			return nil
		}
		if qn := base.QualifiedName(); !notation.IsImplicitImport(qn) {
			seen[qn] = true
		}
		return nil
	})

	imports := make([]string, 0, len(seen))
	for qn := range seen {
		imports = append(imports, qn)
	}
	sort.Strings(imports)
	return imports
}

// Location returns the default file name of the unit exported for gp.
func Location(gp *genmodel.GenPackage) string {
	if gp == nil || gp.Prefix == "" {
		return ""
	}
	return gp.Prefix + Extension
}

// CheckLocation reports whether loc names a notation file.
func CheckLocation(loc string) error {
	if loc == "" {
		return errors.NewInvalidConfigf("artifact location is empty")
	}
	if !strings.HasSuffix(path.Base(loc), Extension) || path.Base(loc) == Extension {
		return errors.WithHintf(
			errors.NewInvalidConfigf("artifact location %q must end in %s", loc, Extension),
			"set the package prefix, or pass a file name such as Model%s", Extension)
	}
	return nil
}

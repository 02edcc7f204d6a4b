package genmodel

import (
	"sort"

	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/errors"
)

// Settings maps setting names to their textual values.
type Settings map[string]string

// Overrides are the per-model choices applied on top of the defaults.
type Overrides struct {
	Model    Settings
	Elements map[ecore.Element]Settings
}

// Empty reports whether o carries no settings at all.
func (o Overrides) Empty() bool {
	return len(o.Model) == 0 && len(o.Elements) == 0
}

// FromDocument collects the inline settings of a loaded model.
func FromDocument(doc *ecore.Document) Overrides {
	o := Overrides{Model: Settings{}, Elements: make(map[ecore.Element]Settings)}
	for k, v := range doc.ModelSettings {
		o.Model[k] = v
	}
	for el, s := range doc.Settings {
		o.Elements[el] = Settings(s)
	}
	return o
}

// Merge returns the union of o and other. Values in other win.
func (o Overrides) Merge(other Overrides) Overrides {
	out := Overrides{Model: Settings{}, Elements: make(map[ecore.Element]Settings)}
	for _, src := range []Overrides{o, other} {
		for k, v := range src.Model {
			out.Model[k] = v
		}
		for el, s := range src.Elements {
			dst := out.Elements[el]
			if dst == nil {
				dst = Settings{}
				out.Elements[el] = dst
			}
			for k, v := range s {
				dst[k] = v
			}
		}
	}
	return out
}

// Reconcile builds the actual customization tree: a fresh tree at the
// defaults with the overrides applied. Overrides naming an element outside
// packages, or a setting the node does not have, are errors.
func Reconcile(packages []*ecore.Package, o Overrides, d Defaults) (*GenModel, error) {
	gm := Initialize(packages, d)
	if err := apply(gm, o.Model); err != nil {
		return nil, errors.Wrap(err, "model settings")
	}

	var unknown []string
	for el, s := range o.Elements {
		n := gm.Lookup(el)
		if n == nil {
			unknown = append(unknown, ecore.Path(el))
			continue
		}
		if err := apply(n, s); err != nil {
			return nil, errors.Wrapf(err, "settings of %s", ecore.Path(el))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.NewInvalidModelf("settings target elements outside the model: %v", unknown)
	}
	return gm, nil
}

func apply(n Node, s Settings) error {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := Set(n, k, s[k]); err != nil {
			return err
		}
	}
	return nil
}

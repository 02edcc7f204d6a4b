package genmodel

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/errors"
)

// ModelTable is the sidecar table holding root settings.
const ModelTable = "model"

// LoadOverrides reads a TOML sidecar of generator settings. Each table is
// named by the dotted path of a model element and holds that element's
// settings; the [model] table holds root settings:
//
//	[model]
//	complianceLevel = "11.0"
//
//	[shapes.Shape]
//	image = false
func LoadOverrides(path string, packages []*ecore.Package) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, errors.Wrapf(err, "failed to read overrides %s", path)
	}
	o, err := ParseOverrides(string(data), packages)
	if err != nil {
		return Overrides{}, errors.Wrapf(err, "failed to load overrides %s", path)
	}
	return o, nil
}

// ParseOverrides decodes sidecar content. See LoadOverrides.
func ParseOverrides(data string, packages []*ecore.Package) (Overrides, error) {
	var raw map[string]interface{}
	if _, err := toml.Decode(data, &raw); err != nil {
		return Overrides{}, errors.Mark(errors.Wrap(err, "invalid TOML"), errors.ErrInvalidModel)
	}

	tables := make(map[string]Settings)
	for name, v := range raw {
		table, ok := v.(map[string]interface{})
		if !ok {
			return Overrides{}, errors.WithHint(
				errors.NewInvalidModelf("top-level key %q is not a table", name),
				"settings belong in a [model] table or a table named by an element path")
		}
		if err := flatten(name, table, tables); err != nil {
			return Overrides{}, err
		}
	}

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	o := Overrides{Model: Settings{}, Elements: make(map[ecore.Element]Settings)}
	for _, name := range names {
		if name == ModelTable {
			o.Model = tables[name]
			continue
		}
		el := ecore.Find(packages, name)
		if el == nil {
			return Overrides{}, errors.NewNotFoundf("no model element at %q", name)
		}
		o.Elements[el] = tables[name]
	}
	return o, nil
}

// flatten records the scalars of table under path and recurses into
// nested tables, so [shapes.Shape] and ["shapes.Shape"] are equivalent.
func flatten(path string, table map[string]interface{}, out map[string]Settings) error {
	for k, v := range table {
		switch v := v.(type) {
		case map[string]interface{}:
			if err := flatten(path+"."+k, v, out); err != nil {
				return err
			}
		case string, bool, int64, float64:
			s := out[path]
			if s == nil {
				s = Settings{}
				out[path] = s
			}
			s[k] = fmt.Sprint(v)
		default:
			return errors.NewInvalidModelf("[%s] %s: settings must be scalars", path, k)
		}
	}
	return nil
}

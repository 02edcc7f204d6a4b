package genmodel

import (
	"reflect"
	"strconv"

	"github.com/teranos/xcore/errors"
)

// Attribute is one single-valued setting of a node.
type Attribute struct {
	Name  string
	Value interface{}
}

// Attributes returns the settings of n in declaration order.
func Attributes(n Node) []Attribute {
	v := reflect.ValueOf(n).Elem()
	t := v.Type()
	var out []Attribute
	for i := 0; i < t.NumField(); i++ {
		name, ok := t.Field(i).Tag.Lookup("gen")
		if !ok {
			continue
		}
		out = append(out, Attribute{Name: name, Value: v.Field(i).Interface()})
	}
	return out
}

// Get returns the value of the named setting.
func Get(n Node, name string) (interface{}, bool) {
	for _, a := range Attributes(n) {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// Set parses value according to the setting's kind and stores it.
func Set(n Node, name, value string) error {
	v := reflect.ValueOf(n).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if tag, ok := t.Field(i).Tag.Lookup("gen"); !ok || tag != name {
			continue
		}
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return errors.NewInvalidModelf("%s: %q is not a boolean", name, value)
			}
			field.SetBool(b)
		case reflect.Int:
			n, err := strconv.Atoi(value)
			if err != nil {
				return errors.NewInvalidModelf("%s: %q is not an integer", name, value)
			}
			field.SetInt(int64(n))
		default:
			return errors.AssertionFailedf("setting %s has unsupported kind %s", name, field.Kind())
		}
		return nil
	}
	return errors.WithHintf(
		errors.NewInvalidModelf("%s has no setting %q", Kind(n), name),
		"known settings: %v", Names(n))
}

// Names returns the setting names of n.
func Names(n Node) []string {
	attrs := Attributes(n)
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name
	}
	return names
}

// Format renders a setting value the way it is written into annotations.
func Format(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case nil:
		return ""
	}
	return reflect.ValueOf(value).String()
}

// Kind returns the node's type name, e.g. "GenClass".
func Kind(n Node) string {
	return reflect.TypeOf(n).Elem().Name()
}

package ecore

import (
	"gopkg.in/yaml.v3"

	"github.com/teranos/xcore/errors"
)

// Document is a loaded model file: one or more packages plus the inline
// generator settings found next to their elements.
type Document struct {
	Path          string
	Packages      []*Package
	ModelSettings map[string]string
	Settings      map[Element]map[string]string
}

// Package returns the package with the given name, or nil.
func (d *Document) Package(name string) *Package {
	for _, p := range d.Packages {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// UnmarshalYAML decodes a mapping into ordered details.
func (d *Details) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.NewInvalidModelf("line %d: annotation details must be a mapping", node.Line)
	}
	out := make(Details, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return errors.NewInvalidModelf("line %d: detail %q must be a scalar", value.Line, key.Value)
		}
		out.Set(key.Value, value.Value)
	}
	*d = out
	return nil
}

type docFile struct {
	Gen      map[string]string `yaml:"gen"`
	Packages []docPackage      `yaml:"packages"`
}

type docMeta struct {
	Annotations []docAnnotation   `yaml:"annotations"`
	Gen         map[string]string `yaml:"gen"`
}

type docAnnotation struct {
	Source  string  `yaml:"source"`
	Details Details `yaml:"details"`
}

type docPackage struct {
	docMeta     `yaml:",inline"`
	Name        string          `yaml:"name"`
	NsURI       string          `yaml:"nsURI"`
	NsPrefix    string          `yaml:"nsPrefix"`
	Classifiers []docClassifier `yaml:"classifiers"`
}

type docClassifier struct {
	docMeta          `yaml:",inline"`
	Class            string             `yaml:"class"`
	Enum             string             `yaml:"enum"`
	DataType         string             `yaml:"dataType"`
	InstanceTypeName string             `yaml:"instanceTypeName"`
	TypeParameters   []docTypeParameter `yaml:"typeParameters"`
	Abstract         bool               `yaml:"abstract"`
	Interface        bool               `yaml:"interface"`
	SuperTypes       []string           `yaml:"superTypes"`
	Features         []docFeature       `yaml:"features"`
	Operations       []docOperation     `yaml:"operations"`
	Literals         []docLiteral       `yaml:"literals"`
	Serializable     *bool              `yaml:"serializable"`
}

type docTypeParameter struct {
	docMeta `yaml:",inline"`
	Name    string   `yaml:"name"`
	Bounds  []string `yaml:"bounds"`
}

// UnmarshalYAML accepts either a bare name or a mapping.
func (tp *docTypeParameter) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		tp.Name = node.Value
		return nil
	}
	type plain docTypeParameter
	return node.Decode((*plain)(tp))
}

type docBounds struct {
	Type    string `yaml:"type"`
	Lower   int    `yaml:"lower"`
	Upper   *int   `yaml:"upper"`
	Ordered *bool  `yaml:"ordered"`
	Unique  *bool  `yaml:"unique"`
}

type docFeature struct {
	docMeta        `yaml:",inline"`
	docBounds      `yaml:",inline"`
	Attribute      string   `yaml:"attribute"`
	Reference      string   `yaml:"reference"`
	Changeable     *bool    `yaml:"changeable"`
	Volatile       bool     `yaml:"volatile"`
	Transient      bool     `yaml:"transient"`
	Unsettable     bool     `yaml:"unsettable"`
	Derived        bool     `yaml:"derived"`
	Default        *string  `yaml:"default"`
	ID             bool     `yaml:"id"`
	Containment    bool     `yaml:"containment"`
	ResolveProxies *bool    `yaml:"resolveProxies"`
	Opposite       string   `yaml:"opposite"`
	Keys           []string `yaml:"keys"`
}

type docOperation struct {
	docMeta        `yaml:",inline"`
	docBounds      `yaml:",inline"`
	Name           string             `yaml:"name"`
	TypeParameters []docTypeParameter `yaml:"typeParameters"`
	Parameters     []docParameter     `yaml:"parameters"`
	Exceptions     []string           `yaml:"exceptions"`
	Body           *string            `yaml:"body"`
}

type docParameter struct {
	docMeta   `yaml:",inline"`
	docBounds `yaml:",inline"`
	Name      string `yaml:"name"`
}

type docLiteral struct {
	docMeta `yaml:",inline"`
	Name    string `yaml:"name"`
	Value   *int   `yaml:"value"`
	Literal string `yaml:"literal"`
}

// Package ecore holds the source model: packages, classifiers, structural
// features, operations and generic type expressions, each carrying
// namespaced annotation bundles.
//
// The graph is built by the loader (see Load) or by hand in tests and is
// treated as read-only by every consumer.
package ecore

// Namespace identifiers with a fixed meaning during lowering.
const (
	// NsURI is the structural namespace. Package prefix/URI hints and
	// operation bodies live in bundles under this namespace.
	NsURI = "http://www.eclipse.org/emf/2002/Ecore"

	// GenModelNsURI is the generator customization namespace.
	GenModelNsURI = "http://www.eclipse.org/emf/2002/GenModel"

	// XcoreNsURI is the textual notation's own reserved namespace.
	XcoreNsURI = "http://www.eclipse.org/emf/2011/Xcore"

	// ExtendedMetaDataNsURI is the XML mapping namespace.
	ExtendedMetaDataNsURI = "http:///org/eclipse/emf/ecore/util/ExtendedMetaData"
)

// Unbounded is the upper bound of a many-valued element with no limit.
const Unbounded = -1

// Element is implemented by every annotatable source element.
type Element interface {
	Base() *ModelElement
}

// ModelElement carries the annotation bundles of an element.
type ModelElement struct {
	Annotations []*Annotation
}

// Base returns the element's annotation holder.
func (m *ModelElement) Base() *ModelElement {
	return m
}

// Annotation returns the first bundle with the given source, or nil.
func (m *ModelElement) Annotation(source string) *Annotation {
	for _, a := range m.Annotations {
		if a.Source == source {
			return a
		}
	}
	return nil
}

// Annotate appends a bundle and returns it.
func (m *ModelElement) Annotate(source string, details ...Detail) *Annotation {
	a := &Annotation{Source: source, Details: details}
	m.Annotations = append(m.Annotations, a)
	return a
}

// Annotation is a namespaced bundle of ordered key/value pairs plus
// optional contained objects such as an operation body.
type Annotation struct {
	Source   string
	Details  Details
	Contents []interface{}
}

// Detail is a single key/value pair of an annotation bundle.
type Detail struct {
	Key   string
	Value string
}

// Details is an ordered list of key/value pairs. Keys are unique.
type Details []Detail

// Get returns the value for key.
func (d Details) Get(key string) (string, bool) {
	for _, kv := range d {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Set replaces the value for key, or appends the pair.
func (d *Details) Set(key, value string) {
	for i := range *d {
		if (*d)[i].Key == key {
			(*d)[i].Value = value
			return
		}
	}
	*d = append(*d, Detail{Key: key, Value: value})
}

// Keys returns the keys in order.
func (d Details) Keys() []string {
	keys := make([]string, len(d))
	for i, kv := range d {
		keys[i] = kv.Key
	}
	return keys
}

// Block is an operation body expression stored in an annotation bundle.
type Block struct {
	Text string
}

// Package is the root of a source model.
type Package struct {
	ModelElement
	Name        string
	NsURI       string
	NsPrefix    string
	Classifiers []Classifier
}

// Classifier returns the classifier with the given name, or nil.
func (p *Package) Classifier(name string) Classifier {
	for _, c := range p.Classifiers {
		if c.Classifier().Name == name {
			return c
		}
	}
	return nil
}

// AddClassifier appends c and sets its owning package.
func (p *Package) AddClassifier(c Classifier) {
	c.Classifier().Package = p
	p.Classifiers = append(p.Classifiers, c)
}

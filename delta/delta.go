// Package delta records the generator settings a model changed from their
// defaults, so that printed units carry only real customizations.
package delta

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/genmodel"
	"github.com/teranos/xcore/logger"
)

// Target receives divergent settings. el is nil for settings of the root.
// RecordSetting reports whether a detail was written.
type Target interface {
	RecordSetting(el ecore.Element, name, value string) bool
}

// Annotator compares two customization trees.
type Annotator struct {
	Logger *zap.SugaredLogger // Optional logger for debug output (default: nil, no logging)
}

// Annotate is Annotator{}.Annotate.
func Annotate(defaults, actual genmodel.Node, target Target) (int, error) {
	return Annotator{}.Annotate(defaults, actual, target)
}

// Annotate walks defaults and actual in lockstep. For every setting whose
// actual value differs from its default, the actual value is recorded on
// target for the actual node's element. Children pair by position until
// either side runs out; a pair of different node kinds ends that branch.
// It returns the number of details written.
func (a Annotator) Annotate(defaults, actual genmodel.Node, target Target) (int, error) {
	if defaults == nil || actual == nil || target == nil {
		return 0, errors.NewPreconditionf("annotate needs both trees and a target")
	}
	w := &walker{target: target, log: logger.OrNop(a.Logger)}
	w.walk(defaults, actual)
	return w.written, nil
}

type walker struct {
	target  Target
	log     *zap.SugaredLogger
	written int
}

func (w *walker) walk(defaults, actual genmodel.Node) {
	if reflect.TypeOf(defaults) != reflect.TypeOf(actual) {
		w.log.Debugw("Customization trees diverge",
			logger.FieldElement, path(actual),
			"defaults", genmodel.Kind(defaults),
			"actual", genmodel.Kind(actual))
		return
	}

	el := actual.Element()
	want := genmodel.Attributes(defaults)
	for i, got := range genmodel.Attributes(actual) {
		if reflect.DeepEqual(want[i].Value, got.Value) {
			continue
		}
		if w.target.RecordSetting(el, got.Name, genmodel.Format(got.Value)) {
			w.written++
		}
	}

	dc, ac := defaults.Contents(), actual.Contents()
	for i := 0; i < len(dc) && i < len(ac); i++ {
		w.walk(dc[i], ac[i])
	}
}

func path(n genmodel.Node) string {
	if el := n.Element(); el != nil {
		return ecore.Path(el)
	}
	return genmodel.Kind(n)
}

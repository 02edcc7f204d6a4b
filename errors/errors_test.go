package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewf(t *testing.T) {
	err := Newf("error: %s %d", "test", 42)
	require.NotNil(t, err)
	assert.Equal(t, "error: test 42", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("error"), "try this fix")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestSentinelMarks(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		check   func(error) bool
		message string
	}{
		{"precondition", NewPreconditionf("class %s: %d vs %d", "Shape", 2, 1), IsPrecondition, "class Shape: 2 vs 1"},
		{"invalid model", NewInvalidModelf("unknown classifier %q", "Foo"), IsInvalidModel, `unknown classifier "Foo"`},
		{"not found", NewNotFoundf("package %s", "shapes"), IsNotFound, "package shapes"},
		{"invalid config", NewInvalidConfigf("debounce %d", -1), IsInvalidConfig, "debounce -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())

			wrapped := Wrap(tt.err, "lowering")
			assert.True(t, tt.check(wrapped))
		})
	}
}

func TestSentinelsDoNotCrossMatch(t *testing.T) {
	err := NewPreconditionf("bad")
	assert.False(t, IsInvalidModel(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsPrecondition(nil))
	assert.False(t, IsInvalidConfig(err))
	assert.True(t, Is(NewInvalidConfigf("x"), ErrInvalidConfig))
}

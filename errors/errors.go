// Package errors provides error handling for xcore.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for CLI output
//
// Usage:
//
//	// Wrap with context
//	if err := builder.Link(); err != nil {
//	    return errors.Wrap(err, "failed to link package shapes")
//	}
//
//	// Classify structural problems of the input graph
//	return errors.NewPreconditionf("class %s has %d operations but %d gen operations", name, a, b)
//
//	// Check errors
//	if errors.Is(err, errors.ErrPrecondition) {
//	    // the input model is malformed, nothing to retry
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf    = crdb.AssertionFailedf
	IsAssertionFailure  = crdb.IsAssertionFailure
	HasAssertionFailure = crdb.HasAssertionFailure
)

// Sentinel errors shared by the lowering pipeline.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrPrecondition indicates a structurally malformed input graph:
	// parallel lists of different length, a missing customization node,
	// a second link pass.
	ErrPrecondition = New("precondition violated")

	// ErrInvalidModel indicates a model document that cannot be turned into a model graph
	ErrInvalidModel = New("invalid model")

	// ErrInvalidConfig indicates a configuration value outside its domain
	ErrInvalidConfig = New("invalid configuration")

	// ErrNotFound indicates the requested element does not exist
	ErrNotFound = New("not found")
)

// NewPreconditionf creates an error marked as ErrPrecondition.
func NewPreconditionf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrPrecondition)
}

// NewInvalidModelf creates an error marked as ErrInvalidModel.
func NewInvalidModelf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidModel)
}

// NewInvalidConfigf creates an error marked as ErrInvalidConfig.
func NewInvalidConfigf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidConfig)
}

// NewNotFoundf creates an error marked as ErrNotFound.
func NewNotFoundf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrNotFound)
}

// IsPrecondition checks if an error is or wraps ErrPrecondition
func IsPrecondition(err error) bool {
	return err != nil && Is(err, ErrPrecondition)
}

// IsInvalidModel checks if an error is or wraps ErrInvalidModel
func IsInvalidModel(err error) bool {
	return err != nil && Is(err, ErrInvalidModel)
}

// IsNotFound checks if an error is or wraps ErrNotFound
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidConfig checks if an error is or wraps ErrInvalidConfig
func IsInvalidConfig(err error) bool {
	return err != nil && Is(err, ErrInvalidConfig)
}

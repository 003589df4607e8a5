package domain

import (
	"errors"
	"fmt"
)

// ErrModelNotFound is returned when a model key cannot be found in a store.
var ErrModelNotFound = errors.New("model not found")

// ErrFamilyNotFound is returned when a family name is not registered.
var ErrFamilyNotFound = errors.New("family not found")

// UnknownBlockError is returned when a block name is not registered in the catalog.
type UnknownBlockError struct {
	Block string
	// Base is the name left after stripping a stage-count suffix, if any.
	Base string
}

func (e *UnknownBlockError) Error() string {
	if e.Base != "" && e.Base != e.Block {
		return fmt.Sprintf("unknown block %q (base %q)", e.Block, e.Base)
	}
	return fmt.Sprintf("unknown block %q", e.Block)
}

// StageCountError is returned when a stage count suffix cannot be honored.
type StageCountError struct {
	Block  string
	Reason string
}

func (e *StageCountError) Error() string {
	return fmt.Sprintf("block %q: %s", e.Block, e.Reason)
}

// UndeclaredStateError is returned when a transition endpoint is not in the global
// state catalog.
type UndeclaredStateError struct {
	Model string
	State string
}

func (e *UndeclaredStateError) Error() string {
	return fmt.Sprintf("model %q: state %q is not declared", e.Model, e.State)
}

// InvalidRateError is returned when a rate expression cannot be analyzed.
type InvalidRateError struct {
	Rate string
	Err  error
}

func (e *InvalidRateError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid rate %q", e.Rate)
	}
	return fmt.Sprintf("invalid rate %q: %v", e.Rate, e.Err)
}

func (e *InvalidRateError) Unwrap() error { return e.Err }

// DuplicateKeyError is returned when two model definitions share a key.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate model key %q", e.Key)
}

// RenameError is returned when a variant renaming rule cannot be applied.
type RenameError struct {
	Rule   string
	Field  string
	Marker string
	Value  string
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("variant %q: marker %q not found in %s %q", e.Rule, e.Marker, e.Field, e.Value)
}

// SubmissionError is returned when a sink rejects a model. Remaining submissions of the
// batch are not attempted.
type SubmissionError struct {
	Model string
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit model %q: %v", e.Model, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

package variant

import (
	"strings"

	"github.com/aretw0/compartments/pkg/domain"
)

// Rename transforms an identifier (key, name or description) of a definition.
type Rename interface {
	Apply(value string) (string, bool)
	// Marker is the text the rename depends on, used in error reports.
	Marker() string
}

// ReplaceFirst replaces the first occurrence of Old with New.
// The rename fails when Old does not occur in the value.
type ReplaceFirst struct {
	Old string
	New string
}

func (r ReplaceFirst) Apply(value string) (string, bool) {
	if r.Old == "" || !strings.Contains(value, r.Old) {
		return value, false
	}
	return strings.Replace(value, r.Old, r.New, 1), true
}

func (r ReplaceFirst) Marker() string { return r.Old }

// AppendSuffix appends Suffix to the value. It never fails.
type AppendSuffix struct {
	Suffix string
}

func (r AppendSuffix) Apply(value string) (string, bool) {
	return value + r.Suffix, true
}

func (r AppendSuffix) Marker() string { return "" }

func rename(rule, field string, r Rename, value string) (string, error) {
	if r == nil {
		return value, nil
	}
	out, ok := r.Apply(value)
	if !ok {
		return "", &domain.RenameError{Rule: rule, Field: field, Marker: r.Marker(), Value: value}
	}
	return out, nil
}

package transform

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// InputTransform is a composable what-if edit of a taxpayer input. Apply
// never mutates base.
type InputTransform interface {
	// Apply returns a modified copy of base
	Apply(base domain.TaxInput) (domain.TaxInput, error)

	// Name returns a short identifier (e.g. "set_deduction")
	Name() string

	// Description returns a human-readable summary
	Description() string

	// Validate checks parameters against base without applying
	Validate(base domain.TaxInput) error
}

// ApplyTransforms applies transforms in order, each receiving the previous
// output. The result always has its own deduction map.
func ApplyTransforms(base domain.TaxInput, transforms []InputTransform) (domain.TaxInput, error) {
	current := base
	current.Deductions = base.Deductions.Clone()

	for i, transform := range transforms {
		if transform == nil {
			return domain.TaxInput{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.TaxInput{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.TaxInput{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

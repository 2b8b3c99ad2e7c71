package transform

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/esnet/internal/domain"
)

// ParamsTransform is one what-if change to calculator parameters, such as a
// move to another community or a revenue increase. Apply returns a modified
// copy and leaves its argument untouched.
type ParamsTransform interface {
	Name() string
	Description() string
	Validate(base *domain.CalculatorParams) error
	Apply(base *domain.CalculatorParams) (*domain.CalculatorParams, error)
}

// ApplyTransforms runs transforms in order over a copy of base. Each one is
// validated against the output of the previous one.
func ApplyTransforms(base *domain.CalculatorParams, transforms []ParamsTransform) (*domain.CalculatorParams, error) {
	if base == nil {
		return nil, errors.New("base parameters cannot be nil")
	}

	current := base.DeepCopy()
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(&current); err != nil {
			return nil, fmt.Errorf("%s validation failed: %w", t.Name(), err)
		}

		next, err := t.Apply(&current)
		if err != nil {
			return nil, NewTransformError(t.Name(), "apply", fmt.Sprintf("step %d of %d", i+1, len(transforms)), err)
		}
		current = *next
	}

	return &current, nil
}

// TransformError reports which transform failed and in which phase
type TransformError struct {
	TransformName string
	Operation     string // validate or apply
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	msg := "transform " + e.TransformName + " (" + e.Operation + "): " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

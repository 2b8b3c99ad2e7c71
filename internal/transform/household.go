package transform

import (
	"fmt"

	"github.com/rgehrsitz/esnet/internal/domain"
)

// SetCommunity moves the taxpayer to another autonomous community.
// Only regimes that pay IRPF on the regional scale are affected.
type SetCommunity struct {
	Community domain.Community
}

func (sc *SetCommunity) Name() string {
	return "set_community"
}

func (sc *SetCommunity) Description() string {
	return fmt.Sprintf("Move tax residence to %s", sc.Community.DisplayName())
}

func (sc *SetCommunity) Validate(base *domain.CalculatorParams) error {
	if base == nil {
		return NewTransformError(sc.Name(), "validate", "base parameters cannot be nil", nil)
	}
	if !sc.Community.IsValid() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("unknown community %q", sc.Community), nil)
	}
	return nil
}

func (sc *SetCommunity) Apply(base *domain.CalculatorParams) (*domain.CalculatorParams, error) {
	modified := base.DeepCopy()
	modified.Community = sc.Community
	return &modified, nil
}

// SetMaritalStatus changes the filing situation. Switching to single parent
// requires at least one child, either already present or set in the same step.
type SetMaritalStatus struct {
	Status   domain.MaritalStatus
	Children *int // optional, applied together with the status
}

func (sm *SetMaritalStatus) Name() string {
	return "set_marital_status"
}

func (sm *SetMaritalStatus) Description() string {
	if sm.Children != nil {
		return fmt.Sprintf("File as %s with %d children", sm.Status.DisplayName(), *sm.Children)
	}
	return fmt.Sprintf("File as %s", sm.Status.DisplayName())
}

func (sm *SetMaritalStatus) Validate(base *domain.CalculatorParams) error {
	if base == nil {
		return NewTransformError(sm.Name(), "validate", "base parameters cannot be nil", nil)
	}
	if !sm.Status.IsValid() {
		return NewTransformError(sm.Name(), "validate", fmt.Sprintf("unknown marital status %q", sm.Status), nil)
	}

	children := base.Children
	if sm.Children != nil {
		if *sm.Children < 0 {
			return NewTransformError(sm.Name(), "validate", fmt.Sprintf("children must be non-negative, got %d", *sm.Children), nil)
		}
		children = *sm.Children
	}
	if sm.Status == domain.MaritalSingleParent && children == 0 {
		return NewTransformError(sm.Name(), "validate", "single parent filing requires at least one child", nil)
	}
	return nil
}

func (sm *SetMaritalStatus) Apply(base *domain.CalculatorParams) (*domain.CalculatorParams, error) {
	modified := base.DeepCopy()
	modified.MaritalStatus = sm.Status
	if sm.Children != nil {
		modified.Children = *sm.Children
	}
	return &modified, nil
}

// AdjustChildren adds or removes children. The count never goes below zero.
type AdjustChildren struct {
	Delta int
}

func (ac *AdjustChildren) Name() string {
	return "adjust_children"
}

func (ac *AdjustChildren) Description() string {
	if ac.Delta >= 0 {
		return fmt.Sprintf("Add %d child(ren)", ac.Delta)
	}
	return fmt.Sprintf("Remove %d child(ren)", -ac.Delta)
}

func (ac *AdjustChildren) Validate(base *domain.CalculatorParams) error {
	if base == nil {
		return NewTransformError(ac.Name(), "validate", "base parameters cannot be nil", nil)
	}
	if base.Children+ac.Delta < 0 {
		return NewTransformError(ac.Name(), "validate",
			fmt.Sprintf("cannot remove %d children from %d", -ac.Delta, base.Children), nil)
	}
	if base.MaritalStatus == domain.MaritalSingleParent && base.Children+ac.Delta == 0 {
		return NewTransformError(ac.Name(), "validate", "single parent filing requires at least one child", nil)
	}
	return nil
}

func (ac *AdjustChildren) Apply(base *domain.CalculatorParams) (*domain.CalculatorParams, error) {
	modified := base.DeepCopy()
	modified.Children += ac.Delta
	return &modified, nil
}

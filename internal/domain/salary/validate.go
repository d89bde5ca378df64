package salary

import "strings"

// validateComponent checks the rules every registry component must satisfy.
func validateComponent(comp Component) error {
	if comp.CalculationType == CalcFormula {
		return ErrUnsupportedCalculation
	}
	verr := &ValidationError{}
	if strings.TrimSpace(comp.Name) == "" {
		verr.add("name", "is required")
	}
	if comp.Code == "" {
		verr.add("code", "is required")
	} else if comp.Code == BaseGross {
		verr.add("code", "GROSS is reserved")
	}
	if !comp.Type.Valid() {
		verr.add("type", "must be earning or deduction")
	}
	if !comp.CalculationType.Valid() {
		verr.add("calculationType", "must be fixed or percentage")
	}
	if comp.Value.IsNegative() {
		verr.add("value", "must not be negative")
	}
	if comp.CalculationType == CalcPercentage && comp.BaseComponent == "" {
		verr.add("baseComponent", "is required for percentage components")
	}
	if comp.BaseComponent != "" && comp.BaseComponent == comp.Code {
		verr.add("baseComponent", "must not reference the component itself")
	}
	return verr.orNil()
}

func validateStructure(s Structure) error {
	verr := &ValidationError{}
	if strings.TrimSpace(s.Name) == "" {
		verr.add("name", "is required")
	}
	if s.EffectiveFrom.IsZero() {
		verr.add("effectiveFrom", "is required")
	}
	return verr.orNil()
}

func codeTaken(components []Component, code, exceptID string) bool {
	for _, comp := range components {
		if comp.ID != exceptID && comp.Code == code {
			return true
		}
	}
	return false
}

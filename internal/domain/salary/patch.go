package salary

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ComponentPatch holds the fields to overwrite on an existing component. Nil
// fields are left as they are; the id can never be patched.
type ComponentPatch struct {
	Name            *string
	Code            *string
	Type            *ComponentType
	CalculationType *CalculationType
	Value           *decimal.Decimal
	BaseComponent   *string
	IsTaxable       *bool
	IsPFApplicable  *bool
	IsESIApplicable *bool
	IsStatutory     *bool
	Description     *string
}

// Apply returns comp with every non-nil patch field merged in.
func (p ComponentPatch) Apply(comp Component) Component {
	if p.Name != nil {
		comp.Name = strings.TrimSpace(*p.Name)
	}
	if p.Code != nil {
		comp.Code = NormalizeCode(*p.Code)
	}
	if p.Type != nil {
		comp.Type = *p.Type
	}
	if p.CalculationType != nil {
		comp.CalculationType = *p.CalculationType
	}
	if p.Value != nil {
		comp.Value = *p.Value
	}
	if p.BaseComponent != nil {
		comp.BaseComponent = NormalizeCode(*p.BaseComponent)
	}
	if p.IsTaxable != nil {
		comp.IsTaxable = *p.IsTaxable
	}
	if p.IsPFApplicable != nil {
		comp.IsPFApplicable = *p.IsPFApplicable
	}
	if p.IsESIApplicable != nil {
		comp.IsESIApplicable = *p.IsESIApplicable
	}
	if p.IsStatutory != nil {
		comp.IsStatutory = *p.IsStatutory
	}
	if p.Description != nil {
		comp.Description = strings.TrimSpace(*p.Description)
	}
	return comp
}

// StructurePatch holds the fields to overwrite on an existing structure. When
// Components is set the totals are recalculated; id and createdAt never change.
type StructurePatch struct {
	Name          *string
	Description   *string
	Components    *[]Component
	EmployeeID    *string
	EffectiveFrom *time.Time
	IsActive      *bool
}

func (p StructurePatch) Apply(s Structure) Structure {
	if p.Name != nil {
		s.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		s.Description = strings.TrimSpace(*p.Description)
	}
	if p.Components != nil {
		s.Components = cloneComponents(*p.Components)
	}
	if p.EmployeeID != nil {
		s.EmployeeID = strings.TrimSpace(*p.EmployeeID)
	}
	if p.EffectiveFrom != nil {
		s.EffectiveFrom = *p.EffectiveFrom
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	return s
}

func (p StructurePatch) touchesComponents() bool {
	return p.Components != nil
}

// NormalizeCode upper-cases a component code and trims surrounding space.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

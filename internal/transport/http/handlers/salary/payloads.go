package salaryhandler

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"paystructure/internal/domain/salary"
	"paystructure/internal/transport/http/shared"
)

type componentPayload struct {
	ID              string          `json:"id" validate:"max=64"`
	Name            string          `json:"name" validate:"required,max=120"`
	Code            string          `json:"code" validate:"required,max=32"`
	Type            string          `json:"type" validate:"required,oneof=earning deduction"`
	CalculationType string          `json:"calculationType" validate:"required,oneof=fixed percentage formula"`
	Value           decimal.Decimal `json:"value"`
	BaseComponent   string          `json:"baseComponent" validate:"max=32"`
	IsTaxable       bool            `json:"isTaxable"`
	IsPFApplicable  bool            `json:"isPFApplicable"`
	IsESIApplicable bool            `json:"isESIApplicable"`
	IsStatutory     bool            `json:"isStatutory"`
	Description     string          `json:"description" validate:"max=500"`
}

func (p componentPayload) input() salary.ComponentInput {
	return salary.ComponentInput{
		Name:            p.Name,
		Code:            p.Code,
		Type:            salary.ComponentType(strings.ToLower(strings.TrimSpace(p.Type))),
		CalculationType: salary.CalculationType(strings.ToLower(strings.TrimSpace(p.CalculationType))),
		Value:           p.Value,
		BaseComponent:   p.BaseComponent,
		IsTaxable:       p.IsTaxable,
		IsPFApplicable:  p.IsPFApplicable,
		IsESIApplicable: p.IsESIApplicable,
		IsStatutory:     p.IsStatutory,
		Description:     p.Description,
	}
}

// component converts an inline payload into an embedded component copy.
func (p componentPayload) component() salary.Component {
	in := p.input()
	return salary.Component{
		ID:              strings.TrimSpace(p.ID),
		Name:            strings.TrimSpace(in.Name),
		Code:            salary.NormalizeCode(in.Code),
		Type:            in.Type,
		CalculationType: in.CalculationType,
		Value:           in.Value,
		BaseComponent:   salary.NormalizeCode(in.BaseComponent),
		IsTaxable:       in.IsTaxable,
		IsPFApplicable:  in.IsPFApplicable,
		IsESIApplicable: in.IsESIApplicable,
		IsStatutory:     in.IsStatutory,
		Description:     strings.TrimSpace(in.Description),
	}
}

func inlineComponents(in []componentPayload) []salary.Component {
	out := make([]salary.Component, 0, len(in))
	for _, p := range in {
		out = append(out, p.component())
	}
	return out
}

type componentPatchPayload struct {
	Name            *string          `json:"name" validate:"omitempty,max=120"`
	Code            *string          `json:"code" validate:"omitempty,max=32"`
	Type            *string          `json:"type" validate:"omitempty,oneof=earning deduction"`
	CalculationType *string          `json:"calculationType" validate:"omitempty,oneof=fixed percentage formula"`
	Value           *decimal.Decimal `json:"value"`
	BaseComponent   *string          `json:"baseComponent" validate:"omitempty,max=32"`
	IsTaxable       *bool            `json:"isTaxable"`
	IsPFApplicable  *bool            `json:"isPFApplicable"`
	IsESIApplicable *bool            `json:"isESIApplicable"`
	IsStatutory     *bool            `json:"isStatutory"`
	Description     *string          `json:"description" validate:"omitempty,max=500"`
}

func (p componentPatchPayload) patch() salary.ComponentPatch {
	patch := salary.ComponentPatch{
		Name:            p.Name,
		Code:            p.Code,
		Value:           p.Value,
		BaseComponent:   p.BaseComponent,
		IsTaxable:       p.IsTaxable,
		IsPFApplicable:  p.IsPFApplicable,
		IsESIApplicable: p.IsESIApplicable,
		IsStatutory:     p.IsStatutory,
		Description:     p.Description,
	}
	if p.Type != nil {
		t := salary.ComponentType(strings.ToLower(strings.TrimSpace(*p.Type)))
		patch.Type = &t
	}
	if p.CalculationType != nil {
		c := salary.CalculationType(strings.ToLower(strings.TrimSpace(*p.CalculationType)))
		patch.CalculationType = &c
	}
	return patch
}

type structurePayload struct {
	Name          string             `json:"name" validate:"required,max=120"`
	Description   string             `json:"description" validate:"max=500"`
	Components    []componentPayload `json:"components" validate:"dive"`
	ComponentIDs  []string           `json:"componentIds" validate:"dive,required"`
	EmployeeID    string             `json:"employeeId" validate:"max=64"`
	EffectiveFrom string             `json:"effectiveFrom" validate:"required"`
	IsActive      *bool              `json:"isActive"`
}

func (p structurePayload) input(v *shared.Validator) salary.StructureInput {
	var effective time.Time
	if strings.TrimSpace(p.EffectiveFrom) != "" {
		effective, _ = v.Date("effectiveFrom", p.EffectiveFrom)
	}
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return salary.StructureInput{
		Name:          p.Name,
		Description:   p.Description,
		Components:    inlineComponents(p.Components),
		ComponentIDs:  p.ComponentIDs,
		EmployeeID:    p.EmployeeID,
		EffectiveFrom: effective,
		IsActive:      active,
	}
}

type structurePatchPayload struct {
	Name          *string            `json:"name" validate:"omitempty,max=120"`
	Description   *string            `json:"description" validate:"omitempty,max=500"`
	Components    []componentPayload `json:"components" validate:"dive"`
	EmployeeID    *string            `json:"employeeId" validate:"omitempty,max=64"`
	EffectiveFrom *string            `json:"effectiveFrom"`
	IsActive      *bool              `json:"isActive"`
}

func (p structurePatchPayload) patch(v *shared.Validator) salary.StructurePatch {
	patch := salary.StructurePatch{
		Name:        p.Name,
		Description: p.Description,
		EmployeeID:  p.EmployeeID,
		IsActive:    p.IsActive,
	}
	if p.Components != nil {
		components := inlineComponents(p.Components)
		patch.Components = &components
	}
	if p.EffectiveFrom != nil {
		if parsed, ok := v.Date("effectiveFrom", *p.EffectiveFrom); ok {
			patch.EffectiveFrom = &parsed
		}
	}
	return patch
}

type calculatePayload struct {
	Components   []componentPayload `json:"components" validate:"dive"`
	ComponentIDs []string           `json:"componentIds" validate:"dive,required"`
	Basic        *decimal.Decimal   `json:"basic"`
}

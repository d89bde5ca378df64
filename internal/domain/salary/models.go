package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

type Component struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	Type            ComponentType   `json:"type"`
	CalculationType CalculationType `json:"calculationType"`
	Value           decimal.Decimal `json:"value"`
	BaseComponent   string          `json:"baseComponent,omitempty"`
	IsTaxable       bool            `json:"isTaxable"`
	IsPFApplicable  bool            `json:"isPFApplicable"`
	IsESIApplicable bool            `json:"isESIApplicable"`
	IsStatutory     bool            `json:"isStatutory"`
	Description     string          `json:"description,omitempty"`
}

type Structure struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Components    []Component     `json:"components"`
	CTC           decimal.Decimal `json:"ctc"`
	GrossSalary   decimal.Decimal `json:"grossSalary"`
	NetSalary     decimal.Decimal `json:"netSalary"`
	EmployeeID    string          `json:"employeeId,omitempty"`
	EffectiveFrom time.Time       `json:"effectiveFrom"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// IsTemplate reports whether the structure is reusable rather than bound to an employee.
func (s Structure) IsTemplate() bool {
	return s.EmployeeID == ""
}

// ComponentInput carries every field of a new component except its id.
type ComponentInput struct {
	Name            string
	Code            string
	Type            ComponentType
	CalculationType CalculationType
	Value           decimal.Decimal
	BaseComponent   string
	IsTaxable       bool
	IsPFApplicable  bool
	IsESIApplicable bool
	IsStatutory     bool
	Description     string
}

// StructureInput describes a new structure. Components are copied inline; any
// ComponentIDs are resolved against the registry and appended after them.
type StructureInput struct {
	Name          string
	Description   string
	Components    []Component
	ComponentIDs  []string
	EmployeeID    string
	EffectiveFrom time.Time
	IsActive      bool
}

// State is everything the store persists.
type State struct {
	Components []Component `json:"components"`
	Structures []Structure `json:"structures"`
}

func cloneComponents(in []Component) []Component {
	if in == nil {
		return nil
	}
	out := make([]Component, len(in))
	copy(out, in)
	return out
}

func cloneStructure(s Structure) Structure {
	s.Components = cloneComponents(s.Components)
	return s
}

func cloneStructures(in []Structure) []Structure {
	if in == nil {
		return nil
	}
	out := make([]Structure, len(in))
	for i, s := range in {
		out[i] = cloneStructure(s)
	}
	return out
}

func (s State) clone() State {
	return State{
		Components: cloneComponents(s.Components),
		Structures: cloneStructures(s.Structures),
	}
}

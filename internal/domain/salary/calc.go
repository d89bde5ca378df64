package salary

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Line is the amount one component contributed to a calculation.
type Line struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Type     ComponentType   `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	Resolved bool            `json:"resolved"`
}

type Result struct {
	CTC        decimal.Decimal `json:"ctc"`
	Gross      decimal.Decimal `json:"gross"`
	Deductions decimal.Decimal `json:"deductions"`
	Net        decimal.Decimal `json:"net"`
	AnnualCTC  decimal.Decimal `json:"annualCtc"`
	Lines      []Line          `json:"lines"`
	Unresolved []string        `json:"unresolved,omitempty"`
}

// CalculateCTC resolves gross, deductions and net pay for a set of components.
//
// Percentage components take their base's declared value, not its resolved
// amount, so chains never compound. Deductions based on GROSS see the gross of
// every earning, which is why earnings are summed in a first pass. A percentage
// whose base cannot be found, and any formula component, contributes zero and
// is listed in Unresolved. CTC equals gross: employer contributions are not
// rolled up.
func CalculateCTC(components []Component) Result {
	byCode := make(map[string]Component, len(components))
	for _, comp := range components {
		if _, seen := byCode[comp.Code]; !seen {
			byCode[comp.Code] = comp
		}
	}

	lines := make([]Line, len(components))
	var unresolved []string

	gross := decimal.Zero
	for i, comp := range components {
		if comp.Type != TypeEarning {
			continue
		}
		amount, ok := resolveAmount(comp, byCode, decimal.Zero, false)
		lines[i] = newLine(comp, amount, ok)
		if !ok {
			unresolved = append(unresolved, comp.Code)
		}
		gross = gross.Add(amount)
	}

	deductions := decimal.Zero
	for i, comp := range components {
		if comp.Type != TypeDeduction {
			continue
		}
		amount, ok := resolveAmount(comp, byCode, gross, true)
		lines[i] = newLine(comp, amount, ok)
		if !ok {
			unresolved = append(unresolved, comp.Code)
		}
		deductions = deductions.Add(amount)
	}

	for i, comp := range components {
		if comp.Type != TypeEarning && comp.Type != TypeDeduction {
			lines[i] = newLine(comp, decimal.Zero, false)
		}
	}

	return Result{
		CTC:        gross,
		Gross:      gross,
		Deductions: deductions,
		Net:        gross.Sub(deductions),
		AnnualCTC:  gross.Mul(decimal.NewFromInt(monthsPerYear)),
		Lines:      lines,
		Unresolved: unresolved,
	}
}

func resolveAmount(comp Component, byCode map[string]Component, gross decimal.Decimal, allowGross bool) (decimal.Decimal, bool) {
	switch comp.CalculationType {
	case CalcFixed:
		return comp.Value, true
	case CalcPercentage:
		if comp.BaseComponent == "" {
			return decimal.Zero, false
		}
		if allowGross && comp.BaseComponent == BaseGross {
			return gross.Mul(comp.Value).Div(hundred), true
		}
		base, ok := byCode[comp.BaseComponent]
		if !ok {
			return decimal.Zero, false
		}
		return base.Value.Mul(comp.Value).Div(hundred), true
	default:
		return decimal.Zero, false
	}
}

func newLine(comp Component, amount decimal.Decimal, resolved bool) Line {
	return Line{Code: comp.Code, Name: comp.Name, Type: comp.Type, Amount: amount, Resolved: resolved}
}

// WithBasic returns a copy of components with the BASIC component's value
// replaced by amount. The input is left untouched.
func WithBasic(components []Component, amount decimal.Decimal) []Component {
	out := cloneComponents(components)
	for i := range out {
		if out[i].Code == CodeBasic {
			out[i].Value = amount
		}
	}
	return out
}

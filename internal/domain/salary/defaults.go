package salary

import "github.com/shopspring/decimal"

// DefaultComponents returns the registry a store starts with when nothing has
// been persisted yet.
func DefaultComponents() []Component {
	return []Component{
		{
			ID: "1", Name: "Basic Salary", Code: CodeBasic,
			Type: TypeEarning, CalculationType: CalcFixed, Value: decimal.Zero,
			IsTaxable: true, IsPFApplicable: true, IsESIApplicable: true,
		},
		{
			ID: "2", Name: "House Rent Allowance", Code: "HRA",
			Type: TypeEarning, CalculationType: CalcPercentage, Value: decimal.NewFromInt(40), BaseComponent: CodeBasic,
			IsTaxable: true,
		},
		{
			ID: "3", Name: "Dearness Allowance", Code: "DA",
			Type: TypeEarning, CalculationType: CalcPercentage, Value: decimal.NewFromInt(20), BaseComponent: CodeBasic,
			IsTaxable: true, IsPFApplicable: true, IsESIApplicable: true,
		},
		{
			ID: "4", Name: "Conveyance Allowance", Code: "CONVEYANCE",
			Type: TypeEarning, CalculationType: CalcFixed, Value: decimal.NewFromInt(1600),
		},
		{
			ID: "5", Name: "Medical Allowance", Code: "MEDICAL",
			Type: TypeEarning, CalculationType: CalcFixed, Value: decimal.NewFromInt(1250),
		},
		{
			ID: "6", Name: "Special Allowance", Code: "SPECIAL",
			Type: TypeEarning, CalculationType: CalcFixed, Value: decimal.Zero,
			IsTaxable: true,
		},
		{
			ID: "7", Name: "Provident Fund (Employee)", Code: "PF_EMPLOYEE",
			Type: TypeDeduction, CalculationType: CalcPercentage, Value: decimal.NewFromInt(12), BaseComponent: CodeBasic,
			IsStatutory: true,
		},
		{
			ID: "8", Name: "ESI (Employee)", Code: "ESI_EMPLOYEE",
			Type: TypeDeduction, CalculationType: CalcPercentage, Value: decimal.RequireFromString("0.75"), BaseComponent: BaseGross,
			IsStatutory: true,
		},
		{
			ID: "9", Name: "Professional Tax", Code: "PT",
			Type: TypeDeduction, CalculationType: CalcFixed, Value: decimal.NewFromInt(200),
			IsStatutory: true,
		},
		{
			ID: "10", Name: "Income Tax (TDS)", Code: "TDS",
			Type: TypeDeduction, CalculationType: CalcFixed, Value: decimal.Zero,
			IsStatutory: true,
		},
	}
}

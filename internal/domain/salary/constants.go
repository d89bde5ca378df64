package salary

// ComponentType separates pay components that add to gross from those subtracted from it.
type ComponentType string

const (
	TypeEarning   ComponentType = "earning"
	TypeDeduction ComponentType = "deduction"
)

func (t ComponentType) Valid() bool {
	return t == TypeEarning || t == TypeDeduction
}

// CalculationType selects how Component.Value is interpreted.
type CalculationType string

const (
	CalcFixed      CalculationType = "fixed"
	CalcPercentage CalculationType = "percentage"
	CalcFormula    CalculationType = "formula"
)

func (c CalculationType) Valid() bool {
	return c == CalcFixed || c == CalcPercentage || c == CalcFormula
}

const (
	// BaseGross is the pseudo component code a deduction may use to take a
	// percentage of the accumulated gross.
	BaseGross = "GROSS"

	// CodeBasic is the code of the basic salary component.
	CodeBasic = "BASIC"

	// StorageKey is the namespaced key the whole state is persisted under.
	StorageKey = "salary-storage"

	// SchemaVersion is the version written with every persisted state.
	SchemaVersion = 1

	monthsPerYear = 12
)

package salary

import "testing"

func TestDefaultComponents(t *testing.T) {
	components := DefaultComponents()
	if len(components) != 10 {
		t.Fatalf("expected 10 default components, got %d", len(components))
	}

	tests := []struct {
		code  string
		calc  CalculationType
		value string
		base  string
	}{
		{code: "HRA", calc: CalcPercentage, value: "40", base: "BASIC"},
		{code: "DA", calc: CalcPercentage, value: "20", base: "BASIC"},
		{code: "PF_EMPLOYEE", calc: CalcPercentage, value: "12", base: "BASIC"},
		{code: "ESI_EMPLOYEE", calc: CalcPercentage, value: "0.75", base: "GROSS"},
		{code: "CONVEYANCE", calc: CalcFixed, value: "1600"},
		{code: "MEDICAL", calc: CalcFixed, value: "1250"},
		{code: "PT", calc: CalcFixed, value: "200"},
	}

	byCode := make(map[string]Component, len(components))
	for _, comp := range components {
		if _, dup := byCode[comp.Code]; dup {
			t.Fatalf("duplicate default code %s", comp.Code)
		}
		byCode[comp.Code] = comp
	}
	for _, tc := range tests {
		comp, ok := byCode[tc.code]
		if !ok {
			t.Fatalf("missing default component %s", tc.code)
		}
		if comp.CalculationType != tc.calc || !comp.Value.Equal(dec(tc.value)) || comp.BaseComponent != tc.base {
			t.Fatalf("unexpected default %s: %+v", tc.code, comp)
		}
	}
	for _, code := range []string{"BASIC", "SPECIAL", "TDS"} {
		if _, ok := byCode[code]; !ok {
			t.Fatalf("missing default component %s", code)
		}
	}
}

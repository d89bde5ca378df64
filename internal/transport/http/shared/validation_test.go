package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type samplePayload struct {
	Name  string   `json:"name" validate:"required,max=5"`
	Type  string   `json:"type" validate:"required,oneof=earning deduction"`
	Codes []string `json:"codes" validate:"dive,required"`
}

func TestValidatorStructUsesJSONNames(t *testing.T) {
	v := NewValidator()
	v.Struct(samplePayload{Name: "too long", Type: "bonus", Codes: []string{"A", ""}})

	issues := v.Issues()
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %+v", issues)
	}
	if issues[0].Field != "codes[1]" || issues[0].Reason != "is required" {
		t.Fatalf("unexpected first issue: %+v", issues[0])
	}
	if issues[1].Field != "name" || !strings.Contains(issues[1].Reason, "at most 5") {
		t.Fatalf("unexpected name issue: %+v", issues[1])
	}
	if issues[2].Field != "type" || issues[2].Reason != "must be one of: earning, deduction" {
		t.Fatalf("unexpected type issue: %+v", issues[2])
	}
}

func TestValidatorStructValid(t *testing.T) {
	v := NewValidator()
	v.Struct(samplePayload{Name: "ok", Type: "earning"})
	if v.HasIssues() {
		t.Fatalf("unexpected issues: %+v", v.Issues())
	}
}

func TestValidatorDate(t *testing.T) {
	tests := []struct {
		raw string
		ok  bool
	}{
		{raw: "2026-04-01", ok: true},
		{raw: "2026-04-01T10:00:00+05:30", ok: true},
		{raw: "", ok: false},
		{raw: "01/04/2026", ok: false},
	}
	for _, tc := range tests {
		v := NewValidator()
		_, ok := v.Date("effectiveFrom", tc.raw)
		if ok != tc.ok || v.HasIssues() == tc.ok {
			t.Fatalf("Date(%q) ok=%v issues=%v", tc.raw, ok, v.Issues())
		}
	}
}

func TestRejectWritesValidationError(t *testing.T) {
	v := NewValidator()
	v.Required("name", " ", "is required")

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected reject")
	}
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "validation_error") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

package salary

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestEncodeDecodeStateKeepsVersion(t *testing.T) {
	data, err := EncodeState(State{Components: DefaultComponents()})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	state, err := DecodeState(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(state.Components) != 10 || !state.Components[7].Value.Equal(dec("0.75")) {
		t.Fatalf("unexpected decoded state: %+v", state.Components)
	}
}

func TestDecodeStateMigratesLegacyBlob(t *testing.T) {
	legacy := []byte(`{
		"state": {
			"components": [
				{"id": "1", "name": "Basic Salary", "code": "basic", "type": "earning", "calculationType": "fixed", "value": 30000},
				{"name": "HRA", "code": "hra", "type": "earning", "calculationType": "percentage", "value": 40, "baseComponent": "basic"}
			],
			"structures": [
				{
					"id": "1712000000000", "name": "Default", "components": [],
					"ctc": 42000, "grossSalary": 42000, "netSalary": 40000,
					"effectiveFrom": "2024-04-01", "isActive": true,
					"createdAt": "2024-03-28T10:15:00.000Z"
				}
			]
		},
		"version": 0
	}`)

	state, err := DecodeState(legacy)
	if err != nil {
		t.Fatalf("decode legacy: %v", err)
	}
	if state.Components[0].Code != "BASIC" || state.Components[1].BaseComponent != "BASIC" {
		t.Fatalf("expected normalised codes, got %+v", state.Components)
	}
	if state.Components[1].ID == "" {
		t.Fatal("expected missing id to be backfilled")
	}
	s := state.Structures[0]
	if !s.EffectiveFrom.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected effectiveFrom %v", s.EffectiveFrom)
	}
	if !s.CreatedAt.Equal(time.Date(2024, 3, 28, 10, 15, 0, 0, time.UTC)) {
		t.Fatalf("unexpected createdAt %v", s.CreatedAt)
	}
	if !s.NetSalary.Equal(dec("40000")) {
		t.Fatalf("unexpected net %s", s.NetSalary)
	}
}

func TestDecodeStateRejectsFutureVersion(t *testing.T) {
	_, err := DecodeState([]byte(`{"version": 99, "state": {"components": []}}`))
	if !errors.Is(err, ErrUnsupportedSchema) {
		t.Fatalf("expected unsupported schema, got %v", err)
	}
}

func TestDecodeStateRejectsGarbage(t *testing.T) {
	if _, err := DecodeState([]byte(`not json`)); err == nil {
		t.Fatal("expected error for garbage input")
	}
	if _, err := DecodeState([]byte(`{"version": 1}`)); err == nil {
		t.Fatal("expected error for missing state")
	}
}

func TestStateAmountsWrittenAsStringsAndReadEitherWay(t *testing.T) {
	data, err := EncodeState(State{Components: DefaultComponents()[1:2]})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), `"value":"40"`) {
		t.Fatalf("expected quoted decimal value, got %s", data)
	}

	state, err := DecodeState([]byte(`{"version": 1, "state": {"components": [
		{"id": "1", "name": "Basic Salary", "code": "BASIC", "type": "earning", "calculationType": "fixed", "value": 30000.5}
	]}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !state.Components[0].Value.Equal(dec("30000.5")) {
		t.Fatalf("expected numeric value to decode, got %s", state.Components[0].Value)
	}
}

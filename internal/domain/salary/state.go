package salary

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type envelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// EncodeState serialises state in the current schema version.
func EncodeState(state State) ([]byte, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Version: SchemaVersion, State: raw})
}

// DecodeState reads a persisted blob of any known schema version and migrates
// it to the current one.
func DecodeState(data []byte) (State, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return State{}, fmt.Errorf("decode salary state: %w", err)
	}
	if len(env.State) == 0 {
		return State{}, fmt.Errorf("decode salary state: missing state")
	}

	switch env.Version {
	case 0:
		return migrateV0(env.State)
	case SchemaVersion:
		var state State
		if err := json.Unmarshal(env.State, &state); err != nil {
			return State{}, fmt.Errorf("decode salary state: %w", err)
		}
		return state, nil
	default:
		return State{}, fmt.Errorf("%w: %d", ErrUnsupportedSchema, env.Version)
	}
}

// Version 0 is the unversioned browser blob: dates are plain strings, codes
// were free-form and ids could be missing.
type legacyStructure struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Components    []Component     `json:"components"`
	CTC           decimal.Decimal `json:"ctc"`
	GrossSalary   decimal.Decimal `json:"grossSalary"`
	NetSalary     decimal.Decimal `json:"netSalary"`
	EmployeeID    string          `json:"employeeId"`
	EffectiveFrom string          `json:"effectiveFrom"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     string          `json:"createdAt"`
}

type legacyState struct {
	Components []Component       `json:"components"`
	Structures []legacyStructure `json:"structures"`
}

func migrateV0(raw json.RawMessage) (State, error) {
	var legacy legacyState
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return State{}, fmt.Errorf("migrate salary state v0: %w", err)
	}

	state := State{
		Components: make([]Component, 0, len(legacy.Components)),
		Structures: make([]Structure, 0, len(legacy.Structures)),
	}
	for _, comp := range legacy.Components {
		state.Components = append(state.Components, migrateComponentV0(comp))
	}
	for _, ls := range legacy.Structures {
		s := Structure{
			ID:          ls.ID,
			Name:        ls.Name,
			Description: ls.Description,
			CTC:         ls.CTC,
			GrossSalary: ls.GrossSalary,
			NetSalary:   ls.NetSalary,
			EmployeeID:  ls.EmployeeID,
			IsActive:    ls.IsActive,
		}
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		for _, comp := range ls.Components {
			s.Components = append(s.Components, migrateComponentV0(comp))
		}
		var err error
		if s.EffectiveFrom, err = parseLegacyTime(ls.EffectiveFrom); err != nil {
			return State{}, fmt.Errorf("migrate structure %s effectiveFrom: %w", s.ID, err)
		}
		if s.CreatedAt, err = parseLegacyTime(ls.CreatedAt); err != nil {
			return State{}, fmt.Errorf("migrate structure %s createdAt: %w", s.ID, err)
		}
		state.Structures = append(state.Structures, s)
	}
	return state, nil
}

func migrateComponentV0(comp Component) Component {
	if comp.ID == "" {
		comp.ID = uuid.NewString()
	}
	comp.Code = NormalizeCode(comp.Code)
	comp.BaseComponent = NormalizeCode(comp.BaseComponent)
	comp.Type = ComponentType(strings.ToLower(string(comp.Type)))
	comp.CalculationType = CalculationType(strings.ToLower(string(comp.CalculationType)))
	return comp
}

func parseLegacyTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), nil
	}
	return time.Parse("2006-01-02", value)
}

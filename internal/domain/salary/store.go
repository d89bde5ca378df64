package salary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds the component registry and the salary structures, and writes
// the whole state to its Backend after every mutation. A mutation whose write
// fails is not applied.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	key     string
	state   State

	now      func() time.Time
	newID    func() string
	logger   *slog.Logger
	observer func(op string, err error)

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
	pubMu   sync.Mutex
}

type Option func(*Store)

// WithKey overrides the storage key (default StorageKey).
func WithKey(key string) Option {
	return func(s *Store) {
		if strings.TrimSpace(key) != "" {
			s.key = key
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers a hook called after every mutation attempt with the
// operation name and its outcome.
func WithObserver(fn func(op string, err error)) Option {
	return func(s *Store) {
		s.observer = fn
	}
}

// NewStore loads the persisted state from backend, or seeds the default
// component registry when nothing has been stored yet.
func NewStore(ctx context.Context, backend Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend: backend,
		key:     StorageKey,
		now:     time.Now,
		newID:   uuid.NewString,
		logger:  slog.Default(),
		subs:    make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := backend.Load(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load salary state: %w", err)
	}
	if data == nil {
		s.state = State{Components: DefaultComponents(), Structures: []Structure{}}
		s.logger.Info("salary store seeded with default components", "key", s.key)
		return s, nil
	}

	if s.state, err = decodeStored(data); err != nil {
		return nil, err
	}
	s.logger.Info("salary store loaded", "key", s.key, "components", len(s.state.Components), "structures", len(s.state.Structures))
	return s, nil
}

func (s *Store) Components() []Component {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneComponents(s.state.Components)
}

func (s *Store) Component(id string) (Component, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := componentIndex(s.state.Components, id)
	if idx < 0 {
		return Component{}, false
	}
	return s.state.Components[idx], true
}

func (s *Store) Structures() []Structure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneStructures(s.state.Structures)
}

func (s *Store) Structure(id string) (Structure, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := structureIndex(s.state.Structures, id)
	if idx < 0 {
		return Structure{}, false
	}
	return cloneStructure(s.state.Structures[idx]), true
}

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// CalculateCTC runs the resolver over components; it does not touch the store.
func (s *Store) CalculateCTC(components []Component) Result {
	result := CalculateCTC(components)
	if len(result.Unresolved) > 0 {
		s.logger.Debug("salary components contributed zero", "codes", result.Unresolved)
	}
	return result
}

// Subscribe registers fn to receive a copy of the state after every applied
// mutation, in the order the mutations were applied. fn may read from the
// store but must not mutate it. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) AddComponent(ctx context.Context, in ComponentInput) (Component, error) {
	comp := Component{
		ID:              s.newID(),
		Name:            strings.TrimSpace(in.Name),
		Code:            NormalizeCode(in.Code),
		Type:            in.Type,
		CalculationType: in.CalculationType,
		Value:           in.Value,
		BaseComponent:   NormalizeCode(in.BaseComponent),
		IsTaxable:       in.IsTaxable,
		IsPFApplicable:  in.IsPFApplicable,
		IsESIApplicable: in.IsESIApplicable,
		IsStatutory:     in.IsStatutory,
		Description:     strings.TrimSpace(in.Description),
	}
	if err := validateComponent(comp); err != nil {
		return Component{}, err
	}

	err := s.mutate(ctx, "add_component", func(next *State) error {
		if codeTaken(next.Components, comp.Code, "") {
			return fmt.Errorf("%w: %s", ErrDuplicateCode, comp.Code)
		}
		next.Components = append(next.Components, comp)
		return nil
	})
	if err != nil {
		return Component{}, err
	}
	return comp, nil
}

func (s *Store) UpdateComponent(ctx context.Context, id string, patch ComponentPatch) (Component, error) {
	var updated Component
	err := s.mutate(ctx, "update_component", func(next *State) error {
		idx := componentIndex(next.Components, id)
		if idx < 0 {
			return ErrComponentNotFound
		}
		current := next.Components[idx]
		updated = patch.Apply(current)
		if err := validateComponent(updated); err != nil {
			return err
		}
		// Legacy registries can hold repeated codes; only a rename is checked.
		if updated.Code != current.Code && codeTaken(next.Components, updated.Code, id) {
			return fmt.Errorf("%w: %s", ErrDuplicateCode, updated.Code)
		}
		next.Components[idx] = updated
		return nil
	})
	if err != nil {
		return Component{}, err
	}
	return updated, nil
}

func (s *Store) DeleteComponent(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_component", func(next *State) error {
		idx := componentIndex(next.Components, id)
		if idx < 0 {
			return ErrComponentNotFound
		}
		next.Components = append(next.Components[:idx], next.Components[idx+1:]...)
		return nil
	})
}

func (s *Store) AddStructure(ctx context.Context, in StructureInput) (Structure, error) {
	var created Structure
	err := s.mutate(ctx, "add_structure", func(next *State) error {
		components := s.prepareComponents(in.Components)
		for _, id := range in.ComponentIDs {
			idx := componentIndex(next.Components, id)
			if idx < 0 {
				return fmt.Errorf("%w: %s", ErrComponentNotFound, id)
			}
			components = append(components, next.Components[idx])
		}

		created = Structure{
			ID:            s.newID(),
			Name:          strings.TrimSpace(in.Name),
			Description:   strings.TrimSpace(in.Description),
			Components:    components,
			EmployeeID:    strings.TrimSpace(in.EmployeeID),
			EffectiveFrom: in.EffectiveFrom,
			IsActive:      in.IsActive,
			CreatedAt:     s.now().UTC(),
		}
		if err := validateStructure(created); err != nil {
			return err
		}
		applyTotals(&created)
		supersede(next.Structures, created)
		next.Structures = append(next.Structures, created)
		return nil
	})
	if err != nil {
		return Structure{}, err
	}
	return cloneStructure(created), nil
}

func (s *Store) UpdateStructure(ctx context.Context, id string, patch StructurePatch) (Structure, error) {
	var updated Structure
	err := s.mutate(ctx, "update_structure", func(next *State) error {
		idx := structureIndex(next.Structures, id)
		if idx < 0 {
			return ErrStructureNotFound
		}
		updated = patch.Apply(next.Structures[idx])
		if err := validateStructure(updated); err != nil {
			return err
		}
		if patch.touchesComponents() {
			updated.Components = s.prepareComponents(updated.Components)
			applyTotals(&updated)
		}
		supersede(next.Structures, updated)
		next.Structures[idx] = updated
		return nil
	})
	if err != nil {
		return Structure{}, err
	}
	return cloneStructure(updated), nil
}

// RecalculateStructure refreshes a structure's totals from its own components.
func (s *Store) RecalculateStructure(ctx context.Context, id string) (Structure, error) {
	var updated Structure
	err := s.mutate(ctx, "recalculate_structure", func(next *State) error {
		idx := structureIndex(next.Structures, id)
		if idx < 0 {
			return ErrStructureNotFound
		}
		updated = next.Structures[idx]
		applyTotals(&updated)
		next.Structures[idx] = updated
		return nil
	})
	if err != nil {
		return Structure{}, err
	}
	return cloneStructure(updated), nil
}

func (s *Store) DeleteStructure(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_structure", func(next *State) error {
		idx := structureIndex(next.Structures, id)
		if idx < 0 {
			return ErrStructureNotFound
		}
		next.Structures = append(next.Structures[:idx], next.Structures[idx+1:]...)
		return nil
	})
}

// mutate applies change to a copy of the state, writes the copy and only then
// makes it current. On a shared backend the whole cycle runs under the
// backend's lock, starting from the state currently stored.
func (s *Store) mutate(ctx context.Context, op string, change func(next *State) error) error {
	locker, shared := s.backend.(Locker)
	if shared {
		release, err := locker.Lock(ctx, s.key)
		if err != nil {
			return s.failWrite(op, fmt.Errorf("lock salary state: %w", err))
		}
		defer release()
	}

	s.mu.Lock()
	if shared {
		if err := s.reload(ctx); err != nil {
			s.mu.Unlock()
			return s.failWrite(op, err)
		}
	}
	next := s.state.clone()
	if err := change(&next); err != nil {
		s.mu.Unlock()
		s.observe(op, err)
		return err
	}

	data, err := EncodeState(next)
	if err == nil {
		err = s.backend.Save(ctx, s.key, data)
	}
	if err != nil {
		s.mu.Unlock()
		return s.failWrite(op, err)
	}

	s.state = next
	published := next.clone()
	// pubMu is taken before mu is released so subscribers see states in the
	// order they were applied.
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	s.mu.Unlock()

	s.observe(op, nil)
	s.publish(published)
	return nil
}

// reload replaces the in-memory state with the stored one. Nothing stored
// keeps the current state. Callers hold mu.
func (s *Store) reload(ctx context.Context) error {
	data, err := s.backend.Load(ctx, s.key)
	if err != nil {
		return fmt.Errorf("reload salary state: %w", err)
	}
	if data == nil {
		return nil
	}
	state, err := decodeStored(data)
	if err != nil {
		return err
	}
	s.state = state
	return nil
}

func decodeStored(data []byte) (State, error) {
	state, err := DecodeState(data)
	if err != nil {
		return State{}, err
	}
	if state.Components == nil {
		state.Components = []Component{}
	}
	if state.Structures == nil {
		state.Structures = []Structure{}
	}
	return state, nil
}

func (s *Store) failWrite(op string, err error) error {
	s.logger.Warn("salary state write failed", "op", op, "key", s.key, "err", err)
	perr := &PersistenceError{Op: op, Err: err}
	s.observe(op, perr)
	return perr
}

func (s *Store) observe(op string, err error) {
	if s.observer != nil {
		s.observer(op, err)
	}
}

func (s *Store) publish(state State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(state.clone())
	}
}

// prepareComponents copies embedded structure components, normalising codes
// and giving id-less entries a fresh id.
func (s *Store) prepareComponents(in []Component) []Component {
	out := make([]Component, 0, len(in))
	for _, comp := range in {
		comp.Code = NormalizeCode(comp.Code)
		comp.BaseComponent = NormalizeCode(comp.BaseComponent)
		if comp.ID == "" {
			comp.ID = s.newID()
		}
		out = append(out, comp)
	}
	return out
}

func applyTotals(structure *Structure) {
	result := CalculateCTC(structure.Components)
	structure.CTC = result.CTC
	structure.GrossSalary = result.Gross
	structure.NetSalary = result.Net
}

// supersede deactivates every other active structure of the same employee
// when current is active.
func supersede(structures []Structure, current Structure) {
	if !current.IsActive || current.EmployeeID == "" {
		return
	}
	for i := range structures {
		if structures[i].ID != current.ID && structures[i].EmployeeID == current.EmployeeID && structures[i].IsActive {
			structures[i].IsActive = false
		}
	}
}

func componentIndex(components []Component, id string) int {
	for i, comp := range components {
		if comp.ID == id {
			return i
		}
	}
	return -1
}

func structureIndex(structures []Structure, id string) int {
	for i, s := range structures {
		if s.ID == id {
			return i
		}
	}
	return -1
}

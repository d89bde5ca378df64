package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

const defaultCapacity = 500

type Event struct {
	ActorID    string          `json:"actorId,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId,omitempty"`
	IP         string          `json:"ip,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}

type Filter struct {
	Action     string
	EntityType string
	ActorUser  string
}

// Service writes every event to the audit log stream and keeps the most
// recent ones in memory for the audit endpoint.
type Service struct {
	logger   *slog.Logger
	now      func() time.Time
	capacity int

	mu     sync.RWMutex
	events []Event
}

func New(logger *slog.Logger, capacity int) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Service{
		logger:   logger.With("stream", "audit"),
		now:      time.Now,
		capacity: capacity,
	}
}

func (s *Service) Record(ctx context.Context, evt Event, before, after any) error {
	if before != nil {
		payload, err := json.Marshal(before)
		if err != nil {
			return err
		}
		evt.Before = payload
	}
	if after != nil {
		payload, err := json.Marshal(after)
		if err != nil {
			return err
		}
		evt.After = payload
	}
	evt.CreatedAt = s.now().UTC()

	s.mu.Lock()
	s.events = append(s.events, evt)
	if over := len(s.events) - s.capacity; over > 0 {
		s.events = append(s.events[:0:0], s.events[over:]...)
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "audit event",
		"action", evt.Action,
		"entityType", evt.EntityType,
		"entityId", evt.EntityID,
		"actorId", evt.ActorID,
		"requestId", evt.RequestID,
		"ip", evt.IP,
	)
	return nil
}

// List returns matching events newest first.
func (s *Service) List(filter Filter, limit, offset int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Event, 0)
	skipped := 0
	for i := len(s.events) - 1; i >= 0; i-- {
		evt := s.events[i]
		if !filter.matches(evt) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, evt)
	}
	return out
}

func (f Filter) matches(evt Event) bool {
	if f.Action != "" && evt.Action != f.Action {
		return false
	}
	if f.EntityType != "" && evt.EntityType != f.EntityType {
		return false
	}
	if f.ActorUser != "" && evt.ActorID != f.ActorUser {
		return false
	}
	return true
}

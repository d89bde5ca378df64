package metrics

import (
	"errors"
	"testing"
	"time"

	"paystructure/internal/domain/salary"
)

func TestCollectorRecordsRequests(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(503, 30*time.Millisecond)

	snap := c.Snapshot()
	if snap["requestsTotal"].(uint64) != 2 || snap["errorsTotal"].(uint64) != 1 {
		t.Fatalf("unexpected request counters: %+v", snap)
	}
	if snap["avgDurationMs"].(float64) != 20 {
		t.Fatalf("expected avg 20ms, got %v", snap["avgDurationMs"])
	}
}

func TestCollectorObservesMutations(t *testing.T) {
	c := New()
	c.ObserveMutation("add_component", nil)
	c.ObserveMutation("add_component", salary.ErrDuplicateCode)
	c.ObserveMutation("delete_component", &salary.PersistenceError{Op: "delete_component", Err: errors.New("io")})

	snap := c.Snapshot()
	if snap["storeMutationsTotal"].(uint64) != 1 || snap["storeRejectedTotal"].(uint64) != 1 || snap["storePersistFailedTotal"].(uint64) != 1 {
		t.Fatalf("unexpected store counters: %+v", snap)
	}
}

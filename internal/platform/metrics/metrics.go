package metrics

import (
	"errors"
	"sync/atomic"
	"time"

	"paystructure/internal/domain/salary"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64

	mutations         uint64
	rejectedMutations uint64
	persistFailures   uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// ObserveMutation matches salary.WithObserver.
func (c *Collector) ObserveMutation(_ string, err error) {
	var perr *salary.PersistenceError
	switch {
	case err == nil:
		atomic.AddUint64(&c.mutations, 1)
	case errors.As(err, &perr):
		atomic.AddUint64(&c.persistFailures, 1)
	default:
		atomic.AddUint64(&c.rejectedMutations, 1)
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":           total,
		"errorsTotal":             errs,
		"avgDurationMs":           avg,
		"totalDurationMs":         totalMs,
		"storeMutationsTotal":     atomic.LoadUint64(&c.mutations),
		"storeRejectedTotal":      atomic.LoadUint64(&c.rejectedMutations),
		"storePersistFailedTotal": atomic.LoadUint64(&c.persistFailures),
	}
}

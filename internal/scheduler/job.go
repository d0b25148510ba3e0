package scheduler

import (
	"context"
	"sync"
	"time"
)

// Job is a unit of scheduled work.
type Job interface {
	// Name uniquely identifies the job.
	Name() string
	// Schedule is a cron expression with a seconds field.
	Schedule() string
	// Run executes the job.
	Run(ctx context.Context) error
}

// JobResult records one job execution.
type JobResult struct {
	JobName   string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Success   bool
	Error     string
}

// historySize bounds the per-job result ring.
const historySize = 50

// JobHistory keeps the most recent results for one job.
type JobHistory struct {
	mu      sync.RWMutex
	results []JobResult
}

// AddResult appends a result, evicting the oldest past the cap.
func (h *JobHistory) AddResult(result JobResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.results = append(h.results, result)
	if len(h.results) > historySize {
		h.results = h.results[len(h.results)-historySize:]
	}
}

// Results returns a copy of the recorded results, oldest first.
func (h *JobHistory) Results() []JobResult {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]JobResult, len(h.results))
	copy(out, h.results)
	return out
}

// LastResult returns the most recent result, if any.
func (h *JobHistory) LastResult() (JobResult, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.results) == 0 {
		return JobResult{}, false
	}
	return h.results[len(h.results)-1], true
}

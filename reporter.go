package svgstock

import (
	"fmt"
	"sync"
)

// Status describes the lifecycle of one batch run.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
	StatusCompletedWithErrors
	StatusCancelled
)

// String returns the human readable batch state.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCompletedWithErrors:
		return "completed with errors"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Reporter aggregates the per-job outcomes of one batch run into
// counters and an append-only log. The batch loop is the only writer
// and the front end reads consistent copies through Snapshot, so a
// single lock is all the synchronization needed.
type Reporter struct {
	mu        sync.RWMutex
	status    Status
	total     int
	done      int
	succeeded int
	failed    int
	lines     []string
}

// Snapshot is a point in time copy of the reporter state.
type Snapshot struct {
	Status    Status
	Total     int
	Done      int
	Succeeded int
	Failed    int
	Lines     []string
}

// Progress returns the batch completion ratio between 0 and 1.
func (s Snapshot) Progress() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Done) / float64(s.Total)
}

// NewReporter returns a reporter in the idle state.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Start resets the counters for a batch of the given size and moves
// the reporter into the running state.
func (r *Reporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status = StatusRunning
	r.total = total
	r.done = 0
	r.succeeded = 0
	r.failed = 0
	r.lines = nil
}

// Logf appends a formatted line to the batch log.
func (r *Reporter) Logf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// Record counts one job outcome and logs a human readable line.
func (r *Reporter) Record(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.done++
	if res.Ok() {
		r.succeeded++
		r.lines = append(r.lines, fmt.Sprintf("Created %s: %s", res.Job.Format, res.Job.Dest))
	} else {
		r.failed++
		r.lines = append(r.lines, fmt.Sprintf("ERROR: %v", res.Err))
	}
}

// Finish moves the reporter into its terminal state.
func (r *Reporter) Finish(cancelled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case cancelled:
		r.status = StatusCancelled
	case r.failed > 0:
		r.status = StatusCompletedWithErrors
	default:
		r.status = StatusCompleted
	}
}

// Snapshot returns a consistent copy of the current state.
func (r *Reporter) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines := make([]string, len(r.lines))
	copy(lines, r.lines)

	return Snapshot{
		Status:    r.status,
		Total:     r.total,
		Done:      r.done,
		Succeeded: r.succeeded,
		Failed:    r.failed,
		Lines:     lines,
	}
}

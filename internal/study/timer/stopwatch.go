// Package timer drives the study stopwatch. It is clock-polled: a Tick adds
// one second while running and does nothing otherwise.
package timer

import (
	"fmt"
	"sync"
	"time"

	apperr "github.com/yungbote/studyhours-backend/internal/pkg/errors"
)

// MinRecordedSeconds is the threshold a stopwatch run must exceed to be saved.
const MinRecordedSeconds = 10

type State struct {
	SubjectID string    `json:"subjectId"`
	Seconds   int       `json:"seconds"`
	Running   bool      `json:"running"`
	StartedAt time.Time `json:"startedAt,omitempty"`
}

// Active reports whether there is a run to pause, resume or stop.
func (s State) Active() bool { return s.Running || s.Seconds > 0 }

// Result is what Stop hands back. Record is false for runs at or below the
// threshold and for redundant stops.
type Result struct {
	SubjectID string
	Seconds   int
	StartedAt time.Time
	Record    bool
}

type Stopwatch struct {
	mu    sync.Mutex
	now   func() time.Time
	state State
}

func NewStopwatch(now func() time.Time) *Stopwatch {
	if now == nil {
		now = time.Now
	}
	return &Stopwatch{now: now}
}

// Start begins a fresh run for subjectID. A run already in progress must be
// stopped first.
func (w *Stopwatch) Start(subjectID string) error {
	if subjectID == "" {
		return fmt.Errorf("start timer: empty subject: %w", apperr.ErrInvalidArgument)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Active() {
		return fmt.Errorf("start timer: run for %q in progress: %w", w.state.SubjectID, apperr.ErrConflict)
	}
	w.state = State{SubjectID: subjectID, Running: true, StartedAt: w.now()}
	return nil
}

func (w *Stopwatch) Pause() {
	w.mu.Lock()
	w.state.Running = false
	w.mu.Unlock()
}

// Resume continues a paused run. Without one it does nothing.
func (w *Stopwatch) Resume() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.SubjectID != "" {
		w.state.Running = true
	}
}

func (w *Stopwatch) Tick() {
	w.mu.Lock()
	if w.state.Running {
		w.state.Seconds++
	}
	w.mu.Unlock()
}

// Stop ends the run and resets the stopwatch.
func (w *Stopwatch) Stop() Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	res := Result{
		SubjectID: w.state.SubjectID,
		Seconds:   max(0, w.state.Seconds),
		StartedAt: w.state.StartedAt,
	}
	res.Record = res.SubjectID != "" && res.Seconds > MinRecordedSeconds
	w.state = State{}
	return res
}

func (w *Stopwatch) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// ManualDuration converts an hours/minutes entry into seconds. Negative parts
// count as zero; callers save only a positive result.
func ManualDuration(hours, minutes int) int {
	return max(0, hours)*3600 + max(0, minutes)*60
}

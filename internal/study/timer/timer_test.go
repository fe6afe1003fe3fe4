package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	apperr "github.com/yungbote/studyhours-backend/internal/pkg/errors"
)

var start = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return start }

func ticks(w *Stopwatch, n int) {
	for i := 0; i < n; i++ {
		w.Tick()
	}
}

func TestTickIsNoopUnlessRunning(t *testing.T) {
	w := NewStopwatch(fixedClock)
	ticks(w, 5)
	if got := w.State(); got.Seconds != 0 || got.Active() {
		t.Fatalf("idle stopwatch ticked: %+v", got)
	}
	if err := w.Start("sub"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	ticks(w, 3)
	w.Pause()
	w.Pause()
	ticks(w, 4)
	w.Resume()
	ticks(w, 2)
	if got := w.State(); got.Seconds != 5 || !got.Running || !got.StartedAt.Equal(start) {
		t.Fatalf("state: %+v", got)
	}
}

func TestStopThreshold(t *testing.T) {
	w := NewStopwatch(fixedClock)
	if err := w.Start("sub"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	ticks(w, MinRecordedSeconds)
	if res := w.Stop(); res.Record || res.Seconds != MinRecordedSeconds {
		t.Fatalf("run at threshold must not record: %+v", res)
	}

	if err := w.Start("sub"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	ticks(w, MinRecordedSeconds+1)
	res := w.Stop()
	if !res.Record || res.SubjectID != "sub" || res.Seconds != 11 {
		t.Fatalf("run above threshold: %+v", res)
	}
	if again := w.Stop(); again.Record || again.Seconds != 0 {
		t.Fatalf("redundant stop recorded: %+v", again)
	}
}

func TestStartRejectsBlankAndBusy(t *testing.T) {
	w := NewStopwatch(fixedClock)
	if err := w.Start(""); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("blank subject: %v", err)
	}
	if err := w.Start("a"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Tick()
	w.Pause()
	if err := w.Start("b"); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("busy start: %v", err)
	}
	w.Stop()
	w.Resume()
	if w.State().Running {
		t.Fatalf("resume without a run must not start the clock")
	}
}

func TestManualDuration(t *testing.T) {
	cases := []struct {
		h, m, want int
	}{
		{0, 0, 0},
		{1, 30, 5400},
		{0, 45, 2700},
		{-1, 10, 600},
	}
	for _, c := range cases {
		if got := ManualDuration(c.h, c.m); got != c.want {
			t.Errorf("ManualDuration(%d,%d)=%d want %d", c.h, c.m, got, c.want)
		}
	}
}

func TestRegistryTickAll(t *testing.T) {
	r := NewRegistry(nil, fixedClock)
	if r.For("u1") != r.For("u1") {
		t.Fatalf("registry returned different stopwatches for one user")
	}
	if err := r.For("u1").Start("x"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	r.For("u2")
	r.TickAll()
	r.TickAll()
	if got := r.For("u1").State().Seconds; got != 2 {
		t.Fatalf("u1 seconds: %d", got)
	}
	if got := r.For("u2").State().Seconds; got != 0 {
		t.Fatalf("u2 seconds: %d", got)
	}
}

func TestRegistryRunStopsOnCancel(t *testing.T) {
	r := NewRegistry(nil, fixedClock)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, time.Millisecond) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

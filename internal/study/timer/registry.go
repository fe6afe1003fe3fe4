package timer

import (
	"context"
	"sync"
	"time"

	"github.com/yungbote/studyhours-backend/internal/platform/logger"
)

// Registry owns one Stopwatch per user.
type Registry struct {
	log *logger.Logger
	now func() time.Time

	mu      sync.RWMutex
	watches map[string]*Stopwatch
}

func NewRegistry(baseLog *logger.Logger, now func() time.Time) *Registry {
	if baseLog == nil {
		baseLog = logger.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Registry{
		log:     baseLog.With("component", "TimerRegistry"),
		now:     now,
		watches: map[string]*Stopwatch{},
	}
}

// For returns the user's stopwatch, creating it on first use.
func (r *Registry) For(userID string) *Stopwatch {
	r.mu.RLock()
	w := r.watches[userID]
	r.mu.RUnlock()
	if w != nil {
		return w
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if w = r.watches[userID]; w == nil {
		w = NewStopwatch(r.now)
		r.watches[userID] = w
	}
	return w
}

func (r *Registry) TickAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.watches {
		w.Tick()
	}
}

// Run ticks every stopwatch once per interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	r.log.Info("timer loop started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			r.log.Info("timer loop stopped")
			return nil
		case <-t.C:
			r.TickAll()
		}
	}
}

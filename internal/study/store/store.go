// Package store is the single source of truth for one user's study data.
//
// Every mutation runs under the store mutex, is fully applied in memory, and
// is then handed to the Persister as a complete snapshot. A failed save is
// reported to the caller wrapped in ErrPersist; the in-memory state keeps the
// change and remains usable. Mutations aimed at ids the store does not hold
// are silent no-ops and do not trigger a save.
package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
	apperr "github.com/yungbote/studyhours-backend/internal/pkg/errors"
	"github.com/yungbote/studyhours-backend/internal/platform/logger"
)

// Persister durably saves a full snapshot. Implementations must not retain s.
type Persister interface {
	Save(ctx context.Context, s study.Snapshot) error
}

type Store struct {
	mu sync.Mutex

	log       *logger.Logger
	persister Persister
	now       func() time.Time
	loc       *time.Location
	newID     func() string
	pickColor func() string

	months               []study.Month
	subjects             []study.Subject
	schedules            map[study.ScheduleKey]study.SubjectSchedule
	sessions             []study.Session
	settings             study.Settings
	activeScheduleMonths []string
}

type Option func(*Store)

func WithLogger(log *logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone used to derive "today". Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func WithColorPicker(pick func() string) Option {
	return func(s *Store) {
		if pick != nil {
			s.pickColor = pick
		}
	}
}

// WithSnapshot seeds the store from previously persisted state.
func WithSnapshot(snap study.Snapshot) Option {
	return func(s *Store) { s.loadLocked(snap) }
}

func New(opts ...Option) *Store {
	s := &Store{
		log:       logger.NewNop(),
		now:       time.Now,
		loc:       time.Local,
		newID:     uuid.NewString,
		pickColor: randomHue,
	}
	s.loadLocked(study.EmptySnapshot())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// randomHue mirrors the display colors the UI expects.
func randomHue() string {
	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", rand.IntN(360))
}

// Load replaces the whole state without persisting it.
func (s *Store) Load(snap study.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(snap)
}

func (s *Store) loadLocked(snap study.Snapshot) {
	snap.Normalize()
	s.months = append([]study.Month{}, snap.Months...)
	s.subjects = make([]study.Subject, 0, len(snap.Subjects))
	s.schedules = map[study.ScheduleKey]study.SubjectSchedule{}
	for _, sub := range snap.Subjects {
		for monthKey, sched := range sub.Schedules {
			s.schedules[study.ScheduleKey{SubjectID: sub.ID, MonthKey: monthKey}] = sched.Clone()
		}
		sub.Schedules = nil
		sub.Subtopics = append([]study.Subtopic{}, sub.Subtopics...)
		s.subjects = append(s.subjects, sub)
	}
	s.sessions = append([]study.Session{}, snap.Sessions...)
	s.settings = snap.Settings
	s.activeScheduleMonths = append([]string{}, snap.ActiveScheduleMonths...)
}

// Now is the store clock in the store location.
func (s *Store) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *Store) Location() *time.Location { return s.loc }

// commit persists the current state. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, op string) error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(ctx, s.snapshotLocked()); err != nil {
		s.log.Warn("persist failed, keeping in-memory state", "op", op, "error", err)
		return fmt.Errorf("%s: %w: %w", op, apperr.ErrPersist, err)
	}
	return nil
}

func invalid(op, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), apperr.ErrInvalidArgument)
}

func notFound(op, what, id string) error {
	return fmt.Errorf("%s: %s %q: %w", op, what, id, apperr.ErrNotFound)
}

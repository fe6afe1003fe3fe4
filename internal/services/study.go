package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yungbote/studyhours-backend/internal/data/repos/snapshot"
	study "github.com/yungbote/studyhours-backend/internal/domain/study"
	"github.com/yungbote/studyhours-backend/internal/observability"
	"github.com/yungbote/studyhours-backend/internal/pkg/dateutil"
	"github.com/yungbote/studyhours-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/studyhours-backend/internal/pkg/errors"
	"github.com/yungbote/studyhours-backend/internal/platform/logger"
	"github.com/yungbote/studyhours-backend/internal/realtime"
	"github.com/yungbote/studyhours-backend/internal/study/stats"
	"github.com/yungbote/studyhours-backend/internal/study/store"
)

// StudyService routes every operation to the caller's Store, loading it from
// the snapshot repository on first use.
type StudyService interface {
	State(ctx context.Context, userID string) (study.Snapshot, error)
	Evict(userID string)
	// Reset deletes the saved state; the next call starts from empty.
	Reset(ctx context.Context, userID string) error

	AddMonth(ctx context.Context, userID, name string, year int) (study.Month, error)
	EditMonth(ctx context.Context, userID, monthID, name string) error
	DeleteMonth(ctx context.Context, userID, monthID string) error
	DuplicateMonth(ctx context.Context, userID, monthID string) (*study.Month, error)
	MonthProgress(ctx context.Context, userID, monthID string) (int, error)
	MonthSubjects(ctx context.Context, userID, monthID string) ([]study.Subject, error)

	AddSubject(ctx context.Context, userID, title, monthID string) (study.Subject, error)
	AddSubjects(ctx context.Context, userID string, titles []string, monthID string) ([]study.Subject, error)
	DeleteSubject(ctx context.Context, userID, subjectID string) error
	AddSubtopic(ctx context.Context, userID, subjectID, title string) (*study.Subtopic, error)
	AddSubtopics(ctx context.Context, userID, subjectID string, titles []string) ([]study.Subtopic, error)
	ToggleSubtopic(ctx context.Context, userID, subjectID, subtopicID string) error
	SubjectHours(ctx context.Context, userID, subjectID string) (float64, error)

	AddScheduleMonth(ctx context.Context, userID, monthKey string) error
	RemoveScheduleMonth(ctx context.Context, userID, monthKey string) error
	ToggleSubjectInMonth(ctx context.Context, userID, subjectID, monthKey string) (bool, error)
	UpdateSubjectSchedule(ctx context.Context, userID, subjectID, monthKey string, patch study.SchedulePatch) (*study.SubjectSchedule, error)
	ToggleSubjectPlannedDay(ctx context.Context, userID, subjectID, monthKey, dateKey string) (bool, error)
	ScheduleStats(ctx context.Context, userID, monthKey string) (stats.ScheduleStats, error)
	Agenda(ctx context.Context, userID, monthKey string) (stats.Agenda, error)

	AddManualSession(ctx context.Context, userID, subjectID string, durationSec int, dateKey string) (study.Session, error)
	RecordSession(ctx context.Context, userID string, rec study.SessionRecord) (study.Session, error)
	DeleteSession(ctx context.Context, userID, sessionID string) error
	UpdateSessionStatus(ctx context.Context, userID, sessionID string, status study.SessionStatus) error
	SessionsOnDate(ctx context.Context, userID, dateKey string) ([]study.Session, error)

	UpdateSettings(ctx context.Context, userID string, patch study.SettingsPatch) (study.Settings, error)

	Streaks(ctx context.Context, userID string) (stats.Streaks, error)
	Heatmap(ctx context.Context, userID string) ([]stats.DayStat, error)
	Today(ctx context.Context, userID string) (stats.TodaySummary, error)
	SubjectShares(ctx context.Context, userID string) ([]stats.SubjectShare, error)
	CalendarMonth(ctx context.Context, userID, monthKey string) (stats.CalendarMonthSummary, error)
}

type StudyServiceConfig struct {
	Location *time.Location
	Now      func() time.Time
	Metrics  *observability.Metrics
}

type studyService struct {
	log      *logger.Logger
	repo     snapshot.SnapshotRepo
	notifier realtime.Notifier
	metrics  *observability.Metrics
	loc      *time.Location
	now      func() time.Time

	mu     sync.RWMutex
	stores map[string]*store.Store
	loads  singleflight.Group
}

func NewStudyService(log *logger.Logger, repo snapshot.SnapshotRepo, notifier realtime.Notifier, cfg StudyServiceConfig) StudyService {
	if notifier == nil {
		notifier = realtime.Nop{}
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &studyService{
		log:      log.With("service", "StudyService"),
		repo:     repo,
		notifier: notifier,
		metrics:  cfg.Metrics,
		loc:      cfg.Location,
		now:      cfg.Now,
		stores:   map[string]*store.Store{},
	}
}

func (s *studyService) storeFor(ctx context.Context, userID string) (*store.Store, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("missing user id: %w", apperr.ErrInvalidArgument)
	}
	s.mu.RLock()
	st := s.stores[userID]
	s.mu.RUnlock()
	if st != nil {
		return st, nil
	}

	v, err, _ := s.loads.Do(userID, func() (interface{}, error) {
		s.mu.RLock()
		existing := s.stores[userID]
		s.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}
		snap, found, err := s.repo.Load(dbctx.New(ctx), userID)
		if err != nil {
			return nil, fmt.Errorf("load study state: %w", err)
		}
		st := store.New(
			store.WithSnapshot(snap),
			store.WithPersister(snapshot.UserPersister{Repo: s.repo, UserID: userID}),
			store.WithLogger(s.log.With("user_id", userID)),
			store.WithClock(s.now),
			store.WithLocation(s.loc),
		)
		s.mu.Lock()
		s.stores[userID] = st
		s.mu.Unlock()
		s.log.Debug("study store loaded", "user_id", userID, "found", found)
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*store.Store), nil
}

// Evict drops the cached store; the next call reloads it.
func (s *studyService) Evict(userID string) {
	s.mu.Lock()
	delete(s.stores, userID)
	s.mu.Unlock()
}

func (s *studyService) Reset(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("missing user id: %w", apperr.ErrInvalidArgument)
	}
	if err := s.repo.Delete(dbctx.Detached(ctx), userID); err != nil {
		s.metrics.ObserveMutation("reset", "persist_failed")
		s.log.Error("study state not deleted", "user_id", userID, "error", err)
		return fmt.Errorf("reset study state: %w: %w", apperr.ErrPersist, err)
	}
	s.Evict(userID)
	return s.changed(ctx, userID, "reset", nil)
}

// changed notifies listeners after a mutation. A persist failure still
// changed the in-memory state, so both events go out.
func (s *studyService) changed(ctx context.Context, userID, op string, err error) error {
	switch {
	case err == nil:
		s.metrics.ObserveMutation(op, "ok")
		s.notifier.StateChanged(ctx, userID, op)
	case errors.Is(err, apperr.ErrPersist):
		s.metrics.ObserveMutation(op, "persist_failed")
		s.log.Error("study state not saved", "user_id", userID, "op", op, "error", err)
		s.notifier.StateChanged(ctx, userID, op)
		s.notifier.PersistFailed(ctx, userID, op, err)
	case errors.Is(err, apperr.ErrNotFound):
		s.metrics.ObserveMutation(op, "not_found")
	default:
		s.metrics.ObserveMutation(op, "invalid")
	}
	return err
}

func badKey(kind, key string) error {
	return fmt.Errorf("bad %s key %q: %w", kind, key, apperr.ErrInvalidArgument)
}

func (s *studyService) State(ctx context.Context, userID string) (study.Snapshot, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return study.Snapshot{}, err
	}
	return st.Snapshot(), nil
}

func (s *studyService) AddMonth(ctx context.Context, userID, name string, year int) (study.Month, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return study.Month{}, err
	}
	m, err := st.AddMonth(ctx, name, year)
	return m, s.changed(ctx, userID, "add_month", err)
}

func (s *studyService) EditMonth(ctx context.Context, userID, monthID, name string) error {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return err
	}
	return s.changed(ctx, userID, "edit_month", st.EditMonth(ctx, monthID, name))
}

func (s *studyService) DeleteMonth(ctx context.Context, userID, monthID string) error {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return err
	}
	return s.changed(ctx, userID, "delete_month", st.DeleteMonth(ctx, monthID))
}

func (s *studyService) DuplicateMonth(ctx context.Context, userID, monthID string) (*study.Month, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	m, err := st.DuplicateMonth(ctx, monthID)
	if m == nil && err == nil {
		return nil, nil
	}
	return m, s.changed(ctx, userID, "duplicate_month", err)
}

func (s *studyService) MonthProgress(ctx context.Context, userID, monthID string) (int, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return 0, err
	}
	if _, ok := st.Month(monthID); !ok {
		return 0, fmt.Errorf("month progress: month %q: %w", monthID, apperr.ErrNotFound)
	}
	return stats.MonthProgress(monthID, st.Subjects()), nil
}

func (s *studyService) MonthSubjects(ctx context.Context, userID, monthID string) ([]study.Subject, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return st.SubjectsByMonth(monthID), nil
}

func (s *studyService) AddSubject(ctx context.Context, userID, title, monthID string) (study.Subject, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return study.Subject{}, err
	}
	sub, err := st.AddSubject(ctx, title, monthID)
	return sub, s.changed(ctx, userID, "add_subject", err)
}

func (s *studyService) AddSubjects(ctx context.Context, userID string, titles []string, monthID string) ([]study.Subject, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	subs, err := st.AddSubjects(ctx, titles, monthID)
	return subs, s.changed(ctx, userID, "add_subjects", err)
}

func (s *studyService) DeleteSubject(ctx context.Context, userID, subjectID string) error {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return err
	}
	return s.changed(ctx, userID, "delete_subject", st.DeleteSubject(ctx, subjectID))
}

func (s *studyService) AddSubtopic(ctx context.Context, userID, subjectID, title string) (*study.Subtopic, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	sub, err := st.AddSubtopic(ctx, subjectID, title)
	if sub == nil && err == nil {
		return nil, nil
	}
	return sub, s.changed(ctx, userID, "add_subtopic", err)
}

func (s *studyService) AddSubtopics(ctx context.Context, userID, subjectID string, titles []string) ([]study.Subtopic, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	subs, err := st.AddSubtopics(ctx, subjectID, titles)
	return subs, s.changed(ctx, userID, "add_subtopics", err)
}

func (s *studyService) ToggleSubtopic(ctx context.Context, userID, subjectID, subtopicID string) error {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return err
	}
	return s.changed(ctx, userID, "toggle_subtopic", st.ToggleSubtopic(ctx, subjectID, subtopicID))
}

func (s *studyService) SubjectHours(ctx context.Context, userID, subjectID string) (float64, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return 0, err
	}
	return stats.TotalHoursForSubject(subjectID, st.Sessions()), nil
}

func (s *studyService) AddScheduleMonth(ctx context.Context, userID, monthKey string) error {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return err
	}
	return s.changed(ctx, userID, "add_schedule_month", st.AddActiveScheduleMonth(ctx, monthKey))
}

func (s *studyService) RemoveScheduleMonth(ctx context.Context, userID, monthKey string) error {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return err
	}
	return s.changed(ctx, userID, "remove_schedule_month", st.RemoveActiveScheduleMonth(ctx, monthKey))
}

func (s *studyService) ToggleSubjectInMonth(ctx context.Context, userID, subjectID, monthKey string) (bool, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return false, err
	}
	on, err := st.ToggleSubjectInMonth(ctx, subjectID, monthKey)
	return on, s.changed(ctx, userID, "toggle_subject_in_month", err)
}

func (s *studyService) UpdateSubjectSchedule(ctx context.Context, userID, subjectID, monthKey string, patch study.SchedulePatch) (*study.SubjectSchedule, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	sched, err := st.UpdateSubjectSchedule(ctx, subjectID, monthKey, patch)
	if sched == nil && err == nil {
		return nil, nil
	}
	return sched, s.changed(ctx, userID, "update_subject_schedule", err)
}

func (s *studyService) ToggleSubjectPlannedDay(ctx context.Context, userID, subjectID, monthKey, dateKey string) (bool, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return false, err
	}
	on, err := st.ToggleSubjectPlannedDay(ctx, subjectID, monthKey, dateKey)
	return on, s.changed(ctx, userID, "toggle_planned_day", err)
}

func (s *studyService) ScheduleStats(ctx context.Context, userID, monthKey string) (stats.ScheduleStats, error) {
	if !dateutil.IsMonthKey(monthKey) {
		return stats.ScheduleStats{}, badKey("month", monthKey)
	}
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return stats.ScheduleStats{}, err
	}
	return stats.ScheduleMonthStats(monthKey, st.Subjects(), st.Schedules(), st.Sessions()), nil
}

func (s *studyService) Agenda(ctx context.Context, userID, monthKey string) (stats.Agenda, error) {
	if !dateutil.IsMonthKey(monthKey) {
		return stats.Agenda{}, badKey("month", monthKey)
	}
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return stats.Agenda{}, err
	}
	return stats.PlannedAgenda(monthKey, st.Subjects(), st.Schedules(), st.Sessions()), nil
}

func (s *studyService) AddManualSession(ctx context.Context, userID, subjectID string, durationSec int, dateKey string) (study.Session, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return study.Session{}, err
	}
	sess, err := st.AddManualSession(ctx, subjectID, durationSec, dateKey)
	if err == nil || errors.Is(err, apperr.ErrPersist) {
		s.metrics.IncSession("manual")
		s.notifier.SessionSaved(ctx, userID, sess)
	}
	return sess, s.changed(ctx, userID, "add_manual_session", err)
}

func (s *studyService) RecordSession(ctx context.Context, userID string, rec study.SessionRecord) (study.Session, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return study.Session{}, err
	}
	sess, err := st.RecordSession(ctx, rec)
	if err == nil || errors.Is(err, apperr.ErrPersist) {
		s.metrics.IncSession("recorded")
		s.notifier.SessionSaved(ctx, userID, sess)
	}
	return sess, s.changed(ctx, userID, "record_session", err)
}

func (s *studyService) DeleteSession(ctx context.Context, userID, sessionID string) error {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return err
	}
	return s.changed(ctx, userID, "delete_session", st.DeleteSession(ctx, sessionID))
}

func (s *studyService) UpdateSessionStatus(ctx context.Context, userID, sessionID string, status study.SessionStatus) error {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return err
	}
	return s.changed(ctx, userID, "update_session_status", st.UpdateSessionStatus(ctx, sessionID, status))
}

func (s *studyService) SessionsOnDate(ctx context.Context, userID, dateKey string) ([]study.Session, error) {
	if !dateutil.IsDateKey(dateKey) {
		return nil, badKey("date", dateKey)
	}
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats.SessionsOnDate(dateKey, st.Sessions()), nil
}

func (s *studyService) UpdateSettings(ctx context.Context, userID string, patch study.SettingsPatch) (study.Settings, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return study.Settings{}, err
	}
	out, err := st.UpdateSettings(ctx, patch)
	return out, s.changed(ctx, userID, "update_settings", err)
}

func (s *studyService) Streaks(ctx context.Context, userID string) (stats.Streaks, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return stats.Streaks{}, err
	}
	return stats.CalculateStreaks(st.Sessions(), st.Now()), nil
}

func (s *studyService) Heatmap(ctx context.Context, userID string) ([]stats.DayStat, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats.Heatmap(stats.DayMinutes(st.Sessions()), st.Now()), nil
}

func (s *studyService) Today(ctx context.Context, userID string) (stats.TodaySummary, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return stats.TodaySummary{}, err
	}
	return stats.Today(st.Sessions(), st.Now()), nil
}

func (s *studyService) SubjectShares(ctx context.Context, userID string) ([]stats.SubjectShare, error) {
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats.SubjectShares(st.Subjects(), st.Sessions()), nil
}

func (s *studyService) CalendarMonth(ctx context.Context, userID, monthKey string) (stats.CalendarMonthSummary, error) {
	if !dateutil.IsMonthKey(monthKey) {
		return stats.CalendarMonthSummary{}, badKey("month", monthKey)
	}
	st, err := s.storeFor(ctx, userID)
	if err != nil {
		return stats.CalendarMonthSummary{}, err
	}
	return stats.CalendarMonth(monthKey, st.Subjects(), st.Sessions(), st.Settings().MonthlyGoalHours), nil
}

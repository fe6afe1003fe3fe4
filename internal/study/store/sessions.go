package store

import (
	"context"
	"slices"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
	"github.com/yungbote/studyhours-backend/internal/pkg/dateutil"
)

// AddManualSession logs a completed session of durationSec seconds against
// subjectID. An empty dateKey means today in the store location.
func (s *Store) AddManualSession(ctx context.Context, subjectID string, durationSec int, dateKey string) (study.Session, error) {
	if durationSec <= 0 {
		return study.Session{}, invalid("add manual session", "duration must be positive, got %d", durationSec)
	}
	return s.RecordSession(ctx, study.SessionRecord{
		SubjectID: subjectID,
		Duration:  durationSec,
		Date:      dateKey,
	})
}

// RecordSession stores a session from a structured record, filling Date,
// StartTime and Status defaults. A fresh id is always assigned.
func (s *Store) RecordSession(ctx context.Context, rec study.SessionRecord) (study.Session, error) {
	const op = "record session"
	if rec.Duration < 0 {
		return study.Session{}, invalid(op, "negative duration %d", rec.Duration)
	}
	if rec.Date != "" && !dateutil.IsDateKey(rec.Date) {
		return study.Session{}, invalid(op, "bad date key %q", rec.Date)
	}
	if rec.Status != "" && !rec.Status.Valid() {
		return study.Session{}, invalid(op, "unknown status %q", rec.Status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subjectIndex(rec.SubjectID) < 0 {
		return study.Session{}, notFound(op, "subject", rec.SubjectID)
	}
	now := s.Now()
	sess := study.Session{
		ID:        s.newID(),
		SubjectID: rec.SubjectID,
		Duration:  rec.Duration,
		Date:      rec.Date,
		StartTime: rec.StartTime,
		Status:    rec.Status,
	}
	if sess.Date == "" {
		sess.Date = dateutil.DateKey(now)
	}
	if sess.StartTime == 0 {
		sess.StartTime = now.UnixMilli()
	}
	if sess.Status == "" {
		sess.Status = study.SessionCompleted
	}
	s.sessions = append(s.sessions, sess)
	return sess, s.commit(ctx, op)
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.sessionIndex(id)
	if i < 0 {
		return nil
	}
	s.sessions = slices.Delete(s.sessions, i, i+1)
	return s.commit(ctx, "delete session")
}

// UpdateSessionStatus changes only the status; duration and date are kept.
func (s *Store) UpdateSessionStatus(ctx context.Context, id string, status study.SessionStatus) error {
	if !status.Valid() {
		return invalid("update session status", "unknown status %q", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.sessionIndex(id)
	if i < 0 || s.sessions[i].Status == status {
		return nil
	}
	s.sessions[i].Status = status
	return s.commit(ctx, "update session status")
}

func (s *Store) sessionIndex(id string) int {
	return slices.IndexFunc(s.sessions, func(sess study.Session) bool { return sess.ID == id })
}

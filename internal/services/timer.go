package services

import (
	"context"
	"fmt"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
	apperr "github.com/yungbote/studyhours-backend/internal/pkg/errors"
	"github.com/yungbote/studyhours-backend/internal/platform/logger"
	"github.com/yungbote/studyhours-backend/internal/realtime"
	"github.com/yungbote/studyhours-backend/internal/study/timer"
)

type StopResult struct {
	Timer   timer.State    `json:"timer"`
	Seconds int            `json:"seconds"`
	Session *study.Session `json:"session,omitempty"`
}

type TimerService interface {
	Get(ctx context.Context, userID string) timer.State
	Start(ctx context.Context, userID, subjectID string) (timer.State, error)
	Pause(ctx context.Context, userID string) timer.State
	Resume(ctx context.Context, userID string) timer.State
	// Stop ends the run and records a session dated today when it crossed
	// the threshold.
	Stop(ctx context.Context, userID string) (StopResult, error)
}

type timerService struct {
	log      *logger.Logger
	registry *timer.Registry
	study    StudyService
	notifier realtime.Notifier
}

func NewTimerService(log *logger.Logger, registry *timer.Registry, studySvc StudyService, notifier realtime.Notifier) TimerService {
	if notifier == nil {
		notifier = realtime.Nop{}
	}
	return &timerService{
		log:      log.With("service", "TimerService"),
		registry: registry,
		study:    studySvc,
		notifier: notifier,
	}
}

func (s *timerService) Get(_ context.Context, userID string) timer.State {
	return s.registry.For(userID).State()
}

func (s *timerService) Start(ctx context.Context, userID, subjectID string) (timer.State, error) {
	snap, err := s.study.State(ctx, userID)
	if err != nil {
		return timer.State{}, err
	}
	if !hasSubject(snap.Subjects, subjectID) {
		return timer.State{}, fmt.Errorf("start timer: subject %q: %w", subjectID, apperr.ErrNotFound)
	}
	w := s.registry.For(userID)
	if err := w.Start(subjectID); err != nil {
		return w.State(), err
	}
	return s.publish(ctx, userID, w.State()), nil
}

func (s *timerService) Pause(ctx context.Context, userID string) timer.State {
	w := s.registry.For(userID)
	w.Pause()
	return s.publish(ctx, userID, w.State())
}

func (s *timerService) Resume(ctx context.Context, userID string) timer.State {
	w := s.registry.For(userID)
	w.Resume()
	return s.publish(ctx, userID, w.State())
}

func (s *timerService) Stop(ctx context.Context, userID string) (StopResult, error) {
	w := s.registry.For(userID)
	res := w.Stop()
	out := StopResult{Timer: s.publish(ctx, userID, w.State()), Seconds: res.Seconds}
	if !res.Record {
		s.log.Debug("timer stopped below threshold", "user_id", userID, "seconds", res.Seconds)
		return out, nil
	}
	sess, err := s.study.RecordSession(ctx, userID, study.SessionRecord{
		SubjectID: res.SubjectID,
		Duration:  res.Seconds,
		StartTime: res.StartedAt.UnixMilli(),
		Status:    study.SessionCompleted,
	})
	if sess.ID != "" {
		out.Session = &sess
	}
	return out, err
}

func (s *timerService) publish(ctx context.Context, userID string, st timer.State) timer.State {
	s.notifier.TimerChanged(ctx, userID, st)
	return st
}

func hasSubject(subjects []study.Subject, id string) bool {
	for _, sub := range subjects {
		if sub.ID == id {
			return true
		}
	}
	return false
}

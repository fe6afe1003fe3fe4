package store

import (
	"context"
	"slices"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
	"github.com/yungbote/studyhours-backend/internal/pkg/dateutil"
)

// ToggleSubjectInMonth schedules the subject for monthKey, or unschedules it
// if it already was. Unscheduling deletes the entry entirely, so a later
// toggle starts again from a fresh default. It reports whether the subject is
// scheduled afterwards.
func (s *Store) ToggleSubjectInMonth(ctx context.Context, subjectID, monthKey string) (bool, error) {
	if !dateutil.IsMonthKey(monthKey) {
		return false, invalid("toggle subject in month", "bad month key %q", monthKey)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subjectIndex(subjectID) < 0 {
		return false, nil
	}
	key := study.ScheduleKey{SubjectID: subjectID, MonthKey: monthKey}
	_, scheduled := s.schedules[key]
	if scheduled {
		delete(s.schedules, key)
	} else {
		s.schedules[key] = study.NewSubjectSchedule()
	}
	return !scheduled, s.commit(ctx, "toggle subject in month")
}

// UpdateSubjectSchedule merges patch into the entry, creating it first when
// absent. Fields missing from the patch keep their value.
func (s *Store) UpdateSubjectSchedule(ctx context.Context, subjectID, monthKey string, patch study.SchedulePatch) (*study.SubjectSchedule, error) {
	const op = "update subject schedule"
	if !dateutil.IsMonthKey(monthKey) {
		return nil, invalid(op, "bad month key %q", monthKey)
	}
	if patch.MonthlyGoal != nil && *patch.MonthlyGoal < 0 {
		return nil, invalid(op, "negative monthly goal %d", *patch.MonthlyGoal)
	}
	if len(patch.PlannedDays) > 0 {
		days, err := dateutil.DaysInMonth(monthKey)
		if err != nil {
			return nil, invalid(op, "bad month key %q", monthKey)
		}
		for _, d := range patch.PlannedDays {
			if !slices.Contains(days, d) {
				return nil, invalid(op, "planned day %q outside %s", d, monthKey)
			}
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subjectIndex(subjectID) < 0 {
		return nil, nil
	}
	key := study.ScheduleKey{SubjectID: subjectID, MonthKey: monthKey}
	current, ok := s.schedules[key]
	if !ok {
		current = study.NewSubjectSchedule()
	}
	updated := patch.Apply(current)
	s.schedules[key] = updated
	out := updated.Clone()
	return &out, s.commit(ctx, op)
}

// ToggleSubjectPlannedDay adds dateKey to the planned days or removes it.
// It reports whether the day is planned afterwards.
func (s *Store) ToggleSubjectPlannedDay(ctx context.Context, subjectID, monthKey, dateKey string) (bool, error) {
	const op = "toggle planned day"
	if !dateutil.IsMonthKey(monthKey) {
		return false, invalid(op, "bad month key %q", monthKey)
	}
	if !dateutil.IsDateKey(dateKey) {
		return false, invalid(op, "bad date key %q", dateKey)
	}
	if dateutil.MonthOfDateKey(dateKey) != monthKey {
		return false, invalid(op, "planned day %q outside %s", dateKey, monthKey)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subjectIndex(subjectID) < 0 {
		return false, nil
	}
	key := study.ScheduleKey{SubjectID: subjectID, MonthKey: monthKey}
	sched, ok := s.schedules[key]
	if !ok {
		sched = study.NewSubjectSchedule()
	}
	sched = sched.Clone()
	planned := false
	if sched.HasPlannedDay(dateKey) {
		sched.PlannedDays = slices.DeleteFunc(sched.PlannedDays, func(d string) bool { return d == dateKey })
	} else {
		sched.PlannedDays = append(sched.PlannedDays, dateKey)
		planned = true
	}
	s.schedules[key] = sched
	return planned, s.commit(ctx, op)
}

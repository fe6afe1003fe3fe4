package store

import (
	"context"
	"slices"
	"strings"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
	"github.com/yungbote/studyhours-backend/internal/pkg/dateutil"
)

func (s *Store) AddMonth(ctx context.Context, name string, year int) (study.Month, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return study.Month{}, invalid("add month", "empty name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m := study.Month{ID: s.newID(), Name: name, Year: year}
	s.months = append(s.months, m)
	return m, s.commit(ctx, "add month")
}

func (s *Store) EditMonth(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("edit month", "empty name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.monthIndex(id)
	if i < 0 {
		return nil
	}
	s.months[i].Name = name
	return s.commit(ctx, "edit month")
}

// DeleteMonth removes the month and every subject assigned to it. Sessions of
// those subjects are left in place; only DeleteSubject removes sessions.
func (s *Store) DeleteMonth(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.monthIndex(id)
	if i < 0 {
		return nil
	}
	s.months = slices.Delete(s.months, i, i+1)
	s.subjects = slices.DeleteFunc(s.subjects, func(sub study.Subject) bool {
		if sub.MonthID != id {
			return false
		}
		s.dropSchedulesLocked(sub.ID)
		return true
	})
	return s.commit(ctx, "delete month")
}

// DuplicateMonth copies the month and deep-copies its subjects under new ids.
// It returns nil when id is unknown.
func (s *Store) DuplicateMonth(ctx context.Context, id string) (*study.Month, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.monthIndex(id)
	if i < 0 {
		return nil, nil
	}
	src := s.months[i]
	copyMonth := study.Month{ID: s.newID(), Name: src.Name + study.CopySuffix, Year: src.Year}
	createdAt := s.Now().UnixMilli()

	var copies []study.Subject
	copiedSchedules := map[study.ScheduleKey]study.SubjectSchedule{}
	for _, sub := range s.subjects {
		if sub.MonthID != id {
			continue
		}
		dup := sub
		dup.ID = s.newID()
		dup.MonthID = copyMonth.ID
		dup.CreatedAt = createdAt
		dup.Subtopics = append([]study.Subtopic{}, sub.Subtopics...)
		for key, sched := range s.schedules {
			if key.SubjectID == sub.ID {
				copiedSchedules[study.ScheduleKey{SubjectID: dup.ID, MonthKey: key.MonthKey}] = sched.Clone()
			}
		}
		copies = append(copies, dup)
	}
	for key, sched := range copiedSchedules {
		s.schedules[key] = sched
	}
	s.months = append(s.months, copyMonth)
	s.subjects = append(s.subjects, copies...)
	return &copyMonth, s.commit(ctx, "duplicate month")
}

func (s *Store) AddActiveScheduleMonth(ctx context.Context, monthKey string) error {
	if !dateutil.IsMonthKey(monthKey) {
		return invalid("add schedule month", "bad month key %q", monthKey)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.activeScheduleMonths, monthKey) {
		return nil
	}
	s.activeScheduleMonths = append(s.activeScheduleMonths, monthKey)
	return s.commit(ctx, "add schedule month")
}

func (s *Store) RemoveActiveScheduleMonth(ctx context.Context, monthKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.activeScheduleMonths, monthKey)
	if i < 0 {
		return nil
	}
	s.activeScheduleMonths = slices.Delete(s.activeScheduleMonths, i, i+1)
	return s.commit(ctx, "remove schedule month")
}

func (s *Store) monthIndex(id string) int {
	return slices.IndexFunc(s.months, func(m study.Month) bool { return m.ID == id })
}

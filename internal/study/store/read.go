package store

import (
	"maps"
	"slices"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
)

// Snapshot returns a deep copy of the full state with schedules nested under
// their subjects.
func (s *Store) Snapshot() study.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() study.Snapshot {
	subjects := make([]study.Subject, 0, len(s.subjects))
	for _, sub := range s.subjects {
		subjects = append(subjects, s.withSchedulesLocked(sub))
	}
	return study.Snapshot{
		Months:               append([]study.Month{}, s.months...),
		Subjects:             subjects,
		Sessions:             append([]study.Session{}, s.sessions...),
		Settings:             s.settings,
		ActiveScheduleMonths: append([]string{}, s.activeScheduleMonths...),
	}
}

func (s *Store) withSchedulesLocked(sub study.Subject) study.Subject {
	sub.Subtopics = append([]study.Subtopic{}, sub.Subtopics...)
	sub.Schedules = map[string]study.SubjectSchedule{}
	for key, sched := range s.schedules {
		if key.SubjectID == sub.ID {
			sub.Schedules[key.MonthKey] = sched.Clone()
		}
	}
	return sub
}

func (s *Store) Months() []study.Month {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.months)
}

func (s *Store) Month(id string) (study.Month, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.monthIndex(id)
	if i < 0 {
		return study.Month{}, false
	}
	return s.months[i], true
}

func (s *Store) Subjects() []study.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]study.Subject, 0, len(s.subjects))
	for _, sub := range s.subjects {
		out = append(out, s.withSchedulesLocked(sub))
	}
	return out
}

func (s *Store) Subject(id string) (study.Subject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.subjectIndex(id)
	if i < 0 {
		return study.Subject{}, false
	}
	return s.withSchedulesLocked(s.subjects[i]), true
}

func (s *Store) SubjectsByMonth(monthID string) []study.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []study.Subject
	for _, sub := range s.subjects {
		if sub.MonthID == monthID {
			out = append(out, s.withSchedulesLocked(sub))
		}
	}
	return out
}

func (s *Store) Sessions() []study.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.sessions)
}

func (s *Store) Settings() study.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Store) ActiveScheduleMonths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.activeScheduleMonths)
}

// Schedule looks up one entry; ok is false when the subject is not scheduled.
func (s *Store) Schedule(subjectID, monthKey string) (study.SubjectSchedule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sched, ok := s.schedules[study.ScheduleKey{SubjectID: subjectID, MonthKey: monthKey}]
	if !ok {
		return study.SubjectSchedule{}, false
	}
	return sched.Clone(), true
}

// Schedules returns a copy of the flat schedule map.
func (s *Store) Schedules() map[study.ScheduleKey]study.SubjectSchedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := maps.Clone(s.schedules)
	for k, v := range out {
		out[k] = v.Clone()
	}
	return out
}

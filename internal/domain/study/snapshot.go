package study

// Snapshot is the full persisted state of one user. Its JSON form is the
// durable serialization contract.
type Snapshot struct {
	Months               []Month   `json:"months"`
	Subjects             []Subject `json:"subjects"`
	Sessions             []Session `json:"sessions"`
	Settings             Settings  `json:"settings"`
	ActiveScheduleMonths []string  `json:"activeScheduleMonths"`
}

func EmptySnapshot() Snapshot {
	return Snapshot{
		Months:               []Month{},
		Subjects:             []Subject{},
		Sessions:             []Session{},
		Settings:             DefaultSettings(),
		ActiveScheduleMonths: []string{},
	}
}

// Normalize replaces nil collections with empty ones so that a decoded
// snapshot compares equal to the one that was encoded.
func (s *Snapshot) Normalize() {
	if s.Months == nil {
		s.Months = []Month{}
	}
	if s.Subjects == nil {
		s.Subjects = []Subject{}
	}
	if s.Sessions == nil {
		s.Sessions = []Session{}
	}
	if s.ActiveScheduleMonths == nil {
		s.ActiveScheduleMonths = []string{}
	}
	for i := range s.Subjects {
		sub := &s.Subjects[i]
		if sub.Subtopics == nil {
			sub.Subtopics = []Subtopic{}
		}
		if sub.Schedules == nil {
			sub.Schedules = map[string]SubjectSchedule{}
		}
		for k, sched := range sub.Schedules {
			if sched.PlannedDays == nil {
				sched.PlannedDays = []string{}
				sub.Schedules[k] = sched
			}
		}
	}
	for i := range s.Sessions {
		if s.Sessions[i].Status == "" {
			s.Sessions[i].Status = SessionCompleted
		}
	}
	if s.Settings == (Settings{}) {
		s.Settings = DefaultSettings()
	}
}

package study

// ScheduleKey addresses one schedule entry. Presence of an entry under a key
// means the subject is scheduled for that calendar month.
type ScheduleKey struct {
	SubjectID string
	MonthKey  string
}

type SubjectSchedule struct {
	MonthlyGoal int      `json:"monthlyGoal"`
	PlannedDays []string `json:"plannedDays"`
	IsCompleted bool     `json:"isCompleted"`
	Notes       string   `json:"notes,omitempty"`
}

// NewSubjectSchedule is the entry created when a subject is first scheduled.
func NewSubjectSchedule() SubjectSchedule {
	return SubjectSchedule{PlannedDays: []string{}}
}

// Clone copies the schedule including its planned days.
func (s SubjectSchedule) Clone() SubjectSchedule {
	out := s
	out.PlannedDays = make([]string, len(s.PlannedDays))
	copy(out.PlannedDays, s.PlannedDays)
	return out
}

// HasPlannedDay reports whether dateKey is planned.
func (s SubjectSchedule) HasPlannedDay(dateKey string) bool {
	for _, d := range s.PlannedDays {
		if d == dateKey {
			return true
		}
	}
	return false
}

// SchedulePatch carries a partial update. Nil fields are left untouched.
type SchedulePatch struct {
	MonthlyGoal *int     `json:"monthlyGoal,omitempty"`
	PlannedDays []string `json:"plannedDays,omitempty"`
	IsCompleted *bool    `json:"isCompleted,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

func (p SchedulePatch) Apply(s SubjectSchedule) SubjectSchedule {
	out := s.Clone()
	if p.MonthlyGoal != nil {
		out.MonthlyGoal = *p.MonthlyGoal
	}
	if p.PlannedDays != nil {
		out.PlannedDays = dedupe(p.PlannedDays)
	}
	if p.IsCompleted != nil {
		out.IsCompleted = *p.IsCompleted
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

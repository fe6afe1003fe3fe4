package testutil

import (
	study "github.com/yungbote/studyhours-backend/internal/domain/study"
)

// RichSnapshot has two months, three subjects with schedules and five
// sessions, including an incomplete one and an unassigned subject.
func RichSnapshot() study.Snapshot {
	return study.Snapshot{
		Months: []study.Month{
			{ID: "m-jan", Name: "Janeiro", Year: 2025},
			{ID: "m-feb", Name: "Fevereiro", Year: 2025},
		},
		Subjects: []study.Subject{
			{
				ID: "s-cardio", Title: "Cardiologia", Color: "hsl(10, 70%, 50%)", CreatedAt: 1735700000000, MonthID: "m-jan",
				Subtopics: []study.Subtopic{
					{ID: "t1", Title: "Arritmias", IsCompleted: true},
					{ID: "t2", Title: "Insuficiência cardíaca"},
				},
				Schedules: map[string]study.SubjectSchedule{
					"2025-01": {MonthlyGoal: 12, PlannedDays: []string{"2025-01-20", "2025-01-03", "2025-01-11"}, Notes: "revisar ECG"},
					"2025-02": {MonthlyGoal: 4, PlannedDays: []string{}, IsCompleted: true},
				},
			},
			{
				ID: "s-pneumo", Title: "Pneumologia", Color: "hsl(200, 70%, 50%)", CreatedAt: 1735800000000, MonthID: "m-feb",
				Subtopics: []study.Subtopic{},
				Schedules: map[string]study.SubjectSchedule{
					"2025-02": {MonthlyGoal: 8, PlannedDays: []string{"2025-02-14"}},
				},
			},
			{
				ID: "s-free", Title: "Farmacologia", Color: "hsl(300, 70%, 50%)", CreatedAt: 1735900000000,
				Subtopics: []study.Subtopic{{ID: "t3", Title: "Antibióticos"}},
				Schedules: map[string]study.SubjectSchedule{
					"2025-01": {PlannedDays: []string{}},
				},
			},
		},
		Sessions: []study.Session{
			{ID: "x1", SubjectID: "s-cardio", Duration: 3600, Date: "2025-01-03", StartTime: 1735898400000, Status: study.SessionCompleted},
			{ID: "x2", SubjectID: "s-cardio", Duration: 1500, Date: "2025-01-04", StartTime: 1735984800000, Status: study.SessionIncomplete},
			{ID: "x3", SubjectID: "s-pneumo", Duration: 5400, Date: "2025-02-14", StartTime: 1739530800000, Status: study.SessionCompleted},
			{ID: "x4", SubjectID: "s-free", Duration: 900, Date: "2025-01-11", StartTime: 1736589600000, Status: study.SessionCompleted},
			{ID: "x5", SubjectID: "s-cardio", Duration: 7200, Date: "2025-01-20", StartTime: 1737370800000, Status: study.SessionCompleted},
		},
		Settings: study.Settings{
			PomodoroDuration:   50,
			UserName:           "Ana",
			HealthDegree:       study.DegreeNursing,
			FinalGoal:          "Residência",
			MonthlyGoalHours:   60,
			ShortBreakDuration: 10,
		},
		ActiveScheduleMonths: []string{"2025-02", "2025-01"},
	}
}

package stats

import (
	"math"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
	"github.com/yungbote/studyhours-backend/internal/pkg/dateutil"
)

type ScheduleStats struct {
	SubjectCount      int     `json:"subjectCount"`
	Progress          float64 `json:"progress"`
	TotalGoalHours    int     `json:"totalGoalHours"`
	TotalStudiedHours float64 `json:"totalStudiedHours"`
}

// ScheduleMonthStats summarizes one calendar month of the schedule. Progress
// is studied/goal capped at 100, except that it is forced to 100 when every
// scheduled subject has been marked complete.
func ScheduleMonthStats(
	monthKey string,
	subjects []study.Subject,
	schedules map[study.ScheduleKey]study.SubjectSchedule,
	sessions []study.Session,
) ScheduleStats {
	scheduled := map[string]struct{}{}
	out := ScheduleStats{}
	completed := 0
	for _, sub := range subjects {
		sched, ok := schedules[study.ScheduleKey{SubjectID: sub.ID, MonthKey: monthKey}]
		if !ok {
			continue
		}
		scheduled[sub.ID] = struct{}{}
		out.SubjectCount++
		out.TotalGoalHours += sched.MonthlyGoal
		if sched.IsCompleted {
			completed++
		}
	}

	studied := 0
	for _, s := range sessions {
		if !s.IsCompleted() || dateutil.MonthOfDateKey(s.Date) != monthKey {
			continue
		}
		if _, ok := scheduled[s.SubjectID]; ok {
			studied += s.Duration
		}
	}
	out.TotalStudiedHours = float64(studied) / secondsPerHour

	if out.TotalGoalHours > 0 {
		out.Progress = math.Min(100, 100*out.TotalStudiedHours/float64(out.TotalGoalHours))
	}
	if out.SubjectCount > 0 && completed == out.SubjectCount {
		out.Progress = 100
	}
	return out
}

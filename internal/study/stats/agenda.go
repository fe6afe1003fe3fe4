package stats

import (
	"math"
	"sort"
	"time"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
	"github.com/yungbote/studyhours-backend/internal/pkg/dateutil"
)

// DefaultPlannedSeconds is used for a planned day when the schedule has no
// goal or no planned days to spread it over.
const DefaultPlannedSeconds = 3600

// PlannedSecondsPerDay spreads the monthly goal evenly over the planned days.
func PlannedSecondsPerDay(sched study.SubjectSchedule) int {
	if sched.MonthlyGoal <= 0 || len(sched.PlannedDays) == 0 {
		return DefaultPlannedSeconds
	}
	return sched.MonthlyGoal * 3600 / len(sched.PlannedDays)
}

type AgendaEvent struct {
	SubjectID      string `json:"subjectId"`
	Title          string `json:"title"`
	Color          string `json:"color"`
	PlannedSeconds int    `json:"plannedSeconds"`
	Done           bool   `json:"done"`
}

type AgendaDay struct {
	Date   string        `json:"date"`
	Events []AgendaEvent `json:"events"`
}

type Agenda struct {
	MonthKey          string      `json:"monthKey"`
	Days              []AgendaDay `json:"days"`
	TotalPlannedHours int         `json:"totalPlannedHours"`
	StudiedHours      float64     `json:"studiedHours"`
	Progress          float64     `json:"progress"`
}

// PlannedAgenda groups every planned (day, subject) pair of a calendar month
// by date. An event is done when a completed session for that subject exists
// on that day.
func PlannedAgenda(
	monthKey string,
	subjects []study.Subject,
	schedules map[study.ScheduleKey]study.SubjectSchedule,
	sessions []study.Session,
) Agenda {
	type daySubject struct{ date, subjectID string }
	doneOn := map[daySubject]bool{}
	studied := 0
	for _, s := range sessions {
		if !s.IsCompleted() {
			continue
		}
		doneOn[daySubject{s.Date, s.SubjectID}] = true
		if dateutil.MonthOfDateKey(s.Date) == monthKey {
			studied += s.Duration
		}
	}

	out := Agenda{MonthKey: monthKey, Days: []AgendaDay{}}
	byDate := map[string][]AgendaEvent{}
	for _, sub := range subjects {
		sched, ok := schedules[study.ScheduleKey{SubjectID: sub.ID, MonthKey: monthKey}]
		if !ok {
			continue
		}
		out.TotalPlannedHours += sched.MonthlyGoal
		perDay := PlannedSecondsPerDay(sched)
		for _, date := range sched.PlannedDays {
			byDate[date] = append(byDate[date], AgendaEvent{
				SubjectID:      sub.ID,
				Title:          sub.Title,
				Color:          sub.Color,
				PlannedSeconds: perDay,
				Done:           doneOn[daySubject{date, sub.ID}],
			})
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		out.Days = append(out.Days, AgendaDay{Date: d, Events: byDate[d]})
	}

	out.StudiedHours = float64(studied) / secondsPerHour
	if out.TotalPlannedHours > 0 {
		out.Progress = math.Min(100, 100*out.StudiedHours/float64(out.TotalPlannedHours))
	}
	return out
}

type TodaySummary struct {
	Date           string  `json:"date"`
	Sessions       int     `json:"sessions"`
	StudiedSeconds int     `json:"studiedSeconds"`
	TotalHours     float64 `json:"totalHours"`
}

// Today reports completed study time for the local day of now plus the
// all-time completed total.
func Today(sessions []study.Session, now time.Time) TodaySummary {
	out := TodaySummary{Date: dateutil.DateKey(now)}
	total := 0
	for _, s := range sessions {
		if !s.IsCompleted() {
			continue
		}
		total += s.Duration
		if s.Date == out.Date {
			out.Sessions++
			out.StudiedSeconds += s.Duration
		}
	}
	out.TotalHours = float64(total) / secondsPerHour
	return out
}

type SubjectShare struct {
	SubjectID string  `json:"subjectId"`
	Title     string  `json:"title"`
	Color     string  `json:"color"`
	Hours     float64 `json:"hours"`
	Share     float64 `json:"share"`
}

// SubjectShares ranks subjects by completed hours, each with its percentage
// of the overall total.
func SubjectShares(subjects []study.Subject, sessions []study.Session) []SubjectShare {
	return shares(subjects, sessions, func(study.Session) bool { return true })
}

func shares(subjects []study.Subject, sessions []study.Session, keep func(study.Session) bool) []SubjectShare {
	seconds := map[string]int{}
	total := 0
	for _, s := range sessions {
		if !s.IsCompleted() || !keep(s) {
			continue
		}
		seconds[s.SubjectID] += s.Duration
		total += s.Duration
	}
	out := make([]SubjectShare, 0, len(subjects))
	for _, sub := range subjects {
		sh := SubjectShare{
			SubjectID: sub.ID,
			Title:     sub.Title,
			Color:     sub.Color,
			Hours:     float64(seconds[sub.ID]) / secondsPerHour,
		}
		if total > 0 {
			sh.Share = 100 * float64(seconds[sub.ID]) / float64(total)
		}
		out = append(out, sh)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Hours > out[j].Hours })
	return out
}

type CalendarMonthSummary struct {
	MonthKey     string         `json:"monthKey"`
	TotalSeconds int            `json:"totalSeconds"`
	TotalHours   float64        `json:"totalHours"`
	GoalHours    int            `json:"goalHours"`
	GoalProgress float64        `json:"goalProgress"`
	Subjects     []SubjectShare `json:"subjects"`
}

// CalendarMonth summarizes completed study in a calendar month against the
// user's monthly hour goal. Subjects without time that month are omitted.
func CalendarMonth(monthKey string, subjects []study.Subject, sessions []study.Session, goalHours int) CalendarMonthSummary {
	inMonth := func(s study.Session) bool { return dateutil.MonthOfDateKey(s.Date) == monthKey }
	out := CalendarMonthSummary{MonthKey: monthKey, GoalHours: goalHours, Subjects: []SubjectShare{}}
	for _, s := range sessions {
		if s.IsCompleted() && inMonth(s) {
			out.TotalSeconds += s.Duration
		}
	}
	out.TotalHours = float64(out.TotalSeconds) / secondsPerHour
	if goalHours > 0 {
		out.GoalProgress = math.Min(100, 100*out.TotalHours/float64(goalHours))
	}
	for _, sh := range shares(subjects, sessions, inMonth) {
		if sh.Hours > 0 {
			out.Subjects = append(out.Subjects, sh)
		}
	}
	return out
}

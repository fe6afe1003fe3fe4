package stats

import (
	"strings"
	"time"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
	"github.com/yungbote/studyhours-backend/internal/pkg/dateutil"
)

type Streaks struct {
	CurrentStreak   int                `json:"currentStreak"`
	LongestStreak   int                `json:"longestStreak"`
	TotalActiveDays int                `json:"totalActiveDays"`
	DayMap          map[string]float64 `json:"dayMap"`
}

// DayMinutes maps each date key to the minutes logged that day, across all
// sessions whatever their status.
func DayMinutes(sessions []study.Session) map[string]float64 {
	days := make(map[string]float64)
	for _, s := range sessions {
		day, _, _ := strings.Cut(s.Date, "T")
		days[day] += float64(s.Duration) / 60
	}
	return days
}

// CalculateStreaks walks the day map around now (in now's location).
//
// The current streak counts back from today, or from yesterday when nothing
// has been logged today yet but yesterday was active. The longest streak is
// the longest active run inside the rolling one-year window ending today.
func CalculateStreaks(sessions []study.Session, now time.Time) Streaks {
	days := DayMinutes(sessions)
	active := func(t time.Time) bool { return days[dateutil.DateKey(t)] > 0 }

	out := Streaks{DayMap: days, TotalActiveDays: len(days)}

	cursor := now
	if yesterday := dateutil.AddDays(now, -1); !active(now) && active(yesterday) {
		cursor = yesterday
	}
	for active(cursor) {
		out.CurrentStreak++
		cursor = dateutil.AddDays(cursor, -1)
	}

	run := 0
	for _, day := range dateutil.EnumerateDays(dateutil.RollingYearWindow(now)) {
		if active(day) {
			run++
			continue
		}
		out.LongestStreak = max(out.LongestStreak, run)
		run = 0
	}
	out.LongestStreak = max(out.LongestStreak, run)
	return out
}

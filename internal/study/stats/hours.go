// Package stats derives read-side views from the raw study collections.
// Nothing here mutates its inputs.
//
// Hour totals only count completed sessions. The per-day minute map used for
// streaks and the heatmap counts every session regardless of status; the two
// are kept apart on purpose until the product decides otherwise.
package stats

import (
	"math"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
)

const secondsPerHour = 3600.0

// TotalHoursForSubject sums completed session time for one subject.
func TotalHoursForSubject(subjectID string, sessions []study.Session) float64 {
	total := 0
	for _, s := range sessions {
		if s.SubjectID == subjectID && s.IsCompleted() {
			total += s.Duration
		}
	}
	return float64(total) / secondsPerHour
}

// SessionsOnDate returns the sessions whose date key equals dateKey.
func SessionsOnDate(dateKey string, sessions []study.Session) []study.Session {
	out := []study.Session{}
	for _, s := range sessions {
		if s.Date == dateKey {
			out = append(out, s)
		}
	}
	return out
}

// MonthProgress is the rounded share of completed subtopics across the
// subjects of a Month. It is 0 when those subjects have no subtopics.
func MonthProgress(monthID string, subjects []study.Subject) int {
	total, done := 0, 0
	for _, sub := range subjects {
		if sub.MonthID != monthID {
			continue
		}
		total += len(sub.Subtopics)
		done += sub.CompletedSubtopics()
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

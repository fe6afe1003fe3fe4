package stats

import (
	"time"

	"github.com/yungbote/studyhours-backend/internal/pkg/dateutil"
)

// IntensityLevel buckets minutes into heatmap levels:
// 0 for none, then <30, <60, <120 and the rest.
func IntensityLevel(minutes float64) int {
	switch {
	case minutes == 0:
		return 0
	case minutes < 30:
		return 1
	case minutes < 60:
		return 2
	case minutes < 120:
		return 3
	default:
		return 4
	}
}

type DayStat struct {
	Date    string  `json:"date"`
	Minutes float64 `json:"minutes"`
	Level   int     `json:"level"`
}

// Heatmap lays the day map over the rolling year ending at now, one cell per
// day in chronological order.
func Heatmap(dayMap map[string]float64, now time.Time) []DayStat {
	days := dateutil.EnumerateDays(dateutil.RollingYearWindow(now))
	out := make([]DayStat, 0, len(days))
	for _, d := range days {
		key := dateutil.DateKey(d)
		minutes := dayMap[key]
		out = append(out, DayStat{Date: key, Minutes: minutes, Level: IntensityLevel(minutes)})
	}
	return out
}

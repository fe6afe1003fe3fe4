// Package dateutil holds calendar helpers keyed on local dates.
//
// Every key is built from the year/month/day components of the time value in
// its own location. Values are never normalized to UTC first, since that moves
// late-evening timestamps onto the next day in zones west of UTC (and early
// morning ones onto the previous day east of it).
package dateutil

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// DateKey formats t as YYYY-MM-DD using t's own location.
func DateKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// MonthKey formats t as YYYY-MM using t's own location.
func MonthKey(t time.Time) string {
	y, m, _ := t.Date()
	return fmt.Sprintf("%04d-%02d", y, int(m))
}

// ParseDateKey returns local midnight of key in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	return t, nil
}

// ParseMonthKey returns the first day of the month key in loc.
func ParseMonthKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(MonthLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse month key %q: %w", key, err)
	}
	return t, nil
}

func IsDateKey(key string) bool {
	if len(key) != len(DateLayout) {
		return false
	}
	_, err := ParseDateKey(key, time.UTC)
	return err == nil
}

func IsMonthKey(key string) bool {
	if len(key) != len(MonthLayout) {
		return false
	}
	_, err := time.Parse(MonthLayout, key)
	return err == nil
}

// MonthOfDateKey returns the YYYY-MM prefix of a date key.
func MonthOfDateKey(dateKey string) string {
	if len(dateKey) < len(MonthLayout) {
		return ""
	}
	return dateKey[:len(MonthLayout)]
}

// StartOfDay truncates t to local midnight without leaving its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves t by n calendar days. Wall clock is kept across DST changes.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// EnumerateDays returns every local day from start to end inclusive, each at
// local midnight. The result is empty when start falls after end.
func EnumerateDays(start, end time.Time) []time.Time {
	from := StartOfDay(start)
	to := StartOfDay(end.In(start.Location()))
	if from.After(to) {
		return nil
	}
	days := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+2)
	for d := from; !d.After(to); d = AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// RollingYearWindow returns (ref minus one calendar year, ref), both inclusive.
func RollingYearWindow(ref time.Time) (time.Time, time.Time) {
	return ref.AddDate(-1, 0, 0), ref
}

// DaysInMonth lists the date keys of a YYYY-MM month in order.
func DaysInMonth(monthKey string) ([]string, error) {
	first, err := ParseMonthKey(monthKey, time.UTC)
	if err != nil {
		return nil, err
	}
	last := first.AddDate(0, 1, -1)
	days := EnumerateDays(first, last)
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, DateKey(d))
	}
	return out, nil
}

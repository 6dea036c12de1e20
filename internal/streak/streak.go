// Package streak derives consecutive-day streaks and frequency statistics
// from a user's workout dates.
//
// All date arithmetic works on local calendar days built explicitly from
// year/month/day components. Parsing a "YYYY-MM-DD" string through a
// generic date parser yields a UTC midnight that can land on the previous
// local day and shift every calculation by one; ParseDay avoids that by
// construction.
package streak

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ParseDay parses a "YYYY-MM-DD" string into a local-midnight time.Time by
// splitting it into integer components. It never delegates to time.Parse.
func ParseDay(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid day %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year in %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month in %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day-of-month in %q", s)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// FormatDay renders a time as its YYYY-MM-DD day string.
func FormatDay(t time.Time) string {
	return t.Format("2006-01-02")
}

// daysBetween returns the whole calendar days from a to b (b after a is
// positive). Both are expected to be local midnights from ParseDay; the
// rounding absorbs the 23/25-hour days around DST transitions.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// Stats holds the derived streak and frequency numbers for one user.
type Stats struct {
	CurrentStreak  int    `json:"current_streak"`
	LongestStreak  int    `json:"longest_streak"`
	ThisWeek       int    `json:"workouts_this_week"`
	ThisMonth      int    `json:"workouts_this_month"`
	TotalWorkouts  int    `json:"total_workouts"`
	ByWeekday      [7]int `json:"by_weekday"` // Sunday..Saturday
	LastWorkoutDay string `json:"last_workout_day,omitempty"`
}

// Compute derives all statistics from the given workout day strings
// relative to "today". Unparseable entries are skipped; duplicates count
// once for streaks but every entry counts toward frequency totals.
func Compute(dayStrings []string, today time.Time) Stats {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)

	var days []time.Time
	for _, s := range dayStrings {
		d, err := ParseDay(s)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	stats := Stats{
		CurrentStreak: currentStreak(days, today),
		LongestStreak: longestStreak(days),
		TotalWorkouts: len(days),
	}
	if len(days) > 0 {
		stats.LastWorkoutDay = FormatDay(days[len(days)-1])
	}

	weekStart := startOfWeek(today)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.Local)
	for _, d := range days {
		if !d.Before(weekStart) {
			stats.ThisWeek++
		}
		if !d.Before(monthStart) {
			stats.ThisMonth++
		}
		stats.ByWeekday[int(d.Weekday())]++
	}
	return stats
}

// currentStreak walks backward from the most recent workout day. The
// streak is active only if that day is today or yesterday; from there a
// one-day gap extends it, a duplicate day is skipped, and any larger gap
// ends the walk.
func currentStreak(sorted []time.Time, today time.Time) int {
	if len(sorted) == 0 {
		return 0
	}
	latest := sorted[len(sorted)-1]
	if daysBetween(latest, today) > 1 {
		return 0
	}

	streak := 1
	for i := len(sorted) - 2; i >= 0; i-- {
		gap := daysBetween(sorted[i], sorted[i+1])
		switch {
		case gap == 0:
			continue
		case gap == 1:
			streak++
		default:
			return streak
		}
	}
	return streak
}

// longestStreak is a single forward pass independent of today: consecutive
// days extend the run, duplicates are ignored, anything else resets it.
func longestStreak(sorted []time.Time) int {
	if len(sorted) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		switch daysBetween(sorted[i-1], sorted[i]) {
		case 0:
			continue
		case 1:
			run++
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// startOfWeek returns the most recent Sunday at local midnight.
func startOfWeek(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(day.Weekday()))
}

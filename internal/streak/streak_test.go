package streak

import (
	"testing"
	"time"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDay(s)
	if err != nil {
		t.Fatalf("ParseDay(%q): %v", s, err)
	}
	return d
}

func TestParseDayLocalMidnight(t *testing.T) {
	d := day(t, "2025-01-03")
	if d.Year() != 2025 || d.Month() != time.January || d.Day() != 3 {
		t.Errorf("ParseDay = %v, want 2025-01-03", d)
	}
	if d.Hour() != 0 || d.Location() != time.Local {
		t.Errorf("ParseDay = %v, want local midnight", d)
	}
}

func TestParseDayRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "2025-01", "2025/01/03", "abcd-ef-gh", "2025-1-2-3"} {
		if _, err := ParseDay(s); err == nil {
			t.Errorf("ParseDay(%q) = nil error, want failure", s)
		}
	}
}

func TestComputeStreaks(t *testing.T) {
	tests := []struct {
		name         string
		days         []string
		today        string
		wantCurrent  int
		wantLongest  int
	}{
		{
			name:        "three consecutive days ending today",
			days:        []string{"2025-01-01", "2025-01-02", "2025-01-03"},
			today:       "2025-01-03",
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "gap breaks continuation",
			days:        []string{"2025-01-01", "2025-01-05"},
			today:       "2025-01-05",
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "streak still active if last workout was yesterday",
			days:        []string{"2025-01-02", "2025-01-03"},
			today:       "2025-01-04",
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "streak broken after two idle days",
			days:        []string{"2025-01-01", "2025-01-02"},
			today:       "2025-01-05",
			wantCurrent: 0,
			wantLongest: 2,
		},
		{
			name:        "duplicate dates are a no-op continuation",
			days:        []string{"2025-01-01", "2025-01-02", "2025-01-02", "2025-01-03"},
			today:       "2025-01-03",
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "longest streak in the past beats current",
			days:        []string{"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-10", "2025-01-11"},
			today:       "2025-01-11",
			wantCurrent: 2,
			wantLongest: 4,
		},
		{
			name:        "unsorted input",
			days:        []string{"2025-01-03", "2025-01-01", "2025-01-02"},
			today:       "2025-01-03",
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "month boundary",
			days:        []string{"2025-01-31", "2025-02-01"},
			today:       "2025-02-01",
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "no workouts",
			days:        nil,
			today:       "2025-01-03",
			wantCurrent: 0,
			wantLongest: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.days, day(t, tt.today))
			if got.CurrentStreak != tt.wantCurrent {
				t.Errorf("current streak = %d, want %d", got.CurrentStreak, tt.wantCurrent)
			}
			if got.LongestStreak != tt.wantLongest {
				t.Errorf("longest streak = %d, want %d", got.LongestStreak, tt.wantLongest)
			}
		})
	}
}

func TestComputeFrequency(t *testing.T) {
	// 2025-06-18 is a Wednesday; the week started Sunday 2025-06-15.
	days := []string{
		"2025-05-30", // previous month
		"2025-06-02", // this month, before this week
		"2025-06-15", // Sunday, this week
		"2025-06-17", // Tuesday, this week
	}
	got := Compute(days, day(t, "2025-06-18"))

	if got.ThisWeek != 2 {
		t.Errorf("this week = %d, want 2", got.ThisWeek)
	}
	if got.ThisMonth != 3 {
		t.Errorf("this month = %d, want 3", got.ThisMonth)
	}
	if got.TotalWorkouts != 4 {
		t.Errorf("total = %d, want 4", got.TotalWorkouts)
	}
	if got.ByWeekday[time.Sunday] != 1 || got.ByWeekday[time.Tuesday] != 1 || got.ByWeekday[time.Friday] != 1 || got.ByWeekday[time.Monday] != 1 {
		t.Errorf("weekday histogram = %v", got.ByWeekday)
	}
	if got.LastWorkoutDay != "2025-06-17" {
		t.Errorf("last workout day = %q, want 2025-06-17", got.LastWorkoutDay)
	}
}

func TestComputeSkipsUnparseableDates(t *testing.T) {
	got := Compute([]string{"2025-01-02", "not-a-date", "2025-01-03"}, day(t, "2025-01-03"))
	if got.CurrentStreak != 2 || got.TotalWorkouts != 2 {
		t.Errorf("stats = %+v, want the bad entry skipped", got)
	}
}

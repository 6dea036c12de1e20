// Package history parses workout-history CSV exports and replays them
// into sessions, sets, and personal records.
package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/streak"
)

// Session is one imported workout day.
type Session struct {
	Date string
	Name string
	Sets []models.SetEntry
}

// expected CSV columns, by header name (case-insensitive).
var columns = []string{"date", "workout", "exercise", "equipment", "set", "weight", "unit", "reps"}

// Parse reads a workout-history CSV export. The first row must be a
// header naming at least date/exercise/set/weight/reps; rows are grouped
// into sessions by date. Rows with an unparseable date or set number are
// rejected, the rest of the line-level oddities (missing equipment or
// unit) are tolerated.
func Parse(r io.Reader) ([]Session, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*Session)
	var order []string

	for lineNum := 2; ; lineNum++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		date := field(rec, idx["date"])
		if _, err := streak.ParseDay(date); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		setNum, err := strconv.Atoi(field(rec, idx["set"]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid set number %q", lineNum, field(rec, idx["set"]))
		}
		reps, err := strconv.Atoi(field(rec, idx["reps"]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid reps %q", lineNum, field(rec, idx["reps"]))
		}

		s, ok := byDate[date]
		if !ok {
			s = &Session{Date: date, Name: field(rec, idx["workout"])}
			byDate[date] = s
			order = append(order, date)
		}

		s.Sets = append(s.Sets, models.SetEntry{
			SessionDate: date,
			Exercise:    field(rec, idx["exercise"]),
			Equipment:   field(rec, idx["equipment"]),
			SetNumber:   setNum,
			Weight:      parseWeight(field(rec, idx["weight"])),
			Unit:        field(rec, idx["unit"]),
			Reps:        reps,
		})
	}

	sessions := make([]Session, 0, len(order))
	for _, date := range order {
		sessions = append(sessions, *byDate[date])
	}
	return sessions, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(columns))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"date", "exercise", "set", "weight", "reps"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return idx, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parseWeight tolerates European decimal commas ("102,5" -> 102.5).
func parseWeight(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// Package records decides whether a logged set establishes a new personal
// record. Records are scoped per (exercise, equipment) pair and track three
// independent maxima: max weight, max reps, and max volume. A single set
// can beat several maxima at once; only beaten maxima are overwritten.
package records

import (
	"sort"

	"github.com/claude/liftlog/internal/models"
)

// Updates reports which maxima a set beat.
type Updates struct {
	Weight bool `json:"weight"`
	Reps   bool `json:"reps"`
	Volume bool `json:"volume"`
}

// Any reports whether at least one maximum was beaten.
func (u Updates) Any() bool {
	return u.Weight || u.Reps || u.Volume
}

// Apply checks one logged set against the stored record and overwrites the
// maxima it beats, stamping them with the set's date and location.
//
// Tie-breaks: equal weight with more reps beats the max-weight mark, and
// equal reps with more weight beats the max-reps mark. Volume requires a
// strictly greater product, so replaying an identical set changes nothing.
func Apply(rec *models.PersonalRecord, set models.SetEntry) Updates {
	var u Updates

	if set.Weight > rec.MaxWeight.Weight ||
		(set.Weight == rec.MaxWeight.Weight && set.Reps > rec.MaxWeight.Reps) {
		rec.MaxWeight = mark(set, 0)
		u.Weight = true
	}

	if set.Reps > rec.MaxReps.Reps ||
		(set.Reps == rec.MaxReps.Reps && set.Weight > rec.MaxReps.Weight) {
		rec.MaxReps = mark(set, 0)
		u.Reps = true
	}

	if set.Volume() > rec.MaxVolume.Volume {
		rec.MaxVolume = mark(set, set.Volume())
		u.Volume = true
	}

	return u
}

func mark(set models.SetEntry, volume float64) models.RecordMark {
	return models.RecordMark{
		Weight:   set.Weight,
		Reps:     set.Reps,
		Volume:   volume,
		Date:     set.SessionDate,
		Location: set.Location,
	}
}

// minShowcaseReps filters near-failure singles and doubles out of the
// recent-PRs display.
const minShowcaseReps = 5

// Recent returns the records whose max-weight mark has at least five reps,
// sorted by achievement date descending. Low-rep maxima still count as
// records; they are just not showcased.
func Recent(recs []models.PersonalRecord) []models.PersonalRecord {
	var out []models.PersonalRecord
	for _, r := range recs {
		if r.MaxWeight.Reps >= minShowcaseReps {
			out = append(out, r)
		}
	}
	// Date strings are YYYY-MM-DD so lexicographic order is chronological.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MaxWeight.Date > out[j].MaxWeight.Date
	})
	return out
}

// Package catalog produces the effective exercise catalog for a user by
// layering four independently stored collections: global defaults, the
// user's custom exercises, per-exercise overrides of defaults, and hidden
// markers. The merge is pure and deterministic; storage access lives in
// the Loader.
package catalog

import (
	"strings"

	"github.com/claude/liftlog/internal/models"
)

// UnnamedExercise is the placeholder used when an entry has neither a name
// nor a machine label.
const UnnamedExercise = "Unnamed Exercise"

// Normalize applies the canonical name fallback chain once, at ingestion:
// a missing name falls back to the machine field, then to the placeholder.
func Normalize(e *models.Exercise) {
	if e.Name == "" {
		e.Name = e.Machine
	}
	if e.Name == "" {
		e.Name = UnnamedExercise
	}
}

// Slug derives the deterministic override id from an exercise name:
// lower-cased, spaces collapsed to single hyphens, other punctuation
// dropped. Two differently-cased names normalize to the same slug; that
// collision is a known limitation and is not resolved here.
func Slug(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Resolve merges the four catalog layers into the user's effective view.
//
// Overrides are matched to defaults by original id first, then by
// case-insensitive original name. A matched default is shallow-overwritten
// by the override's non-zero fields, flagged IsOverridden, and keeps a
// back-reference to the pristine default. Merged defaults are concatenated
// with the customs, then any entry whose id or lower-cased name appears in
// the hidden set is dropped. Input order is preserved.
func Resolve(defaults, customs []models.Exercise, overrides []models.ExerciseOverride, hidden []models.HiddenMarker) []models.Exercise {
	byID := make(map[string]*models.ExerciseOverride, len(overrides))
	byName := make(map[string]*models.ExerciseOverride, len(overrides))
	for i := range overrides {
		o := &overrides[i]
		if o.OriginalID != "" {
			byID[o.OriginalID] = o
		}
		if o.OriginalName != "" {
			byName[strings.ToLower(o.OriginalName)] = o
		}
	}

	hiddenIDs := make(map[string]bool, len(hidden))
	hiddenNames := make(map[string]bool, len(hidden))
	for _, h := range hidden {
		if h.ExerciseID != "" {
			hiddenIDs[h.ExerciseID] = true
		}
		if h.Name != "" {
			hiddenNames[strings.ToLower(h.Name)] = true
		}
	}

	merged := make([]models.Exercise, 0, len(defaults)+len(customs))
	for _, d := range defaults {
		Normalize(&d)
		d.IsDefault = true
		o := byID[d.ID]
		if o == nil {
			o = byName[strings.ToLower(d.Name)]
		}
		if o != nil {
			merged = append(merged, applyOverride(d, o))
		} else {
			merged = append(merged, d)
		}
	}
	for _, c := range customs {
		Normalize(&c)
		c.IsCustom = true
		merged = append(merged, c)
	}

	if len(hiddenIDs) == 0 && len(hiddenNames) == 0 {
		return merged
	}
	visible := merged[:0]
	for _, e := range merged {
		if hiddenIDs[e.ID] || hiddenNames[strings.ToLower(e.Name)] {
			continue
		}
		visible = append(visible, e)
	}
	return visible
}

func applyOverride(d models.Exercise, o *models.ExerciseOverride) models.Exercise {
	pristine := d
	m := d
	if o.Name != "" {
		m.Name = o.Name
	}
	if o.BodyPart != "" {
		m.BodyPart = o.BodyPart
	}
	if o.EquipmentType != "" {
		m.EquipmentType = o.EquipmentType
	}
	if o.Sets != 0 {
		m.Sets = o.Sets
	}
	if o.Reps != 0 {
		m.Reps = o.Reps
	}
	if o.Weight != 0 {
		m.Weight = o.Weight
	}
	if o.Video != "" {
		m.Video = o.Video
	}
	m.IsOverridden = true
	m.Original = &pristine
	return m
}

// ResolveTemplates applies the same layering to workout templates: global
// defaults overridden or hidden by per-user rows, concatenated with the
// user's own templates.
func ResolveTemplates(defaults, customs []models.WorkoutTemplate) []models.WorkoutTemplate {
	overrides := make(map[string]*models.WorkoutTemplate)
	hidden := make(map[string]bool)
	for i := range customs {
		c := &customs[i]
		if c.OverrideOf != "" {
			overrides[c.OverrideOf] = c
		}
		if c.IsHidden {
			hidden[c.OverrideOf] = true
			if c.OverrideOf == "" {
				hidden[c.ID] = true
			}
		}
	}

	var out []models.WorkoutTemplate
	for _, d := range defaults {
		if hidden[d.ID] {
			continue
		}
		d.IsDefault = true
		if o, ok := overrides[d.ID]; ok && !o.IsHidden {
			merged := *o
			merged.ID = d.ID
			merged.IsDefault = true
			merged.IsCustom = false
			if merged.Name == "" {
				merged.Name = d.Name
			}
			if len(merged.Exercises) == 0 {
				merged.Exercises = d.Exercises
			}
			out = append(out, merged)
			continue
		}
		out = append(out, d)
	}
	for _, c := range customs {
		if c.OverrideOf != "" || c.IsHidden || hidden[c.ID] {
			continue
		}
		c.IsCustom = true
		out = append(out, c)
	}
	return out
}

package models

import "time"

// Exercise is one entry of the effective exercise catalog. Defaults are
// seeded globally and immutable; customs belong to a user; an overridden
// default carries the merged fields plus a back-reference to the pristine
// default it supersedes.
type Exercise struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Machine       string    `json:"machine,omitempty"`
	BodyPart      string    `json:"body_part,omitempty"`
	EquipmentType string    `json:"equipment_type,omitempty"`
	Sets          int       `json:"sets,omitempty"`
	Reps          int       `json:"reps,omitempty"`
	Weight        float64   `json:"weight,omitempty"`
	Video         string    `json:"video,omitempty"`
	IsDefault     bool      `json:"is_default,omitempty"`
	IsCustom      bool      `json:"is_custom,omitempty"`
	IsOverridden  bool      `json:"is_overridden,omitempty"`
	Original      *Exercise `json:"original,omitempty"`
}

// ExerciseOverride is a user's non-destructive replacement of a default
// exercise's fields. It references the default by id and by name because
// legacy overrides were created before defaults had stable ids.
type ExerciseOverride struct {
	ID              string    `json:"id"`
	OriginalID      string    `json:"original_id"`
	OriginalName    string    `json:"original_name"`
	Name            string    `json:"name,omitempty"`
	BodyPart        string    `json:"body_part,omitempty"`
	EquipmentType   string    `json:"equipment_type,omitempty"`
	Sets            int       `json:"sets,omitempty"`
	Reps            int       `json:"reps,omitempty"`
	Weight          float64   `json:"weight,omitempty"`
	Video           string    `json:"video,omitempty"`
	OverrideCreated time.Time `json:"override_created"`
	LastUpdated     time.Time `json:"last_updated"`
}

// HiddenMarker suppresses one catalog entry (default or custom) from the
// merged view without deleting it. Matching is by exercise id or by
// case-insensitive name.
type HiddenMarker struct {
	ID         string    `json:"id"`
	ExerciseID string    `json:"exercise_id,omitempty"`
	Name       string    `json:"name,omitempty"`
	HiddenAt   time.Time `json:"hidden_at"`
}

package models

import "time"

// WorkoutTemplate is a named ordered list of exercises with set/rep/weight
// targets. Global defaults are seeded by migration; per-user templates may
// additionally hide a default or override one (same layering as exercises).
type WorkoutTemplate struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Exercises  []TemplateExercise `json:"exercises"`
	IsDefault  bool               `json:"is_default,omitempty"`
	IsCustom   bool               `json:"is_custom,omitempty"`
	IsHidden   bool               `json:"is_hidden,omitempty"`
	OverrideOf string             `json:"override_of,omitempty"`
	CreatedAt  time.Time          `json:"created_at,omitzero"`
	UpdatedAt  time.Time          `json:"updated_at,omitzero"`
}

// TemplateExercise is one slot of a template: which exercise and the
// default targets the session editor starts from.
type TemplateExercise struct {
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight,omitempty"`
	Unit   string  `json:"unit,omitempty"`
}

package models

// RecordMark is one stored maximum with the context it was achieved in.
// Weight and Reps are both kept for every axis: the max-weight mark records
// the reps done at that weight, and the max-reps mark the weight used.
type RecordMark struct {
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
	Volume   float64 `json:"volume,omitempty"`
	Date     string  `json:"date"`
	Location string  `json:"location,omitempty"`
}

// PersonalRecord holds the three independent maxima for one
// (exercise, equipment) pair. The same exercise on different equipment
// tracks separate records.
type PersonalRecord struct {
	UserID    int        `json:"user_id"`
	Exercise  string     `json:"exercise"`
	Equipment string     `json:"equipment"`
	MaxWeight RecordMark `json:"max_weight"`
	MaxReps   RecordMark `json:"max_reps"`
	MaxVolume RecordMark `json:"max_volume"`
}

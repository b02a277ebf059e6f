package domain

import "time"

// FeedbackEntry records one (input, generated, correction) tuple. The log is
// append-only; learned mappings are derived from it.
type FeedbackEntry struct {
	Input            string    `json:"input"`
	GeneratedCommand string    `json:"generated_command"`
	CorrectedCommand string    `json:"corrected_command"`
	WasCorrect       bool      `json:"was_correct"`
	Timestamp        time.Time `json:"timestamp"`
}

// Feedback vote weights: a correct prior generation counts once, an explicit
// user correction counts double. A command is promoted to a learned mapping
// only when its weighted count reaches PromotionThreshold.
const (
	CorrectWeight      = 1
	CorrectionWeight   = 2
	PromotionThreshold = 2
)

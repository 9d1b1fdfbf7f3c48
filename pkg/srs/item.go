package srs

import "time"

// EntityType identifies which kind of study material an item wraps.
// Item IDs are unique only within their entity type.
type EntityType string

const (
	EntityVocabulary EntityType = "vocabulary"
	EntityGrammar    EntityType = "grammar"
)

// Difficulty is the learner's self-assessed difficulty for one answer.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// MaxMasteryLevel bounds the mastery scale; levels are clamped to
// [0, MaxMasteryLevel] after every update.
const MaxMasteryLevel = 10

// Item is one reviewable unit of study material. The payload type T is
// carried through untouched for display purposes; the engine never
// inspects it.
type Item[T any] struct {
	ID             int64      `json:"id"`
	EntityType     EntityType `json:"entity_type"`
	MasteryLevel   float64    `json:"mastery_level"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"` // nil when never reviewed
	NextReviewAt   *time.Time `json:"next_review_at,omitempty"`   // nil when never scheduled (due immediately)
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
	Data           T          `json:"data"`
}

// Key identifies an item across both entity types.
func (it Item[T]) Key() ItemKey {
	return ItemKey{EntityType: it.EntityType, ID: it.ID}
}

// ItemKey is the composite identity of an item. IDs alone are not unique
// across vocabulary and grammar, so results and updates are keyed by this
// pair.
type ItemKey struct {
	EntityType EntityType
	ID         int64
}

// Result is the outcome of presenting one item to the learner.
type Result struct {
	Correct    bool
	Difficulty Difficulty

	// ResponseTime is how long the learner took to answer. It feeds
	// session statistics only, never scheduling. Zero means not recorded.
	ResponseTime time.Duration
}

func clampMastery(level float64) float64 {
	if level < 0 {
		return 0
	}
	if level > MaxMasteryLevel {
		return MaxMasteryLevel
	}
	return level
}

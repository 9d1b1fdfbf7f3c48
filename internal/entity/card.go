package entity

import (
	"time"

	"github.com/eslsoft/lingodesk/pkg/srs"
)

// Vocabulary is one word entry from an imported lesson, together with its
// review scheduling state.
type Vocabulary struct {
	ID           int64       `json:"id"`
	LessonID     int64       `json:"lesson_id"`
	Word         string      `json:"word"`
	Kana         string      `json:"kana,omitempty"`
	Meaning      string      `json:"meaning,omitempty"`
	PartOfSpeech string      `json:"part_of_speech,omitempty"`
	Review       ReviewState `json:"review"`
}

// Grammar is one grammar point from an imported lesson.
type Grammar struct {
	ID          int64       `json:"id"`
	LessonID    int64       `json:"lesson_id"`
	Title       string      `json:"title"`
	Explanation string      `json:"explanation,omitempty"`
	Review      ReviewState `json:"review"`
}

// ReviewState is the spaced-repetition bookkeeping shared by vocabulary
// and grammar rows.
type ReviewState struct {
	MasteryLevel   float64    `json:"mastery_level"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	NextReviewAt   *time.Time `json:"next_review_at,omitempty"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
}

// Card is the display payload carried through a review session. Exactly one
// of Vocabulary or Grammar is set, matching the item's entity type; the
// engine never looks inside.
type Card struct {
	Vocabulary *Vocabulary `json:"vocabulary,omitempty"`
	Grammar    *Grammar    `json:"grammar,omitempty"`
}

// ReviewItem is the engine item instantiated with the app's card payload.
type ReviewItem = srs.Item[Card]

// ReviewUpdate is one persisted outcome of a review session, addressed by
// (entity type, id) because ids are only unique per table.
type ReviewUpdate struct {
	ID             int64
	EntityType     srs.EntityType
	MasteryLevel   float64
	LastReviewedAt time.Time
	NextReviewAt   time.Time
	CorrectCount   int
	IncorrectCount int
}

// ItemOf projects a vocabulary row into an engine item.
func (v *Vocabulary) ItemOf() ReviewItem {
	return ReviewItem{
		ID:             v.ID,
		EntityType:     srs.EntityVocabulary,
		MasteryLevel:   v.Review.MasteryLevel,
		LastReviewedAt: v.Review.LastReviewedAt,
		NextReviewAt:   v.Review.NextReviewAt,
		CorrectCount:   v.Review.CorrectCount,
		IncorrectCount: v.Review.IncorrectCount,
		Data:           Card{Vocabulary: v},
	}
}

// ItemOf projects a grammar row into an engine item.
func (g *Grammar) ItemOf() ReviewItem {
	return ReviewItem{
		ID:             g.ID,
		EntityType:     srs.EntityGrammar,
		MasteryLevel:   g.Review.MasteryLevel,
		LastReviewedAt: g.Review.LastReviewedAt,
		NextReviewAt:   g.Review.NextReviewAt,
		CorrectCount:   g.Review.CorrectCount,
		IncorrectCount: g.Review.IncorrectCount,
		Data:           Card{Grammar: g},
	}
}

// MasterySummary is the coarse three-bucket progress view used by the
// lesson dashboards. The engine's 0-10 scale maps onto it via the same
// thresholds as the study statistics: mastered at 7 and above, familiar
// from 3 up to 7, unknown below 3.
type MasterySummary struct {
	Total    int `json:"total"`
	Mastered int `json:"mastered"`
	Familiar int `json:"familiar"`
	Unknown  int `json:"unknown"`
}

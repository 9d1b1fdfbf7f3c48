package srs

import (
	"math"
	"time"
)

// baseIntervals is the review interval ladder in days, indexed by mastery
// level. Levels beyond the ladder reuse the last rung.
var baseIntervals = [...]int{1, 3, 7, 14, 30, 90, 180, 365}

// difficultyMultiplier scales the base interval by how hard the learner
// found the answer. Unknown values fall back to the medium factor.
func difficultyMultiplier(d Difficulty) float64 {
	switch d {
	case DifficultyEasy:
		return 1.3
	case DifficultyHard:
		return 0.6
	default:
		return 1.0
	}
}

// NextReviewAt computes when an item should be reviewed next, given its
// current mastery level and the outcome of the review that just happened.
//
// A wrong answer always schedules the item one day out, regardless of prior
// mastery. A correct answer looks up the ladder entry for the mastery level
// and stretches or shrinks it by the difficulty multiplier, rounded to whole
// days. The returned time is always at least one day after now.
func NextReviewAt(masteryLevel float64, result Result, now time.Time) time.Time {
	intervalDays := 1
	if result.Correct {
		idx := int(clampMastery(masteryLevel))
		if idx >= len(baseIntervals) {
			idx = len(baseIntervals) - 1
		}
		base := float64(baseIntervals[idx])
		intervalDays = int(math.Round(base * difficultyMultiplier(result.Difficulty)))
		if intervalDays < 1 {
			intervalDays = 1
		}
	}
	return now.AddDate(0, 0, intervalDays)
}

// NextMasteryLevel computes the item's updated mastery level. Correct
// answers raise it by a difficulty-dependent step (easy +2, medium +1,
// hard +0.5) capped at MaxMasteryLevel; wrong answers lower it by 1,
// floored at 0. Out-of-range input levels are clamped first.
func NextMasteryLevel(masteryLevel float64, result Result) float64 {
	level := clampMastery(masteryLevel)
	if !result.Correct {
		return clampMastery(level - 1)
	}

	var step float64
	switch result.Difficulty {
	case DifficultyEasy:
		step = 2
	case DifficultyHard:
		step = 0.5
	default:
		step = 1
	}
	return clampMastery(level + step)
}

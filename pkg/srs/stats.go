package srs

import (
	"time"

	"github.com/samber/lo"
)

// Mastery bucket boundaries for study statistics. An item counts as
// mastered at level 7 and above, reviewing between 3 and 7, learning
// below 3.
const (
	masteredThreshold  = 7
	reviewingThreshold = 3
)

// StudyStats summarises the learner's overall progress across all items.
type StudyStats struct {
	TotalItems     int `json:"total_items"`
	MasteredItems  int `json:"mastered_items"`
	ReviewingItems int `json:"reviewing_items"`
	LearningItems  int `json:"learning_items"`
	TodayReviews   int `json:"today_reviews"`
	Overdue        int `json:"overdue"`
}

// DailyLoad is the forecast review count for one calendar day.
type DailyLoad struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// ComputeStudyStats buckets items by mastery level and counts due and
// overdue work. The mastery buckets partition the full item set; Overdue
// counts items scheduled strictly before now, a tighter cut than the
// end-of-day rule DueToday uses.
func ComputeStudyStats[T any](items []Item[T], now time.Time) StudyStats {
	return StudyStats{
		TotalItems: len(items),
		MasteredItems: lo.CountBy(items, func(it Item[T]) bool {
			return it.MasteryLevel >= masteredThreshold
		}),
		ReviewingItems: lo.CountBy(items, func(it Item[T]) bool {
			return it.MasteryLevel >= reviewingThreshold && it.MasteryLevel < masteredThreshold
		}),
		LearningItems: lo.CountBy(items, func(it Item[T]) bool {
			return it.MasteryLevel < reviewingThreshold
		}),
		TodayReviews: len(DueToday(items, now)),
		Overdue: lo.CountBy(items, func(it Item[T]) bool {
			return it.NextReviewAt != nil && it.NextReviewAt.Before(now)
		}),
	}
}

// FutureReviewLoad forecasts how many reviews land on each of the next
// days calendar days, starting today. Items that were never scheduled
// count on day zero only. The result always has exactly days entries in
// ascending date order, zero-filled where nothing is due.
func FutureReviewLoad[T any](items []Item[T], days int, now time.Time) []DailyLoad {
	if days <= 0 {
		return []DailyLoad{}
	}

	load := make([]DailyLoad, 0, days)
	for i := 0; i < days; i++ {
		target := now.AddDate(0, 0, i)
		date := target.Format(time.DateOnly)
		count := lo.CountBy(items, func(it Item[T]) bool {
			if it.NextReviewAt == nil {
				return i == 0
			}
			return it.NextReviewAt.In(now.Location()).Format(time.DateOnly) == date
		})
		load = append(load, DailyLoad{Date: date, Count: count})
	}
	return load
}

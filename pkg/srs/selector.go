package srs

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// unscheduledOverdueDays is the overdue sentinel for items that have never
// been scheduled; it pushes them to the front of any priority ordering.
const unscheduledOverdueDays = 999

// DueToday returns the items whose review is due on or before the end of
// the current local day. Items that were never scheduled are always due.
// The relative order of qualifying items is preserved.
func DueToday[T any](items []Item[T], now time.Time) []Item[T] {
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(999*time.Millisecond), now.Location())
	return lo.Filter(items, func(it Item[T], _ int) bool {
		return it.NextReviewAt == nil || !it.NextReviewAt.After(endOfDay)
	})
}

// overdueDays reports how many days past due an item is, floored at zero.
func overdueDays[T any](it Item[T], now time.Time) float64 {
	if it.NextReviewAt == nil {
		return unscheduledOverdueDays
	}
	days := now.Sub(*it.NextReviewAt).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}

// priorityScore ranks an item for review urgency: the longer overdue and
// the less mastered, the higher the score.
func priorityScore[T any](it Item[T], now time.Time) float64 {
	return overdueDays(it, now)*2 + (MaxMasteryLevel - it.MasteryLevel)
}

// SortByPriority returns a copy of items ordered most-urgent first. Equal
// scores tie-break on ascending (entity type, id) so repeated calls on the
// same input produce the same order. The input slice is left untouched.
func SortByPriority[T any](items []Item[T], now time.Time) []Item[T] {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item[T]) int {
		sa, sb := priorityScore(a, now), priorityScore(b, now)
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		}
		if a.EntityType != b.EntityType {
			if a.EntityType < b.EntityType {
				return -1
			}
			return 1
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return sorted
}

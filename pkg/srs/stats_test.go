package srs

import (
	"testing"
	"time"
)

func TestComputeStudyStats(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	items := []Item[string]{
		{ID: 1, MasteryLevel: 9, NextReviewAt: ts(now.AddDate(0, 0, 30))},  // mastered, future
		{ID: 2, MasteryLevel: 7, NextReviewAt: ts(now.Add(-time.Hour))},    // mastered, overdue
		{ID: 3, MasteryLevel: 5, NextReviewAt: ts(now.Add(6 * time.Hour))}, // reviewing, due today
		{ID: 4, MasteryLevel: 3, NextReviewAt: ts(now.AddDate(0, 0, -3))},  // reviewing, overdue
		{ID: 5, MasteryLevel: 2},                                           // learning, never scheduled
		{ID: 6, MasteryLevel: 0, NextReviewAt: ts(now.AddDate(0, 0, 5))},   // learning, future
	}

	stats := ComputeStudyStats(items, now)
	if stats.TotalItems != 6 {
		t.Errorf("TotalItems = %d, want 6", stats.TotalItems)
	}
	if stats.MasteredItems != 2 || stats.ReviewingItems != 2 || stats.LearningItems != 2 {
		t.Errorf("buckets = %d/%d/%d, want 2/2/2", stats.MasteredItems, stats.ReviewingItems, stats.LearningItems)
	}
	if got := stats.MasteredItems + stats.ReviewingItems + stats.LearningItems; got != stats.TotalItems {
		t.Errorf("buckets sum to %d, must partition all %d items", got, stats.TotalItems)
	}
	// ids 2, 3, 4 fall within today; id 5 was never scheduled
	if stats.TodayReviews != 4 {
		t.Errorf("TodayReviews = %d, want 4", stats.TodayReviews)
	}
	// overdue uses strictly-before-now, so id 3 (due later today) is out
	if stats.Overdue != 2 {
		t.Errorf("Overdue = %d, want 2", stats.Overdue)
	}
}

func TestComputeStudyStatsEmpty(t *testing.T) {
	stats := ComputeStudyStats[string](nil, time.Now())
	if stats != (StudyStats{}) {
		t.Errorf("stats for no items = %+v, want all zeroes", stats)
	}
}

func TestFutureReviewLoad(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	items := []Item[string]{
		{ID: 1},                                                            // never scheduled: today only
		{ID: 2, NextReviewAt: ts(now.Add(4 * time.Hour))},                  // today
		{ID: 3, NextReviewAt: ts(now.AddDate(0, 0, 2))},                    // day 2
		{ID: 4, NextReviewAt: ts(now.AddDate(0, 0, 2).Add(5 * time.Hour))}, // day 2 as well
		{ID: 5, NextReviewAt: ts(now.AddDate(0, 0, 9))},                    // beyond horizon
	}

	load := FutureReviewLoad(items, 7, now)
	if len(load) != 7 {
		t.Fatalf("got %d entries, want exactly 7", len(load))
	}

	wantCounts := []int{2, 0, 2, 0, 0, 0, 0}
	for i, want := range wantCounts {
		if load[i].Count != want {
			t.Errorf("day %d (%s): count = %d, want %d", i, load[i].Date, load[i].Count, want)
		}
		wantDate := now.AddDate(0, 0, i).Format(time.DateOnly)
		if load[i].Date != wantDate {
			t.Errorf("day %d: date = %s, want %s", i, load[i].Date, wantDate)
		}
	}
}

func TestFutureReviewLoadDefensiveDays(t *testing.T) {
	if load := FutureReviewLoad[string](nil, 0, time.Now()); len(load) != 0 {
		t.Errorf("days=0 produced %d entries", len(load))
	}
	if load := FutureReviewLoad[string](nil, 3, time.Now()); len(load) != 3 {
		t.Errorf("no items still forecasts one entry per day, got %d", len(load))
	}
}

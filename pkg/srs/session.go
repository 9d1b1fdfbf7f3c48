package srs

import "time"

// Progress reports how far a session has advanced through its working set.
type Progress struct {
	Current    int     `json:"current"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// SessionStats aggregates outcomes recorded so far in a session.
type SessionStats struct {
	// TotalTime is the wall-clock time since the session started,
	// recomputed on every call rather than frozen at completion.
	TotalTime      time.Duration `json:"total_time"`
	CorrectCount   int           `json:"correct_count"`
	IncorrectCount int           `json:"incorrect_count"`

	// AverageResponseTime is the mean over results that carry a response
	// time; zero when none do.
	AverageResponseTime time.Duration `json:"average_response_time"`
}

// Update holds the field changes produced by one reviewed item. The caller
// persists these back to storage.
type Update struct {
	MasteryLevel   float64
	LastReviewedAt time.Time
	NextReviewAt   time.Time
	CorrectCount   int
	IncorrectCount int
}

// ItemUpdate pairs an item of the working set with its pending update.
// Update is nil for items that were never answered; callers must skip
// persisting those.
type ItemUpdate[T any] struct {
	Item   Item[T]
	Update *Update
}

// Session is a single pass through a set of review items. The working set
// is priority-sorted once at construction and never changes afterwards; the
// only mutable state is the cursor and the recorded results.
//
// A session is meant to be owned by one caller at a time and is not safe
// for concurrent use.
type Session[T any] struct {
	items     []Item[T]
	cursor    int
	results   map[ItemKey]Result
	startTime time.Time
	clock     func() time.Time
}

// NewSession builds a session over items, ordered by review priority.
// An empty input produces a session that is already complete.
func NewSession[T any](items []Item[T]) *Session[T] {
	return newSession(items, time.Now)
}

func newSession[T any](items []Item[T], clock func() time.Time) *Session[T] {
	return &Session[T]{
		items:     SortByPriority(items, clock()),
		results:   make(map[ItemKey]Result, len(items)),
		startTime: clock(),
		clock:     clock,
	}
}

// CurrentItem returns the item under the cursor, or ok=false once the
// session is complete.
func (s *Session[T]) CurrentItem() (Item[T], bool) {
	if s.cursor >= len(s.items) {
		var zero Item[T]
		return zero, false
	}
	return s.items[s.cursor], true
}

// SubmitResult records the outcome for the current item and advances the
// cursor. Submitting after completion is a no-op; duplicate UI events must
// not corrupt the session.
func (s *Session[T]) SubmitResult(result Result) {
	current, ok := s.CurrentItem()
	if !ok {
		return
	}
	s.results[current.Key()] = result
	s.cursor++
}

// IsComplete reports whether every item in the working set has been
// answered.
func (s *Session[T]) IsComplete() bool {
	return s.cursor >= len(s.items)
}

// Items returns the session's working set in review order.
func (s *Session[T]) Items() []Item[T] {
	return s.items
}

// Progress reports the cursor position; safe to call at any time.
func (s *Session[T]) Progress() Progress {
	p := Progress{Current: s.cursor, Total: len(s.items)}
	if p.Total > 0 {
		p.Percentage = float64(p.Current) / float64(p.Total) * 100
	}
	return p
}

// Stats aggregates the results recorded so far.
func (s *Session[T]) Stats() SessionStats {
	stats := SessionStats{TotalTime: s.clock().Sub(s.startTime)}

	var timed int
	var totalResponse time.Duration
	for _, r := range s.results {
		if r.Correct {
			stats.CorrectCount++
		} else {
			stats.IncorrectCount++
		}
		if r.ResponseTime > 0 {
			timed++
			totalResponse += r.ResponseTime
		}
	}
	if timed > 0 {
		stats.AverageResponseTime = totalResponse / time.Duration(timed)
	}
	return stats
}

// UpdatedItems computes the persistence batch for the whole working set.
// Items without a recorded result get a nil update. Calling mid-session is
// valid and yields partial updates for the items visited so far.
func (s *Session[T]) UpdatedItems() []ItemUpdate[T] {
	now := s.clock()
	batch := make([]ItemUpdate[T], 0, len(s.items))
	for _, item := range s.items {
		result, ok := s.results[item.Key()]
		if !ok {
			batch = append(batch, ItemUpdate[T]{Item: item})
			continue
		}

		update := &Update{
			MasteryLevel:   NextMasteryLevel(item.MasteryLevel, result),
			LastReviewedAt: now,
			NextReviewAt:   NextReviewAt(item.MasteryLevel, result, now),
			CorrectCount:   item.CorrectCount,
			IncorrectCount: item.IncorrectCount,
		}
		if result.Correct {
			update.CorrectCount++
		} else {
			update.IncorrectCount++
		}
		batch = append(batch, ItemUpdate[T]{Item: item, Update: update})
	}
	return batch
}

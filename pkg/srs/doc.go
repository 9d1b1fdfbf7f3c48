// Package srs implements the spaced-repetition review engine behind the
// lingodesk study flow.
//
// The engine is pure in-process logic: scheduling functions compute the next
// review time and mastery level from a single review outcome, selector
// functions pick and rank the items due for study, and a Session walks an
// ordered working set while accumulating results. Persistence of the
// resulting batch is left entirely to the caller.
//
// Basic usage:
//
//	due := srs.DueToday(items, time.Now())
//	session := srs.NewSession(due)
//	for {
//	    item, ok := session.CurrentItem()
//	    if !ok {
//	        break
//	    }
//	    // present item, collect answer...
//	    session.SubmitResult(srs.Result{Correct: true, Difficulty: srs.DifficultyMedium})
//	}
//	batch := session.UpdatedItems() // hand off for persistence
package srs

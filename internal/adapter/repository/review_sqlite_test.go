package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/lingodesk/internal/entity"
	"github.com/eslsoft/lingodesk/internal/infrastructure/database"
	"github.com/eslsoft/lingodesk/internal/repository"
	"github.com/eslsoft/lingodesk/pkg/srs"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.InitSchema(context.Background(), db))

	_, err = db.Exec(`INSERT INTO lessons (id, book_id, lesson_number, title) VALUES (1, 1, 1, 'Lesson 1')`)
	require.NoError(t, err)
	return db
}

func insertVocabulary(t *testing.T, db *sql.DB, word string, mastery float64, nextReview *time.Time) int64 {
	t.Helper()

	var next any
	if nextReview != nil {
		next = nextReview.UTC().Format(time.RFC3339)
	}
	res, err := db.Exec(`
INSERT INTO vocabulary (lesson_id, word, kana, meaning, mastery_level, next_review_at)
VALUES (1, ?, ?, ?, ?, ?)`, word, word+"-kana", word+"-meaning", mastery, next)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func insertGrammar(t *testing.T, db *sql.DB, title string, mastery float64, nextReview *time.Time) int64 {
	t.Helper()

	var next any
	if nextReview != nil {
		next = nextReview.UTC().Format(time.RFC3339)
	}
	res, err := db.Exec(`
INSERT INTO grammar (lesson_id, title, explanation, mastery_level, next_review_at)
VALUES (1, ?, ?, ?, ?)`, title, title+"-explanation", mastery, next)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestReviewRepository_ListDueVocabulary(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	past := now.Add(-48 * time.Hour)
	future := now.Add(72 * time.Hour)
	insertVocabulary(t, db, "遅い", 4, &past)
	insertVocabulary(t, db, "未来", 6, &future)
	unscheduledID := insertVocabulary(t, db, "新しい", 0, nil)

	due, err := repo.ListDueVocabulary(context.Background(), repository.DueQuery{Before: now})
	require.NoError(t, err)
	require.Len(t, due, 2)

	// Never-scheduled rows sort ahead of overdue ones.
	assert.Equal(t, unscheduledID, due[0].ID)
	assert.Nil(t, due[0].Review.NextReviewAt)
	assert.Equal(t, "遅い", due[1].Word)
	require.NotNil(t, due[1].Review.NextReviewAt)
	assert.True(t, due[1].Review.NextReviewAt.Equal(past))

	limited, err := repo.ListDueVocabulary(context.Background(), repository.DueQuery{Before: now, Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, unscheduledID, limited[0].ID)
}

func TestReviewRepository_ListDueGrammar(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	dueID := insertGrammar(t, db, "〜ながら", 2, &past)
	insertGrammar(t, db, "〜ば", 5, &future)

	due, err := repo.ListDueGrammar(context.Background(), repository.DueQuery{Before: now})
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, dueID, due[0].ID)
	assert.Equal(t, "〜ながら-explanation", due[0].Explanation)
}

func TestReviewRepository_BatchUpdateReviews(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	vocabID := insertVocabulary(t, db, "猫", 1, nil)
	grammarID := insertGrammar(t, db, "〜たり", 2, nil)

	next := now.AddDate(0, 0, 3)
	err := repo.BatchUpdateReviews(context.Background(), []entity.ReviewUpdate{
		{
			ID: vocabID, EntityType: srs.EntityVocabulary,
			MasteryLevel: 2, LastReviewedAt: now, NextReviewAt: next,
			CorrectCount: 1, IncorrectCount: 0,
		},
		{
			ID: grammarID, EntityType: srs.EntityGrammar,
			MasteryLevel: 1, LastReviewedAt: now, NextReviewAt: now.AddDate(0, 0, 1),
			CorrectCount: 0, IncorrectCount: 1,
		},
	})
	require.NoError(t, err)

	vocab, err := repo.ListVocabulary(context.Background())
	require.NoError(t, err)
	require.Len(t, vocab, 1)
	assert.Equal(t, 2.0, vocab[0].Review.MasteryLevel)
	assert.Equal(t, 1, vocab[0].Review.CorrectCount)
	require.NotNil(t, vocab[0].Review.NextReviewAt)
	assert.True(t, vocab[0].Review.NextReviewAt.Equal(next))
	require.NotNil(t, vocab[0].Review.LastReviewedAt)
	assert.True(t, vocab[0].Review.LastReviewedAt.Equal(now))

	grammar, err := repo.ListGrammar(context.Background())
	require.NoError(t, err)
	require.Len(t, grammar, 1)
	assert.Equal(t, 1.0, grammar[0].Review.MasteryLevel)
	assert.Equal(t, 1, grammar[0].Review.IncorrectCount)
}

func TestReviewRepository_BatchUpdateReviewsRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	vocabID := insertVocabulary(t, db, "犬", 3, nil)

	err := repo.BatchUpdateReviews(context.Background(), []entity.ReviewUpdate{
		{
			ID: vocabID, EntityType: srs.EntityVocabulary,
			MasteryLevel: 5, LastReviewedAt: now, NextReviewAt: now.AddDate(0, 0, 7),
			CorrectCount: 1,
		},
		{ID: 99, EntityType: srs.EntityType("lesson")},
	})
	require.ErrorIs(t, err, entity.ErrUnknownEntityType)

	// The valid update in the same batch must not land.
	vocab, err := repo.ListVocabulary(context.Background())
	require.NoError(t, err)
	require.Len(t, vocab, 1)
	assert.Equal(t, 3.0, vocab[0].Review.MasteryLevel)
	assert.Equal(t, 0, vocab[0].Review.CorrectCount)
	assert.Nil(t, vocab[0].Review.NextReviewAt)
}

func TestReviewRepository_BatchUpdateReviewsEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)

	require.NoError(t, repo.BatchUpdateReviews(context.Background(), nil))
}

func TestReviewRepository_MasterySummary(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)

	insertVocabulary(t, db, "一", 8, nil)
	insertVocabulary(t, db, "二", 7, nil)
	insertVocabulary(t, db, "三", 5, nil)
	insertVocabulary(t, db, "四", 2.5, nil)

	summary, err := repo.MasterySummary(context.Background(), srs.EntityVocabulary)
	require.NoError(t, err)
	assert.Equal(t, &entity.MasterySummary{Total: 4, Mastered: 2, Familiar: 1, Unknown: 1}, summary)

	empty, err := repo.MasterySummary(context.Background(), srs.EntityGrammar)
	require.NoError(t, err)
	assert.Equal(t, &entity.MasterySummary{}, empty)

	_, err = repo.MasterySummary(context.Background(), srs.EntityType("lesson"))
	require.ErrorIs(t, err, entity.ErrUnknownEntityType)
}

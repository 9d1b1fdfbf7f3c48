package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eslsoft/lingodesk/internal/entity"
	"github.com/eslsoft/lingodesk/internal/repository"
	"github.com/eslsoft/lingodesk/pkg/srs"
)

// NewReviewRepository constructs a SQLite-backed review repository.
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

type reviewRepository struct {
	db *sql.DB
}

const dueVocabularySQL = `
SELECT id, lesson_id, word, kana, meaning, part_of_speech,
       mastery_level, last_reviewed_at, next_review_at, correct_count, incorrect_count
FROM vocabulary
WHERE next_review_at IS NULL OR next_review_at <= ?
ORDER BY next_review_at IS NOT NULL, next_review_at ASC`

const dueGrammarSQL = `
SELECT id, lesson_id, title, explanation,
       mastery_level, last_reviewed_at, next_review_at, correct_count, incorrect_count
FROM grammar
WHERE next_review_at IS NULL OR next_review_at <= ?
ORDER BY next_review_at IS NOT NULL, next_review_at ASC`

func (r *reviewRepository) ListDueVocabulary(ctx context.Context, query repository.DueQuery) ([]*entity.Vocabulary, error) {
	return r.queryVocabulary(ctx, withLimit(dueVocabularySQL, query.Limit), formatTime(query.Before))
}

func (r *reviewRepository) ListDueGrammar(ctx context.Context, query repository.DueQuery) ([]*entity.Grammar, error) {
	return r.queryGrammar(ctx, withLimit(dueGrammarSQL, query.Limit), formatTime(query.Before))
}

func (r *reviewRepository) ListVocabulary(ctx context.Context) ([]*entity.Vocabulary, error) {
	const q = `
SELECT id, lesson_id, word, kana, meaning, part_of_speech,
       mastery_level, last_reviewed_at, next_review_at, correct_count, incorrect_count
FROM vocabulary ORDER BY id ASC`
	return r.queryVocabulary(ctx, q)
}

func (r *reviewRepository) ListGrammar(ctx context.Context) ([]*entity.Grammar, error) {
	const q = `
SELECT id, lesson_id, title, explanation,
       mastery_level, last_reviewed_at, next_review_at, correct_count, incorrect_count
FROM grammar ORDER BY id ASC`
	return r.queryGrammar(ctx, q)
}

func (r *reviewRepository) BatchUpdateReviews(ctx context.Context, updates []entity.ReviewUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin review batch: %w", err)
	}
	defer tx.Rollback()

	const vocabSQL = `
UPDATE vocabulary
SET mastery_level = ?, last_reviewed_at = ?, next_review_at = ?, correct_count = ?, incorrect_count = ?
WHERE id = ?`
	const grammarSQL = `
UPDATE grammar
SET mastery_level = ?, last_reviewed_at = ?, next_review_at = ?, correct_count = ?, incorrect_count = ?
WHERE id = ?`

	vocabStmt, err := tx.PrepareContext(ctx, vocabSQL)
	if err != nil {
		return fmt.Errorf("prepare vocabulary update: %w", err)
	}
	defer vocabStmt.Close()

	grammarStmt, err := tx.PrepareContext(ctx, grammarSQL)
	if err != nil {
		return fmt.Errorf("prepare grammar update: %w", err)
	}
	defer grammarStmt.Close()

	for _, u := range updates {
		var stmt *sql.Stmt
		switch u.EntityType {
		case srs.EntityVocabulary:
			stmt = vocabStmt
		case srs.EntityGrammar:
			stmt = grammarStmt
		default:
			return entity.ErrUnknownEntityType
		}
		if _, err := stmt.ExecContext(ctx,
			u.MasteryLevel, formatTime(u.LastReviewedAt), formatTime(u.NextReviewAt),
			u.CorrectCount, u.IncorrectCount, u.ID,
		); err != nil {
			return fmt.Errorf("update %s %d: %w", u.EntityType, u.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit review batch: %w", err)
	}
	return nil
}

func (r *reviewRepository) MasterySummary(ctx context.Context, entityType srs.EntityType) (*entity.MasterySummary, error) {
	var table string
	switch entityType {
	case srs.EntityVocabulary:
		table = "vocabulary"
	case srs.EntityGrammar:
		table = "grammar"
	default:
		return nil, entity.ErrUnknownEntityType
	}

	q := fmt.Sprintf(`
SELECT COUNT(*),
       SUM(CASE WHEN mastery_level >= 7 THEN 1 ELSE 0 END),
       SUM(CASE WHEN mastery_level >= 3 AND mastery_level < 7 THEN 1 ELSE 0 END),
       SUM(CASE WHEN mastery_level < 3 THEN 1 ELSE 0 END)
FROM %s`, table)

	summary := &entity.MasterySummary{}
	var mastered, familiar, unknown sql.NullInt64
	if err := r.db.QueryRowContext(ctx, q).Scan(&summary.Total, &mastered, &familiar, &unknown); err != nil {
		return nil, fmt.Errorf("mastery summary for %s: %w", entityType, err)
	}
	summary.Mastered = int(mastered.Int64)
	summary.Familiar = int(familiar.Int64)
	summary.Unknown = int(unknown.Int64)
	return summary, nil
}

func (r *reviewRepository) queryVocabulary(ctx context.Context, query string, args ...any) ([]*entity.Vocabulary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query vocabulary: %w", err)
	}
	defer rows.Close()

	var result []*entity.Vocabulary
	for rows.Next() {
		v := &entity.Vocabulary{}
		var kana, meaning, pos sql.NullString
		var lastReviewed, nextReview sql.NullString
		if err := rows.Scan(&v.ID, &v.LessonID, &v.Word, &kana, &meaning, &pos,
			&v.Review.MasteryLevel, &lastReviewed, &nextReview,
			&v.Review.CorrectCount, &v.Review.IncorrectCount); err != nil {
			return nil, fmt.Errorf("scan vocabulary: %w", err)
		}
		v.Kana = kana.String
		v.Meaning = meaning.String
		v.PartOfSpeech = pos.String
		v.Review.LastReviewedAt = parseTime(lastReviewed)
		v.Review.NextReviewAt = parseTime(nextReview)
		result = append(result, v)
	}
	return result, rows.Err()
}

func (r *reviewRepository) queryGrammar(ctx context.Context, query string, args ...any) ([]*entity.Grammar, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query grammar: %w", err)
	}
	defer rows.Close()

	var result []*entity.Grammar
	for rows.Next() {
		g := &entity.Grammar{}
		var explanation sql.NullString
		var lastReviewed, nextReview sql.NullString
		if err := rows.Scan(&g.ID, &g.LessonID, &g.Title, &explanation,
			&g.Review.MasteryLevel, &lastReviewed, &nextReview,
			&g.Review.CorrectCount, &g.Review.IncorrectCount); err != nil {
			return nil, fmt.Errorf("scan grammar: %w", err)
		}
		g.Explanation = explanation.String
		g.Review.LastReviewedAt = parseTime(lastReviewed)
		g.Review.NextReviewAt = parseTime(nextReview)
		result = append(result, g)
	}
	return result, rows.Err()
}

func withLimit(query string, limit int) string {
	if limit <= 0 {
		return query
	}
	return fmt.Sprintf("%s LIMIT %d", query, limit)
}

// Timestamps are stored as RFC 3339 strings, the format the desktop UI
// already exchanges at its boundary.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

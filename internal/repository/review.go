package repository

import (
	"context"
	"time"

	"github.com/eslsoft/lingodesk/internal/entity"
	"github.com/eslsoft/lingodesk/pkg/srs"
)

// DueQuery bounds a due-item lookup. Limit <= 0 means no limit.
type DueQuery struct {
	Before time.Time
	Limit  int
}

// ReviewRepository abstracts persistence for study material so the review
// usecase stays storage agnostic. Implementations return rows ordered by
// next_review_at ascending with never-scheduled rows first.
type ReviewRepository interface {
	ListDueVocabulary(ctx context.Context, query DueQuery) ([]*entity.Vocabulary, error)
	ListDueGrammar(ctx context.Context, query DueQuery) ([]*entity.Grammar, error)
	ListVocabulary(ctx context.Context) ([]*entity.Vocabulary, error)
	ListGrammar(ctx context.Context) ([]*entity.Grammar, error)

	// BatchUpdateReviews writes a session's outcome in one transaction;
	// either every update lands or none do.
	BatchUpdateReviews(ctx context.Context, updates []entity.ReviewUpdate) error

	// MasterySummary reports the coarse three-bucket progress counts for
	// one entity type.
	MasterySummary(ctx context.Context, entityType srs.EntityType) (*entity.MasterySummary, error)
}

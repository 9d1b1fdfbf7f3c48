package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/eslsoft/lingodesk/internal/entity"
	"github.com/eslsoft/lingodesk/internal/repository"
	"github.com/eslsoft/lingodesk/pkg/srs"
)

// Session reports the state of one running review session to callers.
type Session struct {
	ID        string       `json:"id"`
	StartedAt time.Time    `json:"started_at"`
	Progress  srs.Progress `json:"progress"`
	Complete  bool         `json:"complete"`
}

// SessionSummary is returned once a session's batch has been persisted.
type SessionSummary struct {
	ID           string           `json:"id"`
	Stats        srs.SessionStats `json:"stats"`
	UpdatedItems int              `json:"updated_items"`
}

// ReviewUsecase drives the study flow: loading due material, running
// review sessions over it, and persisting the resulting batches.
type ReviewUsecase interface {
	LoadDueItems(ctx context.Context) ([]entity.ReviewItem, error)
	StartSession(ctx context.Context) (*Session, error)
	CurrentCard(sessionID string) (*entity.ReviewItem, bool, error)
	SubmitResult(sessionID string, result srs.Result) (*Session, error)
	GetSession(sessionID string) (*Session, error)
	SessionStats(sessionID string) (*srs.SessionStats, error)
	CompleteSession(ctx context.Context, sessionID string) (*SessionSummary, error)
	StudyStats(ctx context.Context) (*srs.StudyStats, error)
	Forecast(ctx context.Context, days int) ([]srs.DailyLoad, error)
	MasterySummary(ctx context.Context, entityType srs.EntityType) (*entity.MasterySummary, error)
}

// NewReviewUsecase wires the repository with default behaviour. dueLimit
// caps how many items of each kind a session loads; zero means unlimited.
func NewReviewUsecase(repo repository.ReviewRepository, dueLimit int) ReviewUsecase {
	return &reviewUsecase{
		repo:     repo,
		dueLimit: dueLimit,
		sessions: make(map[string]*sessionState),
		clock:    time.Now,
	}
}

type sessionState struct {
	session   *srs.Session[entity.Card]
	startedAt time.Time
}

type reviewUsecase struct {
	repo     repository.ReviewRepository
	dueLimit int
	clock    func() time.Time

	// mu guards the handle map only; each session is owned by a single
	// UI flow and is not itself safe for concurrent submission.
	mu       sync.RWMutex
	sessions map[string]*sessionState
}

func (u *reviewUsecase) LoadDueItems(ctx context.Context) ([]entity.ReviewItem, error) {
	now := u.clock()
	query := repository.DueQuery{Before: now, Limit: u.dueLimit}

	vocab, err := u.repo.ListDueVocabulary(ctx, query)
	if err != nil {
		return nil, err
	}
	grammar, err := u.repo.ListDueGrammar(ctx, query)
	if err != nil {
		return nil, err
	}

	items := make([]entity.ReviewItem, 0, len(vocab)+len(grammar))
	for _, v := range vocab {
		items = append(items, v.ItemOf())
	}
	for _, g := range grammar {
		items = append(items, g.ItemOf())
	}
	return srs.DueToday(items, now), nil
}

func (u *reviewUsecase) StartSession(ctx context.Context) (*Session, error) {
	items, err := u.LoadDueItems(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, entity.ErrNoDueItems
	}

	state := &sessionState{
		session:   srs.NewSession(items),
		startedAt: u.clock(),
	}
	id := uuid.NewString()

	u.mu.Lock()
	u.sessions[id] = state
	u.mu.Unlock()

	return u.describe(id, state), nil
}

func (u *reviewUsecase) CurrentCard(sessionID string) (*entity.ReviewItem, bool, error) {
	state, err := u.lookup(sessionID)
	if err != nil {
		return nil, false, err
	}
	item, ok := state.session.CurrentItem()
	if !ok {
		return nil, false, nil
	}
	return &item, true, nil
}

func (u *reviewUsecase) SubmitResult(sessionID string, result srs.Result) (*Session, error) {
	if err := validateResult(result); err != nil {
		return nil, err
	}
	state, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	state.session.SubmitResult(result)
	return u.describe(sessionID, state), nil
}

func (u *reviewUsecase) GetSession(sessionID string) (*Session, error) {
	state, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return u.describe(sessionID, state), nil
}

func (u *reviewUsecase) SessionStats(sessionID string) (*srs.SessionStats, error) {
	state, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	stats := state.session.Stats()
	return &stats, nil
}

func (u *reviewUsecase) CompleteSession(ctx context.Context, sessionID string) (*SessionSummary, error) {
	state, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	batch := state.session.UpdatedItems()
	updates := make([]entity.ReviewUpdate, 0, len(batch))
	for _, b := range batch {
		if b.Update == nil {
			continue
		}
		updates = append(updates, entity.ReviewUpdate{
			ID:             b.Item.ID,
			EntityType:     b.Item.EntityType,
			MasteryLevel:   b.Update.MasteryLevel,
			LastReviewedAt: b.Update.LastReviewedAt,
			NextReviewAt:   b.Update.NextReviewAt,
			CorrectCount:   b.Update.CorrectCount,
			IncorrectCount: b.Update.IncorrectCount,
		})
	}

	if len(updates) > 0 {
		if err := u.repo.BatchUpdateReviews(ctx, updates); err != nil {
			return nil, err
		}
	}

	stats := state.session.Stats()

	u.mu.Lock()
	delete(u.sessions, sessionID)
	u.mu.Unlock()

	return &SessionSummary{ID: sessionID, Stats: stats, UpdatedItems: len(updates)}, nil
}

func (u *reviewUsecase) StudyStats(ctx context.Context) (*srs.StudyStats, error) {
	items, err := u.allItems(ctx)
	if err != nil {
		return nil, err
	}
	stats := srs.ComputeStudyStats(items, u.clock())
	return &stats, nil
}

func (u *reviewUsecase) Forecast(ctx context.Context, days int) ([]srs.DailyLoad, error) {
	if days <= 0 {
		days = 7
	}
	items, err := u.allItems(ctx)
	if err != nil {
		return nil, err
	}
	return srs.FutureReviewLoad(items, days, u.clock()), nil
}

func (u *reviewUsecase) MasterySummary(ctx context.Context, entityType srs.EntityType) (*entity.MasterySummary, error) {
	switch entityType {
	case srs.EntityVocabulary, srs.EntityGrammar:
		return u.repo.MasterySummary(ctx, entityType)
	default:
		return nil, entity.ErrUnknownEntityType
	}
}

func (u *reviewUsecase) allItems(ctx context.Context) ([]entity.ReviewItem, error) {
	vocab, err := u.repo.ListVocabulary(ctx)
	if err != nil {
		return nil, err
	}
	grammar, err := u.repo.ListGrammar(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(vocab, func(v *entity.Vocabulary, _ int) entity.ReviewItem {
		return v.ItemOf()
	})
	return append(items, lo.Map(grammar, func(g *entity.Grammar, _ int) entity.ReviewItem {
		return g.ItemOf()
	})...), nil
}

func (u *reviewUsecase) lookup(sessionID string) (*sessionState, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	state, ok := u.sessions[sessionID]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return state, nil
}

func (u *reviewUsecase) describe(id string, state *sessionState) *Session {
	return &Session{
		ID:        id,
		StartedAt: state.startedAt,
		Progress:  state.session.Progress(),
		Complete:  state.session.IsComplete(),
	}
}

func validateResult(result srs.Result) error {
	switch result.Difficulty {
	case srs.DifficultyEasy, srs.DifficultyMedium, srs.DifficultyHard:
		return nil
	default:
		return entity.ErrInvalidDifficulty
	}
}

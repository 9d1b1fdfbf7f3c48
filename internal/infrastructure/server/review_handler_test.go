package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/lingodesk/internal/entity"
	"github.com/eslsoft/lingodesk/internal/usecase"
	"github.com/eslsoft/lingodesk/pkg/srs"
)

// stubReviewUsecase serves canned responses so handler behaviour can be
// asserted without storage.
type stubReviewUsecase struct {
	session   *usecase.Session
	item      *entity.ReviewItem
	submitted []srs.Result
}

func (s *stubReviewUsecase) LoadDueItems(ctx context.Context) ([]entity.ReviewItem, error) {
	if s.item == nil {
		return nil, nil
	}
	return []entity.ReviewItem{*s.item}, nil
}

func (s *stubReviewUsecase) StartSession(ctx context.Context) (*usecase.Session, error) {
	if s.session == nil {
		return nil, entity.ErrNoDueItems
	}
	return s.session, nil
}

func (s *stubReviewUsecase) CurrentCard(sessionID string) (*entity.ReviewItem, bool, error) {
	if err := s.check(sessionID); err != nil {
		return nil, false, err
	}
	if s.item == nil {
		return nil, false, nil
	}
	return s.item, true, nil
}

func (s *stubReviewUsecase) SubmitResult(sessionID string, result srs.Result) (*usecase.Session, error) {
	if err := s.check(sessionID); err != nil {
		return nil, err
	}
	switch result.Difficulty {
	case srs.DifficultyEasy, srs.DifficultyMedium, srs.DifficultyHard:
	default:
		return nil, entity.ErrInvalidDifficulty
	}
	s.submitted = append(s.submitted, result)
	return s.session, nil
}

func (s *stubReviewUsecase) GetSession(sessionID string) (*usecase.Session, error) {
	if err := s.check(sessionID); err != nil {
		return nil, err
	}
	return s.session, nil
}

func (s *stubReviewUsecase) SessionStats(sessionID string) (*srs.SessionStats, error) {
	if err := s.check(sessionID); err != nil {
		return nil, err
	}
	return &srs.SessionStats{
		TotalTime:           90 * time.Second,
		CorrectCount:        4,
		IncorrectCount:      1,
		AverageResponseTime: 2500 * time.Millisecond,
	}, nil
}

func (s *stubReviewUsecase) CompleteSession(ctx context.Context, sessionID string) (*usecase.SessionSummary, error) {
	if err := s.check(sessionID); err != nil {
		return nil, err
	}
	return &usecase.SessionSummary{ID: sessionID, UpdatedItems: len(s.submitted)}, nil
}

func (s *stubReviewUsecase) StudyStats(ctx context.Context) (*srs.StudyStats, error) {
	return &srs.StudyStats{TotalItems: 12, MasteredItems: 3, ReviewingItems: 4, LearningItems: 5, TodayReviews: 6, Overdue: 2}, nil
}

func (s *stubReviewUsecase) Forecast(ctx context.Context, days int) ([]srs.DailyLoad, error) {
	load := make([]srs.DailyLoad, days)
	for i := range load {
		load[i] = srs.DailyLoad{Date: time.Now().AddDate(0, 0, i).Format(time.DateOnly)}
	}
	return load, nil
}

func (s *stubReviewUsecase) MasterySummary(ctx context.Context, entityType srs.EntityType) (*entity.MasterySummary, error) {
	if entityType != srs.EntityVocabulary && entityType != srs.EntityGrammar {
		return nil, entity.ErrUnknownEntityType
	}
	return &entity.MasterySummary{Total: 10, Mastered: 2, Familiar: 3, Unknown: 5}, nil
}

func (s *stubReviewUsecase) check(sessionID string) error {
	if s.session == nil || s.session.ID != sessionID {
		return entity.ErrSessionNotFound
	}
	return nil
}

func newTestServer(stub *stubReviewUsecase) *echo.Echo {
	e := echo.New()
	newReviewHandler(stub, 7).register(e.Group("/api/v1"))
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func testItem() *entity.ReviewItem {
	vocab := &entity.Vocabulary{ID: 7, Word: "水", Meaning: "water"}
	item := vocab.ItemOf()
	return &item
}

func testSession() *usecase.Session {
	return &usecase.Session{
		ID:        "11111111-2222-3333-4444-555555555555",
		StartedAt: time.Now(),
		Progress:  srs.Progress{Current: 0, Total: 5},
	}
}

func TestStartSessionEndpoint(t *testing.T) {
	stub := &stubReviewUsecase{session: testSession(), item: testItem()}
	e := newTestServer(stub)

	rec := doRequest(e, http.MethodPost, "/api/v1/review/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var session usecase.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, stub.session.ID, session.ID)
	assert.Equal(t, 5, session.Progress.Total)
}

func TestStartSessionNothingDue(t *testing.T) {
	e := newTestServer(&stubReviewUsecase{})
	rec := doRequest(e, http.MethodPost, "/api/v1/review/sessions", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCurrentCardEndpoint(t *testing.T) {
	stub := &stubReviewUsecase{session: testSession(), item: testItem()}
	e := newTestServer(stub)

	rec := doRequest(e, http.MethodGet, "/api/v1/review/sessions/"+stub.session.ID+"/current", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp currentCardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Complete)
	require.NotNil(t, resp.Item)
	assert.Equal(t, int64(7), resp.Item.ID)
	require.NotNil(t, resp.Item.Data.Vocabulary)
	assert.Equal(t, "水", resp.Item.Data.Vocabulary.Word)
}

func TestSubmitResultEndpoint(t *testing.T) {
	stub := &stubReviewUsecase{session: testSession(), item: testItem()}
	e := newTestServer(stub)
	path := "/api/v1/review/sessions/" + stub.session.ID + "/results"

	rec := doRequest(e, http.MethodPost, path, `{"correct":true,"difficulty":"hard","response_time_ms":1500}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, stub.submitted, 1)
	assert.True(t, stub.submitted[0].Correct)
	assert.Equal(t, srs.DifficultyHard, stub.submitted[0].Difficulty)
	assert.Equal(t, 1500*time.Millisecond, stub.submitted[0].ResponseTime)

	rec = doRequest(e, http.MethodPost, path, `{"correct":true,"difficulty":"impossible"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/v1/review/sessions/unknown/results", `{"correct":true,"difficulty":"easy"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionStatsEndpoint(t *testing.T) {
	stub := &stubReviewUsecase{session: testSession(), item: testItem()}
	e := newTestServer(stub)

	rec := doRequest(e, http.MethodGet, "/api/v1/review/sessions/"+stub.session.ID+"/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.EqualValues(t, 90000, stats["total_time_ms"])
	assert.EqualValues(t, 2500, stats["average_response_time_ms"])
	assert.EqualValues(t, 4, stats["correct_count"])
}

func TestForecastEndpoint(t *testing.T) {
	stub := &stubReviewUsecase{}
	e := newTestServer(stub)

	rec := doRequest(e, http.MethodGet, "/api/v1/review/forecast?days=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Days []srs.DailyLoad `json:"days"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Days, 3)

	rec = doRequest(e, http.MethodGet, "/api/v1/review/forecast?days=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMasterySummaryEndpoint(t *testing.T) {
	e := newTestServer(&stubReviewUsecase{})

	rec := doRequest(e, http.MethodGet, "/api/v1/review/mastery/vocabulary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary entity.MasterySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 10, summary.Total)

	rec = doRequest(e, http.MethodGet, "/api/v1/review/mastery/lesson", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

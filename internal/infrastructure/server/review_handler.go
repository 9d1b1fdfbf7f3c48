package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eslsoft/lingodesk/internal/entity"
	"github.com/eslsoft/lingodesk/internal/usecase"
	"github.com/eslsoft/lingodesk/pkg/srs"
)

type reviewHandler struct {
	uc           usecase.ReviewUsecase
	forecastDays int
}

func newReviewHandler(uc usecase.ReviewUsecase, forecastDays int) *reviewHandler {
	return &reviewHandler{uc: uc, forecastDays: forecastDays}
}

func (h *reviewHandler) register(g *echo.Group) {
	g.GET("/review/due", h.listDue)
	g.GET("/review/stats", h.studyStats)
	g.GET("/review/forecast", h.forecast)
	g.GET("/review/mastery/:entityType", h.masterySummary)

	g.POST("/review/sessions", h.startSession)
	g.GET("/review/sessions/:id", h.getSession)
	g.GET("/review/sessions/:id/current", h.currentCard)
	g.POST("/review/sessions/:id/results", h.submitResult)
	g.GET("/review/sessions/:id/stats", h.sessionStats)
	g.POST("/review/sessions/:id/complete", h.completeSession)
}

// submitResultRequest mirrors the ReviewResult the UI collects per card.
type submitResultRequest struct {
	Correct        bool   `json:"correct"`
	Difficulty     string `json:"difficulty"`
	ResponseTimeMS int64  `json:"response_time_ms,omitempty"`
}

type currentCardResponse struct {
	Item     *entity.ReviewItem `json:"item,omitempty"`
	Complete bool               `json:"complete"`
}

func (h *reviewHandler) listDue(c echo.Context) error {
	items, err := h.uc.LoadDueItems(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

func (h *reviewHandler) startSession(c echo.Context) error {
	session, err := h.uc.StartSession(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, session)
}

func (h *reviewHandler) getSession(c echo.Context) error {
	session, err := h.uc.GetSession(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, session)
}

func (h *reviewHandler) currentCard(c echo.Context) error {
	item, ok, err := h.uc.CurrentCard(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, currentCardResponse{Item: item, Complete: !ok})
}

func (h *reviewHandler) submitResult(c echo.Context) error {
	var req submitResultRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid result payload")
	}

	result := srs.Result{
		Correct:      req.Correct,
		Difficulty:   srs.Difficulty(req.Difficulty),
		ResponseTime: time.Duration(req.ResponseTimeMS) * time.Millisecond,
	}
	session, err := h.uc.SubmitResult(c.Param("id"), result)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, session)
}

func (h *reviewHandler) sessionStats(c echo.Context) error {
	stats, err := h.uc.SessionStats(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sessionStatsResponse(stats))
}

func (h *reviewHandler) completeSession(c echo.Context) error {
	summary, err := h.uc.CompleteSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *reviewHandler) studyStats(c echo.Context) error {
	stats, err := h.uc.StudyStats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *reviewHandler) forecast(c echo.Context) error {
	days := h.forecastDays
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be a positive integer")
		}
		days = parsed
	}

	load, err := h.uc.Forecast(c.Request().Context(), days)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"days": load})
}

func (h *reviewHandler) masterySummary(c echo.Context) error {
	summary, err := h.uc.MasterySummary(c.Request().Context(), srs.EntityType(c.Param("entityType")))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

// sessionStatsResponse converts durations to the millisecond counts the UI
// expects.
func sessionStatsResponse(stats *srs.SessionStats) map[string]any {
	return map[string]any{
		"total_time_ms":            stats.TotalTime.Milliseconds(),
		"correct_count":            stats.CorrectCount,
		"incorrect_count":          stats.IncorrectCount,
		"average_response_time_ms": stats.AverageResponseTime.Milliseconds(),
	}
}

func httpError(err error) error {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrNoDueItems):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrInvalidDifficulty), errors.Is(err, entity.ErrUnknownEntityType):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/focusflow/focusflow-api/internal/core/domain"
	"github.com/focusflow/focusflow-api/internal/core/ports"
)

// StatsHandler handles HTTP requests for daily focus statistics.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

type statsHistoryResponse struct {
	Data []*domain.DailyStats `json:"data"`
}

// Today handles GET /v1/stats/today.
//
// @Summary      Get today's focus statistics
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DailyStats
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/stats/today [get]
func (h *StatsHandler) Today(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Today(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// History handles GET /v1/stats/history.
//
// @Summary      List recent daily statistics
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        days  query     int  false  "Number of days to return (default 30)"
// @Success      200   {object}  statsHistoryResponse
// @Failure      401   {object}  map[string]string
// @Router       /v1/stats/history [get]
func (h *StatsHandler) History(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	days := intQueryParam(c, "days", 30)
	stats, err := h.service.History(c.Request().Context(), caller.UserID, days)
	if err != nil {
		return err
	}
	if stats == nil {
		stats = []*domain.DailyStats{}
	}
	return c.JSON(http.StatusOK, statsHistoryResponse{Data: stats})
}

// RecordDistraction handles POST /v1/distractions.
//
// @Summary      Record a distraction event against today
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DailyStats
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/distractions [post]
func (h *StatsHandler) RecordDistraction(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	stats, err := h.service.RecordDistraction(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

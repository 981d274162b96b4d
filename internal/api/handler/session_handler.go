package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/focusflow/focusflow-api/internal/core/domain"
	"github.com/focusflow/focusflow-api/internal/core/ports"
)

// SessionHandler handles HTTP requests for focus sessions.
type SessionHandler struct {
	service ports.SessionService
}

func NewSessionHandler(service ports.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

func toSessionResponse(s *domain.FocusSession) sessionResponse {
	return sessionResponse{
		ID:             s.ID,
		Status:         string(s.Status),
		PlannedMinutes: s.PlannedMinutes,
		ActualMinutes:  s.ActualMinutes,
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
	}
}

func toGateResponse(d domain.GateDecision) gateDecisionResponse {
	return gateDecisionResponse{
		Allowed:        d.Allowed(),
		State:          string(d.State),
		SessionsToday:  d.SessionsToday,
		DailyLimit:     d.DailyLimit,
		UpgradeMessage: d.UpgradeMessage,
	}
}

// Check handles GET /v1/sessions/check — runs the limit gate without
// charging the quota.
//
// @Summary      Check whether a focus session may be started
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  gateDecisionResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/sessions/check [get]
func (h *SessionHandler) Check(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	decision, err := h.service.CheckSessionStart(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGateResponse(decision))
}

// Start handles POST /v1/sessions/start. A blocked start returns 200 with
// allowed=false and the upgrade prompt — the limit is a product outcome the
// UI renders, not an API failure.
//
// @Summary      Start a focus session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      startSessionRequest  false  "Session parameters"
// @Success      201   {object}  startSessionResponse
// @Success      200   {object}  startSessionResponse  "blocked by daily limit"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/sessions/start [post]
func (h *SessionHandler) Start(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req startSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.StartSession(c.Request().Context(), ports.StartSessionInput{
		Caller:         caller,
		PlannedMinutes: req.PlannedMinutes,
	})
	if err != nil {
		return err
	}

	resp := startSessionResponse{Gate: toGateResponse(result.Decision)}
	if result.Session == nil {
		return c.JSON(http.StatusOK, resp)
	}

	s := toSessionResponse(result.Session)
	resp.Session = &s
	return c.JSON(http.StatusCreated, resp)
}

// Complete handles POST /v1/sessions/:id/complete.
//
// @Summary      Complete a focus session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/sessions/{id}/complete [post]
func (h *SessionHandler) Complete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	session, err := h.service.CompleteSession(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Abandon handles POST /v1/sessions/:id/abandon.
//
// @Summary      Abandon a focus session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/sessions/{id}/abandon [post]
func (h *SessionHandler) Abandon(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	session, err := h.service.AbandonSession(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// List handles GET /v1/sessions.
//
// @Summary      List the caller's recent focus sessions
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max sessions to return"
// @Success      200    {object}  listSessionsResponse
// @Failure      401    {object}  map[string]string
// @Router       /v1/sessions [get]
func (h *SessionHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	limit := intQueryParam(c, "limit", 20)
	sessions, err := h.service.ListSessions(c.Request().Context(), caller, limit)
	if err != nil {
		return err
	}

	resp := listSessionsResponse{Data: make([]sessionResponse, 0, len(sessions))}
	for _, s := range sessions {
		resp.Data = append(resp.Data, toSessionResponse(s))
	}
	return c.JSON(http.StatusOK, resp)
}

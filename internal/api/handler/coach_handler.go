package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/focusflow/focusflow-api/internal/core/ports"
)

// CoachHandler handles HTTP requests for the AI productivity coach.
type CoachHandler struct {
	service ports.CoachService
}

func NewCoachHandler(service ports.CoachService) *CoachHandler {
	return &CoachHandler{service: service}
}

type chatTurnRequest struct {
	Role    string `json:"role" validate:"required,oneof=user assistant model"`
	Message string `json:"message" validate:"required"`
}

type chatRequest struct {
	Message string            `json:"message"`
	History []chatTurnRequest `json:"chat_history" validate:"omitempty,dive"`
}

// Chat handles POST /v1/coach/chat. The response always carries a renderable
// message: policy short-circuits and upstream failures come back as 200 with
// a fallback string rather than an error status.
//
// @Summary      Chat with the AI productivity coach
// @Tags         coach
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatRequest  true  "Chat message and recent history"
// @Success      200   {object}  ports.ChatResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/coach/chat [post]
func (h *CoachHandler) Chat(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	history := make([]ports.ChatTurn, 0, len(req.History))
	for _, t := range req.History {
		history = append(history, ports.ChatTurn{Role: t.Role, Message: t.Message})
	}

	result, err := h.service.Chat(c.Request().Context(), ports.ChatInput{
		UserID:  caller.UserID,
		Message: req.Message,
		History: history,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

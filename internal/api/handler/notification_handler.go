package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/focusflow/focusflow-api/internal/core/domain"
	"github.com/focusflow/focusflow-api/internal/core/ports"
)

// NotificationHandler handles HTTP requests for the notification center.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type listNotificationsResponse struct {
	Data []*domain.Notification `json:"data"`
}

type notificationSettingsRequest struct {
	Enabled           bool `json:"enabled"`
	Achievements      bool `json:"achievements"`
	Warnings          bool `json:"warnings"`
	DistractionAlerts bool `json:"distraction_alerts"`
	Sound             bool `json:"sound"`
}

// List handles GET /v1/notifications — most recent first.
//
// @Summary      List the caller's notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max notifications to return"
// @Success      200    {object}  listNotificationsResponse
// @Failure      401    {object}  map[string]string
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	limit := intQueryParam(c, "limit", 50)
	items, err := h.service.List(c.Request().Context(), caller.UserID, limit)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.Notification{}
	}
	return c.JSON(http.StatusOK, listNotificationsResponse{Data: items})
}

// MarkRead handles POST /v1/notifications/:id/read.
//
// @Summary      Mark one notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification id"
// @Success      204  "marked"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), caller.UserID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead handles POST /v1/notifications/read-all.
//
// @Summary      Mark all notifications as read
// @Tags         notifications
// @Security     BearerAuth
// @Success      204  "marked"
// @Failure      401  {object}  map[string]string
// @Router       /v1/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkAllRead(c.Request().Context(), caller.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ClearAll handles DELETE /v1/notifications.
//
// @Summary      Clear all non-persistent notifications
// @Tags         notifications
// @Security     BearerAuth
// @Success      204  "cleared"
// @Failure      401  {object}  map[string]string
// @Router       /v1/notifications [delete]
func (h *NotificationHandler) ClearAll(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.ClearAll(c.Request().Context(), caller.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSettings handles GET /v1/notifications/settings.
//
// @Summary      Get notification settings
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.NotificationSettings
// @Failure      401  {object}  map[string]string
// @Router       /v1/notifications/settings [get]
func (h *NotificationHandler) GetSettings(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	settings, err := h.service.Settings(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /v1/notifications/settings.
//
// @Summary      Update notification settings
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      notificationSettingsRequest  true  "Settings"
// @Success      200   {object}  domain.NotificationSettings
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/notifications/settings [put]
func (h *NotificationHandler) UpdateSettings(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req notificationSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.UpdateSettings(c.Request().Context(), caller.UserID, domain.NotificationSettings{
		Enabled:           req.Enabled,
		Achievements:      req.Achievements,
		Warnings:          req.Warnings,
		DistractionAlerts: req.DistractionAlerts,
		Sound:             req.Sound,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

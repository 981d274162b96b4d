package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/focusflow/focusflow-api/internal/core/domain"
)

// PlanHandler exposes the caller's subscription plan and feature access.
type PlanHandler struct {
	resolver *domain.Resolver
}

func NewPlanHandler(resolver *domain.Resolver) *PlanHandler {
	return &PlanHandler{resolver: resolver}
}

type featureAccessResponse struct {
	Feature        string `json:"feature"`
	Allowed        bool   `json:"allowed"`
	UpgradeMessage string `json:"upgrade_message,omitempty"`
}

// Get handles GET /v1/plan.
//
// @Summary      Get the caller's plan summary
// @Tags         plan
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Plan
// @Failure      401  {object}  map[string]string
// @Router       /v1/plan [get]
func (h *PlanHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.PlanInfo(caller.Tier))
}

// CheckFeature handles GET /v1/plan/features/:feature.
//
// @Summary      Check whether the caller may use a feature
// @Tags         plan
// @Produce      json
// @Security     BearerAuth
// @Param        feature  path      string  true  "Feature key (e.g. ai_coach)"
// @Success      200      {object}  featureAccessResponse
// @Failure      401      {object}  map[string]string
// @Router       /v1/plan/features/{feature} [get]
func (h *PlanHandler) CheckFeature(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	feature := domain.Feature(c.Param("feature"))
	resp := featureAccessResponse{
		Feature: string(feature),
		Allowed: h.resolver.HasAccess(caller.Email, caller.Tier, feature),
	}
	if !resp.Allowed {
		resp.UpgradeMessage = domain.UpgradeMessage(feature)
	}
	return c.JSON(http.StatusOK, resp)
}

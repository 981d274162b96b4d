package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/focusflow/focusflow-api/internal/core/domain"
)

// RBAC enforces role-based access control. Used for the admin surface;
// feature gating by subscription tier is handled by RequireFeature.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireFeature gates a route behind a subscription-tier entitlement.
// A denied feature is a policy outcome, not a server error: the response
// carries the upgrade prompt for the UI to render.
func RequireFeature(resolver *domain.Resolver, feature domain.Feature) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get("email").(string)
			tier, _ := c.Get("tier").(string)
			if !resolver.HasAccess(email, domain.Tier(tier), feature) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error":           "feature not available on your plan",
					"feature":         string(feature),
					"upgrade_message": domain.UpgradeMessage(feature),
				})
			}
			return next(c)
		}
	}
}

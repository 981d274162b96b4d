package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/focusflow/focusflow-api/internal/core/domain"
	"github.com/focusflow/focusflow-api/internal/core/ports"
)

// ctxCaller extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: user_id must be
// non-empty (presence proves the middleware ran). The tier claim is parsed
// through ParseTier so a corrupt token value degrades to free rather than
// escalating.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get("email").(string)
	tier, _ := c.Get("tier").(string)

	return ports.Caller{
		UserID: userID,
		Email:  email,
		Tier:   domain.ParseTier(tier),
	}, nil
}

// intQueryParam parses an optional integer query parameter, falling back to
// def on absence or garbage.
func intQueryParam(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

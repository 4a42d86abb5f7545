package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saferide/kids-api/internal/api/middleware"
)

// callerIdentity extracts the identity injected by the auth middleware and
// performs a fast-fail check before any service call: a populated role
// proves the middleware ran, and owner-scoped operations additionally need
// the user id. The guardian id used for ownership scoping always comes from
// here, never from the request payload.
func callerIdentity(c echo.Context) (id, email, role string, err error) {
	role, _ = c.Get(middleware.CtxRole).(string)
	if role == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	id, _ = c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	email, _ = c.Get(middleware.CtxEmail).(string)
	return id, email, role, nil
}

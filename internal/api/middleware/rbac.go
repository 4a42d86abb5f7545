package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/saferide/kids-api/internal/core/domain"
)

// Convenience guards for the common role sets. Each is a thin partial
// application of RequireRoles, never independent logic.

// RequireAdmin admits only admins.
func (a *Authenticator) RequireAdmin() echo.MiddlewareFunc {
	return a.RequireRoles(domain.RoleAdmin)
}

// RequireDriverOrAdmin admits drivers and admins.
func (a *Authenticator) RequireDriverOrAdmin() echo.MiddlewareFunc {
	return a.RequireRoles(domain.RoleDriver, domain.RoleAdmin)
}

// RequireGuardianOrAdmin admits guardians and admins.
func (a *Authenticator) RequireGuardianOrAdmin() echo.MiddlewareFunc {
	return a.RequireRoles(domain.RoleGuardian, domain.RoleAdmin)
}

// RequireGuardian admits guardians only. Child records are owner-scoped, so
// not even admins reach those endpoints.
func (a *Authenticator) RequireGuardian() echo.MiddlewareFunc {
	return a.RequireRoles(domain.RoleGuardian)
}

// RequireAuthenticated admits any active user regardless of role.
func (a *Authenticator) RequireAuthenticated() echo.MiddlewareFunc {
	return a.RequireRoles()
}

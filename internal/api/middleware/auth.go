package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/saferide/kids-api/internal/core/domain"
	"github.com/saferide/kids-api/internal/core/ports"
	"github.com/saferide/kids-api/internal/token"
)

// Context keys under which the verified caller identity is stored.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// Authenticator is the single role-gating implementation. Every guard in
// the system is a partial application of RequireRoles; there is no second
// code path.
type Authenticator struct {
	codec *token.Codec
	users ports.UserRepository
}

func NewAuthenticator(codec *token.Codec, users ports.UserRepository) *Authenticator {
	return &Authenticator{codec: codec, users: users}
}

// RequireRoles verifies the bearer token, resolves the subject against the
// user store, and admits only callers whose role is in allowedRoles. An
// empty role set admits any authenticated, active user. On success the
// resolved identity is injected into the request context.
func (a *Authenticator) RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := a.codec.Verify(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			user, err := a.users.FindByEmail(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// Token subjects that no longer resolve are
					// indistinguishable from bad tokens.
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
				}
				return err
			}

			if !user.IsActive {
				return domain.ErrInactiveAccount
			}

			if len(allowed) > 0 {
				if _, ok := allowed[user.Role]; !ok {
					return domain.ErrForbidden
				}
			}

			c.Set(CtxUserID, user.ID)
			c.Set(CtxEmail, user.Email)
			c.Set(CtxRole, user.Role)

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

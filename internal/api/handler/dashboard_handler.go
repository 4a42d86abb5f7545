package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the thin role-scoped landing endpoints. Drivers
// have no other surface yet, so these are the production call sites for the
// driver-or-admin guard.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Driver greets a driver (or admin) on their dashboard.
//
// @Summary      Driver dashboard
// @Tags         driver
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /driver/dashboard [get]
func (h *DashboardHandler) Driver(c echo.Context) error {
	_, email, role, err := callerIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Welcome to driver dashboard",
		"user":    email,
		"role":    role,
	})
}

// DriverRoutes lists the routes assigned to the calling driver.
//
// @Summary      Assigned routes
// @Tags         driver
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /driver/routes [get]
func (h *DashboardHandler) DriverRoutes(c echo.Context) error {
	_, email, _, err := callerIdentity(c)
	if err != nil {
		return err
	}
	// Route assignment has no backing store yet; the list is always empty.
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Driver assigned routes",
		"driver":  email,
		"routes":  []string{},
	})
}

// Guardian greets a guardian (or admin) on their dashboard.
//
// @Summary      Guardian dashboard
// @Tags         guardian
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /guardian/dashboard [get]
func (h *DashboardHandler) Guardian(c echo.Context) error {
	_, email, role, err := callerIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Welcome to guardian dashboard",
		"user":    email,
		"role":    role,
	})
}

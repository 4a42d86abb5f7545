package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saferide/kids-api/internal/api/metrics"
	"github.com/saferide/kids-api/internal/core/ports"
)

type ChildHandler struct {
	childService ports.ChildService
}

func NewChildHandler(childService ports.ChildService) *ChildHandler {
	return &ChildHandler{childService: childService}
}

// Create registers a child under the authenticated guardian.
//
// @Summary      Register a child
// @Tags         children
// @Accept       json
// @Produce      json
// @Param        body  body      createChildRequest  true  "Child details"
// @Success      201   {object}  childResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /children [post]
func (h *ChildHandler) Create(c echo.Context) error {
	guardianID, _, _, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req createChildRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in, err := req.toInput()
	if err != nil {
		return err
	}

	view, err := h.childService.CreateChild(c.Request().Context(), guardianID, in)
	if err != nil {
		metrics.ChildOperationsTotal.WithLabelValues("create", "error").Inc()
		return err
	}

	metrics.ChildOperationsTotal.WithLabelValues("create", "success").Inc()
	return c.JSON(http.StatusCreated, newChildResponse(view))
}

// ListMine returns the authenticated guardian's active children, newest first.
//
// @Summary      List my children
// @Tags         children
// @Produce      json
// @Success      200  {array}  childResponse
// @Security     BearerAuth
// @Router       /children/me [get]
func (h *ChildHandler) ListMine(c echo.Context) error {
	guardianID, _, _, err := callerIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.childService.ListMyChildren(c.Request().Context(), guardianID)
	if err != nil {
		metrics.ChildOperationsTotal.WithLabelValues("list", "error").Inc()
		return err
	}

	out := make([]childResponse, 0, len(views))
	for _, v := range views {
		out = append(out, newChildResponse(v))
	}

	metrics.ChildOperationsTotal.WithLabelValues("list", "success").Inc()
	return c.JSON(http.StatusOK, out)
}

// Get returns one of the guardian's children by id.
//
// @Summary      Get a child
// @Tags         children
// @Produce      json
// @Param        id   path      string  true  "Child ID"
// @Success      200  {object}  childResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /children/{id} [get]
func (h *ChildHandler) Get(c echo.Context) error {
	guardianID, _, _, err := callerIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.childService.GetChild(c.Request().Context(), c.Param("id"), guardianID)
	if err != nil {
		metrics.ChildOperationsTotal.WithLabelValues("get", "error").Inc()
		return err
	}

	metrics.ChildOperationsTotal.WithLabelValues("get", "success").Inc()
	return c.JSON(http.StatusOK, newChildResponse(view))
}

// Update applies a partial update to one of the guardian's children.
//
// @Summary      Update a child
// @Tags         children
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Child ID"
// @Param        body  body      updateChildRequest  true  "Fields to change"
// @Success      200   {object}  childResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /children/{id} [put]
func (h *ChildHandler) Update(c echo.Context) error {
	guardianID, _, _, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req updateChildRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	changes, err := req.toUpdate()
	if err != nil {
		return err
	}

	view, err := h.childService.UpdateChild(c.Request().Context(), c.Param("id"), guardianID, changes)
	if err != nil {
		metrics.ChildOperationsTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	metrics.ChildOperationsTotal.WithLabelValues("update", "success").Inc()
	return c.JSON(http.StatusOK, newChildResponse(view))
}

// Delete soft-deletes one of the guardian's children.
//
// @Summary      Delete a child
// @Tags         children
// @Param        id  path  string  true  "Child ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /children/{id} [delete]
func (h *ChildHandler) Delete(c echo.Context) error {
	guardianID, _, _, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.childService.DeleteChild(c.Request().Context(), c.Param("id"), guardianID); err != nil {
		metrics.ChildOperationsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	metrics.ChildOperationsTotal.WithLabelValues("delete", "success").Inc()
	return c.NoContent(http.StatusNoContent)
}

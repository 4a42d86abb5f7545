package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/saferide/kids-api/internal/core/domain"
	"github.com/saferide/kids-api/internal/core/ports"
)

type AuditHandler struct {
	audits ports.AuditRepository
}

func NewAuditHandler(audits ports.AuditRepository) *AuditHandler {
	return &AuditHandler{audits: audits}
}

type auditEventResponse struct {
	ID         string `json:"id"`
	ChildID    string `json:"child_id"`
	Action     string `json:"action"`
	OccurredAt string `json:"occurred_at"`
}

func newAuditEventResponse(e *domain.AuditEvent) auditEventResponse {
	return auditEventResponse{
		ID:         e.ID,
		ChildID:    e.ChildID,
		Action:     e.Action,
		OccurredAt: e.OccurredAt.UTC().Format(time.RFC3339),
	}
}

// ListMine returns the caller's audit trail, newest first.
//
// @Summary      List my audit events
// @Tags         audit
// @Produce      json
// @Success      200  {array}  auditEventResponse
// @Security     BearerAuth
// @Router       /api/audit [get]
func (h *AuditHandler) ListMine(c echo.Context) error {
	guardianID, _, _, err := callerIdentity(c)
	if err != nil {
		return err
	}

	events, err := h.audits.FindByGuardian(c.Request().Context(), guardianID)
	if err != nil {
		return err
	}

	out := make([]auditEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, newAuditEventResponse(e))
	}
	return c.JSON(http.StatusOK, out)
}

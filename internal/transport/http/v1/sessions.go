package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hagglekit/strategy-engine/internal/domain"
)

// GetSessionDecisions returns the decision audit trail for a session.
func (h *Handler) GetSessionDecisions(c echo.Context) error {
	sessionID := c.Param("session_id")

	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	ctx := c.Request().Context()

	recs, err := h.service.SessionDecisions(ctx, sessionID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	resp := domain.SessionDecisionsResponse{
		SessionID: sessionID,
		Decisions: make([]domain.DecisionListItem, 0, len(recs)),
	}
	for _, rec := range recs {
		resp.Decisions = append(resp.Decisions, domain.DecisionListItem{
			DecisionID:    rec.DecisionID,
			Action:        rec.Action,
			ResponseKey:   rec.ResponseKey,
			CounterPrice:  rec.CounterPrice,
			CurrentOffer:  rec.CurrentOffer,
			PolicyVersion: rec.PolicyVersion,
			CreatedAt:     rec.CreatedAt.UnixMilli(),
		})
	}

	return c.JSON(http.StatusOK, resp)
}

package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hagglekit/strategy-engine/internal/domain"
	"github.com/hagglekit/strategy-engine/internal/service"
)

// Decide handles a negotiation decision request. Field presence and numeric
// validity are enforced here; the engine behind the service assumes
// well-typed input.
func (h *Handler) Decide(c echo.Context) error {
	var req domain.DecideRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := validateDecideRequest(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ctx := c.Request().Context()

	resp, err := h.service.Decide(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrGuardBlocked) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, resp)
}

func validateDecideRequest(req domain.DecideRequest) error {
	if req.SessionID == "" {
		return errors.New("session_id is required")
	}
	if req.FloorPrice == nil {
		return errors.New("floor_price is required")
	}
	if req.ListedPrice == nil {
		return errors.New("listed_price is required")
	}
	if req.CurrentOffer == nil {
		return errors.New("current_offer is required")
	}
	if *req.FloorPrice <= 0 {
		return errors.New("floor_price must be positive")
	}
	if *req.ListedPrice <= 0 {
		return errors.New("listed_price must be positive")
	}
	return nil
}

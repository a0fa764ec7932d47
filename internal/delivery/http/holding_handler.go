package http

import (
	"net/http"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/service"
	"portfolio-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HoldingHandler handles HTTP requests for holdings.
type HoldingHandler struct {
	holdingService service.HoldingService
	logger         *logger.Logger
}

// NewHoldingHandler creates a new HoldingHandler.
func NewHoldingHandler(holdingService service.HoldingService, logger *logger.Logger) *HoldingHandler {
	return &HoldingHandler{holdingService: holdingService, logger: logger}
}

// RegisterRoutes registers the holding routes to the Echo group.
func (h *HoldingHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateHolding)
	g.GET("/:id", h.GetHoldingByID)
	g.PUT("/:id", h.UpdateHolding)
	g.DELETE("/:id", h.DeleteHolding)
}

// CreateHolding adds a holding to a portfolio.
func (h *HoldingHandler) CreateHolding(c echo.Context) error {
	var req dto.CreateHoldingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if req.Symbol == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Symbol is required"})
	}

	resp, err := h.holdingService.CreateHolding(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create holding", logger.ErrorField(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetHoldingByID returns a single holding.
func (h *HoldingHandler) GetHoldingByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid holding ID"})
	}
	resp, err := h.holdingService.GetHoldingByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateHolding updates an existing holding.
func (h *HoldingHandler) UpdateHolding(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid holding ID"})
	}
	var req dto.UpdateHoldingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	resp, err := h.holdingService.UpdateHolding(c.Request().Context(), id, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteHolding deletes a holding.
func (h *HoldingHandler) DeleteHolding(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid holding ID"})
	}
	if err := h.holdingService.DeleteHolding(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

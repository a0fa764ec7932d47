package http

import (
	"net/http"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/service"
	"portfolio-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TradeHandler handles HTTP requests for trades.
type TradeHandler struct {
	tradeService service.TradeService
	logger       *logger.Logger
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeService service.TradeService, logger *logger.Logger) *TradeHandler {
	return &TradeHandler{tradeService: tradeService, logger: logger}
}

// RegisterRoutes registers the trade routes to the Echo group.
func (h *TradeHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetAllTrades)
	g.GET("/:id", h.GetTradeByID)
}

// GetAllTrades lists all recorded trades, most recent first.
func (h *TradeHandler) GetAllTrades(c echo.Context) error {
	trades, err := h.tradeService.GetAllTrades(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get trades", logger.ErrorField(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, trades)
}

// GetTradeByID returns a single trade.
func (h *TradeHandler) GetTradeByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid trade ID"})
	}
	resp, err := h.tradeService.GetTradeByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

package http

import (
	"net/http"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/service"
	"portfolio-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StrategyHandler handles HTTP requests for strategies, including running
// them through the signal engine.
type StrategyHandler struct {
	strategyService service.StrategyService
	signalService   service.SignalService
	tradeService    service.TradeService
	logger          *logger.Logger
}

// NewStrategyHandler creates a new StrategyHandler.
func NewStrategyHandler(
	strategyService service.StrategyService,
	signalService service.SignalService,
	tradeService service.TradeService,
	logger *logger.Logger,
) *StrategyHandler {
	return &StrategyHandler{
		strategyService: strategyService,
		signalService:   signalService,
		tradeService:    tradeService,
		logger:          logger,
	}
}

// RegisterRoutes registers the strategy routes to the Echo group.
func (h *StrategyHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateStrategy)
	g.GET("", h.GetAllStrategies)
	g.GET("/:id", h.GetStrategyByID)
	g.PUT("/:id", h.UpdateStrategy)
	g.DELETE("/:id", h.DeleteStrategy)
	g.POST("/:id/analyze", h.AnalyzeStrategy)
	g.POST("/:id/run", h.RunStrategy)
	g.GET("/:id/trades", h.GetStrategyTrades)
}

// CreateStrategy creates a new trading strategy.
func (h *StrategyHandler) CreateStrategy(c echo.Context) error {
	var req dto.CreateStrategyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if req.Symbol == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Symbol is required"})
	}

	resp, err := h.strategyService.CreateStrategy(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create strategy", logger.ErrorField(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetAllStrategies lists all strategies.
func (h *StrategyHandler) GetAllStrategies(c echo.Context) error {
	strategies, err := h.strategyService.GetAllStrategies(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get strategies", logger.ErrorField(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, strategies)
}

// GetStrategyByID returns a single strategy.
func (h *StrategyHandler) GetStrategyByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid strategy ID"})
	}
	resp, err := h.strategyService.GetStrategyByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateStrategy applies an explicit edit to a strategy.
func (h *StrategyHandler) UpdateStrategy(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid strategy ID"})
	}
	var req dto.UpdateStrategyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	resp, err := h.strategyService.UpdateStrategy(c.Request().Context(), id, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteStrategy deletes a strategy and its trades.
func (h *StrategyHandler) DeleteStrategy(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid strategy ID"})
	}
	if err := h.strategyService.DeleteStrategy(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AnalyzeStrategy evaluates the strategy and returns the signal without
// placing any order.
func (h *StrategyHandler) AnalyzeStrategy(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid strategy ID"})
	}

	signal, err := h.signalService.EvaluateByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, signal)
}

// RunStrategy evaluates and executes the strategy, returning the signal and
// any recorded trade.
func (h *StrategyHandler) RunStrategy(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid strategy ID"})
	}
	resp, err := h.signalService.ExecuteByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetStrategyTrades lists the trades recorded for a strategy.
func (h *StrategyHandler) GetStrategyTrades(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid strategy ID"})
	}
	trades, err := h.tradeService.GetTradesByStrategyID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, trades)
}

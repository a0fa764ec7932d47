package http

import (
	"net/http"
	"strconv"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/service"
	"portfolio-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioHandler handles HTTP requests for portfolios.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
	holdingService   service.HoldingService
	strategyService  service.StrategyService
	logger           *logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(
	portfolioService service.PortfolioService,
	holdingService service.HoldingService,
	strategyService service.StrategyService,
	logger *logger.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		holdingService:   holdingService,
		strategyService:  strategyService,
		logger:           logger,
	}
}

// RegisterRoutes registers the portfolio routes to the Echo group.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreatePortfolio)
	g.GET("", h.GetAllPortfolios)
	g.GET("/:id", h.GetPortfolioByID)
	g.PUT("/:id", h.UpdatePortfolio)
	g.DELETE("/:id", h.DeletePortfolio)
	g.GET("/:id/holdings", h.GetPortfolioHoldings)
	g.POST("/:id/holdings/refresh", h.RefreshPortfolioHoldings)
	g.GET("/:id/strategies", h.GetPortfolioStrategies)
}

// CreatePortfolio creates a new portfolio.
func (h *PortfolioHandler) CreatePortfolio(c echo.Context) error {
	var req dto.CreatePortfolioRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Portfolio name is required"})
	}

	resp, err := h.portfolioService.CreatePortfolio(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create portfolio", logger.ErrorField(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetAllPortfolios lists all portfolios.
func (h *PortfolioHandler) GetAllPortfolios(c echo.Context) error {
	portfolios, err := h.portfolioService.GetAllPortfolios(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get portfolios", logger.ErrorField(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, portfolios)
}

// GetPortfolioByID returns a single portfolio.
func (h *PortfolioHandler) GetPortfolioByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid portfolio ID"})
	}
	resp, err := h.portfolioService.GetPortfolioByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdatePortfolio updates an existing portfolio.
func (h *PortfolioHandler) UpdatePortfolio(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid portfolio ID"})
	}
	var req dto.UpdatePortfolioRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	resp, err := h.portfolioService.UpdatePortfolio(c.Request().Context(), id, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// DeletePortfolio deletes a portfolio and everything it owns.
func (h *PortfolioHandler) DeletePortfolio(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid portfolio ID"})
	}
	if err := h.portfolioService.DeletePortfolio(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetPortfolioHoldings lists the holdings of a portfolio.
func (h *PortfolioHandler) GetPortfolioHoldings(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid portfolio ID"})
	}
	holdings, err := h.holdingService.GetHoldingsByPortfolioID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, holdings)
}

// RefreshPortfolioHoldings requotes all holdings of a portfolio.
func (h *PortfolioHandler) RefreshPortfolioHoldings(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid portfolio ID"})
	}
	holdings, err := h.holdingService.RefreshPortfolioHoldings(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, holdings)
}

// GetPortfolioStrategies lists the strategies of a portfolio.
func (h *PortfolioHandler) GetPortfolioStrategies(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid portfolio ID"})
	}
	strategies, err := h.strategyService.GetStrategiesByPortfolioID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, strategies)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

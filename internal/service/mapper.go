package service

import (
	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/entity"
)

// ToPortfolioResponse maps a portfolio entity to its response DTO.
func ToPortfolioResponse(p *entity.Portfolio) *dto.PortfolioResponse {
	return &dto.PortfolioResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		TotalValue:   p.TotalValue(),
		HoldingCount: len(p.Holdings),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToHoldingResponse maps a holding entity to its response DTO.
func ToHoldingResponse(h *entity.Holding) *dto.HoldingResponse {
	return &dto.HoldingResponse{
		ID:                 h.ID,
		PortfolioID:        h.PortfolioID,
		Symbol:             h.Symbol,
		Name:               h.Name,
		Quantity:           h.Quantity,
		PurchasePrice:      h.PurchasePrice,
		PurchaseDate:       h.PurchaseDate,
		CurrentPrice:       h.CurrentPrice,
		CurrentValue:       h.CurrentValue,
		GainLoss:           h.GainLoss(),
		GainLossPercentage: h.GainLossPercentage(),
		CreatedAt:          h.CreatedAt,
		UpdatedAt:          h.UpdatedAt,
	}
}

// ToStrategyResponse maps a strategy entity to its response DTO.
func ToStrategyResponse(s *entity.Strategy) *dto.StrategyResponse {
	return &dto.StrategyResponse{
		ID:                   s.ID,
		PortfolioID:          s.PortfolioID,
		Name:                 s.Name,
		Symbol:               s.Symbol,
		ConfidenceThreshold:  s.ConfidenceThreshold,
		PositionSizeFraction: s.PositionSizeFraction,
		IsActive:             s.IsActive,
		TotalTrades:          s.TotalTrades,
		WinningTrades:        s.WinningTrades,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

// ToTradeResponse maps a trade entity to its response DTO.
func ToTradeResponse(t *entity.Trade) *dto.TradeResponse {
	return &dto.TradeResponse{
		ID:              t.ID,
		StrategyID:      t.StrategyID,
		PortfolioID:     t.PortfolioID,
		Symbol:          t.Symbol,
		Direction:       string(t.Direction),
		PredictedReturn: t.PredictedReturn,
		Confidence:      t.Confidence,
		Quantity:        t.Quantity,
		Price:           t.Price,
		Status:          string(t.Status),
		StatusReason:    t.StatusReason,
		ClientOrderID:   t.ClientOrderID,
		CreatedAt:       t.CreatedAt,
	}
}

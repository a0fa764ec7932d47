package dto

import "time"

// CreateStrategyRequest is the DTO for creating a new trading strategy.
type CreateStrategyRequest struct {
	PortfolioID          uint    `json:"portfolio_id"`
	Name                 string  `json:"name"`
	Symbol               string  `json:"symbol"`
	ConfidenceThreshold  float64 `json:"confidence_threshold"`
	PositionSizeFraction float64 `json:"position_size_fraction"`
	IsActive             *bool   `json:"is_active"`
}

// UpdateStrategyRequest is the DTO for updating an existing strategy.
// PUT replaces the whole resource: fields omitted from the payload are
// written back as their zero values, except IsActive which is kept when
// absent.
type UpdateStrategyRequest struct {
	Name                 string  `json:"name"`
	Symbol               string  `json:"symbol"`
	ConfidenceThreshold  float64 `json:"confidence_threshold"`
	PositionSizeFraction float64 `json:"position_size_fraction"`
	IsActive             *bool   `json:"is_active"`
}

// StrategyResponse is the DTO for API responses containing strategy details.
type StrategyResponse struct {
	ID                   uint      `json:"id"`
	PortfolioID          uint      `json:"portfolio_id"`
	Name                 string    `json:"name"`
	Symbol               string    `json:"symbol"`
	ConfidenceThreshold  float64   `json:"confidence_threshold"`
	PositionSizeFraction float64   `json:"position_size_fraction"`
	IsActive             bool      `json:"is_active"`
	TotalTrades          int       `json:"total_trades"`
	WinningTrades        int       `json:"winning_trades"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

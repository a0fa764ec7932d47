package dto

import "time"

// TradeResponse is the DTO for API responses containing trade details.
type TradeResponse struct {
	ID              uint      `json:"id"`
	StrategyID      uint      `json:"strategy_id"`
	PortfolioID     uint      `json:"portfolio_id"`
	Symbol          string    `json:"symbol"`
	Direction       string    `json:"direction"`
	PredictedReturn float64   `json:"predicted_return"`
	Confidence      float64   `json:"confidence"`
	Quantity        float64   `json:"quantity"`
	Price           float64   `json:"price"`
	Status          string    `json:"status"`
	StatusReason    string    `json:"status_reason,omitempty"`
	ClientOrderID   string    `json:"client_order_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

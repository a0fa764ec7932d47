package dto

import "time"

// CreateHoldingRequest is the DTO for adding a holding to a portfolio.
type CreateHoldingRequest struct {
	PortfolioID   uint    `json:"portfolio_id"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
	PurchaseDate  string  `json:"purchase_date"` // YYYY-MM-DD
}

// UpdateHoldingRequest is the DTO for updating an existing holding.
// PUT replaces the whole resource: fields omitted from the payload are
// written back as their zero values, except PurchaseDate which is kept
// when empty.
type UpdateHoldingRequest struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
	PurchaseDate  string  `json:"purchase_date"` // YYYY-MM-DD
}

// HoldingResponse is the DTO for API responses containing holding details.
type HoldingResponse struct {
	ID                 uint      `json:"id"`
	PortfolioID        uint      `json:"portfolio_id"`
	Symbol             string    `json:"symbol"`
	Name               string    `json:"name"`
	Quantity           float64   `json:"quantity"`
	PurchasePrice      float64   `json:"purchase_price"`
	PurchaseDate       time.Time `json:"purchase_date"`
	CurrentPrice       float64   `json:"current_price"`
	CurrentValue       float64   `json:"current_value"`
	GainLoss           float64   `json:"gain_loss"`
	GainLossPercentage float64   `json:"gain_loss_percentage"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

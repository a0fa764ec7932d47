package dto

import "time"

// CreatePortfolioRequest is the DTO for creating a new portfolio.
type CreatePortfolioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdatePortfolioRequest is the DTO for updating an existing portfolio.
// PUT replaces the whole resource: fields omitted from the payload are
// written back as their zero values.
type UpdatePortfolioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PortfolioResponse is the DTO for API responses containing portfolio details.
type PortfolioResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	TotalValue   float64   `json:"total_value"`
	HoldingCount int       `json:"holding_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

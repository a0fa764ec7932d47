package entity

import "time"

type Holding struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PortfolioID   uint      `gorm:"not null;index" json:"portfolio_id"`
	Symbol        string    `gorm:"not null" json:"symbol"`
	Name          string    `json:"name"`
	Quantity      float64   `gorm:"not null" json:"quantity"`
	PurchasePrice float64   `gorm:"not null" json:"purchase_price"`
	PurchaseDate  time.Time `gorm:"not null" json:"purchase_date"`
	CurrentPrice  float64   `json:"current_price"`
	CurrentValue  float64   `json:"current_value"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Holding) TableName() string {
	return "holdings"
}

// UpdateCurrentPrice sets the current price and recomputes the current value.
func (h *Holding) UpdateCurrentPrice(price float64) {
	h.CurrentPrice = price
	h.CurrentValue = h.Quantity * price
}

// GainLoss returns the unrealized gain or loss against the purchase cost.
func (h *Holding) GainLoss() float64 {
	return h.CurrentValue - h.Quantity*h.PurchasePrice
}

// GainLossPercentage returns the unrealized gain or loss as a percentage of cost.
func (h *Holding) GainLossPercentage() float64 {
	cost := h.Quantity * h.PurchasePrice
	if cost == 0 {
		return 0
	}
	return (h.CurrentValue - cost) / cost * 100
}

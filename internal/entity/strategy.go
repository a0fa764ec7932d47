package entity

import "time"

type Strategy struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	PortfolioID          uint      `gorm:"not null;index" json:"portfolio_id"`
	Name                 string    `gorm:"not null" json:"name"`
	Symbol               string    `gorm:"not null" json:"symbol"`
	ConfidenceThreshold  float64   `gorm:"not null" json:"confidence_threshold"`
	PositionSizeFraction float64   `gorm:"not null" json:"position_size_fraction"`
	IsActive             bool      `gorm:"not null;default:true" json:"is_active"`
	TotalTrades          int       `gorm:"not null;default:0" json:"total_trades"`
	WinningTrades        int       `gorm:"not null;default:0" json:"winning_trades"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Strategy) TableName() string {
	return "strategies"
}

package entity

import (
	"time"
)

type Portfolio struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	Holdings    []Holding  `gorm:"foreignKey:PortfolioID" json:"holdings,omitempty"`
	Strategies  []Strategy `gorm:"foreignKey:PortfolioID" json:"strategies,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Portfolio) TableName() string {
	return "portfolios"
}

// TotalValue sums the current value of all loaded holdings.
func (p *Portfolio) TotalValue() float64 {
	var total float64
	for _, h := range p.Holdings {
		total += h.CurrentValue
	}
	return total
}

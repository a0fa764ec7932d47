package entity

import "time"

// PricePoint is one daily close in the append-only price history.
// At most one row exists per (symbol, date).
type PricePoint struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Symbol     string    `gorm:"not null;uniqueIndex:idx_price_points_symbol_date" json:"symbol"`
	Date       time.Time `gorm:"not null;type:date;uniqueIndex:idx_price_points_symbol_date" json:"date"`
	ClosePrice float64   `gorm:"not null" json:"close_price"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PricePoint) TableName() string {
	return "price_points"
}

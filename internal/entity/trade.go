package entity

import (
	"time"

	"gorm.io/datatypes"
)

// TradeDirection is the side of a trade.
type TradeDirection string

const (
	TradeDirectionBuy  TradeDirection = "buy"
	TradeDirectionSell TradeDirection = "sell"
)

// TradeStatus tracks the lifecycle of a submitted order.
// Transitions: pending -> filled or pending -> rejected. Both are terminal.
type TradeStatus string

const (
	TradeStatusPending  TradeStatus = "pending"
	TradeStatusFilled   TradeStatus = "filled"
	TradeStatusRejected TradeStatus = "rejected"
)

type Trade struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	StrategyID      uint           `gorm:"not null;index" json:"strategy_id"`
	PortfolioID     uint           `gorm:"not null;index" json:"portfolio_id"`
	Symbol          string         `gorm:"not null" json:"symbol"`
	Direction       TradeDirection `gorm:"not null" json:"direction"`
	PredictedReturn float64        `json:"predicted_return"`
	Confidence      float64        `json:"confidence"`
	Quantity        float64        `gorm:"not null" json:"quantity"`
	Price           float64        `json:"price"`
	Status          TradeStatus    `gorm:"not null" json:"status"`
	StatusReason    string         `json:"status_reason"`
	ClientOrderID   string         `gorm:"index" json:"client_order_id"`
	BrokerData      datatypes.JSON `gorm:"type:jsonb" json:"broker_data,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Trade) TableName() string {
	return "trades"
}

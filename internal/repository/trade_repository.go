package repository

import (
	"context"
	"errors"
	"fmt"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
)

// TradeRepository defines the interface for trade data operations.
// Trades are append-only except for recording the later-observed outcome.
type TradeRepository interface {
	Create(ctx context.Context, trade *entity.Trade) error
	UpdateOutcome(ctx context.Context, trade *entity.Trade) error
	FindByID(ctx context.Context, id uint) (*entity.Trade, error)
	FindAll(ctx context.Context) ([]entity.Trade, error)
	FindByStrategyID(ctx context.Context, strategyID uint) ([]entity.Trade, error)
}

// NewTradeRepository creates a new GORM-based trade repository.
func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

type tradeRepository struct {
	db *gorm.DB
}

// Create inserts a trade after verifying its owning strategy exists.
func (r *tradeRepository) Create(ctx context.Context, trade *entity.Trade) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Strategy{}).Where("id = ?", trade.StrategyID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("strategy %d: %w", trade.StrategyID, ErrReferentialIntegrity)
		}
		return tx.Create(trade).Error
	})
}

// UpdateOutcome records the terminal status of a submitted trade.
func (r *tradeRepository) UpdateOutcome(ctx context.Context, trade *entity.Trade) error {
	return r.db.WithContext(ctx).Model(trade).
		Select("status", "status_reason", "price", "quantity", "broker_data").
		Updates(trade).Error
}

func (r *tradeRepository) FindByID(ctx context.Context, id uint) (*entity.Trade, error) {
	var trade entity.Trade
	if err := r.db.WithContext(ctx).First(&trade, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &trade, nil
}

func (r *tradeRepository) FindAll(ctx context.Context) ([]entity.Trade, error) {
	var trades []entity.Trade
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

func (r *tradeRepository) FindByStrategyID(ctx context.Context, strategyID uint) ([]entity.Trade, error) {
	var trades []entity.Trade
	if err := r.db.WithContext(ctx).Where("strategy_id = ?", strategyID).Order("created_at DESC").Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

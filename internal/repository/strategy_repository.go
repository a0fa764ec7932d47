package repository

import (
	"context"
	"errors"
	"fmt"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
)

// StrategyRepository defines the interface for strategy data operations.
type StrategyRepository interface {
	Create(ctx context.Context, strategy *entity.Strategy) error
	FindByID(ctx context.Context, id uint) (*entity.Strategy, error)
	FindAll(ctx context.Context) ([]entity.Strategy, error)
	FindByPortfolioID(ctx context.Context, portfolioID uint) ([]entity.Strategy, error)
	FindActive(ctx context.Context) ([]entity.Strategy, error)
	Update(ctx context.Context, strategy *entity.Strategy) error
	Delete(ctx context.Context, id uint) error
}

// NewStrategyRepository creates a new GORM-based strategy repository.
func NewStrategyRepository(db *gorm.DB) StrategyRepository {
	return &strategyRepository{db: db}
}

type strategyRepository struct {
	db *gorm.DB
}

// Create inserts a strategy after verifying its owning portfolio exists.
func (r *strategyRepository) Create(ctx context.Context, strategy *entity.Strategy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Portfolio{}).Where("id = ?", strategy.PortfolioID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("portfolio %d: %w", strategy.PortfolioID, ErrReferentialIntegrity)
		}
		return tx.Create(strategy).Error
	})
}

func (r *strategyRepository) FindByID(ctx context.Context, id uint) (*entity.Strategy, error) {
	var strategy entity.Strategy
	if err := r.db.WithContext(ctx).First(&strategy, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &strategy, nil
}

func (r *strategyRepository) FindAll(ctx context.Context) ([]entity.Strategy, error) {
	var strategies []entity.Strategy
	if err := r.db.WithContext(ctx).Find(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}

func (r *strategyRepository) FindByPortfolioID(ctx context.Context, portfolioID uint) ([]entity.Strategy, error) {
	var strategies []entity.Strategy
	if err := r.db.WithContext(ctx).Where("portfolio_id = ?", portfolioID).Find(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}

func (r *strategyRepository) FindActive(ctx context.Context) ([]entity.Strategy, error) {
	var strategies []entity.Strategy
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}

func (r *strategyRepository) Update(ctx context.Context, strategy *entity.Strategy) error {
	return r.db.WithContext(ctx).Save(strategy).Error
}

func (r *strategyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("strategy_id = ?", id).Delete(&entity.Trade{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Strategy{}, id).Error
	})
}

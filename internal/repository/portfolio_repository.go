package repository

import (
	"context"
	"errors"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
)

// PortfolioRepository defines the interface for portfolio data operations.
type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *entity.Portfolio) error
	FindByID(ctx context.Context, id uint) (*entity.Portfolio, error)
	FindAll(ctx context.Context) ([]entity.Portfolio, error)
	Update(ctx context.Context, portfolio *entity.Portfolio) error
	Delete(ctx context.Context, id uint) error
}

// NewPortfolioRepository creates a new GORM-based portfolio repository.
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

type portfolioRepository struct {
	db *gorm.DB
}

func (r *portfolioRepository) Create(ctx context.Context, portfolio *entity.Portfolio) error {
	return r.db.WithContext(ctx).Create(portfolio).Error
}

func (r *portfolioRepository) FindByID(ctx context.Context, id uint) (*entity.Portfolio, error) {
	var portfolio entity.Portfolio
	err := r.db.WithContext(ctx).Preload("Holdings").Preload("Strategies").First(&portfolio, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &portfolio, nil
}

func (r *portfolioRepository) FindAll(ctx context.Context) ([]entity.Portfolio, error) {
	var portfolios []entity.Portfolio
	if err := r.db.WithContext(ctx).Preload("Holdings").Find(&portfolios).Error; err != nil {
		return nil, err
	}
	return portfolios, nil
}

func (r *portfolioRepository) Update(ctx context.Context, portfolio *entity.Portfolio) error {
	return r.db.WithContext(ctx).Omit("Holdings", "Strategies").Save(portfolio).Error
}

// Delete removes a portfolio together with its holdings, strategies and trades.
func (r *portfolioRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", id).Delete(&entity.Trade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portfolio_id = ?", id).Delete(&entity.Strategy{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portfolio_id = ?", id).Delete(&entity.Holding{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Portfolio{}, id).Error
	})
}

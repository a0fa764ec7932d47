package repository

import (
	"context"
	"errors"
	"fmt"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
)

// HoldingRepository defines the interface for holding data operations.
type HoldingRepository interface {
	Create(ctx context.Context, holding *entity.Holding) error
	FindByID(ctx context.Context, id uint) (*entity.Holding, error)
	FindByPortfolioID(ctx context.Context, portfolioID uint) ([]entity.Holding, error)
	Update(ctx context.Context, holding *entity.Holding) error
	Delete(ctx context.Context, id uint) error
}

// NewHoldingRepository creates a new GORM-based holding repository.
func NewHoldingRepository(db *gorm.DB) HoldingRepository {
	return &holdingRepository{db: db}
}

type holdingRepository struct {
	db *gorm.DB
}

// Create inserts a holding after verifying its owning portfolio exists.
func (r *holdingRepository) Create(ctx context.Context, holding *entity.Holding) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Portfolio{}).Where("id = ?", holding.PortfolioID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("portfolio %d: %w", holding.PortfolioID, ErrReferentialIntegrity)
		}
		return tx.Create(holding).Error
	})
}

func (r *holdingRepository) FindByID(ctx context.Context, id uint) (*entity.Holding, error) {
	var holding entity.Holding
	if err := r.db.WithContext(ctx).First(&holding, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &holding, nil
}

func (r *holdingRepository) FindByPortfolioID(ctx context.Context, portfolioID uint) ([]entity.Holding, error) {
	var holdings []entity.Holding
	if err := r.db.WithContext(ctx).Where("portfolio_id = ?", portfolioID).Find(&holdings).Error; err != nil {
		return nil, err
	}
	return holdings, nil
}

func (r *holdingRepository) Update(ctx context.Context, holding *entity.Holding) error {
	return r.db.WithContext(ctx).Save(holding).Error
}

func (r *holdingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Holding{}, id).Error
}

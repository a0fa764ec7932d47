package repository

import (
	"context"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PricePointRepository defines the interface for the append-only price history.
type PricePointRepository interface {
	UpsertBatch(ctx context.Context, points []entity.PricePoint) error
	FindLatestBySymbol(ctx context.Context, symbol string, limit int) ([]entity.PricePoint, error)
	FindLastClose(ctx context.Context, symbol string) (*entity.PricePoint, error)
}

// NewPricePointRepository creates a new GORM-based price point repository.
func NewPricePointRepository(db *gorm.DB) PricePointRepository {
	return &pricePointRepository{db: db}
}

type pricePointRepository struct {
	db *gorm.DB
}

// UpsertBatch appends price points, silently skipping (symbol, date) duplicates.
func (r *pricePointRepository) UpsertBatch(ctx context.Context, points []entity.PricePoint) error {
	if len(points) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&points).Error
}

// FindLatestBySymbol returns up to limit most recent points, ordered by date ascending.
func (r *pricePointRepository) FindLatestBySymbol(ctx context.Context, symbol string, limit int) ([]entity.PricePoint, error) {
	var points []entity.PricePoint
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("date DESC").
		Limit(limit).
		Find(&points).Error
	if err != nil {
		return nil, err
	}
	// Reverse into ascending date order for regression input.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}

func (r *pricePointRepository) FindLastClose(ctx context.Context, symbol string) (*entity.PricePoint, error) {
	var point entity.PricePoint
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("date DESC").
		First(&point).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &point, nil
}

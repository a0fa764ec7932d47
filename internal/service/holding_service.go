package service

import (
	"context"
	"fmt"
	"time"

	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/entity"
	"portfolio-tracker/internal/repository"
	"portfolio-tracker/pkg/logger"
)

// HoldingService defines the interface for managing holdings.
type HoldingService interface {
	CreateHolding(ctx context.Context, req *dto.CreateHoldingRequest) (*dto.HoldingResponse, error)
	GetHoldingByID(ctx context.Context, id uint) (*dto.HoldingResponse, error)
	GetHoldingsByPortfolioID(ctx context.Context, portfolioID uint) ([]*dto.HoldingResponse, error)
	UpdateHolding(ctx context.Context, id uint, req *dto.UpdateHoldingRequest) (*dto.HoldingResponse, error)
	DeleteHolding(ctx context.Context, id uint) error
	RefreshPortfolioHoldings(ctx context.Context, portfolioID uint) ([]*dto.HoldingResponse, error)
}

// NewHoldingService creates a new holding service.
func NewHoldingService(
	cfg *config.Config,
	holdingRepo repository.HoldingRepository,
	marketData MarketDataService,
	logger *logger.Logger,
) HoldingService {
	return &holdingService{
		cfg:         cfg,
		holdingRepo: holdingRepo,
		marketData:  marketData,
		logger:      logger,
	}
}

type holdingService struct {
	cfg         *config.Config
	holdingRepo repository.HoldingRepository
	marketData  MarketDataService
	logger      *logger.Logger
}

func (s *holdingService) CreateHolding(ctx context.Context, req *dto.CreateHoldingRequest) (*dto.HoldingResponse, error) {
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidParameter)
	}
	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: purchase date must be YYYY-MM-DD", ErrInvalidParameter)
	}

	holding := &entity.Holding{
		PortfolioID:   req.PortfolioID,
		Symbol:        req.Symbol,
		Name:          req.Name,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		PurchaseDate:  purchaseDate,
	}
	// Seed the current value from the purchase price until the first refresh.
	holding.UpdateCurrentPrice(req.PurchasePrice)

	if err := s.holdingRepo.Create(ctx, holding); err != nil {
		return nil, err
	}
	return ToHoldingResponse(holding), nil
}

func (s *holdingService) GetHoldingByID(ctx context.Context, id uint) (*dto.HoldingResponse, error) {
	holding, err := s.holdingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToHoldingResponse(holding), nil
}

func (s *holdingService) GetHoldingsByPortfolioID(ctx context.Context, portfolioID uint) ([]*dto.HoldingResponse, error) {
	holdings, err := s.holdingRepo.FindByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.HoldingResponse, 0, len(holdings))
	for i := range holdings {
		responses = append(responses, ToHoldingResponse(&holdings[i]))
	}
	return responses, nil
}

func (s *holdingService) UpdateHolding(ctx context.Context, id uint, req *dto.UpdateHoldingRequest) (*dto.HoldingResponse, error) {
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidParameter)
	}
	holding, err := s.holdingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	holding.Symbol = req.Symbol
	holding.Name = req.Name
	holding.Quantity = req.Quantity
	holding.PurchasePrice = req.PurchasePrice
	if req.PurchaseDate != "" {
		purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: purchase date must be YYYY-MM-DD", ErrInvalidParameter)
		}
		holding.PurchaseDate = purchaseDate
	}
	holding.UpdateCurrentPrice(holding.CurrentPrice)

	if err := s.holdingRepo.Update(ctx, holding); err != nil {
		return nil, err
	}
	return ToHoldingResponse(holding), nil
}

func (s *holdingService) DeleteHolding(ctx context.Context, id uint) error {
	return s.holdingRepo.Delete(ctx, id)
}

// RefreshPortfolioHoldings requotes every holding in the portfolio and
// recomputes its current value. A failed quote leaves that holding unchanged.
func (s *holdingService) RefreshPortfolioHoldings(ctx context.Context, portfolioID uint) ([]*dto.HoldingResponse, error) {
	holdings, err := s.holdingRepo.FindByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.HoldingResponse, 0, len(holdings))
	for i := range holdings {
		holding := &holdings[i]

		quoteCtx, cancel := context.WithTimeout(ctx, s.cfg.Engine.ExternalTimeout)
		price, err := s.marketData.GetCurrentPrice(quoteCtx, holding.Symbol)
		cancel()
		if err != nil {
			s.logger.Warn("Failed to refresh holding price",
				logger.Field("holding_id", holding.ID),
				logger.StringField("symbol", holding.Symbol),
				logger.ErrorField(err))
			responses = append(responses, ToHoldingResponse(holding))
			continue
		}

		holding.UpdateCurrentPrice(price)
		if err := s.holdingRepo.Update(ctx, holding); err != nil {
			return nil, err
		}
		responses = append(responses, ToHoldingResponse(holding))
	}
	return responses, nil
}

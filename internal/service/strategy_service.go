package service

import (
	"context"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/entity"
	"portfolio-tracker/internal/repository"
	"portfolio-tracker/pkg/logger"
)

// StrategyService defines the interface for managing trading strategies.
type StrategyService interface {
	CreateStrategy(ctx context.Context, req *dto.CreateStrategyRequest) (*dto.StrategyResponse, error)
	GetStrategyByID(ctx context.Context, id uint) (*dto.StrategyResponse, error)
	GetAllStrategies(ctx context.Context) ([]*dto.StrategyResponse, error)
	GetStrategiesByPortfolioID(ctx context.Context, portfolioID uint) ([]*dto.StrategyResponse, error)
	UpdateStrategy(ctx context.Context, id uint, req *dto.UpdateStrategyRequest) (*dto.StrategyResponse, error)
	DeleteStrategy(ctx context.Context, id uint) error
}

// NewStrategyService creates a new strategy service.
func NewStrategyService(strategyRepo repository.StrategyRepository, logger *logger.Logger) StrategyService {
	return &strategyService{
		strategyRepo: strategyRepo,
		logger:       logger,
	}
}

type strategyService struct {
	strategyRepo repository.StrategyRepository
	logger       *logger.Logger
}

func (s *strategyService) CreateStrategy(ctx context.Context, req *dto.CreateStrategyRequest) (*dto.StrategyResponse, error) {
	if err := validateStrategyParams(req.ConfidenceThreshold, req.PositionSizeFraction); err != nil {
		return nil, err
	}

	strategy := &entity.Strategy{
		PortfolioID:          req.PortfolioID,
		Name:                 req.Name,
		Symbol:               req.Symbol,
		ConfidenceThreshold:  req.ConfidenceThreshold,
		PositionSizeFraction: req.PositionSizeFraction,
		IsActive:             true,
	}
	if req.IsActive != nil {
		strategy.IsActive = *req.IsActive
	}

	if err := s.strategyRepo.Create(ctx, strategy); err != nil {
		return nil, err
	}
	return ToStrategyResponse(strategy), nil
}

func (s *strategyService) GetStrategyByID(ctx context.Context, id uint) (*dto.StrategyResponse, error) {
	strategy, err := s.strategyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToStrategyResponse(strategy), nil
}

func (s *strategyService) GetAllStrategies(ctx context.Context) ([]*dto.StrategyResponse, error) {
	strategies, err := s.strategyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.StrategyResponse, 0, len(strategies))
	for i := range strategies {
		responses = append(responses, ToStrategyResponse(&strategies[i]))
	}
	return responses, nil
}

func (s *strategyService) GetStrategiesByPortfolioID(ctx context.Context, portfolioID uint) ([]*dto.StrategyResponse, error) {
	strategies, err := s.strategyRepo.FindByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.StrategyResponse, 0, len(strategies))
	for i := range strategies {
		responses = append(responses, ToStrategyResponse(&strategies[i]))
	}
	return responses, nil
}

// UpdateStrategy applies an explicit edit to a strategy; outside of this
// operation strategy parameters are immutable.
func (s *strategyService) UpdateStrategy(ctx context.Context, id uint, req *dto.UpdateStrategyRequest) (*dto.StrategyResponse, error) {
	if err := validateStrategyParams(req.ConfidenceThreshold, req.PositionSizeFraction); err != nil {
		return nil, err
	}

	strategy, err := s.strategyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	strategy.Name = req.Name
	strategy.Symbol = req.Symbol
	strategy.ConfidenceThreshold = req.ConfidenceThreshold
	strategy.PositionSizeFraction = req.PositionSizeFraction
	if req.IsActive != nil {
		strategy.IsActive = *req.IsActive
	}

	if err := s.strategyRepo.Update(ctx, strategy); err != nil {
		return nil, err
	}
	return ToStrategyResponse(strategy), nil
}

func (s *strategyService) DeleteStrategy(ctx context.Context, id uint) error {
	if err := s.strategyRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete strategy", logger.ErrorField(err), logger.Field("strategy_id", id))
		return err
	}
	s.logger.Info("Strategy deleted", logger.Field("strategy_id", id))
	return nil
}

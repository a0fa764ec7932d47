package service

import (
	"context"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/repository"
	"portfolio-tracker/pkg/logger"
)

// TradeService defines the read interface over recorded trades.
type TradeService interface {
	GetTradeByID(ctx context.Context, id uint) (*dto.TradeResponse, error)
	GetAllTrades(ctx context.Context) ([]*dto.TradeResponse, error)
	GetTradesByStrategyID(ctx context.Context, strategyID uint) ([]*dto.TradeResponse, error)
}

// NewTradeService creates a new trade service.
func NewTradeService(tradeRepo repository.TradeRepository, logger *logger.Logger) TradeService {
	return &tradeService{
		tradeRepo: tradeRepo,
		logger:    logger,
	}
}

type tradeService struct {
	tradeRepo repository.TradeRepository
	logger    *logger.Logger
}

func (s *tradeService) GetTradeByID(ctx context.Context, id uint) (*dto.TradeResponse, error) {
	trade, err := s.tradeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTradeResponse(trade), nil
}

func (s *tradeService) GetAllTrades(ctx context.Context) ([]*dto.TradeResponse, error) {
	trades, err := s.tradeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.TradeResponse, 0, len(trades))
	for i := range trades {
		responses = append(responses, ToTradeResponse(&trades[i]))
	}
	return responses, nil
}

func (s *tradeService) GetTradesByStrategyID(ctx context.Context, strategyID uint) ([]*dto.TradeResponse, error) {
	trades, err := s.tradeRepo.FindByStrategyID(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.TradeResponse, 0, len(trades))
	for i := range trades {
		responses = append(responses, ToTradeResponse(&trades[i]))
	}
	return responses, nil
}

package service

import (
	"context"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/entity"
	"portfolio-tracker/internal/repository"
	"portfolio-tracker/pkg/logger"
)

// PortfolioService defines the interface for managing portfolios.
type PortfolioService interface {
	CreatePortfolio(ctx context.Context, req *dto.CreatePortfolioRequest) (*dto.PortfolioResponse, error)
	GetPortfolioByID(ctx context.Context, id uint) (*dto.PortfolioResponse, error)
	GetAllPortfolios(ctx context.Context) ([]*dto.PortfolioResponse, error)
	UpdatePortfolio(ctx context.Context, id uint, req *dto.UpdatePortfolioRequest) (*dto.PortfolioResponse, error)
	DeletePortfolio(ctx context.Context, id uint) error
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(portfolioRepo repository.PortfolioRepository, logger *logger.Logger) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		logger:        logger,
	}
}

type portfolioService struct {
	portfolioRepo repository.PortfolioRepository
	logger        *logger.Logger
}

func (s *portfolioService) CreatePortfolio(ctx context.Context, req *dto.CreatePortfolioRequest) (*dto.PortfolioResponse, error) {
	portfolio := &entity.Portfolio{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.portfolioRepo.Create(ctx, portfolio); err != nil {
		return nil, err
	}
	return ToPortfolioResponse(portfolio), nil
}

func (s *portfolioService) GetPortfolioByID(ctx context.Context, id uint) (*dto.PortfolioResponse, error) {
	portfolio, err := s.portfolioRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPortfolioResponse(portfolio), nil
}

func (s *portfolioService) GetAllPortfolios(ctx context.Context) ([]*dto.PortfolioResponse, error) {
	portfolios, err := s.portfolioRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.PortfolioResponse, 0, len(portfolios))
	for i := range portfolios {
		responses = append(responses, ToPortfolioResponse(&portfolios[i]))
	}
	return responses, nil
}

func (s *portfolioService) UpdatePortfolio(ctx context.Context, id uint, req *dto.UpdatePortfolioRequest) (*dto.PortfolioResponse, error) {
	portfolio, err := s.portfolioRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	portfolio.Name = req.Name
	portfolio.Description = req.Description
	if err := s.portfolioRepo.Update(ctx, portfolio); err != nil {
		return nil, err
	}
	return ToPortfolioResponse(portfolio), nil
}

func (s *portfolioService) DeletePortfolio(ctx context.Context, id uint) error {
	if err := s.portfolioRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete portfolio", logger.ErrorField(err), logger.Field("portfolio_id", id))
		return err
	}
	s.logger.Info("Portfolio deleted", logger.Field("portfolio_id", id))
	return nil
}

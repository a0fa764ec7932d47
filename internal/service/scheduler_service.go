package service

import (
	"context"
	"errors"

	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/repository"
	"portfolio-tracker/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SchedulerService periodically refreshes holding prices and runs every
// active strategy.
type SchedulerService interface {
	Start(ctx context.Context) error
	RefreshAllHoldings(ctx context.Context)
	RunActiveStrategies(ctx context.Context)
}

// NewSchedulerService creates a new scheduler service.
func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	portfolioRepo repository.PortfolioRepository,
	strategyRepo repository.StrategyRepository,
	holdingSvc HoldingService,
	signalSvc SignalService,
) SchedulerService {
	return &schedulerService{
		cfg:           cfg,
		log:           log,
		portfolioRepo: portfolioRepo,
		strategyRepo:  strategyRepo,
		holdingSvc:    holdingSvc,
		signalSvc:     signalSvc,
	}
}

type schedulerService struct {
	cfg           *config.Config
	log           *logger.Logger
	portfolioRepo repository.PortfolioRepository
	strategyRepo  repository.StrategyRepository
	holdingSvc    HoldingService
	signalSvc     SignalService
}

// Start registers the cron jobs and blocks until the context is canceled.
func (s *schedulerService) Start(ctx context.Context) error {
	c := cron.New()

	if spec := s.cfg.Scheduler.RefreshHoldingsSpec; spec != "" {
		if _, err := c.AddFunc(spec, func() { s.RefreshAllHoldings(ctx) }); err != nil {
			return err
		}
	}
	if spec := s.cfg.Scheduler.RunStrategiesSpec; spec != "" {
		if _, err := c.AddFunc(spec, func() { s.RunActiveStrategies(ctx) }); err != nil {
			return err
		}
	}

	s.log.Info("Scheduler started",
		logger.StringField("refresh_holdings_spec", s.cfg.Scheduler.RefreshHoldingsSpec),
		logger.StringField("run_strategies_spec", s.cfg.Scheduler.RunStrategiesSpec))

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	s.log.Info("Scheduler stopped")
	return nil
}

// RefreshAllHoldings requotes the holdings of every portfolio.
func (s *schedulerService) RefreshAllHoldings(ctx context.Context) {
	portfolios, err := s.portfolioRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list portfolios for refresh", logger.ErrorField(err))
		return
	}
	for i := range portfolios {
		if _, err := s.holdingSvc.RefreshPortfolioHoldings(ctx, portfolios[i].ID); err != nil {
			s.log.Error("Failed to refresh portfolio holdings",
				logger.Field("portfolio_id", portfolios[i].ID), logger.ErrorField(err))
		}
	}
}

// RunActiveStrategies executes every active strategy; a failure of one
// strategy does not stop the others.
func (s *schedulerService) RunActiveStrategies(ctx context.Context) {
	strategies, err := s.strategyRepo.FindActive(ctx)
	if err != nil {
		s.log.Error("Failed to list active strategies", logger.ErrorField(err))
		return
	}
	for i := range strategies {
		result, err := s.signalSvc.Execute(ctx, &strategies[i])
		if err != nil {
			if errors.Is(err, ErrInsufficientData) || errors.Is(err, ErrDuplicateExecution) {
				s.log.Warn("Skipping strategy run",
					logger.Field("strategy_id", strategies[i].ID), logger.ErrorField(err))
				continue
			}
			s.log.Error("Failed to run strategy",
				logger.Field("strategy_id", strategies[i].ID), logger.ErrorField(err))
			continue
		}
		s.log.Info("Scheduled strategy run completed",
			logger.Field("strategy_id", strategies[i].ID),
			logger.StringField("direction", string(result.Signal.Direction)))
	}
}

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
	"portfolio-tracker/pkg/telegram"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SignalService evaluates trading strategies against the price history and
// executes the resulting signals as paper trades.
type SignalService interface {
	Evaluate(ctx context.Context, strategy *entity.Strategy) (*dto.Signal, error)
	EvaluateByID(ctx context.Context, strategyID uint) (*dto.Signal, error)
	Execute(ctx context.Context, strategy *entity.Strategy) (*dto.RunStrategyResponse, error)
	ExecuteByID(ctx context.Context, strategyID uint) (*dto.RunStrategyResponse, error)
}

// NewSignalService creates a new signal service. The Redis client is optional;
// without it no execution idempotency lock is taken.
func NewSignalService(
	cfg *config.Config,
	log *logger.Logger,
	redisClient *redis.Client,
	marketData MarketDataService,
	broker repository.BrokerRepository,
	strategyRepo repository.StrategyRepository,
	portfolioRepo repository.PortfolioRepository,
	tradeRepo repository.TradeRepository,
	notifier telegram.Notifier,
) SignalService {
	return &signalService{
		cfg:           cfg,
		log:           log,
		redisClient:   redisClient,
		marketData:    marketData,
		broker:        broker,
		strategyRepo:  strategyRepo,
		portfolioRepo: portfolioRepo,
		tradeRepo:     tradeRepo,
		notifier:      notifier,
	}
}

type signalService struct {
	cfg           *config.Config
	log           *logger.Logger
	redisClient   *redis.Client
	marketData    MarketDataService
	broker        repository.BrokerRepository
	strategyRepo  repository.StrategyRepository
	portfolioRepo repository.PortfolioRepository
	tradeRepo     repository.TradeRepository
	notifier      telegram.Notifier
}

// Evaluate fits a trend line to the strategy symbol's recent returns and
// derives a directional signal. It has no side effects beyond refreshing the
// stored price history.
func (s *signalService) Evaluate(ctx context.Context, strategy *entity.Strategy) (*dto.Signal, error) {
	if err := validateStrategyParams(strategy.ConfidenceThreshold, strategy.PositionSizeFraction); err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.Engine.ExternalTimeout)
	defer cancel()
	points, err := s.marketData.GetPriceHistory(fetchCtx, strategy.Symbol, s.cfg.Engine.Lookback)
	if err != nil {
		return nil, err
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: %d price points for %s", ErrInsufficientData, len(points), strategy.Symbol)
	}

	prices := make([]float64, len(points))
	for i, p := range points {
		prices[i] = p.ClosePrice
	}
	returns := simpleReturns(prices)
	if len(returns) == 0 {
		return nil, fmt.Errorf("%w: no usable returns for %s", ErrInsufficientData, strategy.Symbol)
	}

	slope, intercept, correlation := linearFit(returns)

	// One step past the observed window.
	predicted := slope*float64(len(returns)) + intercept
	strength := correlation
	if strength < 0 {
		strength = -strength
	}

	direction := dto.SignalHold
	if strength >= strategy.ConfidenceThreshold {
		switch {
		case predicted > 0:
			direction = dto.SignalBuy
		case predicted < 0:
			direction = dto.SignalSell
		}
	}

	meanReturn, _ := stats.Mean(returns)
	stdDevReturn, _ := stats.StandardDeviation(returns)

	signal := &dto.Signal{
		Symbol:          strategy.Symbol,
		Direction:       direction,
		PredictedReturn: predicted,
		Strength:        strength,
		Slope:           slope,
		Intercept:       intercept,
		Observations:    len(returns),
		MeanReturn:      meanReturn,
		StdDevReturn:    stdDevReturn,
	}

	s.log.DebugContext(ctx, "Strategy evaluated",
		logger.Field("strategy_id", strategy.ID),
		logger.StringField("symbol", strategy.Symbol),
		logger.StringField("direction", string(direction)),
		logger.Float64Field("predicted_return", predicted),
		logger.Float64Field("strength", strength))

	return signal, nil
}

// Execute evaluates the strategy and, unless the signal is hold, submits a
// sized paper order and records the outcome as a trade. A hold signal or a
// zero-sized order produces no trade record. A broker rejection is a normal
// outcome captured on the trade, not an error.
func (s *signalService) Execute(ctx context.Context, strategy *entity.Strategy) (*dto.RunStrategyResponse, error) {
	signal, err := s.Evaluate(ctx, strategy)
	if err != nil {
		return nil, err
	}
	if signal.Direction == dto.SignalHold {
		return &dto.RunStrategyResponse{Signal: signal}, nil
	}

	if err := s.acquireExecutionLock(ctx, strategy.ID); err != nil {
		return nil, err
	}

	priceCtx, cancel := context.WithTimeout(ctx, s.cfg.Engine.ExternalTimeout)
	defer cancel()
	currentPrice, err := s.marketData.GetCurrentPrice(priceCtx, strategy.Symbol)
	if err != nil {
		return nil, err
	}

	portfolio, err := s.portfolioRepo.FindByID(ctx, strategy.PortfolioID)
	if err != nil {
		return nil, err
	}

	quantity := orderQuantity(portfolio.TotalValue(), strategy.PositionSizeFraction, currentPrice)
	if quantity.IsZero() {
		s.log.InfoContext(ctx, "Order size rounds down to zero, skipping trade",
			logger.Field("strategy_id", strategy.ID),
			logger.Float64Field("portfolio_value", portfolio.TotalValue()),
			logger.Float64Field("current_price", currentPrice))
		return &dto.RunStrategyResponse{Signal: signal}, nil
	}

	trade := &entity.Trade{
		StrategyID:      strategy.ID,
		PortfolioID:     strategy.PortfolioID,
		Symbol:          strategy.Symbol,
		Direction:       entity.TradeDirection(signal.Direction),
		PredictedReturn: signal.PredictedReturn,
		Confidence:      signal.Strength,
		Quantity:        quantity.InexactFloat64(),
		Price:           currentPrice,
		Status:          entity.TradeStatusPending,
		ClientOrderID:   uuid.NewString(),
	}
	if err := s.tradeRepo.Create(ctx, trade); err != nil {
		return nil, err
	}

	orderCtx, cancelOrder := context.WithTimeout(ctx, s.cfg.Engine.ExternalTimeout)
	defer cancelOrder()
	result, submitErr := s.broker.SubmitOrder(orderCtx, repository.SubmitOrderRequest{
		ClientOrderID:  trade.ClientOrderID,
		Symbol:         trade.Symbol,
		Direction:      trade.Direction,
		Quantity:       quantity,
		ReferencePrice: currentPrice,
	})
	if submitErr != nil {
		trade.Status = entity.TradeStatusRejected
		trade.StatusReason = submitErr.Error()
		s.log.WarnContext(ctx, "Order rejected",
			logger.Field("trade_id", trade.ID),
			logger.StringField("symbol", trade.Symbol),
			logger.ErrorField(submitErr))
	} else {
		trade.Status = result.Status
		trade.Price = result.FillPrice
		trade.Quantity = result.FilledQuantity
		trade.BrokerData = datatypes.JSON(result.Raw)
	}
	if err := s.tradeRepo.UpdateOutcome(ctx, trade); err != nil {
		return nil, err
	}

	s.updateStrategyStats(ctx, strategy, trade)
	s.notify(ctx, trade)

	s.log.InfoContext(ctx, "Trade executed",
		logger.Field("trade_id", trade.ID),
		logger.StringField("symbol", trade.Symbol),
		logger.StringField("direction", string(trade.Direction)),
		logger.StringField("status", string(trade.Status)),
		logger.Float64Field("quantity", trade.Quantity))

	return &dto.RunStrategyResponse{Signal: signal, Trade: ToTradeResponse(trade)}, nil
}

// EvaluateByID loads the strategy and evaluates it.
func (s *signalService) EvaluateByID(ctx context.Context, strategyID uint) (*dto.Signal, error) {
	strategy, err := s.strategyRepo.FindByID(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	return s.Evaluate(ctx, strategy)
}

// ExecuteByID loads the strategy and executes it.
func (s *signalService) ExecuteByID(ctx context.Context, strategyID uint) (*dto.RunStrategyResponse, error) {
	strategy, err := s.strategyRepo.FindByID(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	return s.Execute(ctx, strategy)
}

// acquireExecutionLock enforces a per-strategy execution uniqueness window so
// two simultaneous requests cannot double-submit the same order.
func (s *signalService) acquireExecutionLock(ctx context.Context, strategyID uint) error {
	if s.redisClient == nil {
		return nil
	}
	bucket := time.Now().UTC().Truncate(time.Minute).Unix()
	key := fmt.Sprintf("strategy_execution:%d:%d", strategyID, bucket)
	ok, err := s.redisClient.SetNX(ctx, key, 1, 2*time.Minute).Result()
	if err != nil {
		s.log.WarnContext(ctx, "Execution lock unavailable, continuing without it", logger.ErrorField(err))
		return nil
	}
	if !ok {
		return fmt.Errorf("%w: strategy %d", ErrDuplicateExecution, strategyID)
	}
	return nil
}

func (s *signalService) updateStrategyStats(ctx context.Context, strategy *entity.Strategy, trade *entity.Trade) {
	strategy.TotalTrades++
	if trade.Status == entity.TradeStatusFilled {
		buyOnRise := trade.Direction == entity.TradeDirectionBuy && trade.PredictedReturn > 0
		sellOnFall := trade.Direction == entity.TradeDirectionSell && trade.PredictedReturn < 0
		if buyOnRise || sellOnFall {
			strategy.WinningTrades++
		}
	}
	if err := s.strategyRepo.Update(ctx, strategy); err != nil {
		s.log.ErrorContext(ctx, "Failed to update strategy stats",
			logger.Field("strategy_id", strategy.ID), logger.ErrorField(err))
	}
}

func (s *signalService) notify(ctx context.Context, trade *entity.Trade) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendMessage(telegram.FormatTradeForTelegram(trade)); err != nil {
		s.log.WarnContext(ctx, "Failed to send trade notification", logger.ErrorField(err))
	}
}

// orderQuantity sizes the order as a fraction of the portfolio value, rounded
// down to whole shares.
func orderQuantity(portfolioValue, fraction, price float64) decimal.Decimal {
	if price <= 0 || portfolioValue <= 0 {
		return decimal.Zero
	}
	positionValue := decimal.NewFromFloat(portfolioValue).Mul(decimal.NewFromFloat(fraction))
	return positionValue.Div(decimal.NewFromFloat(price)).Floor()
}

func validateStrategyParams(confidenceThreshold, positionSizeFraction float64) error {
	if confidenceThreshold < 0 || confidenceThreshold >= 1 {
		return fmt.Errorf("%w: confidence threshold %v outside [0, 1)", ErrInvalidParameter, confidenceThreshold)
	}
	if positionSizeFraction <= 0 || positionSizeFraction > 1 {
		return fmt.Errorf("%w: position size fraction %v outside (0, 1]", ErrInvalidParameter, positionSizeFraction)
	}
	return nil
}

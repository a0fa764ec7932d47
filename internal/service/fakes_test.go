package service

import (
	"context"
	"errors"
	"time"

	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/entity"
	"portfolio-tracker/internal/repository"
	"portfolio-tracker/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Engine: config.Engine{
			Lookback:                      100,
			ExternalTimeout:               5 * time.Second,
			MarketDataMaxRequestPerMinute: 60,
			PriceHistoryCacheTTL:          5 * time.Minute,
			QuoteCacheTTL:                 time.Minute,
		},
	}
}

func testLogger() *logger.Logger {
	log, err := logger.New("error", "console")
	if err != nil {
		panic(err)
	}
	return log
}

// pricePoints builds an ascending daily series from the given closes.
func pricePoints(symbol string, closes []float64) []entity.PricePoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]entity.PricePoint, len(closes))
	for i, close := range closes {
		points[i] = entity.PricePoint{
			Symbol:     symbol,
			Date:       start.AddDate(0, 0, i),
			ClosePrice: close,
		}
	}
	return points
}

// fakeMarketDataService serves a fixed price series and current price.
type fakeMarketDataService struct {
	closes       []float64
	currentPrice float64
	historyErr   error
	priceErr     error
}

func (f *fakeMarketDataService) GetPriceHistory(ctx context.Context, symbol string, lookback int) ([]entity.PricePoint, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return pricePoints(symbol, f.closes), nil
}

func (f *fakeMarketDataService) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	if f.priceErr != nil {
		return 0, f.priceErr
	}
	return f.currentPrice, nil
}

// fakeBrokerRepository records submitted orders and optionally rejects them.
type fakeBrokerRepository struct {
	submitErr error
	requests  []repository.SubmitOrderRequest
}

func (f *fakeBrokerRepository) SubmitOrder(ctx context.Context, req repository.SubmitOrderRequest) (*repository.OrderResult, error) {
	f.requests = append(f.requests, req)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &repository.OrderResult{
		Status:         entity.TradeStatusFilled,
		FillPrice:      req.ReferencePrice,
		FilledQuantity: req.Quantity.InexactFloat64(),
	}, nil
}

// fakeStrategyRepository stores strategies in memory.
type fakeStrategyRepository struct {
	strategies map[uint]*entity.Strategy
	nextID     uint
}

func newFakeStrategyRepository() *fakeStrategyRepository {
	return &fakeStrategyRepository{strategies: map[uint]*entity.Strategy{}, nextID: 1}
}

func (f *fakeStrategyRepository) Create(ctx context.Context, strategy *entity.Strategy) error {
	strategy.ID = f.nextID
	f.nextID++
	copied := *strategy
	f.strategies[strategy.ID] = &copied
	return nil
}

func (f *fakeStrategyRepository) FindByID(ctx context.Context, id uint) (*entity.Strategy, error) {
	strategy, ok := f.strategies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *strategy
	return &copied, nil
}

func (f *fakeStrategyRepository) FindAll(ctx context.Context) ([]entity.Strategy, error) {
	var out []entity.Strategy
	for _, s := range f.strategies {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStrategyRepository) FindByPortfolioID(ctx context.Context, portfolioID uint) ([]entity.Strategy, error) {
	var out []entity.Strategy
	for _, s := range f.strategies {
		if s.PortfolioID == portfolioID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStrategyRepository) FindActive(ctx context.Context) ([]entity.Strategy, error) {
	var out []entity.Strategy
	for _, s := range f.strategies {
		if s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStrategyRepository) Update(ctx context.Context, strategy *entity.Strategy) error {
	if _, ok := f.strategies[strategy.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *strategy
	f.strategies[strategy.ID] = &copied
	return nil
}

func (f *fakeStrategyRepository) Delete(ctx context.Context, id uint) error {
	delete(f.strategies, id)
	return nil
}

// fakePortfolioRepository serves a single fixed portfolio.
type fakePortfolioRepository struct {
	portfolio *entity.Portfolio
}

func (f *fakePortfolioRepository) Create(ctx context.Context, portfolio *entity.Portfolio) error {
	f.portfolio = portfolio
	return nil
}

func (f *fakePortfolioRepository) FindByID(ctx context.Context, id uint) (*entity.Portfolio, error) {
	if f.portfolio == nil || f.portfolio.ID != id {
		return nil, repository.ErrNotFound
	}
	return f.portfolio, nil
}

func (f *fakePortfolioRepository) FindAll(ctx context.Context) ([]entity.Portfolio, error) {
	if f.portfolio == nil {
		return nil, nil
	}
	return []entity.Portfolio{*f.portfolio}, nil
}

func (f *fakePortfolioRepository) Update(ctx context.Context, portfolio *entity.Portfolio) error {
	f.portfolio = portfolio
	return nil
}

func (f *fakePortfolioRepository) Delete(ctx context.Context, id uint) error {
	f.portfolio = nil
	return nil
}

// fakeTradeRepository stores trades in memory.
type fakeTradeRepository struct {
	trades map[uint]*entity.Trade
	nextID uint
}

func newFakeTradeRepository() *fakeTradeRepository {
	return &fakeTradeRepository{trades: map[uint]*entity.Trade{}, nextID: 1}
}

func (f *fakeTradeRepository) Create(ctx context.Context, trade *entity.Trade) error {
	trade.ID = f.nextID
	f.nextID++
	copied := *trade
	f.trades[trade.ID] = &copied
	return nil
}

func (f *fakeTradeRepository) UpdateOutcome(ctx context.Context, trade *entity.Trade) error {
	stored, ok := f.trades[trade.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Status = trade.Status
	stored.StatusReason = trade.StatusReason
	stored.Price = trade.Price
	stored.Quantity = trade.Quantity
	stored.BrokerData = trade.BrokerData
	return nil
}

func (f *fakeTradeRepository) FindByID(ctx context.Context, id uint) (*entity.Trade, error) {
	trade, ok := f.trades[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return trade, nil
}

func (f *fakeTradeRepository) FindAll(ctx context.Context) ([]entity.Trade, error) {
	var out []entity.Trade
	for _, t := range f.trades {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTradeRepository) FindByStrategyID(ctx context.Context, strategyID uint) ([]entity.Trade, error) {
	var out []entity.Trade
	for _, t := range f.trades {
		if t.StrategyID == strategyID {
			out = append(out, *t)
		}
	}
	return out, nil
}

// fakeHoldingRepository stores holdings in memory.
type fakeHoldingRepository struct {
	holdings map[uint]*entity.Holding
	nextID   uint
}

func newFakeHoldingRepository() *fakeHoldingRepository {
	return &fakeHoldingRepository{holdings: map[uint]*entity.Holding{}, nextID: 1}
}

func (f *fakeHoldingRepository) Create(ctx context.Context, holding *entity.Holding) error {
	holding.ID = f.nextID
	f.nextID++
	copied := *holding
	f.holdings[holding.ID] = &copied
	return nil
}

func (f *fakeHoldingRepository) FindByID(ctx context.Context, id uint) (*entity.Holding, error) {
	holding, ok := f.holdings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *holding
	return &copied, nil
}

func (f *fakeHoldingRepository) FindByPortfolioID(ctx context.Context, portfolioID uint) ([]entity.Holding, error) {
	var out []entity.Holding
	for _, h := range f.holdings {
		if h.PortfolioID == portfolioID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (f *fakeHoldingRepository) Update(ctx context.Context, holding *entity.Holding) error {
	if _, ok := f.holdings[holding.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *holding
	f.holdings[holding.ID] = &copied
	return nil
}

func (f *fakeHoldingRepository) Delete(ctx context.Context, id uint) error {
	delete(f.holdings, id)
	return nil
}

// fakeProviderRepository is a MarketDataRepository fake.
type fakeProviderRepository struct {
	points []entity.PricePoint
	err    error
}

func (f *fakeProviderRepository) GetDailyBars(ctx context.Context, symbol string, lookback int) ([]entity.PricePoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.points, nil
}

// fakePricePointRepository is an in-memory PricePointRepository fake.
type fakePricePointRepository struct {
	points []entity.PricePoint
}

func (f *fakePricePointRepository) UpsertBatch(ctx context.Context, points []entity.PricePoint) error {
	for _, p := range points {
		exists := false
		for _, stored := range f.points {
			if stored.Symbol == p.Symbol && stored.Date.Equal(p.Date) {
				exists = true
				break
			}
		}
		if !exists {
			f.points = append(f.points, p)
		}
	}
	return nil
}

func (f *fakePricePointRepository) FindLatestBySymbol(ctx context.Context, symbol string, limit int) ([]entity.PricePoint, error) {
	var out []entity.PricePoint
	for _, p := range f.points {
		if p.Symbol == symbol {
			out = append(out, p)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakePricePointRepository) FindLastClose(ctx context.Context, symbol string) (*entity.PricePoint, error) {
	for i := len(f.points) - 1; i >= 0; i-- {
		if f.points[i].Symbol == symbol {
			return &f.points[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// fakeQuoteRepository is a QuoteRepository fake.
type fakeQuoteRepository struct {
	price float64
	err   error
}

func (f *fakeQuoteRepository) GetLatestPrice(ctx context.Context, symbol string) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.price, nil
}

var errBoom = errors.New("boom")

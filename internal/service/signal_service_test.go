package service

import (
	"context"
	"testing"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signalServiceFixture struct {
	service       SignalService
	marketData    *fakeMarketDataService
	broker        *fakeBrokerRepository
	strategyRepo  *fakeStrategyRepository
	portfolioRepo *fakePortfolioRepository
	tradeRepo     *fakeTradeRepository
}

func newSignalServiceFixture() *signalServiceFixture {
	f := &signalServiceFixture{
		marketData:    &fakeMarketDataService{},
		broker:        &fakeBrokerRepository{},
		strategyRepo:  newFakeStrategyRepository(),
		portfolioRepo: &fakePortfolioRepository{},
		tradeRepo:     newFakeTradeRepository(),
	}
	f.service = NewSignalService(
		testConfig(), testLogger(), nil,
		f.marketData, f.broker,
		f.strategyRepo, f.portfolioRepo, f.tradeRepo,
		nil,
	)
	return f
}

func testStrategy(portfolioID uint) *entity.Strategy {
	return &entity.Strategy{
		ID:                   1,
		PortfolioID:          portfolioID,
		Name:                 "AAPL trend",
		Symbol:               "AAPL",
		ConfidenceThreshold:  0.5,
		PositionSizeFraction: 0.05,
		IsActive:             true,
	}
}

func TestEvaluateBuySignal(t *testing.T) {
	f := newSignalServiceFixture()
	// Accelerating growth: returns rise roughly linearly.
	f.marketData.closes = []float64{100, 101, 102.5, 104.6, 107.4, 111.0}

	signal, err := f.service.Evaluate(context.Background(), testStrategy(1))
	require.NoError(t, err)
	assert.Equal(t, dto.SignalBuy, signal.Direction)
	assert.Positive(t, signal.PredictedReturn)
	assert.Positive(t, signal.Slope)
	assert.GreaterOrEqual(t, signal.Strength, 0.5)
	assert.Equal(t, 5, signal.Observations)
}

func TestEvaluateSellSignal(t *testing.T) {
	f := newSignalServiceFixture()
	// Accelerating decline: returns fall roughly linearly.
	f.marketData.closes = []float64{100, 99, 97.5, 95.2, 92.0}

	signal, err := f.service.Evaluate(context.Background(), testStrategy(1))
	require.NoError(t, err)
	assert.Equal(t, dto.SignalSell, signal.Direction)
	assert.Negative(t, signal.PredictedReturn)
	assert.Negative(t, signal.Slope)
	assert.GreaterOrEqual(t, signal.Strength, 0.5)
}

func TestEvaluateSteadyRise(t *testing.T) {
	f := newSignalServiceFixture()
	// Constant absolute gains mean slightly shrinking returns, so the fit is
	// near perfect and the extrapolated return stays positive.
	f.marketData.closes = []float64{150, 152, 154, 156, 158, 160}

	signal, err := f.service.Evaluate(context.Background(), testStrategy(1))
	require.NoError(t, err)
	assert.Equal(t, dto.SignalBuy, signal.Direction)
	assert.InDelta(t, 1.0, signal.Strength, 0.001)
	assert.InDelta(t, 0.0125, signal.PredictedReturn, 0.001)
}

func TestEvaluateHoldBelowThreshold(t *testing.T) {
	f := newSignalServiceFixture()
	// Geometric growth: constant returns carry no trend, strength is zero.
	f.marketData.closes = []float64{100, 102, 104.04, 106.1208}

	signal, err := f.service.Evaluate(context.Background(), testStrategy(1))
	require.NoError(t, err)
	assert.Equal(t, dto.SignalHold, signal.Direction)
	// The returns are equal only up to floating-point rounding, so the
	// correlation is near zero rather than exactly zero.
	assert.InDelta(t, 0.0, signal.Strength, 1e-6)
	assert.Positive(t, signal.PredictedReturn)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	f := newSignalServiceFixture()
	f.marketData.closes = []float64{100, 101, 102.5, 104.6, 107.4}

	first, err := f.service.Evaluate(context.Background(), testStrategy(1))
	require.NoError(t, err)
	second, err := f.service.Evaluate(context.Background(), testStrategy(1))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEvaluateInsufficientData(t *testing.T) {
	f := newSignalServiceFixture()
	f.marketData.closes = []float64{100}

	_, err := f.service.Evaluate(context.Background(), testStrategy(1))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestEvaluateInvalidParams(t *testing.T) {
	f := newSignalServiceFixture()
	f.marketData.closes = []float64{100, 101, 102}

	strategy := testStrategy(1)
	strategy.ConfidenceThreshold = 1.5
	_, err := f.service.Evaluate(context.Background(), strategy)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	strategy = testStrategy(1)
	strategy.PositionSizeFraction = 0
	_, err = f.service.Evaluate(context.Background(), strategy)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestExecuteSubmitsSizedOrder(t *testing.T) {
	f := newSignalServiceFixture()
	f.marketData.closes = []float64{150, 152, 154, 156, 158, 160}
	f.marketData.currentPrice = 160
	f.portfolioRepo.portfolio = &entity.Portfolio{
		ID:       1,
		Name:     "Growth",
		Holdings: []entity.Holding{{CurrentValue: 100000}},
	}
	strategy := testStrategy(1)
	require.NoError(t, f.strategyRepo.Create(context.Background(), strategy))

	resp, err := f.service.Execute(context.Background(), strategy)
	require.NoError(t, err)
	require.NotNil(t, resp.Trade)

	// floor(100000 * 0.05 / 160) = 31 whole shares
	require.Len(t, f.broker.requests, 1)
	assert.True(t, f.broker.requests[0].Quantity.Equal(decimal.NewFromInt(31)))
	assert.Equal(t, "AAPL", f.broker.requests[0].Symbol)
	assert.NotEmpty(t, f.broker.requests[0].ClientOrderID)

	assert.Equal(t, string(entity.TradeStatusFilled), resp.Trade.Status)
	assert.Equal(t, 31.0, resp.Trade.Quantity)
	assert.Equal(t, 160.0, resp.Trade.Price)

	stored, err := f.tradeRepo.FindByID(context.Background(), resp.Trade.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TradeStatusFilled, stored.Status)

	updated, err := f.strategyRepo.FindByID(context.Background(), strategy.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalTrades)
	assert.Equal(t, 1, updated.WinningTrades)
}

func TestExecuteHoldProducesNoTrade(t *testing.T) {
	f := newSignalServiceFixture()
	f.marketData.closes = []float64{100, 102, 104.04, 106.1208}

	resp, err := f.service.Execute(context.Background(), testStrategy(1))
	require.NoError(t, err)
	assert.Equal(t, dto.SignalHold, resp.Signal.Direction)
	assert.Nil(t, resp.Trade)
	assert.Empty(t, f.broker.requests)
	assert.Empty(t, f.tradeRepo.trades)
}

func TestExecuteRecordsRejectedOrder(t *testing.T) {
	f := newSignalServiceFixture()
	f.marketData.closes = []float64{150, 152, 154, 156, 158, 160}
	f.marketData.currentPrice = 160
	f.broker.submitErr = errBoom
	f.portfolioRepo.portfolio = &entity.Portfolio{
		ID:       1,
		Holdings: []entity.Holding{{CurrentValue: 100000}},
	}
	strategy := testStrategy(1)
	require.NoError(t, f.strategyRepo.Create(context.Background(), strategy))

	resp, err := f.service.Execute(context.Background(), strategy)
	require.NoError(t, err)
	require.NotNil(t, resp.Trade)
	assert.Equal(t, string(entity.TradeStatusRejected), resp.Trade.Status)
	assert.Equal(t, "boom", resp.Trade.StatusReason)

	stored, err := f.tradeRepo.FindByID(context.Background(), resp.Trade.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TradeStatusRejected, stored.Status)
	assert.Equal(t, "boom", stored.StatusReason)

	// A rejection still counts as an executed trade, not a win.
	updated, err := f.strategyRepo.FindByID(context.Background(), strategy.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalTrades)
	assert.Equal(t, 0, updated.WinningTrades)
}

func TestExecuteSkipsZeroSizedOrder(t *testing.T) {
	f := newSignalServiceFixture()
	f.marketData.closes = []float64{150, 152, 154, 156, 158, 160}
	f.marketData.currentPrice = 160
	// 0.05 * 1000 / 160 rounds down to zero shares.
	f.portfolioRepo.portfolio = &entity.Portfolio{
		ID:       1,
		Holdings: []entity.Holding{{CurrentValue: 1000}},
	}

	resp, err := f.service.Execute(context.Background(), testStrategy(1))
	require.NoError(t, err)
	assert.Nil(t, resp.Trade)
	assert.Empty(t, f.broker.requests)
	assert.Empty(t, f.tradeRepo.trades)
}

func TestExecuteByIDUnknownStrategy(t *testing.T) {
	f := newSignalServiceFixture()
	_, err := f.service.ExecuteByID(context.Background(), 42)
	assert.Error(t, err)
}

func TestOrderQuantity(t *testing.T) {
	tests := []struct {
		name           string
		portfolioValue float64
		fraction       float64
		price          float64
		expected       int64
	}{
		{"whole shares rounded down", 100000, 0.05, 160, 31},
		{"exact division", 100000, 0.05, 100, 50},
		{"position smaller than one share", 1000, 0.05, 160, 0},
		{"zero price", 100000, 0.05, 0, 0},
		{"empty portfolio", 0, 0.05, 160, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderQuantity(tt.portfolioValue, tt.fraction, tt.price)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.expected)),
				"expected %d, got %s", tt.expected, got)
		})
	}
}

package service

import (
	"context"
	"testing"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHoldingFixture(marketData *fakeMarketDataService) (HoldingService, *fakeHoldingRepository) {
	repo := newFakeHoldingRepository()
	svc := NewHoldingService(testConfig(), repo, marketData, testLogger())
	return svc, repo
}

func TestCreateHoldingSeedsCurrentValue(t *testing.T) {
	svc, _ := newHoldingFixture(&fakeMarketDataService{})

	created, err := svc.CreateHolding(context.Background(), &dto.CreateHoldingRequest{
		PortfolioID:   1,
		Symbol:        "AAPL",
		Name:          "Apple Inc.",
		Quantity:      10,
		PurchasePrice: 150,
		PurchaseDate:  "2024-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, created.CurrentPrice)
	assert.Equal(t, 1500.0, created.CurrentValue)
	assert.Zero(t, created.GainLoss)
}

func TestCreateHoldingValidation(t *testing.T) {
	svc, _ := newHoldingFixture(&fakeMarketDataService{})

	_, err := svc.CreateHolding(context.Background(), &dto.CreateHoldingRequest{
		PortfolioID:   1,
		Symbol:        "AAPL",
		Quantity:      -5,
		PurchasePrice: 150,
		PurchaseDate:  "2024-01-15",
	})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = svc.CreateHolding(context.Background(), &dto.CreateHoldingRequest{
		PortfolioID:   1,
		Symbol:        "AAPL",
		Quantity:      5,
		PurchasePrice: 150,
		PurchaseDate:  "15/01/2024",
	})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestRefreshPortfolioHoldings(t *testing.T) {
	marketData := &fakeMarketDataService{currentPrice: 120}
	svc, repo := newHoldingFixture(marketData)

	require.NoError(t, repo.Create(context.Background(), &entity.Holding{
		PortfolioID:   1,
		Symbol:        "AAPL",
		Quantity:      10,
		PurchasePrice: 100,
		CurrentPrice:  100,
		CurrentValue:  1000,
	}))

	refreshed, err := svc.RefreshPortfolioHoldings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, refreshed, 1)
	assert.Equal(t, 120.0, refreshed[0].CurrentPrice)
	assert.Equal(t, 1200.0, refreshed[0].CurrentValue)
	assert.Equal(t, 200.0, refreshed[0].GainLoss)
	assert.InDelta(t, 20.0, refreshed[0].GainLossPercentage, 1e-9)
}

func TestRefreshPortfolioHoldingsQuoteFailure(t *testing.T) {
	marketData := &fakeMarketDataService{priceErr: errBoom}
	svc, repo := newHoldingFixture(marketData)

	require.NoError(t, repo.Create(context.Background(), &entity.Holding{
		PortfolioID:   1,
		Symbol:        "AAPL",
		Quantity:      10,
		PurchasePrice: 100,
		CurrentPrice:  100,
		CurrentValue:  1000,
	}))

	// A failed quote leaves the holding at its last known value.
	refreshed, err := svc.RefreshPortfolioHoldings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, refreshed, 1)
	assert.Equal(t, 100.0, refreshed[0].CurrentPrice)
	assert.Equal(t, 1000.0, refreshed[0].CurrentValue)
}

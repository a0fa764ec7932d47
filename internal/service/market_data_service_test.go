package service

import (
	"context"
	"testing"

	"portfolio-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMarketDataFixture(provider *fakeProviderRepository, quotes *fakeQuoteRepository, store *fakePricePointRepository) MarketDataService {
	return NewMarketDataService(testConfig(), testLogger(), nil, provider, quotes, store)
}

func TestGetPriceHistoryStoresProviderBars(t *testing.T) {
	provider := &fakeProviderRepository{points: pricePoints("AAPL", []float64{100, 101, 102})}
	store := &fakePricePointRepository{}
	svc := newMarketDataFixture(provider, &fakeQuoteRepository{}, store)

	points, err := svc.GetPriceHistory(context.Background(), "AAPL", 100)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, 102.0, points[2].ClosePrice)

	// Provider bars are persisted for later fallback.
	assert.Len(t, store.points, 3)
}

func TestGetPriceHistoryFallsBackToStore(t *testing.T) {
	provider := &fakeProviderRepository{err: errBoom}
	store := &fakePricePointRepository{points: pricePoints("AAPL", []float64{95, 96})}
	svc := newMarketDataFixture(provider, &fakeQuoteRepository{}, store)

	points, err := svc.GetPriceHistory(context.Background(), "AAPL", 100)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 96.0, points[1].ClosePrice)
}

func TestGetPriceHistoryProviderFailedNoStore(t *testing.T) {
	provider := &fakeProviderRepository{err: errBoom}
	svc := newMarketDataFixture(provider, &fakeQuoteRepository{}, &fakePricePointRepository{})

	_, err := svc.GetPriceHistory(context.Background(), "AAPL", 100)
	assert.ErrorIs(t, err, ErrExternalService)
}

func TestGetPriceHistoryProviderNotConfigured(t *testing.T) {
	// Without credentials the provider is skipped silently and the stored
	// history, possibly empty, is the sole source.
	provider := &fakeProviderRepository{err: repository.ErrProviderNotConfigured}
	svc := newMarketDataFixture(provider, &fakeQuoteRepository{}, &fakePricePointRepository{})

	points, err := svc.GetPriceHistory(context.Background(), "AAPL", 100)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestGetCurrentPrice(t *testing.T) {
	svc := newMarketDataFixture(&fakeProviderRepository{}, &fakeQuoteRepository{price: 187.5}, &fakePricePointRepository{})

	price, err := svc.GetCurrentPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 187.5, price)
}

func TestGetCurrentPriceFallsBackToLastClose(t *testing.T) {
	store := &fakePricePointRepository{points: pricePoints("AAPL", []float64{100, 103})}
	svc := newMarketDataFixture(&fakeProviderRepository{}, &fakeQuoteRepository{err: errBoom}, store)

	price, err := svc.GetCurrentPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 103.0, price)
}

func TestGetCurrentPriceNoFallback(t *testing.T) {
	svc := newMarketDataFixture(&fakeProviderRepository{}, &fakeQuoteRepository{err: errBoom}, &fakePricePointRepository{})

	_, err := svc.GetCurrentPrice(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrExternalService)
}

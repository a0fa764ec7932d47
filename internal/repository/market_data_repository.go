package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/entity"
	"portfolio-tracker/pkg/logger"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"golang.org/x/time/rate"
)

// ErrProviderNotConfigured is returned when no market data credentials are set.
// Callers fall back to the stored price history.
var ErrProviderNotConfigured = errors.New("market data provider not configured")

// MarketDataRepository is the read-only boundary to the external market data provider.
type MarketDataRepository interface {
	GetDailyBars(ctx context.Context, symbol string, lookback int) ([]entity.PricePoint, error)
}

// NewAlpacaMarketDataRepository creates a market data repository backed by the
// Alpaca data API. When credentials are missing it reports
// ErrProviderNotConfigured on every call.
func NewAlpacaMarketDataRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	var client *marketdata.Client
	if cfg.Alpaca.APIKey != "" && cfg.Alpaca.APISecret != "" {
		client = marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    cfg.Alpaca.APIKey,
			APISecret: cfg.Alpaca.APISecret,
			BaseURL:   cfg.Alpaca.DataBaseURL,
		})
	} else {
		log.Warn("Alpaca credentials not provided, market data will be served from the stored price history")
	}

	secondsPerRequest := time.Minute / time.Duration(cfg.Engine.MarketDataMaxRequestPerMinute)
	return &alpacaMarketDataRepository{
		client:         client,
		log:            log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

type alpacaMarketDataRepository struct {
	client         *marketdata.Client
	log            *logger.Logger
	requestLimiter *rate.Limiter
}

// GetDailyBars fetches up to lookback daily closes for the symbol, ordered by
// date ascending. Missing trading days are simply absent from the result.
func (r *alpacaMarketDataRepository) GetDailyBars(ctx context.Context, symbol string, lookback int) ([]entity.PricePoint, error) {
	if r.client == nil {
		return nil, ErrProviderNotConfigured
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("market data rate limit wait: %w", err)
	}

	// Calendar span is wider than the lookback to absorb weekends and holidays.
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -(lookback*2 + 7))

	type result struct {
		bars []marketdata.Bar
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		bars, err := r.client.GetBars(symbol, marketdata.GetBarsRequest{
			TimeFrame: marketdata.OneDay,
			Start:     start,
			End:       end,
		})
		ch <- result{bars: bars, err: err}
	}()

	var bars []marketdata.Bar
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("market data request for %s: %w", symbol, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("market data request for %s: %w", symbol, res.err)
		}
		bars = res.bars
	}

	points := make([]entity.PricePoint, 0, len(bars))
	for _, bar := range bars {
		points = append(points, entity.PricePoint{
			Symbol:     symbol,
			Date:       bar.Timestamp.UTC().Truncate(24 * time.Hour),
			ClosePrice: bar.Close,
		})
	}
	if len(points) > lookback {
		points = points[len(points)-lookback:]
	}

	r.log.DebugContext(ctx, "Fetched daily bars",
		logger.StringField("symbol", symbol),
		logger.IntField("points", len(points)))

	return points, nil
}

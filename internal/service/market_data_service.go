package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/entity"
	"portfolio-tracker/internal/repository"
	"portfolio-tracker/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// MarketDataService serves price history and current prices, combining the
// external provider, the stored price history and a Redis cache.
type MarketDataService interface {
	GetPriceHistory(ctx context.Context, symbol string, lookback int) ([]entity.PricePoint, error)
	GetCurrentPrice(ctx context.Context, symbol string) (float64, error)
}

// NewMarketDataService creates a new market data service. The Redis client is
// optional; without it every call goes straight to the provider or the store.
func NewMarketDataService(
	cfg *config.Config,
	log *logger.Logger,
	redisClient *redis.Client,
	marketData repository.MarketDataRepository,
	quotes repository.QuoteRepository,
	pricePointRepo repository.PricePointRepository,
) MarketDataService {
	return &marketDataService{
		cfg:            cfg,
		log:            log,
		redisClient:    redisClient,
		marketData:     marketData,
		quotes:         quotes,
		pricePointRepo: pricePointRepo,
	}
}

type marketDataService struct {
	cfg            *config.Config
	log            *logger.Logger
	redisClient    *redis.Client
	marketData     repository.MarketDataRepository
	quotes         repository.QuoteRepository
	pricePointRepo repository.PricePointRepository
}

// GetPriceHistory returns up to lookback daily closes ordered by date
// ascending. Fresh provider data is appended to the stored history; when the
// provider is unavailable the stored history alone is served.
func (s *marketDataService) GetPriceHistory(ctx context.Context, symbol string, lookback int) ([]entity.PricePoint, error) {
	cacheKey := fmt.Sprintf("price_history:%s:%d", symbol, lookback)
	if cached := s.readCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	points, providerErr := s.marketData.GetDailyBars(ctx, symbol, lookback)
	if providerErr == nil {
		if err := s.pricePointRepo.UpsertBatch(ctx, points); err != nil {
			s.log.ErrorContext(ctx, "Failed to store price points", logger.ErrorField(err), logger.StringField("symbol", symbol))
		}
	} else if !errors.Is(providerErr, repository.ErrProviderNotConfigured) {
		s.log.WarnContext(ctx, "Market data provider failed, falling back to stored history",
			logger.ErrorField(providerErr), logger.StringField("symbol", symbol))
	}

	if providerErr != nil {
		stored, err := s.pricePointRepo.FindLatestBySymbol(ctx, symbol, lookback)
		if err != nil {
			return nil, err
		}
		if len(stored) == 0 && !errors.Is(providerErr, repository.ErrProviderNotConfigured) {
			return nil, fmt.Errorf("%w: %v", ErrExternalService, providerErr)
		}
		points = stored
	}

	s.writeCache(ctx, cacheKey, points)
	return points, nil
}

// GetCurrentPrice returns the latest quote for the symbol, falling back to the
// most recent stored close when the quote provider fails.
func (s *marketDataService) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	price, err := s.quotes.GetLatestPrice(ctx, symbol)
	if err == nil {
		return price, nil
	}
	s.log.WarnContext(ctx, "Quote provider failed, falling back to last stored close",
		logger.ErrorField(err), logger.StringField("symbol", symbol))

	last, storeErr := s.pricePointRepo.FindLastClose(ctx, symbol)
	if storeErr != nil {
		return 0, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return last.ClosePrice, nil
}

func (s *marketDataService) readCache(ctx context.Context, key string) []entity.PricePoint {
	if s.redisClient == nil {
		return nil
	}
	payload, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.log.DebugContext(ctx, "Price history cache read failed", logger.ErrorField(err))
		}
		return nil
	}
	var points []entity.PricePoint
	if err := json.Unmarshal([]byte(payload), &points); err != nil {
		return nil
	}
	return points
}

func (s *marketDataService) writeCache(ctx context.Context, key string, points []entity.PricePoint) {
	if s.redisClient == nil || len(points) == 0 {
		return
	}
	payload, err := json.Marshal(points)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, key, payload, s.cfg.Engine.PriceHistoryCacheTTL).Err(); err != nil {
		s.log.DebugContext(ctx, "Price history cache write failed", logger.ErrorField(err))
	}
}

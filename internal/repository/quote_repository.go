package repository

import (
	"context"
	"fmt"
	"time"

	"portfolio-tracker/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
	"github.com/piquette/finance-go/quote"
)

// QuoteRepository is the boundary to the latest-quote provider.
type QuoteRepository interface {
	GetLatestPrice(ctx context.Context, symbol string) (float64, error)
}

// NewYahooQuoteRepository creates a quote repository backed by the Yahoo
// Finance quote API, with a short in-process TTL cache in front of it.
func NewYahooQuoteRepository(cacheTTL time.Duration, log *logger.Logger) QuoteRepository {
	return &yahooQuoteRepository{
		cache: gocache.New(cacheTTL, 2*cacheTTL),
		log:   log,
	}
}

type yahooQuoteRepository struct {
	cache *gocache.Cache
	log   *logger.Logger
}

func (r *yahooQuoteRepository) GetLatestPrice(ctx context.Context, symbol string) (float64, error) {
	if cached, ok := r.cache.Get(symbol); ok {
		return cached.(float64), nil
	}

	type result struct {
		price float64
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		q, err := quote.Get(symbol)
		if err != nil {
			ch <- result{err: err}
			return
		}
		if q == nil {
			ch <- result{err: fmt.Errorf("no quote returned for %s", symbol)}
			return
		}
		ch <- result{price: q.RegularMarketPrice}
	}()

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("quote request for %s: %w", symbol, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return 0, fmt.Errorf("quote request for %s: %w", symbol, res.err)
		}
		if res.price <= 0 {
			return 0, fmt.Errorf("quote for %s returned non-positive price", symbol)
		}
		r.cache.Set(symbol, res.price, gocache.DefaultExpiration)
		r.log.DebugContext(ctx, "Fetched latest quote",
			logger.StringField("symbol", symbol),
			logger.Float64Field("price", res.price))
		return res.price, nil
	}
}

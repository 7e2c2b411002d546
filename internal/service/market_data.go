package service

import (
	"context"
	"fmt"

	"market-scenario/config"
	"market-scenario/internal/dto"
	"market-scenario/internal/repository"
	"market-scenario/pkg/cache"
	"market-scenario/pkg/logger"
)

type MarketDataService interface {
	Get(ctx context.Context, param dto.GetMarketDataParam) (*dto.MarketData, error)
	Refresh(ctx context.Context, symbol string) error
}

type marketDataService struct {
	cfg           *config.Config
	log           *logger.Logger
	yahooRepo     repository.YahooFinanceRepository
	inmemoryCache cache.Cache
}

func NewMarketDataService(
	cfg *config.Config,
	log *logger.Logger,
	yahooRepo repository.YahooFinanceRepository,
	inmemoryCache cache.Cache,
) MarketDataService {
	return &marketDataService{
		cfg:           cfg,
		log:           log,
		yahooRepo:     yahooRepo,
		inmemoryCache: inmemoryCache,
	}
}

// Get returns market data for the symbol, serving from the in-memory cache
// when a fresh entry exists. Empty range/interval fall back to config
// defaults.
func (s *marketDataService) Get(ctx context.Context, param dto.GetMarketDataParam) (*dto.MarketData, error) {
	if param.Range == "" {
		param.Range = s.cfg.YahooFinance.DefaultRange
	}
	if param.Interval == "" {
		param.Interval = s.cfg.YahooFinance.DefaultInterval
	}

	key := marketDataCacheKey(param)
	if data, found := cache.GetTyped[*dto.MarketData](s.inmemoryCache, key); found {
		return data, nil
	}

	data, err := s.yahooRepo.Get(ctx, param)
	if err != nil {
		return nil, fmt.Errorf("failed to get market data: %w", err)
	}

	s.inmemoryCache.Set(key, data, s.cfg.Cache.DefaultExpiration)
	return data, nil
}

// Refresh fetches the default range/interval for a symbol and overwrites the
// cache entry. Used by the scheduler to pre-warm charts for active symbols.
func (s *marketDataService) Refresh(ctx context.Context, symbol string) error {
	param := dto.GetMarketDataParam{
		Symbol:   symbol,
		Range:    s.cfg.YahooFinance.DefaultRange,
		Interval: s.cfg.YahooFinance.DefaultInterval,
	}

	data, err := s.yahooRepo.Get(ctx, param)
	if err != nil {
		return fmt.Errorf("failed to refresh market data for %s: %w", symbol, err)
	}

	s.inmemoryCache.Set(marketDataCacheKey(param), data, s.cfg.Cache.DefaultExpiration)
	s.log.InfoContext(ctx, "Refreshed market data cache",
		logger.StringField("symbol", symbol),
		logger.IntField("bars", len(data.OHLCV)),
	)
	return nil
}

func marketDataCacheKey(param dto.GetMarketDataParam) string {
	return fmt.Sprintf("market_data:%s:%s:%s", param.Symbol, param.Range, param.Interval)
}

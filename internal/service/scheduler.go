package service

import (
	"context"
	"fmt"

	"market-scenario/config"
	"market-scenario/internal/repository"
	"market-scenario/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SchedulerService periodically pre-warms the market-data cache for the
// symbols of recently saved scenarios, so chart requests hit the cache.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
	RefreshOnce(ctx context.Context) error
}

type schedulerService struct {
	cfg        *config.Config
	log        *logger.Logger
	repo       repository.ScenarioRepository
	marketData MarketDataService
	cron       *cron.Cron
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	repo repository.ScenarioRepository,
	marketData MarketDataService,
) SchedulerService {
	return &schedulerService{
		cfg:        cfg,
		log:        log,
		repo:       repo,
		marketData: marketData,
		cron:       cron.New(),
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	if !s.cfg.Scheduler.Enabled {
		s.log.Info("Scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.RefreshSpec, func() {
		if err := s.RefreshOnce(ctx); err != nil {
			s.log.Error("Market data refresh failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh spec %q: %w", s.cfg.Scheduler.RefreshSpec, err)
	}

	s.cron.Start()
	s.log.Info("Scheduler started", logger.StringField("refresh_spec", s.cfg.Scheduler.RefreshSpec))
	return nil
}

func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Scheduler stopped")
}

// RefreshOnce refreshes market data for the symbols of the most recently
// saved scenarios. A failed symbol is logged and does not stop the rest.
func (s *schedulerService) RefreshOnce(ctx context.Context) error {
	symbols, err := s.repo.RecentSymbols(ctx, s.cfg.Scheduler.RefreshScenario)
	if err != nil {
		return fmt.Errorf("failed to load recent symbols: %w", err)
	}

	if len(symbols) == 0 {
		s.log.InfoContext(ctx, "No scenario symbols to refresh")
		return nil
	}

	for _, symbol := range symbols {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.marketData.Refresh(ctx, symbol); err != nil {
			s.log.WarnContext(ctx, "Failed to refresh symbol",
				logger.StringField("symbol", symbol),
				logger.ErrorField(err),
			)
		}
	}

	return nil
}

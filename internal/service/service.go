package service

import (
	"market-scenario/config"
	"market-scenario/internal/chart"
	"market-scenario/internal/notifier"
	"market-scenario/internal/parser"
	"market-scenario/internal/repository"
	"market-scenario/pkg/cache"
	"market-scenario/pkg/logger"
)

type Service struct {
	ScenarioService   ScenarioService
	MarketDataService MarketDataService
	SchedulerService  SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
	notify notifier.Notifier,
) *Service {
	marketDataService := NewMarketDataService(cfg, log, repo.YahooFinanceRepo, inmemoryCache)
	scenarioService := NewScenarioService(
		cfg,
		log,
		parser.New(),
		repo.ScenarioRepo,
		repo.GeminiAIRepo,
		marketDataService,
		chart.NewRenderer(cfg.Chart),
		notify,
	)
	schedulerService := NewSchedulerService(cfg, log, repo.ScenarioRepo, marketDataService)

	return &Service{
		ScenarioService:   scenarioService,
		MarketDataService: marketDataService,
		SchedulerService:  schedulerService,
	}
}

package repository

import (
	"market-scenario/config"
	"market-scenario/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	ScenarioRepo     ScenarioRepository
	YahooFinanceRepo YahooFinanceRepository
	GeminiAIRepo     AIRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	repo := &Repository{
		ScenarioRepo:     NewScenarioRepository(db),
		YahooFinanceRepo: NewYahooFinanceRepository(cfg, log),
	}

	if cfg.Gemini.Enabled {
		geminiAIRepo, err := NewGeminiAIRepository(cfg, log)
		if err != nil {
			return nil, err
		}
		repo.GeminiAIRepo = geminiAIRepo
	}

	return repo, nil
}

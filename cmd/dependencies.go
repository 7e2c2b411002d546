package cmd

import (
	"context"

	"market-scenario/config"
	"market-scenario/internal/notifier"
	"market-scenario/pkg/cache"
	"market-scenario/pkg/logger"
	"market-scenario/pkg/sqlite"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AppDependency struct {
	db        *sqlite.DB
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	echo      *echo.Echo
	cache     cache.Cache
	notifier  notifier.Notifier
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	db, err := sqlite.NewDB(cfg.DB, log)
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))
		return nil, err
	}

	notify := notifier.NewNoop()
	if cfg.Telegram.Enabled {
		notify, err = notifier.NewTelegram(&cfg.Telegram, log)
		if err != nil {
			log.Error("Failed to create telegram notifier", zap.Error(err))
			return nil, err
		}
	}

	e := echo.New()
	e.HideBanner = true

	return &AppDependency{
		cfg:       cfg,
		log:       log,
		validator: goValidator.New(),
		db:        db,
		echo:      e,
		cache:     cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
		notifier:  notify,
	}, nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger         `mapstructure:"logger"`
	DB           Database       `mapstructure:"database"`
	API          API            `mapstructure:"api"`
	Cache        Cache          `mapstructure:"cache"`
	Scheduler    Scheduler      `mapstructure:"scheduler"`
	YahooFinance YahooFinance   `mapstructure:"yahoo_finance"`
	Gemini       Gemini         `mapstructure:"gemini"`
	Telegram     TelegramConfig `mapstructure:"telegram"`
	Chart        Chart          `mapstructure:"chart"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Path     string `mapstructure:"path"`
	LogLevel string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type Scheduler struct {
	Enabled         bool   `mapstructure:"enabled"`
	RefreshSpec     string `mapstructure:"refresh_spec"`
	RefreshScenario int    `mapstructure:"refresh_scenario_count"`
}

type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	DefaultRange        string        `mapstructure:"default_range"`
	DefaultInterval     string        `mapstructure:"default_interval"`
}

type Gemini struct {
	Enabled             bool   `mapstructure:"enabled"`
	APIKey              string `mapstructure:"api_key"`
	BaseModel           string `mapstructure:"base_model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

type TelegramConfig struct {
	Enabled             bool          `mapstructure:"enabled"`
	BotToken            string        `mapstructure:"bot_token"`
	ChatID              int64         `mapstructure:"chat_id"`
	TimeoutDuration     time.Duration `mapstructure:"timeout_duration"`
	MaxRequestPerSecond int           `mapstructure:"max_request_per_second"`
}

type Chart struct {
	Width  string `mapstructure:"width"`
	Height string `mapstructure:"height"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("database.path", "data/scenarios.db")
	viper.SetDefault("database.log_level", "Warn")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
	viper.SetDefault("scheduler.enabled", false)
	viper.SetDefault("scheduler.refresh_spec", "*/30 * * * *")
	viper.SetDefault("scheduler.refresh_scenario_count", 10)
	viper.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.timeout", 30*time.Second)
	viper.SetDefault("yahoo_finance.max_request_per_minute", 30)
	viper.SetDefault("yahoo_finance.default_range", "1mo")
	viper.SetDefault("yahoo_finance.default_interval", "1h")
	viper.SetDefault("gemini.base_model", "gemini-2.0-flash")
	viper.SetDefault("gemini.max_request_per_minute", 10)
	viper.SetDefault("telegram.timeout_duration", 10*time.Second)
	viper.SetDefault("telegram.max_request_per_second", 1)
	viper.SetDefault("chart.width", "1200px")
	viper.SetDefault("chart.height", "700px")
}

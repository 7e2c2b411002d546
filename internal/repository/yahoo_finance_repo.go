package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"market-scenario/config"
	"market-scenario/internal/dto"
	"market-scenario/pkg/httpclient"
	"market-scenario/pkg/logger"

	"golang.org/x/time/rate"
)

type YahooFinanceRepository interface {
	Get(ctx context.Context, param dto.GetMarketDataParam) (*dto.MarketData, error)
}

type yahooFinanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &yahooFinanceRepository{
		httpClient:     httpclient.New(cfg.YahooFinance.BaseURL, cfg.YahooFinance.Timeout),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *yahooFinanceRepository) Get(ctx context.Context, param dto.GetMarketDataParam) (*dto.MarketData, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "/" + param.Symbol

	period1, period2 := r.mapRangeToUnix(param.Range)
	if period1 == 0 || period2 == 0 {
		return nil, fmt.Errorf("invalid range: %s", param.Range)
	}
	queryParams := map[string]string{
		"period1":        fmt.Sprintf("%d", period1),
		"period2":        fmt.Sprintf("%d", period2),
		"interval":       param.Interval,
		"includePrePost": "false",
		"events":         "div,split",
	}

	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://finance.yahoo.com/",
	}

	var yahooResp dto.YahooFinanceResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &yahooResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from yahoo finance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Yahoo Finance API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("yahoo finance api returned status: %d", resp.StatusCode)
	}

	if yahooResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance api error: %v", yahooResp.Chart.Error)
	}

	if len(yahooResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no data returned for symbol: %s", param.Symbol)
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data available for symbol: %s", param.Symbol)
	}

	quote := result.Indicators.Quote[0]

	var ohlcv []dto.OHLCV
	for i, timestamp := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			continue
		}

		// Bars with a zero price component are gaps in the feed.
		if quote.Open[i] == 0 || quote.High[i] == 0 || quote.Low[i] == 0 || quote.Close[i] == 0 {
			continue
		}

		var volume int64
		if i < len(quote.Volume) {
			volume = quote.Volume[i]
		}

		ohlcv = append(ohlcv, dto.OHLCV{
			Timestamp: timestamp,
			Open:      quote.Open[i],
			High:      quote.High[i],
			Low:       quote.Low[i],
			Close:     quote.Close[i],
			Volume:    volume,
		})
	}

	if len(ohlcv) == 0 {
		return nil, fmt.Errorf("no valid OHLCV data found for symbol: %s", param.Symbol)
	}

	marketPrice := result.Meta.RegularMarketPrice

	return &dto.MarketData{
		MarketPrice: marketPrice,
		OHLCV:       ohlcv,
		Range:       param.Range,
		Interval:    param.Interval,
	}, nil
}

// mapRangeToUnix converts a range string to a period1/period2 unix pair.
func (r *yahooFinanceRepository) mapRangeToUnix(rng string) (int64, int64) {
	now := time.Now()
	switch rng {
	case "1d":
		return now.AddDate(0, 0, -1).Unix(), now.Unix()
	case "5d":
		return now.AddDate(0, 0, -5).Unix(), now.Unix()
	case "14d":
		return now.AddDate(0, 0, -14).Unix(), now.Unix()
	case "1mo":
		return now.AddDate(0, -1, 0).Unix(), now.Unix()
	case "3mo":
		return now.AddDate(0, -3, 0).Unix(), now.Unix()
	case "6mo":
		return now.AddDate(0, -6, 0).Unix(), now.Unix()
	case "1y":
		return now.AddDate(-1, 0, 0).Unix(), now.Unix()
	default:
		return 0, 0
	}
}

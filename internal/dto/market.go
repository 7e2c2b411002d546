package dto

// SymbolGold is the canonical gold futures ticker, also the resolver's
// default when no symbol cue is recognized.
const SymbolGold = "GC=F"

type OHLCV struct {
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
	Timestamp int64   `json:"timestamp"`
}

type MarketData struct {
	MarketPrice float64 `json:"market_price"`
	Range       string  `json:"range"`
	Interval    string  `json:"interval"`
	OHLCV       []OHLCV `json:"ohlcv"`
}

type GetMarketDataParam struct {
	Symbol   string `json:"symbol"`
	Range    string `json:"range"`
	Interval string `json:"interval"`
}

// Yahoo Finance chart API response
type YahooFinanceResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

type SymbolInfo struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var availableSymbols = []SymbolInfo{
	{Symbol: "GC=F", Name: "GOLD（金）"},
	{Symbol: "EURUSD=X", Name: "EUR/USD（ユーロドル）"},
	{Symbol: "GBPUSD=X", Name: "GBP/USD（ポンドドル）"},
	{Symbol: "USDJPY=X", Name: "USD/JPY（ドル円）"},
	{Symbol: "AUDUSD=X", Name: "AUD/USD（豪ドル米ドル）"},
	{Symbol: "USDCAD=X", Name: "USD/CAD（米ドルカナダドル）"},
	{Symbol: "USDCHF=X", Name: "USD/CHF（米ドルスイスフラン）"},
	{Symbol: "NZDUSD=X", Name: "NZD/USD（NZドル米ドル）"},
	{Symbol: "EURJPY=X", Name: "EUR/JPY（ユーロ円）"},
}

// AvailableSymbols returns the known symbol universe for chart lookups.
func AvailableSymbols() []SymbolInfo {
	out := make([]SymbolInfo, len(availableSymbols))
	copy(out, availableSymbols)
	return out
}

// SymbolDisplayName returns the human-readable name for a ticker, or the
// ticker itself when unknown.
func SymbolDisplayName(symbol string) string {
	for _, s := range availableSymbols {
		if s.Symbol == symbol {
			return s.Name
		}
	}
	return symbol
}

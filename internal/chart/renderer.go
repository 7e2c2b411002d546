// Package chart renders candlestick charts with scenario overlays as
// self-contained HTML documents.
package chart

import (
	"fmt"
	"io"
	"time"

	"market-scenario/config"
	"market-scenario/internal/dto"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Overlay colors by polarity and timeframe: green family for support, red
// family for resistance, darker shades for longer timeframes.
var levelColors = map[dto.Polarity]map[dto.Timeframe]string{
	dto.PolaritySupport: {
		dto.TimeframeDaily:   "#2ecc71",
		dto.TimeframeWeekly:  "#27ae60",
		dto.TimeframeMonthly: "#16a085",
	},
	dto.PolarityResistance: {
		dto.TimeframeDaily:   "#e74c3c",
		dto.TimeframeWeekly:  "#c0392b",
		dto.TimeframeMonthly: "#a93226",
	},
}

var zoneColors = map[dto.Polarity]string{
	dto.PolaritySupportZone:    "#82e0aa",
	dto.PolarityResistanceZone: "#f1948a",
}

type Renderer struct {
	cfg config.Chart
}

func NewRenderer(cfg config.Chart) *Renderer {
	return &Renderer{cfg: cfg}
}

// Render writes a candlestick chart for the market data, overlaid with the
// scenario's levels and zone bounds, as HTML. A nil document renders the
// market data alone.
func (r *Renderer) Render(w io.Writer, title string, data *dto.MarketData, doc *dto.ScenarioDocument) error {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     r.cfg.Width,
			Height:    r.cfg.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)

	var (
		x       []string
		candles []opts.KlineData
	)
	if data != nil {
		x = make([]string, 0, len(data.OHLCV))
		candles = make([]opts.KlineData, 0, len(data.OHLCV))
		for _, bar := range data.OHLCV {
			x = append(x, time.Unix(bar.Timestamp, 0).UTC().Format("2006-01-02 15:04"))
			candles = append(candles, opts.KlineData{
				Value: [4]float64{bar.Open, bar.Close, bar.Low, bar.High},
			})
		}
	}

	kline.SetXAxis(x).AddSeries("価格", candles,
		charts.WithItemStyleOpts(opts.ItemStyle{
			Color:        "#26a69a",
			Color0:       "#ef5350",
			BorderColor:  "#26a69a",
			BorderColor0: "#ef5350",
		}),
	)

	if doc != nil && len(x) > 0 {
		kline.Overlap(r.overlay(x, doc))
	}

	return kline.Render(w)
}

// overlay builds one horizontal line series per price level and per zone
// bound, colored by polarity and timeframe.
func (r *Renderer) overlay(x []string, doc *dto.ScenarioDocument) *charts.Line {
	line := charts.NewLine()
	line.SetXAxis(x)

	for _, level := range doc.SupportLevels {
		r.addHorizontalLine(line, x, level.Description, level.Price, r.levelColor(level), "dashed")
	}
	for _, level := range doc.ResistanceLevels {
		r.addHorizontalLine(line, x, level.Description, level.Price, r.levelColor(level), "dashed")
	}

	for _, zone := range doc.SupportZones {
		r.addZoneBounds(line, x, zone)
	}
	for _, zone := range doc.ResistanceZones {
		r.addZoneBounds(line, x, zone)
	}

	return line
}

func (r *Renderer) addZoneBounds(line *charts.Line, x []string, zone dto.PriceZone) {
	color := zoneColors[zone.Polarity]
	r.addHorizontalLine(line, x, fmt.Sprintf("%s 下限", zone.Description), zone.Lower, color, "dotted")
	r.addHorizontalLine(line, x, fmt.Sprintf("%s 上限", zone.Description), zone.Upper, color, "dotted")
}

func (r *Renderer) addHorizontalLine(line *charts.Line, x []string, name string, value float64, color, style string) {
	points := make([]opts.LineData, len(x))
	for i := range points {
		points[i] = opts.LineData{Value: value}
	}

	line.AddSeries(name, points,
		charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: color, Type: style, Width: 1.5}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
	)
}

func (r *Renderer) levelColor(level dto.PriceLevel) string {
	if byTF, ok := levelColors[level.Polarity]; ok {
		if color, ok := byTF[level.Timeframe]; ok {
			return color
		}
	}
	return "#7f8c8d"
}

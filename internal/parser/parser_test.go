package parser

import (
	"testing"

	"market-scenario/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNarrative = `ゴールド市場分析 2025年10月21日 8時00分時点。
日足ベースのサポートラインは4317近辺と4218近辺と4094近辺、
週足ベースのサポートラインは4057近辺です。
日足ベースのレジスタンスラインは4381近辺、
週足ベースのレジスタンスラインは4443近辺と4734近辺。
4317近辺～4320近辺のサポート帯に注目。
4440近辺～4445近辺のレジスタンス帯を上抜けると急落に注意。
上昇トレンド継続のシナリオも想定。`

func levelPrices(levels []dto.PriceLevel, tf dto.Timeframe) []float64 {
	prices := []float64{}
	for _, l := range levels {
		if l.Timeframe == tf {
			prices = append(prices, l.Price)
		}
	}
	return prices
}

func TestParse_SampleNarrative(t *testing.T) {
	doc := New().Parse(sampleNarrative)

	assert.Equal(t, dto.SymbolGold, doc.Symbol)
	assert.Equal(t, "2025-10-21 08:00", doc.AnalysisDate)

	assert.Equal(t, []float64{4317, 4218, 4094}, levelPrices(doc.SupportLevels, dto.TimeframeDaily))
	assert.Equal(t, []float64{4057}, levelPrices(doc.SupportLevels, dto.TimeframeWeekly))
	assert.Equal(t, []float64{4381}, levelPrices(doc.ResistanceLevels, dto.TimeframeDaily))
	assert.Equal(t, []float64{4443, 4734}, levelPrices(doc.ResistanceLevels, dto.TimeframeWeekly))

	require.Len(t, doc.SupportZones, 1)
	assert.Equal(t, 4317.0, doc.SupportZones[0].Lower)
	assert.Equal(t, 4320.0, doc.SupportZones[0].Upper)
	assert.Equal(t, dto.PolaritySupportZone, doc.SupportZones[0].Polarity)

	require.Len(t, doc.ResistanceZones, 1)
	assert.Equal(t, 4440.0, doc.ResistanceZones[0].Lower)
	assert.Equal(t, 4445.0, doc.ResistanceZones[0].Upper)

	assert.Equal(t, []string{"急落に注意が必要", "上昇トレンド継続の可能性"}, doc.Notes)
	assert.True(t, doc.HasAlertNotes())
}

func TestParse_LevelOrderAndDescription(t *testing.T) {
	doc := New().Parse("日足ベースのサポートラインは4317近辺と4218近辺")

	require.Len(t, doc.SupportLevels, 2)
	assert.Equal(t, dto.PolaritySupport, doc.SupportLevels[0].Polarity)
	assert.Equal(t, dto.TimeframeDaily, doc.SupportLevels[0].Timeframe)
	assert.Equal(t, "日足ベースのサポート", doc.SupportLevels[0].Description)
	assert.Equal(t, 4317.0, doc.SupportLevels[0].Price)
	assert.Equal(t, 4218.0, doc.SupportLevels[1].Price)
}

func TestParse_FirstOccurrenceOnlyPerTemplate(t *testing.T) {
	text := "日足ベースのサポートラインは4317近辺です。日足ベースのサポートラインは9999近辺です。"
	doc := New().Parse(text)

	assert.Equal(t, []float64{4317}, levelPrices(doc.SupportLevels, dto.TimeframeDaily))
}

func TestParse_MonthlyResistanceNotRecognized(t *testing.T) {
	text := "月足ベースのサポートラインは4000近辺。月足ベースのレジスタンスラインは5000近辺。"
	doc := New().Parse(text)

	assert.Equal(t, []float64{4000}, levelPrices(doc.SupportLevels, dto.TimeframeMonthly))
	assert.Empty(t, doc.ResistanceLevels)
}

func TestParse_ZonePricesDoNotLeakIntoLevels(t *testing.T) {
	doc := New().Parse("4317近辺～4320近辺のサポート帯に注目。")

	assert.Empty(t, doc.SupportLevels)
	assert.Empty(t, doc.ResistanceLevels)
	require.Len(t, doc.SupportZones, 1)
}

func TestParse_ZoneBoundsKeepTextOrder(t *testing.T) {
	// Bounds are not reordered even when the narrative states them inverted.
	doc := New().Parse("4320近辺～4317近辺のサポート帯。")

	require.Len(t, doc.SupportZones, 1)
	assert.Equal(t, 4320.0, doc.SupportZones[0].Lower)
	assert.Equal(t, 4317.0, doc.SupportZones[0].Upper)
}

func TestParse_MultipleZones(t *testing.T) {
	text := "4317近辺～4320近辺のサポート帯と4094近辺～4100近辺のサポート帯。"
	doc := New().Parse(text)

	require.Len(t, doc.SupportZones, 2)
	assert.Equal(t, 4317.0, doc.SupportZones[0].Lower)
	assert.Equal(t, 4094.0, doc.SupportZones[1].Lower)
	assert.Equal(t, "4094～4100のサポート帯", doc.SupportZones[1].Description)
}

func TestParse_DecimalPrices(t *testing.T) {
	doc := New().Parse("日足ベースのサポートラインは4317.55近辺と4218.5近辺")

	assert.Equal(t, []float64{4317.55, 4218.5}, levelPrices(doc.SupportLevels, dto.TimeframeDaily))
}

func TestResolveSymbol(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "gold english upper", text: "GOLD is trending", want: "GC=F"},
		{name: "gold english lower", text: "gold is trending", want: "GC=F"},
		{name: "gold japanese", text: "ゴールドの分析", want: "GC=F"},
		{name: "usdjpy", text: "ドル円の見通し", want: "USDJPY=X"},
		{name: "eurusd", text: "ユーロドルの見通し", want: "EURUSD=X"},
		{name: "gbpusd", text: "ポンドドルの見通し", want: "GBPUSD=X"},
		{name: "gold beats pair", text: "ゴールドとドル円", want: "GC=F"},
		{name: "default", text: "no instrument here", want: "GC=F"},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Parse(tt.text).Symbol)
		})
	}
}

func TestResolveDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "zero padded output", text: "2025年10月21日 8時00分", want: "2025-10-21 08:00"},
		{name: "single digit fields", text: "2025年1月2日 9時5分", want: "2025-01-02 09:05"},
		{name: "no whitespace", text: "2025年10月21日8時00分", want: "2025-10-21 08:00"},
		{name: "no date", text: "日足ベースのサポートラインは4317近辺", want: ""},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Parse(tt.text).AnalysisDate)
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	doc := New().Parse("")

	require.NotNil(t, doc)
	assert.Equal(t, "", doc.RawText)
	assert.Equal(t, dto.SymbolGold, doc.Symbol)
	assert.Equal(t, "", doc.AnalysisDate)
	assert.Empty(t, doc.SupportLevels)
	assert.Empty(t, doc.ResistanceLevels)
	assert.Empty(t, doc.SupportZones)
	assert.Empty(t, doc.ResistanceZones)
	assert.Empty(t, doc.Notes)
	assert.False(t, doc.HasAlertNotes())
}

func TestParse_Deterministic(t *testing.T) {
	p := New()
	first := p.Parse(sampleNarrative)
	second := p.Parse(sampleNarrative)

	assert.Equal(t, first, second)
}

func TestParse_DocumentsDoNotShareSlices(t *testing.T) {
	p := New()
	first := p.Parse(sampleNarrative)
	second := p.Parse(sampleNarrative)

	first.SupportLevels[0].Price = -1
	first.Notes[0] = "mutated"

	assert.Equal(t, 4317.0, second.SupportLevels[0].Price)
	assert.Equal(t, "急落に注意が必要", second.Notes[0])
}

func TestParse_ConcurrentUse(t *testing.T) {
	p := New()
	done := make(chan *dto.ScenarioDocument, 8)
	for i := 0; i < 8; i++ {
		go func() {
			done <- p.Parse(sampleNarrative)
		}()
	}

	want := p.Parse(sampleNarrative)
	for i := 0; i < 8; i++ {
		assert.Equal(t, want, <-done)
	}
}

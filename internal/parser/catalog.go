package parser

import (
	"fmt"
	"regexp"

	"market-scenario/internal/dto"
)

// Phrase keywords as they appear in scenario narratives.
const (
	keywordDaily   = "日足"
	keywordWeekly  = "週足"
	keywordMonthly = "月足"

	keywordSupport    = "サポート"
	keywordResistance = "レジスタンス"
)

// levelTemplate recognizes one "<timeframe>ベースの<polarity>ラインは<price>近辺
// (と<price>近辺)*" phrase. The captured group is the price-list clause.
type levelTemplate struct {
	polarity    dto.Polarity
	timeframe   dto.Timeframe
	re          *regexp.Regexp
	description string
}

// zoneTemplate recognizes "<price>近辺～<price>近辺の<polarity>帯" phrases.
type zoneTemplate struct {
	polarity dto.Polarity
	re       *regexp.Regexp
	label    string
}

type noteTemplate struct {
	keyword string
	message string
}

type symbolEntry struct {
	keyword string
	ticker  string
}

// catalog holds every compiled phrase template. It is built once and shared
// read-only; concurrent Parse calls need no coordination.
type catalog struct {
	priceToken       *regexp.Regexp
	supportLevels    []levelTemplate
	resistanceLevels []levelTemplate
	supportZone      zoneTemplate
	resistanceZone   zoneTemplate
	datePhrase       *regexp.Regexp
	symbolTable      []symbolEntry
	noteTable        []noteTemplate
}

var defaultCatalog = newCatalog()

func newLevelTemplate(polarity dto.Polarity, timeframe dto.Timeframe, tfKeyword, polKeyword string) levelTemplate {
	return levelTemplate{
		polarity:    polarity,
		timeframe:   timeframe,
		re:          regexp.MustCompile(fmt.Sprintf(`%sベースの%sラインは([\d.]+近辺(?:と[\d.]+近辺)*)`, tfKeyword, polKeyword)),
		description: fmt.Sprintf("%sベースの%s", tfKeyword, polKeyword),
	}
}

func newZoneTemplate(polarity dto.Polarity, label string) zoneTemplate {
	return zoneTemplate{
		polarity: polarity,
		re:       regexp.MustCompile(fmt.Sprintf(`([\d.]+)近辺～([\d.]+)近辺の%s帯`, label)),
		label:    label,
	}
}

func newCatalog() *catalog {
	return &catalog{
		// 4-5 integer digits, optional 1-2 decimal digits.
		priceToken: regexp.MustCompile(`\d{4,5}(?:\.\d{1,2})?`),

		supportLevels: []levelTemplate{
			newLevelTemplate(dto.PolaritySupport, dto.TimeframeDaily, keywordDaily, keywordSupport),
			newLevelTemplate(dto.PolaritySupport, dto.TimeframeWeekly, keywordWeekly, keywordSupport),
			newLevelTemplate(dto.PolaritySupport, dto.TimeframeMonthly, keywordMonthly, keywordSupport),
		},

		// Resistance is recognized on daily and weekly charts only. The
		// monthly resistance phrase is intentionally absent from the catalog;
		// completing the matrix would change observable output.
		resistanceLevels: []levelTemplate{
			newLevelTemplate(dto.PolarityResistance, dto.TimeframeDaily, keywordDaily, keywordResistance),
			newLevelTemplate(dto.PolarityResistance, dto.TimeframeWeekly, keywordWeekly, keywordResistance),
		},

		supportZone:    newZoneTemplate(dto.PolaritySupportZone, keywordSupport),
		resistanceZone: newZoneTemplate(dto.PolarityResistanceZone, keywordResistance),

		// e.g. 2025年10月21日 8時00分
		datePhrase: regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日\s*(\d{1,2})時(\d{1,2})分`),

		// Checked in order; first match wins.
		symbolTable: []symbolEntry{
			{keyword: "ドル円", ticker: "USDJPY=X"},
			{keyword: "ユーロドル", ticker: "EURUSD=X"},
			{keyword: "ポンドドル", ticker: "GBPUSD=X"},
		},

		// Each keyword is checked independently, presence only.
		noteTable: []noteTemplate{
			{keyword: "急落に注意", message: "急落に注意が必要"},
			{keyword: "上昇トレンド継続", message: "上昇トレンド継続の可能性"},
		},
	}
}

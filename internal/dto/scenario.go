package dto

// Polarity tells whether a level or zone acts as a floor or a ceiling.
type Polarity string

const (
	PolaritySupport        Polarity = "support"
	PolarityResistance     Polarity = "resistance"
	PolaritySupportZone    Polarity = "support_zone"
	PolarityResistanceZone Polarity = "resistance_zone"
)

// Timeframe is the chart basis a level was drawn from.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

type PriceLevel struct {
	Price       float64   `json:"price"`
	Polarity    Polarity  `json:"polarity"`
	Timeframe   Timeframe `json:"timeframe"`
	Description string    `json:"description"`
}

type PriceZone struct {
	Lower       float64  `json:"price_lower"`
	Upper       float64  `json:"price_upper"`
	Polarity    Polarity `json:"polarity"`
	Description string   `json:"description"`
}

// ScenarioDocument is the structured result of parsing one scenario narrative.
// It is created once by a parse and treated as an immutable value afterwards.
// Level and zone lists keep extraction order: support before resistance,
// daily before weekly before monthly.
type ScenarioDocument struct {
	RawText          string       `json:"raw_text"`
	Symbol           string       `json:"symbol"`
	AnalysisDate     string       `json:"analysis_date"`
	SupportLevels    []PriceLevel `json:"support_levels"`
	ResistanceLevels []PriceLevel `json:"resistance_levels"`
	SupportZones     []PriceZone  `json:"support_zones"`
	ResistanceZones  []PriceZone  `json:"resistance_zones"`
	Notes            []string     `json:"notes"`
}

// NewScenarioDocument builds an empty document around the raw text. Every
// call allocates fresh list instances so no two documents ever share a
// backing slice.
func NewScenarioDocument(rawText string) *ScenarioDocument {
	return &ScenarioDocument{
		RawText:          rawText,
		SupportLevels:    []PriceLevel{},
		ResistanceLevels: []PriceLevel{},
		SupportZones:     []PriceZone{},
		ResistanceZones:  []PriceZone{},
		Notes:            []string{},
	}
}

// HasAlertNotes reports whether the parser attached any alert notes.
func (d *ScenarioDocument) HasAlertNotes() bool {
	return len(d.Notes) > 0
}

// ToMap converts the document to a plain key/value representation suitable
// for storage as serialized text. ScenarioDocumentFromMap reverses it
// losslessly.
func (d *ScenarioDocument) ToMap() map[string]interface{} {
	supportLevels := make([]map[string]interface{}, 0, len(d.SupportLevels))
	for _, sl := range d.SupportLevels {
		supportLevels = append(supportLevels, levelToMap(sl))
	}
	resistanceLevels := make([]map[string]interface{}, 0, len(d.ResistanceLevels))
	for _, rl := range d.ResistanceLevels {
		resistanceLevels = append(resistanceLevels, levelToMap(rl))
	}
	supportZones := make([]map[string]interface{}, 0, len(d.SupportZones))
	for _, sz := range d.SupportZones {
		supportZones = append(supportZones, zoneToMap(sz))
	}
	resistanceZones := make([]map[string]interface{}, 0, len(d.ResistanceZones))
	for _, rz := range d.ResistanceZones {
		resistanceZones = append(resistanceZones, zoneToMap(rz))
	}
	notes := make([]string, 0, len(d.Notes))
	notes = append(notes, d.Notes...)

	return map[string]interface{}{
		"raw_text":          d.RawText,
		"symbol":            d.Symbol,
		"analysis_date":     d.AnalysisDate,
		"support_levels":    supportLevels,
		"resistance_levels": resistanceLevels,
		"support_zones":     supportZones,
		"resistance_zones":  resistanceZones,
		"notes":             notes,
	}
}

func levelToMap(l PriceLevel) map[string]interface{} {
	return map[string]interface{}{
		"price":       l.Price,
		"polarity":    string(l.Polarity),
		"timeframe":   string(l.Timeframe),
		"description": l.Description,
	}
}

func zoneToMap(z PriceZone) map[string]interface{} {
	return map[string]interface{}{
		"price_lower": z.Lower,
		"price_upper": z.Upper,
		"polarity":    string(z.Polarity),
		"description": z.Description,
	}
}

// ScenarioDocumentFromMap reconstructs a document from the representation
// produced by ToMap. It also accepts the shapes encoding/json produces when
// the map has been through a text round trip ([]interface{} item lists,
// json.Number-free float64 values).
func ScenarioDocumentFromMap(m map[string]interface{}) *ScenarioDocument {
	doc := NewScenarioDocument(asString(m["raw_text"]))
	doc.Symbol = asString(m["symbol"])
	doc.AnalysisDate = asString(m["analysis_date"])

	for _, item := range asMapSlice(m["support_levels"]) {
		doc.SupportLevels = append(doc.SupportLevels, levelFromMap(item))
	}
	for _, item := range asMapSlice(m["resistance_levels"]) {
		doc.ResistanceLevels = append(doc.ResistanceLevels, levelFromMap(item))
	}
	for _, item := range asMapSlice(m["support_zones"]) {
		doc.SupportZones = append(doc.SupportZones, zoneFromMap(item))
	}
	for _, item := range asMapSlice(m["resistance_zones"]) {
		doc.ResistanceZones = append(doc.ResistanceZones, zoneFromMap(item))
	}
	doc.Notes = append(doc.Notes, asStringSlice(m["notes"])...)

	return doc
}

func levelFromMap(m map[string]interface{}) PriceLevel {
	return PriceLevel{
		Price:       asFloat(m["price"]),
		Polarity:    Polarity(asString(m["polarity"])),
		Timeframe:   Timeframe(asString(m["timeframe"])),
		Description: asString(m["description"]),
	}
}

func zoneFromMap(m map[string]interface{}) PriceZone {
	return PriceZone{
		Lower:       asFloat(m["price_lower"]),
		Upper:       asFloat(m["price_upper"]),
		Polarity:    Polarity(asString(m["polarity"])),
		Description: asString(m["description"]),
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func asMapSlice(v interface{}) []map[string]interface{} {
	switch items := v.(type) {
	case []map[string]interface{}:
		return items
	case []interface{}:
		out := make([]map[string]interface{}, 0, len(items))
		for _, item := range items {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

func asStringSlice(v interface{}) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

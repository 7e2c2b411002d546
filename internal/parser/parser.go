// Package parser turns free-form Japanese trading narratives into structured
// scenario documents: price levels tagged by timeframe and polarity, price
// zones, an instrument symbol, an analysis timestamp, and alert notes.
//
// Recognition is strictly template-based. There is no fuzzy matching and no
// language understanding beyond the fixed phrase catalog; text that matches
// nothing simply yields an empty document.
package parser

import "market-scenario/internal/dto"

// Parser assembles scenario documents from raw narrative text. The zero
// cost of construction comes from sharing one immutable compiled catalog;
// a single Parser may be used from any number of goroutines.
type Parser struct {
	catalog *catalog
}

func New() *Parser {
	return &Parser{catalog: defaultCatalog}
}

// Parse extracts every recognized fact from the text and assembles them into
// one freshly allocated document. Parse is total: it returns a valid
// (possibly entirely empty) document for every input, including the empty
// string, and never returns an error.
func (p *Parser) Parse(text string) *dto.ScenarioDocument {
	doc := dto.NewScenarioDocument(text)

	doc.Symbol = p.catalog.resolveSymbol(text)
	doc.AnalysisDate = p.catalog.resolveDate(text)

	doc.SupportLevels = append(doc.SupportLevels,
		p.catalog.extractLevels(text, p.catalog.supportLevels)...)
	doc.ResistanceLevels = append(doc.ResistanceLevels,
		p.catalog.extractLevels(text, p.catalog.resistanceLevels)...)

	doc.SupportZones = append(doc.SupportZones,
		p.catalog.extractZones(text, p.catalog.supportZone)...)
	doc.ResistanceZones = append(doc.ResistanceZones,
		p.catalog.extractZones(text, p.catalog.resistanceZone)...)

	doc.Notes = append(doc.Notes, p.catalog.detectNotes(text)...)

	return doc
}

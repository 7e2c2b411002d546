package parser

import "market-scenario/internal/dto"

// extractLevels applies the given level templates in order. Each template is
// a single first-occurrence search; the captured clause is scanned for price
// tokens and every token becomes one PriceLevel. A template that does not
// match contributes nothing, which is a normal outcome.
func (c *catalog) extractLevels(text string, templates []levelTemplate) []dto.PriceLevel {
	levels := []dto.PriceLevel{}
	for _, tmpl := range templates {
		match := tmpl.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		for _, price := range c.scanPrices(match[1]) {
			levels = append(levels, dto.PriceLevel{
				Price:       price,
				Polarity:    tmpl.polarity,
				Timeframe:   tmpl.timeframe,
				Description: tmpl.description,
			})
		}
	}
	return levels
}

package parser

import "strconv"

// scanPrices extracts valid price tokens from a captured price-list clause,
// in reading order. It is only ever applied to the sub-span captured by a
// level template, never to the whole narrative, so prices mentioned elsewhere
// cannot leak into level lists. Tokens that fail to parse are skipped.
func (c *catalog) scanPrices(span string) []float64 {
	tokens := c.priceToken.FindAllString(span, -1)
	prices := make([]float64, 0, len(tokens))
	for _, token := range tokens {
		price, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		prices = append(prices, price)
	}
	return prices
}

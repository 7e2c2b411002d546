package parser

import (
	"fmt"
	"strconv"

	"market-scenario/internal/dto"
	"market-scenario/pkg/utils"
)

// extractZones finds all non-overlapping zone phrase matches across the whole
// text. Bounds are kept in the order they appear in the text; there is no
// min/max reordering.
func (c *catalog) extractZones(text string, tmpl zoneTemplate) []dto.PriceZone {
	zones := []dto.PriceZone{}
	for _, match := range tmpl.re.FindAllStringSubmatch(text, -1) {
		lower, errLower := strconv.ParseFloat(match[1], 64)
		upper, errUpper := strconv.ParseFloat(match[2], 64)
		if errLower != nil || errUpper != nil {
			continue
		}
		zones = append(zones, dto.PriceZone{
			Lower:       lower,
			Upper:       upper,
			Polarity:    tmpl.polarity,
			Description: fmt.Sprintf("%s～%sの%s帯", utils.FormatPrice(lower), utils.FormatPrice(upper), tmpl.label),
		})
	}
	return zones
}

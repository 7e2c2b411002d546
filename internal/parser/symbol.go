package parser

import (
	"strings"

	"market-scenario/internal/dto"
)

// resolveSymbol maps lexical cues in the text to a canonical ticker. Gold
// cues (English, any case, or the Japanese transliteration) win outright;
// otherwise the currency-pair table is checked in order. Text with no
// recognized cue silently falls back to the gold ticker, so a resolved
// symbol never means the narrative actually mentioned one.
func (c *catalog) resolveSymbol(text string) string {
	if strings.Contains(strings.ToUpper(text), "GOLD") || strings.Contains(text, "ゴールド") {
		return dto.SymbolGold
	}

	for _, entry := range c.symbolTable {
		if strings.Contains(text, entry.keyword) {
			return entry.ticker
		}
	}

	return dto.SymbolGold
}

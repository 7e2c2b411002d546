package parser

import "strings"

// detectNotes scans for the fixed alert keyword phrases, in table order. A
// keyword present anywhere in the text contributes its note message once,
// regardless of how many times it occurs.
func (c *catalog) detectNotes(text string) []string {
	notes := []string{}
	for _, tmpl := range c.noteTable {
		if strings.Contains(text, tmpl.keyword) {
			notes = append(notes, tmpl.message)
		}
	}
	return notes
}

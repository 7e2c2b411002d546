package parser

import (
	"fmt"
	"strconv"
)

// resolveDate extracts the analysis timestamp from the single recognized
// calendar phrase shape (<year>年<month>月<day>日 <hour>時<minute>分) and
// normalizes it to "YYYY-MM-DD HH:MM". No match yields the empty string,
// which consumers must read as "date not determined", never as a failure.
func (c *catalog) resolveDate(text string) string {
	match := c.datePhrase.FindStringSubmatch(text)
	if match == nil {
		return ""
	}

	month, _ := strconv.Atoi(match[2])
	day, _ := strconv.Atoi(match[3])
	hour, _ := strconv.Atoi(match[4])
	minute, _ := strconv.Atoi(match[5])

	return fmt.Sprintf("%s-%02d-%02d %02d:%02d", match[1], month, day, hour, minute)
}

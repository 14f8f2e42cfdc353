package bot

import (
	"regexp"
	"time"
)

// Matches human-readable dates like "Dec 18, 2024" or "December 18, 2024".
var datePattern = regexp.MustCompile(`\b[A-Za-z]{3,9} \d{1,2}, \d{4}\b`)

var dateLayouts = []string{"Jan 2, 2006", "January 2, 2006"}

func parseHumanDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// extractRange finds the first two human-readable dates in the text and
// returns them as ISO dates, first as range start, second as range end.
// Fewer than two candidates, or a parse failure on either, reports no range;
// matches beyond the first two are ignored. Whether start precedes end is not
// checked here.
func extractRange(text string) (start, end string, found bool) {
	matches := datePattern.FindAllString(text, -1)
	if len(matches) < 2 {
		return "", "", false
	}

	startDate, okStart := parseHumanDate(matches[0])
	endDate, okEnd := parseHumanDate(matches[1])
	if !okStart || !okEnd {
		return "", "", false
	}
	return startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), true
}

// extractDate finds the first human-readable date in the text and returns it
// as an ISO date. Used as the single-day fallback when no range is present.
func extractDate(text string) (string, bool) {
	match := datePattern.FindString(text)
	if match == "" {
		return "", false
	}
	d, parsed := parseHumanDate(match)
	if !parsed {
		return "", false
	}
	return d.Format("2006-01-02"), true
}

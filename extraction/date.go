package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// months maps lowercased Portuguese month names to their index.
var months = map[string]time.Month{
	"janeiro":   time.January,
	"fevereiro": time.February,
	"março":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
}

var (
	textualDateRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s+de\s+(\p{L}+)\s+de\s+(\d{4})\b`)
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
)

// ExtractTextualDate parses a date written out in words, e.g.
// "12 de março de 2024". An unrecognized month name yields no date.
func ExtractTextualDate(s string) (time.Time, bool) {
	m := textualDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := months[strings.ToLower(m[2])]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// ExtractNumericDate parses "12/03/2024" with day and month positional.
// Month outside [1,12] or day outside [1,31] yields no date; within those
// bounds an impossible combination like 30/02 normalizes forward per
// time.Date semantics.
func ExtractNumericDate(s string) (time.Time, bool) {
	m := numericDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

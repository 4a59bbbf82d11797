package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// Receipts from both platforms quote fares in BRL.
const currencyPrefix = "R$"

var fareRe = regexp.MustCompile(regexp.QuoteMeta(currencyPrefix) + `\s*([0-9]+(?:[.,][0-9]{3})*(?:[.,][0-9]{1,2})?)`)

// ExtractValue finds the first currency-marked amount, searching the plain
// text body before the flattened HTML body, and normalizes it to a decimal
// value. Returns false when neither body contains an amount.
func ExtractValue(text, htmlText string) (float64, bool) {
	if v, ok := findValue(text); ok {
		return v, true
	}
	return findValue(htmlText)
}

func findValue(s string) (float64, bool) {
	m := fareRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return normalizeDecimal(m[1])
}

// normalizeDecimal converts a locale-formatted amount to a decimal value:
// "45,90" -> 45.90, "1.234,56" -> 1234.56, "23.50" -> 23.50. The last
// separator is the decimal mark when followed by at most two digits;
// every other separator is a thousands mark and dropped.
func normalizeDecimal(s string) (float64, bool) {
	frac := ""
	if i := strings.LastIndexAny(s, ",."); i >= 0 && len(s)-i-1 <= 2 {
		frac = s[i+1:]
		s = s[:i]
	}
	digits := strings.NewReplacer(".", "", ",", "").Replace(s)
	if frac != "" {
		digits += "." + frac
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

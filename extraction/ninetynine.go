package extraction

import (
	"regexp"
	"strings"

	"github.com/Mvini0721/Ridetrack/models"
)

// NinetyNineParser handles 99 receipt emails: "Origem:"/"Destino:" route
// labels and a numeric date ("12/03/2024").
type NinetyNineParser struct{}

func (NinetyNineParser) Platform() models.Platform { return models.PlatformNinetyNine }

func (NinetyNineParser) Match(from, subject string) bool {
	return strings.Contains(from, "99") || strings.Contains(subject, "99")
}

var (
	ninetyNineOriginRe = regexp.MustCompile(`(?i)\bOrigem:[ \t]*(.+?)(?:\s+Destino:|\r?\n|$)`)
	ninetyNineDestRe   = regexp.MustCompile(`(?i)\bDestino:[ \t]*([^\r\n]+)`)
)

func (p NinetyNineParser) Extract(text, htmlText string) (*Candidate, bool) {
	value, ok := ExtractValue(text, htmlText)
	if !ok {
		return nil, false
	}
	c := &Candidate{
		Platform:    p.Platform(),
		Value:       value,
		Origin:      firstSubmatch(ninetyNineOriginRe, text, htmlText),
		Destination: firstSubmatch(ninetyNineDestRe, text, htmlText),
	}
	if ts, ok := ExtractNumericDate(text); ok {
		c.OccurredAt = &ts
	} else if ts, ok := ExtractNumericDate(htmlText); ok {
		c.OccurredAt = &ts
	}
	return c, true
}

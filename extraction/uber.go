package extraction

import (
	"regexp"
	"strings"

	"github.com/Mvini0721/Ridetrack/models"
)

// UberParser handles Uber receipt emails: "De:"/"Para:" route labels and
// a textual date ("12 de março de 2024").
type UberParser struct{}

func (UberParser) Platform() models.Platform { return models.PlatformUber }

func (UberParser) Match(from, subject string) bool {
	return strings.Contains(from, "uber") || strings.Contains(subject, "uber")
}

var (
	// Origin capture stops at the destination label; both labels may
	// share a line in some receipt layouts.
	uberOriginRe = regexp.MustCompile(`(?i)\bDe:[ \t]*(.+?)(?:\s+Para:|\r?\n|$)`)
	uberDestRe   = regexp.MustCompile(`(?i)\bPara:[ \t]*([^\r\n]+)`)
)

func (p UberParser) Extract(text, htmlText string) (*Candidate, bool) {
	value, ok := ExtractValue(text, htmlText)
	if !ok {
		return nil, false
	}
	c := &Candidate{
		Platform:    p.Platform(),
		Value:       value,
		Origin:      firstSubmatch(uberOriginRe, text, htmlText),
		Destination: firstSubmatch(uberDestRe, text, htmlText),
	}
	if ts, ok := ExtractTextualDate(text); ok {
		c.OccurredAt = &ts
	} else if ts, ok := ExtractTextualDate(htmlText); ok {
		c.OccurredAt = &ts
	}
	return c, true
}

package extraction

import (
	"regexp"
	"strings"
	"time"

	"github.com/Mvini0721/Ridetrack/models"
)

// Parser extracts a ride candidate from one platform's receipt layout.
type Parser interface {
	Platform() models.Platform
	// Match reports whether an email with this sender and subject (both
	// already lowercased) belongs to the parser's platform.
	Match(from, subject string) bool
	// Extract pulls fare, route and date out of the message bodies. It
	// returns no candidate when no fare is found; route and date are
	// best-effort and may be left absent.
	Extract(text, htmlText string) (*Candidate, bool)
}

// Candidate is the unpersisted output of a parser. Platform and Value are
// mandatory; everything else is optional.
type Candidate struct {
	Platform    models.Platform
	Value       float64
	Origin      string
	Destination string
	OccurredAt  *time.Time
}

// Registry holds parsers in a fixed priority order: detection walks the
// slice and the first match wins, so a platform whose markers could also
// appear in another platform's mail must be registered first.
type Registry struct {
	parsers []Parser
}

func NewRegistry(parsers ...Parser) *Registry {
	return &Registry{parsers: parsers}
}

// DefaultRegistry returns the supported platforms in canonical priority
// order: Uber, then 99. Adding a platform means appending here.
func DefaultRegistry() *Registry {
	return NewRegistry(&UberParser{}, &NinetyNineParser{})
}

// Detect returns the parser matching the sender or subject, or nil when
// the email belongs to no known platform.
func (r *Registry) Detect(from, subject string) Parser {
	from = strings.ToLower(from)
	subject = strings.ToLower(subject)
	for _, p := range r.parsers {
		if p.Match(from, subject) {
			return p
		}
	}
	return nil
}

// firstSubmatch runs re against the text body first and the flattened
// HTML body second, returning the first capture group trimmed.
func firstSubmatch(re *regexp.Regexp, text, htmlText string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := re.FindStringSubmatch(htmlText); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

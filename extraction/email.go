package extraction

import (
	"fmt"
	"html"
	"strings"

	"github.com/jhillyerd/enmime"
	"github.com/microcosm-cc/bluemonday"
)

// Email holds the parts of an inbound message the parsers care about.
type Email struct {
	From    string
	Subject string
	Text    string
	HTML    string
}

// stripTagsPolicy reduces an HTML body to its visible text so the same
// patterns can run against both bodies.
var stripTagsPolicy = bluemonday.StripTagsPolicy()

// ParseEmail reads a raw MIME message into an Email. The sender is taken
// from the Sender header when present, falling back to From; both are
// lowercased for detection.
func ParseEmail(raw string) (*Email, error) {
	env, err := enmime.ReadEnvelope(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEmail, err)
	}

	from := firstAddress(env, "Sender")
	if from == "" {
		from = firstAddress(env, "From")
	}
	if from == "" {
		from = strings.ToLower(strings.TrimSpace(env.GetHeader("From")))
	}

	return &Email{
		From:    from,
		Subject: env.GetHeader("Subject"),
		Text:    env.Text,
		HTML:    env.HTML,
	}, nil
}

func firstAddress(env *enmime.Envelope, header string) string {
	list, err := env.AddressList(header)
	if err != nil || len(list) == 0 || list[0].Address == "" {
		return ""
	}
	return strings.ToLower(list[0].Address)
}

// FlatHTML returns the HTML body as plain text, with entities decoded.
func (e *Email) FlatHTML() string {
	if e.HTML == "" {
		return ""
	}
	return html.UnescapeString(stripTagsPolicy.Sanitize(e.HTML))
}

package webutil

const (
	// Header Keys
	HeaderContentType = "Content-Type"

	// Content Types
	ContentTypeJSONUTF8      = "application/json; charset=utf-8"
	ContentTypeTextPlainUTF8 = "text/plain; charset=utf-8"
)

package webutil

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// RespondWithJSON sets the Content-Type itself rather than relying on
// middleware: HasResponseWriterSentHeader uses that header's presence to
// detect whether a response was produced, so nothing may pre-set it.
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	w.Header().Set(HeaderContentType, ContentTypeJSONUTF8)
	if err != nil {
		log.Errorf("Failed to marshal JSON response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func HasResponseWriterSentHeader(w http.ResponseWriter) bool {
	return w.Header().Get(HeaderContentType) != ""
}

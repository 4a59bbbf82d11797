package webutil

import (
	"database/sql"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// AppHandler represents a handler function that returns an error.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// MakeHandler adapts an AppHandler to the standard http.HandlerFunc
// signature. It executes the AppHandler and handles any returned error by
// logging appropriately and sending a standardized JSON error response.
func MakeHandler(handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := handler(w, r)
		if err == nil {
			// The handler is assumed to have written its own response.
			return
		}

		var httpErr *HTTPError
		var publicMessage string
		var statusCode int

		switch {
		case errors.As(err, &httpErr):
			statusCode = httpErr.Code
			publicMessage = httpErr.Message
			fields := log.Fields{
				"code":   httpErr.Code,
				"path":   r.URL.Path,
				"method": r.Method,
			}
			if cause := errors.Unwrap(httpErr); cause != nil && cause.Error() != publicMessage {
				fields["cause"] = cause
			}
			entry := log.WithFields(fields)
			if statusCode >= 500 {
				entry.Error(publicMessage)
			} else {
				entry.Warn(publicMessage)
			}

		case errors.Is(err, sql.ErrNoRows):
			statusCode = http.StatusNotFound
			publicMessage = "Resource not found"
			log.WithFields(log.Fields{"path": r.URL.Path, "method": r.Method}).Info("Resource not found")

		default:
			statusCode = http.StatusInternalServerError
			publicMessage = "Internal Server Error"
			log.WithFields(log.Fields{"path": r.URL.Path, "method": r.Method}).Errorf("Unhandled internal error: %v", err)
		}

		if HasResponseWriterSentHeader(w) {
			log.WithFields(log.Fields{"path": r.URL.Path, "method": r.Method}).
				Warnf("Handler returned error after writing response header: %v", err)
			return
		}

		RespondWithJSON(w, statusCode, map[string]string{"error": publicMessage})
	}
}

package webhooks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Mvini0721/Ridetrack/datastore"
	"github.com/Mvini0721/Ridetrack/extraction"
	"github.com/Mvini0721/Ridetrack/models"
	"github.com/Mvini0721/Ridetrack/webutil"
	log "github.com/sirupsen/logrus"
)

const (
	formFieldEmail   = "email"
	formFieldTo      = "to"
	formFieldFrom    = "from"
	formFieldSubject = "subject"
)

// RideStore persists accepted rides. The handler owns persistence; the
// extraction pipeline only produces the record.
type RideStore interface {
	CreateRide(ctx context.Context, ride *models.Ride) error
}

// InboundEmailHandler receives inbound-parse webhook posts (multipart
// form with the raw MIME under "email"), runs the extraction pipeline and
// stores accepted rides. Rejections are acknowledged with 200 so the
// upstream relay does not re-deliver; the body carries the reason.
type InboundEmailHandler struct {
	Pipeline *extraction.Pipeline
	Rides    RideStore
}

func NewInboundEmailHandler(pipeline *extraction.Pipeline, rides RideStore) *InboundEmailHandler {
	return &InboundEmailHandler{Pipeline: pipeline, Rides: rides}
}

func (h *InboundEmailHandler) HandleInbound(w http.ResponseWriter, r *http.Request) {
	log.Infof("Inbound email webhook. Method: %s, Content-Type: %s", r.Method, r.Header.Get("Content-Type"))

	webhookData, err := parseWebhookRequest(r)
	if err != nil {
		if !webutil.HasResponseWriterSentHeader(w) {
			webutil.RespondWithError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	recipient := normalizeAddress(webhookData.Recipient)
	log.Infof("Processing email for recipient %s (sender field: %q, subject: %q)",
		recipient, webhookData.Sender, webhookData.Subject)

	ride, err := h.Pipeline.Process(r.Context(), webhookData.RawMIME, recipient)
	if err != nil {
		h.respondToRejection(w, recipient, err)
		return
	}

	if err := h.Rides.CreateRide(r.Context(), ride); err != nil {
		if errors.Is(err, datastore.ErrDuplicateRide) {
			acknowledge(w, "duplicate receipt ignored")
			return
		}
		log.Errorf("Failed to store ride for user %s: %v", ride.UserID, err)
		if !webutil.HasResponseWriterSentHeader(w) {
			webutil.RespondWithError(w, http.StatusInternalServerError, "Error storing ride")
		}
		return
	}

	log.Infof("Recorded %s ride of %.2f for user %s", ride.Platform, ride.Value, ride.UserID)
	acknowledge(w, "ride recorded")
}

// respondToRejection maps the pipeline's rejection taxonomy onto the
// webhook response. Every rejection is terminal and acknowledged; only
// lookup failures (store errors) produce a 500.
func (h *InboundEmailHandler) respondToRejection(w http.ResponseWriter, recipient string, err error) {
	var reason string
	switch {
	case errors.Is(err, extraction.ErrMalformedEmail):
		reason = "malformed email"
	case errors.Is(err, extraction.ErrUnknownPlatform):
		reason = "platform not recognized"
	case errors.Is(err, extraction.ErrNoFare):
		reason = "could not extract ride data"
	case errors.Is(err, extraction.ErrUnknownRecipient):
		reason = "user not found"
	default:
		log.Errorf("Pipeline failure for recipient %s: %v", recipient, err)
		if !webutil.HasResponseWriterSentHeader(w) {
			webutil.RespondWithError(w, http.StatusInternalServerError, "Error processing email")
		}
		return
	}

	log.Warnf("Rejected email for recipient %s: %v", recipient, err)
	acknowledge(w, reason)
}

func acknowledge(w http.ResponseWriter, message string) {
	if webutil.HasResponseWriterSentHeader(w) {
		return
	}
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(fmt.Sprintf("OK (%s)", message)))
}

type webhookInputData struct {
	RawMIME   string
	Recipient string
	Sender    string
	Subject   string
}

func parseWebhookRequest(r *http.Request) (webhookInputData, error) {
	var data webhookInputData
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		if err := r.ParseForm(); err != nil {
			log.Errorf("Failed to parse form data: %v", err)
			return data, fmt.Errorf("failed to parse form data: %w", err)
		}
	}
	data.RawMIME = r.FormValue(formFieldEmail)
	data.Recipient = r.FormValue(formFieldTo)
	data.Sender = r.FormValue(formFieldFrom)
	data.Subject = r.FormValue(formFieldSubject)

	if data.RawMIME == "" {
		log.Warnf("Raw MIME field (%q) is empty in webhook", formFieldEmail)
		return data, fmt.Errorf("missing raw email content in webhook payload")
	}
	if data.Recipient == "" {
		log.Warnf("Recipient field (%q) is empty in webhook", formFieldTo)
		return data, fmt.Errorf("missing recipient information in webhook")
	}
	return data, nil
}

// normalizeAddress reduces "Name <email@example.com>" to the bare
// lowercased address.
func normalizeAddress(recipient string) string {
	emailPart := recipient
	if strings.Contains(recipient, "<") {
		parts := strings.SplitN(recipient, "<", 2)
		if len(parts) == 2 && strings.Contains(parts[1], ">") {
			emailPart = parts[1][:strings.Index(parts[1], ">")]
		}
	}
	return strings.ToLower(strings.TrimSpace(emailPart))
}

package handlers

import (
	"log"
	"net/http"

	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/models"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/twiml"
)

// VoiceWebhookHandler answers the telephony gateway's inbound-call webhook.
// The caller dialed the emergency number; we speak the alert back to them and
// fan SMS out to the caller plus the contact roster. Apart from the missing
// caller-number case this endpoint must always return valid voice markup with
// status 200 or the live call drops.
func (h *Handler) VoiceWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "Method not allowed"})
		return
	}

	caller := r.FormValue("From")
	if caller == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Missing caller number"})
		return
	}

	report := h.Dispatcher.Dispatch(r.Context(), models.AlertTrigger{
		Source:       models.SourceVoiceWebhook,
		CallerNumber: caller,
	})
	if failed := report.FailedTargets(); len(failed) > 0 {
		log.Printf("Emergency call from %s: SMS delivery failed for %v", caller, failed)
	}

	markup := report.Payload.VoiceMarkup
	if markup == "" {
		markup = twiml.VoiceFallback()
	}
	writeXML(w, markup)
}

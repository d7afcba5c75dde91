package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/classify"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/dispatch"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/models"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/twiml"
)

// SMSWebhookHandler answers the gateway's inbound-SMS webhook. Emergency
// keywords in the message body trigger the full dispatch flow; anything else
// gets an auto-response explaining how to raise an alert. Validation problems
// degrade to a fallback message, never to an HTTP error.
func (h *Handler) SMSWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeXML(w, twiml.MessageFallback())
		return
	}

	from := r.FormValue("From")
	body := r.FormValue("Body")
	to := r.FormValue("To")
	if from == "" {
		writeXML(w, twiml.MessageFallback())
		return
	}
	log.Printf("Received SMS from %s (to %s): %s", from, to, body)

	var reply string
	decision := classify.Classify(body)
	if decision.IsEmergency {
		log.Printf("Emergency keyword %q matched for %s", decision.MatchedKeyword, from)
		report := h.Dispatcher.Dispatch(r.Context(), models.AlertTrigger{
			Source:       models.SourceSmsWebhook,
			CallerNumber: from,
			RawText:      body,
		})
		if failed := report.FailedTargets(); len(failed) > 0 {
			log.Printf("Emergency SMS from %s: delivery failed for %v", from, failed)
		}
		reply = emergencyReceivedReply(time.Now())
	} else {
		reply = autoReply(body)
	}

	doc, err := twiml.MessageReply(reply)
	if err != nil {
		log.Println("Failed to build SMS reply:", err)
		doc = twiml.MessageFallback()
	}
	writeXML(w, doc)
}

func emergencyReceivedReply(at time.Time) string {
	return fmt.Sprintf(`🚨 EMERGENCY RECEIVED 🚨

Your emergency alert has been activated!

Emergency contacts have been notified
Time: %s

Stay calm. Help is on the way!`, dispatch.FormatIST(at))
}

func autoReply(body string) string {
	keywords := make([]string, 0, len(classify.Keywords()))
	for _, k := range classify.Keywords() {
		keywords = append(keywords, strings.ToUpper(k))
	}
	return fmt.Sprintf(`Hello! Thanks for your message: %q

This is an automated response. For emergencies, text keywords like: %s.

Our system is active 24/7 for emergency alerts.`, body, strings.Join(keywords, ", "))
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/models"
)

// TriggerEmergencyHandler is the explicit API trigger behind the landing
// page's alert button. Unlike the webhooks it speaks JSON and may 500: the
// single outbound voice call is the point of the flow, so its failure is
// fatal. SMS failures stay best-effort.
func (h *Handler) TriggerEmergencyHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
			"success": false,
			"message": "Method not allowed",
		})
		return
	}

	var req struct {
		EmergencyContact string `json:"emergencyContact"`
		UserLocation     string `json:"userLocation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	report := h.Dispatcher.Dispatch(r.Context(), models.AlertTrigger{
		Source:           models.SourceExplicitAPI,
		SuppliedContact:  req.EmergencyContact,
		SuppliedLocation: req.UserLocation,
	})
	if !report.Success {
		errMsg := "emergency call failed"
		if err := report.VoiceErr(); err != nil {
			errMsg = err.Error()
		}
		log.Println("Emergency trigger error:", errMsg)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to send emergency alert",
			"error":   errMsg,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Emergency alert sent successfully",
		"callSid": report.CallSID,
		"smsSid":  report.SMSSID,
	})
}

package classify

import (
	"strings"

	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/models"
)

// emergencyKeywords is checked in order; the first match is reported.
var emergencyKeywords = []string{"emergency", "help", "sos", "urgent", "panic"}

// Classify decides whether free-form inbound text expresses an emergency.
// Matching is plain case-insensitive substring containment: "SOS" inside a
// longer word still counts. Intentionally broad, no word boundaries.
func Classify(text string) models.EmergencyDecision {
	lowered := strings.ToLower(text)
	for _, keyword := range emergencyKeywords {
		if strings.Contains(lowered, keyword) {
			return models.EmergencyDecision{IsEmergency: true, MatchedKeyword: keyword}
		}
	}
	return models.EmergencyDecision{}
}

// Keywords returns the keyword list for user-facing help text.
func Keywords() []string {
	out := make([]string, len(emergencyKeywords))
	copy(out, emergencyKeywords)
	return out
}

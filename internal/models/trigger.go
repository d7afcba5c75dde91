package models

// TriggerSource identifies which entry point initiated an alert.
type TriggerSource string

const (
	SourceVoiceWebhook TriggerSource = "voice_webhook"
	SourceSmsWebhook   TriggerSource = "sms_webhook"
	SourceExplicitAPI  TriggerSource = "explicit_api"
)

// AlertTrigger is the normalized representation of an incoming request.
// It is built fresh per request and never persisted.
type AlertTrigger struct {
	Source           TriggerSource
	CallerNumber     string // E.164, empty for explicit API calls without a caller
	RawText          string // inbound SMS body, only for SourceSmsWebhook
	SuppliedLocation string
	SuppliedContact  string // only for SourceExplicitAPI
}

// EmergencyDecision is the classifier output for an inbound text.
type EmergencyDecision struct {
	IsEmergency    bool
	MatchedKeyword string
}

package models

// Channel names the outbound notification channel of a single attempt.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelVoice Channel = "voice"
	ChannelPush  Channel = "push"
)

// NotificationPayload is the pair of outbound message bodies derived from a
// location string and a timestamp.
type NotificationPayload struct {
	VoiceMarkup string
	SMSBody     string
}

// DispatchResult records the outcome of one submission to one target.
type DispatchResult struct {
	Channel Channel
	Target  string
	SID     string
	Err     error
}

// Sent reports whether the submission was accepted by the gateway.
func (r DispatchResult) Sent() bool { return r.Err == nil }

// DispatchReport aggregates the per-target outcomes of one dispatch.
// Success is false only when the outbound voice call itself failed; SMS and
// push submissions are best-effort and never flip it.
type DispatchReport struct {
	Payload NotificationPayload // what was (or would have been) sent
	Results []DispatchResult
	Success bool
	CallSID string
	SMSSID  string // first accepted SMS submission
}

// VoiceErr returns the fatal voice-call error, if one occurred.
func (rep *DispatchReport) VoiceErr() error {
	for _, res := range rep.Results {
		if res.Channel == ChannelVoice && res.Err != nil {
			return res.Err
		}
	}
	return nil
}

// Add appends a result and keeps the first SMS SID for the API response.
func (rep *DispatchReport) Add(res DispatchResult) {
	rep.Results = append(rep.Results, res)
	if res.Channel == ChannelSMS && res.Sent() && rep.SMSSID == "" {
		rep.SMSSID = res.SID
	}
}

// FailedTargets returns the targets whose submissions were rejected.
func (rep *DispatchReport) FailedTargets() []string {
	var failed []string
	for _, res := range rep.Results {
		if !res.Sent() {
			failed = append(failed, res.Target)
		}
	}
	return failed
}

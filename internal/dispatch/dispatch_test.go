package dispatch_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/config"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/dispatch"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/gateway"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/models"
)

const (
	caller   = "+911234567890"
	contact1 = "+917684844015"
	contact2 = "+919876543210"
)

func testConfig(trial bool) *config.Config {
	return &config.Config{
		SenderNumber:     "+15005550006",
		TrialAccount:     trial,
		Roster:           []string{contact1, contact2},
		FallbackLocation: "123 Main Street, Downtown Mumbai, Maharashtra",
	}
}

func newDispatcher(t *testing.T, trial bool) (*dispatch.Dispatcher, *gateway.MemoryGateway) {
	t.Helper()
	gw := gateway.NewMemoryGateway()
	d := dispatch.New(testConfig(trial), gw, nil)
	d.Clock = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	return d, gw
}

func smsTargets(subs []gateway.Submission) []string {
	var out []string
	for _, s := range subs {
		if s.Kind == "sms" {
			out = append(out, s.To)
		}
	}
	return out
}

func TestVoiceWebhookFansOutToCallerThenRoster(t *testing.T) {
	d, gw := newDispatcher(t, false)

	report := d.Dispatch(context.Background(), models.AlertTrigger{
		Source:       models.SourceVoiceWebhook,
		CallerNumber: caller,
	})

	assert.True(t, report.Success)
	assert.Empty(t, report.FailedTargets())
	assert.Equal(t, []string{caller, contact1, contact2}, smsTargets(gw.Submissions()))
	assert.Empty(t, report.CallSID, "no outbound call for a voice webhook, the caller is already on one")
}

func TestSMSFailureIsBestEffort(t *testing.T) {
	d, gw := newDispatcher(t, false)
	gw.FailSMSTo(contact1, errors.New("provider outage"))

	report := d.Dispatch(context.Background(), models.AlertTrigger{
		Source:       models.SourceSmsWebhook,
		CallerNumber: caller,
		RawText:      "sos",
	})

	assert.True(t, report.Success, "SMS failures never flip overall success")
	assert.Equal(t, []string{contact1}, report.FailedTargets())
	assert.Equal(t, []string{caller, contact2}, smsTargets(gw.Submissions()),
		"fan-out continues past the failed target")
}

func TestExplicitTriggerPlacesCallFirst(t *testing.T) {
	d, gw := newDispatcher(t, false)

	report := d.Dispatch(context.Background(), models.AlertTrigger{
		Source:          models.SourceExplicitAPI,
		SuppliedContact: caller,
	})

	require.True(t, report.Success)
	subs := gw.Submissions()
	require.Len(t, subs, 2)
	assert.Equal(t, "call", subs[0].Kind)
	assert.Equal(t, caller, subs[0].To)
	assert.Equal(t, "sms", subs[1].Kind)
	assert.Equal(t, caller, subs[1].To)
	assert.True(t, strings.HasPrefix(report.CallSID, "CA"))
	assert.True(t, strings.HasPrefix(report.SMSSID, "SM"))
}

func TestExplicitTriggerDefaultsToFirstRosterEntry(t *testing.T) {
	d, gw := newDispatcher(t, false)

	report := d.Dispatch(context.Background(), models.AlertTrigger{
		Source: models.SourceExplicitAPI,
	})

	require.True(t, report.Success)
	subs := gw.Submissions()
	require.NotEmpty(t, subs)
	assert.Equal(t, contact1, subs[0].To)
}

func TestExplicitCallFailureAbortsDispatch(t *testing.T) {
	d, gw := newDispatcher(t, false)
	gw.FailCalls(errors.New("invalid destination"))

	report := d.Dispatch(context.Background(), models.AlertTrigger{
		Source:          models.SourceExplicitAPI,
		SuppliedContact: caller,
	})

	assert.False(t, report.Success)
	require.Error(t, report.VoiceErr())
	assert.Empty(t, gw.Submissions(), "no SMS goes out once the call failed")
}

func TestLocationResolution(t *testing.T) {
	d, gw := newDispatcher(t, false)

	d.Dispatch(context.Background(), models.AlertTrigger{
		Source:           models.SourceVoiceWebhook,
		CallerNumber:     caller,
		SuppliedLocation: "Gateway of India",
	})
	subs := gw.Submissions()
	require.NotEmpty(t, subs)
	assert.Contains(t, subs[0].Body, "Gateway of India")

	report := d.Dispatch(context.Background(), models.AlertTrigger{
		Source:       models.SourceVoiceWebhook,
		CallerNumber: caller,
	})
	assert.Contains(t, report.Payload.SMSBody, "123 Main Street, Downtown Mumbai, Maharashtra")
}

func TestBuildPayload(t *testing.T) {
	d, _ := newDispatcher(t, false)
	at := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) // 17:30 IST

	payload := d.BuildPayload(models.AlertTrigger{
		Source:           models.SourceVoiceWebhook,
		CallerNumber:     caller,
		SuppliedLocation: "42 Marine Drive, Mumbai",
	}, at)

	assert.GreaterOrEqual(t, strings.Count(payload.VoiceMarkup, "42 Marine Drive, Mumbai"), 2,
		"location is spoken in at least two segments")
	assert.Contains(t, payload.VoiceMarkup, `encoding="UTF-8"`)
	assert.Contains(t, payload.SMSBody, "42 Marine Drive, Mumbai")
	assert.Contains(t, payload.SMSBody, "15/03/2024, 5:30:00 PM")
	assert.Contains(t, payload.SMSBody, caller)
}

func TestTrialAccountTruncatesToOneSegment(t *testing.T) {
	d, _ := newDispatcher(t, true)

	payload := d.BuildPayload(models.AlertTrigger{
		Source:           models.SourceVoiceWebhook,
		CallerNumber:     caller,
		SuppliedLocation: strings.Repeat("Very Long Street Name ", 20),
	}, time.Now())

	assert.LessOrEqual(t, len([]rune(payload.SMSBody)), 160)
}

func TestFormatIST(t *testing.T) {
	at := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "15/03/2024, 5:30:00 PM", dispatch.FormatIST(at))
}

type recordingBroadcaster struct {
	messages []string
}

func (b *recordingBroadcaster) Broadcast(message string) (int, int) {
	b.messages = append(b.messages, message)
	return 1, 0
}

func TestDispatchBroadcastsPush(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	b := &recordingBroadcaster{}
	d := dispatch.New(testConfig(false), gw, b)

	report := d.Dispatch(context.Background(), models.AlertTrigger{
		Source:       models.SourceVoiceWebhook,
		CallerNumber: caller,
	})

	require.True(t, report.Success)
	require.Len(t, b.messages, 1)
	assert.Equal(t, report.Payload.SMSBody, b.messages[0])
}

// Package dispatch turns a normalized alert trigger into outbound voice,
// SMS, and web-push notifications. All shared state is immutable after
// construction; every Dispatch call is independent.
package dispatch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/config"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/gateway"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/metrics"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/models"
	"github.com/CodeClash-Team-Rocket/Divya-Drishti/internal/twiml"
)

// singleSegmentRunes is the single-segment SMS limit trial gateway accounts
// enforce.
const singleSegmentRunes = 160

// Broadcaster fans a notification out to browser push subscribers.
type Broadcaster interface {
	Broadcast(message string) (sent, failed int)
}

type Dispatcher struct {
	cfg         *config.Config
	gw          gateway.Gateway
	broadcaster Broadcaster // optional

	// Clock supplies timestamps for payloads; tests pin it.
	Clock func() time.Time
}

func New(cfg *config.Config, gw gateway.Gateway, broadcaster Broadcaster) *Dispatcher {
	return &Dispatcher{
		cfg:         cfg,
		gw:          gw,
		broadcaster: broadcaster,
		Clock:       time.Now,
	}
}

// Location resolves the location string for a trigger: the caller-supplied
// one when present, the configured fallback otherwise.
func (d *Dispatcher) Location(trigger models.AlertTrigger) string {
	if strings.TrimSpace(trigger.SuppliedLocation) != "" {
		return trigger.SuppliedLocation
	}
	return d.cfg.FallbackLocation
}

// BuildPayload derives the voice markup and SMS body for a trigger at the
// given time.
func (d *Dispatcher) BuildPayload(trigger models.AlertTrigger, at time.Time) models.NotificationPayload {
	location := d.Location(trigger)
	timeText := FormatIST(at)

	markup, err := twiml.VoiceAlert(location, timeText)
	if err != nil {
		log.Println("Failed to build voice markup:", err)
		markup = twiml.VoiceFallback()
	}

	body := smsBody(location, timeText, trigger.CallerNumber)
	if d.cfg.TrialAccount {
		body = truncateSegment(body)
	}
	return models.NotificationPayload{VoiceMarkup: markup, SMSBody: body}
}

// Dispatch runs the full notification flow for one trigger.
//
// For explicit API triggers a single outbound voice call is placed first and
// its failure aborts the dispatch. SMS submissions are then attempted for
// every target in order; individual failures are logged and recorded but
// never stop the fan-out or flip the overall success flag. The web-push
// broadcast at the end is best-effort.
func (d *Dispatcher) Dispatch(ctx context.Context, trigger models.AlertTrigger) models.DispatchReport {
	payload := d.BuildPayload(trigger, d.Clock())
	report := models.DispatchReport{Payload: payload, Success: true}
	targets := d.targets(trigger)

	metrics.Dispatches.WithLabelValues(string(trigger.Source)).Inc()

	if trigger.Source == models.SourceExplicitAPI {
		callTarget := targets[0]
		sid, err := d.gw.PlaceCall(ctx, callTarget, payload.VoiceMarkup)
		report.Add(models.DispatchResult{Channel: models.ChannelVoice, Target: callTarget, SID: sid, Err: err})
		if err != nil {
			log.Printf("Emergency call to %s failed: %v", callTarget, err)
			metrics.VoiceCalls.WithLabelValues("failed").Inc()
			report.Success = false
			return report
		}
		metrics.VoiceCalls.WithLabelValues("sent").Inc()
		report.CallSID = sid
	}

	for _, to := range targets {
		sid, err := d.gw.SendMessage(ctx, to, payload.SMSBody)
		if err != nil {
			log.Printf("Failed to send SMS to %s: %v", to, err)
			metrics.SMSSubmissions.WithLabelValues("failed").Inc()
		} else {
			metrics.SMSSubmissions.WithLabelValues("sent").Inc()
		}
		report.Add(models.DispatchResult{Channel: models.ChannelSMS, Target: to, SID: sid, Err: err})
	}

	if d.broadcaster != nil {
		sent, failed := d.broadcaster.Broadcast(payload.SMSBody)
		metrics.PushNotifications.WithLabelValues("sent").Add(float64(sent))
		metrics.PushNotifications.WithLabelValues("failed").Add(float64(failed))
	}

	return report
}

// targets resolves who gets notified. Webhook triggers echo back to the
// caller first and then fan out to the whole roster; explicit API triggers
// notify exactly one contact.
func (d *Dispatcher) targets(trigger models.AlertTrigger) []string {
	if trigger.Source == models.SourceExplicitAPI {
		if trigger.SuppliedContact != "" {
			return []string{trigger.SuppliedContact}
		}
		return []string{d.cfg.Roster[0]}
	}

	targets := make([]string, 0, len(d.cfg.Roster)+1)
	if trigger.CallerNumber != "" {
		targets = append(targets, trigger.CallerNumber)
	}
	return append(targets, d.cfg.Roster...)
}

func smsBody(location, timeText, caller string) string {
	var b strings.Builder
	b.WriteString("🚨 EMERGENCY ALERT 🚨\n\n")
	b.WriteString("Someone is in an emergency situation!\n\n")
	fmt.Fprintf(&b, "Location: %s\n", location)
	fmt.Fprintf(&b, "Time: %s\n", timeText)
	if caller != "" {
		fmt.Fprintf(&b, "Phone: %s\n", caller)
	}
	b.WriteString("\nPlease send help immediately!")
	return b.String()
}

func truncateSegment(s string) string {
	runes := []rune(s)
	if len(runes) <= singleSegmentRunes {
		return s
	}
	return string(runes[:singleSegmentRunes])
}

var ist = loadIST()

func loadIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// zoneinfo can be missing in minimal containers
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}

// FormatIST renders a timestamp the way every human-readable string in the
// system shows it: Indian Standard Time, day first.
func FormatIST(t time.Time) string {
	return t.In(ist).Format("02/01/2006, 3:04:05 PM")
}

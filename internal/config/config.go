package config

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/SherClockHolmes/webpush-go"
)

// e164 is the shape every roster entry and sender number must have.
var e164 = regexp.MustCompile(`^\+[1-9][0-9]{1,14}$`)

const (
	defaultRoster   = "+917684844015"
	defaultLocation = "123 Main Street, Downtown Mumbai, Maharashtra"
)

// Config carries everything the service needs that comes from the deployment
// environment. It is built once in main and read-only afterwards.
type Config struct {
	AccountSID   string
	AuthToken    string
	SenderNumber string
	TrialAccount bool // trial gateway accounts reject multi-segment SMS

	Roster           []string
	FallbackLocation string

	VAPIDPublicKey  string
	VAPIDPrivateKey string
	PushSubscriber  string

	Port string
}

// FromEnv builds a Config from the process environment. Missing gateway
// credentials are an error: the service must fail at startup, not per-request.
func FromEnv() (*Config, error) {
	cfg := &Config{
		AccountSID:       os.Getenv("TWILIO_ACCOUNT_SID"),
		AuthToken:        os.Getenv("TWILIO_AUTH_TOKEN"),
		SenderNumber:     os.Getenv("TWILIO_PHONE_NUMBER"),
		TrialAccount:     os.Getenv("TWILIO_TRIAL") == "true",
		FallbackLocation: os.Getenv("EMERGENCY_LOCATION"),
		VAPIDPublicKey:   os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey:  os.Getenv("VAPID_PRIVATE_KEY"),
		PushSubscriber:   os.Getenv("PUSH_SUBSCRIBER"),
		Port:             os.Getenv("PORT"),
	}

	if cfg.AccountSID == "" {
		return nil, fmt.Errorf("TWILIO_ACCOUNT_SID environment variable is required")
	}
	if cfg.AuthToken == "" {
		return nil, fmt.Errorf("TWILIO_AUTH_TOKEN environment variable is required")
	}
	if cfg.SenderNumber == "" {
		return nil, fmt.Errorf("TWILIO_PHONE_NUMBER environment variable is required")
	}
	if !e164.MatchString(cfg.SenderNumber) {
		return nil, fmt.Errorf("TWILIO_PHONE_NUMBER %q is not an E.164 number", cfg.SenderNumber)
	}

	roster, err := ParseRoster(os.Getenv("EMERGENCY_CONTACTS"))
	if err != nil {
		return nil, err
	}
	cfg.Roster = roster

	if cfg.FallbackLocation == "" {
		cfg.FallbackLocation = defaultLocation
	}
	if cfg.PushSubscriber == "" {
		cfg.PushSubscriber = "mailto:admin@example.com"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.VAPIDPublicKey == "" || cfg.VAPIDPrivateKey == "" {
		log.Println("VAPID keys not found in environment. Generating new keys...")
		privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
		if err != nil {
			return nil, fmt.Errorf("generate VAPID keys: %w", err)
		}
		cfg.VAPIDPrivateKey = privateKey
		cfg.VAPIDPublicKey = publicKey
		log.Printf("Generated VAPID Keys:\nVAPID_PRIVATE_KEY=%s\nVAPID_PUBLIC_KEY=%s\n(Add these to your .env file to persist them)", privateKey, publicKey)
	}

	return cfg, nil
}

// ParseRoster parses a comma-separated contact list, falling back to the
// built-in default when empty. The roster is never empty and every entry is
// a valid E.164 number.
func ParseRoster(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		raw = defaultRoster
	}
	var roster []string
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !e164.MatchString(entry) {
			return nil, fmt.Errorf("emergency contact %q is not an E.164 number", entry)
		}
		roster = append(roster, entry)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("EMERGENCY_CONTACTS must contain at least one number")
	}
	return roster, nil
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TWILIO_ACCOUNT_SID", "ACxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx")
	t.Setenv("TWILIO_AUTH_TOKEN", "secret")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15005550006")
	t.Setenv("VAPID_PUBLIC_KEY", "pub")
	t.Setenv("VAPID_PRIVATE_KEY", "priv")
	t.Setenv("TWILIO_TRIAL", "")
	t.Setenv("EMERGENCY_CONTACTS", "")
	t.Setenv("EMERGENCY_LOCATION", "")
	t.Setenv("PUSH_SUBSCRIBER", "")
	t.Setenv("PORT", "")
}

func TestFromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMERGENCY_CONTACTS", "+917684844015, +919876543210")
	t.Setenv("EMERGENCY_LOCATION", "Gateway of India")
	t.Setenv("TWILIO_TRIAL", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "+15005550006", cfg.SenderNumber)
	assert.True(t, cfg.TrialAccount)
	assert.Equal(t, []string{"+917684844015", "+919876543210"}, cfg.Roster)
	assert.Equal(t, "Gateway of India", cfg.FallbackLocation)
	assert.Equal(t, "8080", cfg.Port)
}

func TestFromEnvRequiresCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TWILIO_ACCOUNT_SID", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TWILIO_ACCOUNT_SID")
}

func TestFromEnvRejectsBadSenderNumber(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TWILIO_PHONE_NUMBER", "555-0006")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestFromEnvDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMERGENCY_CONTACTS", "")
	t.Setenv("EMERGENCY_LOCATION", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"+917684844015"}, cfg.Roster)
	assert.Equal(t, "123 Main Street, Downtown Mumbai, Maharashtra", cfg.FallbackLocation)
}

func TestFromEnvGeneratesVAPIDKeys(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VAPID_PUBLIC_KEY", "")
	t.Setenv("VAPID_PRIVATE_KEY", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.VAPIDPublicKey)
	assert.NotEmpty(t, cfg.VAPIDPrivateKey)
}

func TestParseRoster(t *testing.T) {
	roster, err := ParseRoster("+917684844015,+919876543210")
	require.NoError(t, err)
	assert.Len(t, roster, 2)

	_, err = ParseRoster("+917684844015,not-a-number")
	require.Error(t, err)

	_, err = ParseRoster("07684844015")
	require.Error(t, err, "numbers without a leading + are rejected")

	roster, err = ParseRoster("  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"+917684844015"}, roster, "empty input falls back to the default roster")
}

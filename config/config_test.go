package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sms_composer/compose"
)

var envKeys = []string{
	"SERVER_PORT", "API_KEY", "RATE_LIMIT", "BURST_LIMIT",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS",
	"SMS_PROVIDER", "DEVICE_PATH", "SERIAL_BAUD", "MAX_QUEUE_SIZE",
	"TWILIO_SID", "TWILIO_AUTH_TOKEN", "TWILIO_PHONE",
	"SMS_UNIT_PRICE", "SMS_CURRENCY", "SMS_MAX_SEGMENTS", "OPT_OUT_FILE",
}

// clearEnv unsets every setting for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "5643", cfg.ServerPort)
	assert.Equal(t, 1.0, cfg.RateLimit)
	assert.Equal(t, 5, cfg.BurstLimit)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "hardware", cfg.SMSProvider)
	assert.Equal(t, 115200, cfg.SerialBaud)
	assert.Equal(t, 100, cfg.MaxQueueSize)
	assert.Equal(t, compose.DefaultUnitPrice, cfg.UnitPrice)
	assert.Equal(t, "SEK", cfg.Currency)
	assert.Equal(t, compose.DefaultMaxSegments, cfg.MaxSegments)
	assert.Equal(t, compose.DefaultOptOutPolicy(), cfg.OptOut)
	assert.False(t, cfg.HasTwilio())
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "settings.env", `SERVER_PORT=8080
RATE_LIMIT=abc
BURST_LIMIT=-3
SMS_PROVIDER=Twilio
TWILIO_SID=AC123
TWILIO_AUTH_TOKEN=secret
TWILIO_PHONE=+46700000000
SMS_UNIT_PRICE=0.5
SMS_CURRENCY=EUR
SMS_MAX_SEGMENTS=4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 1.0, cfg.RateLimit)
	assert.Equal(t, 5, cfg.BurstLimit)
	assert.Equal(t, "twilio", cfg.SMSProvider)
	assert.True(t, cfg.HasTwilio())
	assert.Equal(t, 0.5, cfg.UnitPrice)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, 4, cfg.MaxSegments)

	p := cfg.Pipeline()
	assert.Equal(t, 0.5, p.UnitPrice)
	assert.Equal(t, 4, p.MaxSegments)
	assert.Equal(t, cfg.OptOut, p.OptOut)
}

func TestLoad_UnitPrice(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"Zero", "0", 0},
		{"Negative", "-1", compose.DefaultUnitPrice},
		{"Garbage", "cheap", compose.DefaultUnitPrice},
		{"Custom", "0.79", 0.79},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SMS_UNIT_PRICE", tc.value)

			cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.UnitPrice)
		})
	}
}

func TestLoad_OptOutFile(t *testing.T) {
	clearEnv(t)
	optOut := writeFile(t, "optout.yaml", "text: Reply END to unsubscribe.\nmarkers: [END, end]\n")
	t.Setenv("OPT_OUT_FILE", optOut)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "Reply END to unsubscribe.", cfg.OptOut.Text)
	assert.Equal(t, []string{"END", "end"}, cfg.OptOut.Markers)
	assert.Equal(t, "Hi\n\nReply END to unsubscribe.", cfg.Pipeline().Prepare("Hi", nil).Text)
}

func TestLoad_MissingOptOutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPT_OUT_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "failed to read opt-out file")
}

func TestParseOptOut(t *testing.T) {
	def := compose.DefaultOptOutPolicy()

	tests := []struct {
		name    string
		doc     string
		want    compose.OptOutPolicy
		wantErr bool
	}{
		{"Full", "text: Svara NEJ\nmarkers: [NEJ]\n", compose.OptOutPolicy{Text: "Svara NEJ", Markers: []string{"NEJ"}}, false},
		{"TextOnly", "text: Svara STOP nu\n", compose.OptOutPolicy{Text: "Svara STOP nu", Markers: def.Markers}, false},
		{"BlankMarkersDropped", "markers: ['', STOPP]\n", compose.OptOutPolicy{Text: def.Text, Markers: []string{"STOPP"}}, false},
		{"Empty", "", def, false},
		{"Invalid", "text: [unterminated", compose.OptOutPolicy{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseOptOut([]byte(tc.doc))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

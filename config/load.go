package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"sms_composer/compose"
)

// DefaultEnvFile is read by Load when no paths are given.
const DefaultEnvFile = "settings.env"

// Load reads settings from the given env files (settings.env by default) and
// the process environment. Bad or missing values fall back to defaults; only
// an unreadable OPT_OUT_FILE is reported as an error.
func Load(paths ...string) (*AppConfig, error) {
	if len(paths) == 0 {
		paths = []string{DefaultEnvFile}
	}
	if err := godotenv.Load(paths...); err != nil {
		log.Printf("Warning: Could not load %s. Falling back to system environment variables", strings.Join(paths, ", "))
	}

	cfg := &AppConfig{
		ServerPort:   envString("SERVER_PORT", "5643"),
		APIKey:       os.Getenv("API_KEY"),
		RateLimit:    envFloat("RATE_LIMIT", 1),
		BurstLimit:   envInt("BURST_LIMIT", 5),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     envInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		SMSProvider:  strings.ToLower(os.Getenv("SMS_PROVIDER")),
		DevicePath:   os.Getenv("DEVICE_PATH"),
		SerialBaud:   envInt("SERIAL_BAUD", 115200),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),
		TwilioSID:    os.Getenv("TWILIO_SID"),
		TwilioAuth:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioNumber: os.Getenv("TWILIO_PHONE"),
		UnitPrice:    compose.DefaultUnitPrice,
		Currency:     envString("SMS_CURRENCY", "SEK"),
		MaxSegments:  envInt("SMS_MAX_SEGMENTS", compose.DefaultMaxSegments),
		OptOutFile:   os.Getenv("OPT_OUT_FILE"),
		OptOut:       compose.DefaultOptOutPolicy(),
	}

	if cfg.SMSProvider != "hardware" && cfg.SMSProvider != "twilio" {
		cfg.SMSProvider = "hardware" // default
	}

	// Zero is a valid price, so this one can't go through envFloat.
	if price, err := strconv.ParseFloat(os.Getenv("SMS_UNIT_PRICE"), 64); err == nil && price >= 0 {
		cfg.UnitPrice = price
	}

	if cfg.OptOutFile != "" {
		policy, err := LoadOptOut(cfg.OptOutFile)
		if err != nil {
			return nil, err
		}
		cfg.OptOut = policy
		log.Printf("Loaded opt-out wording from %s", cfg.OptOutFile)
	}

	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func envFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

package config

import "sms_composer/compose"

type AppConfig struct {
	ServerPort   string
	APIKey       string
	RateLimit    float64 // Requests per second
	BurstLimit   int     // Burst requests allowed
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	SMSProvider  string // "hardware" or "twilio"
	DevicePath   string // Path to the serial device
	SerialBaud   int
	MaxQueueSize int // Maximum SMS queue size

	TwilioSID    string
	TwilioAuth   string
	TwilioNumber string

	UnitPrice   float64 // Carrier price per segment
	Currency    string
	MaxSegments int    // Longest message accepted for sending, in segments
	OptOutFile  string // Optional YAML file overriding the opt-out wording

	OptOut compose.OptOutPolicy
}

// HasTwilio reports whether all Twilio credentials are present.
func (c *AppConfig) HasTwilio() bool {
	return c.TwilioSID != "" && c.TwilioAuth != "" && c.TwilioNumber != ""
}

// Pipeline builds the message preparation pipeline for this configuration.
// The returned value is shared read-only by all handlers.
func (c *AppConfig) Pipeline() *compose.Pipeline {
	return &compose.Pipeline{
		OptOut:      c.OptOut,
		UnitPrice:   c.UnitPrice,
		MaxSegments: c.MaxSegments,
	}
}

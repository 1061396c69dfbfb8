package sms

import (
	"errors"
	"fmt"
	"strings"

	"sms_composer/compose"
)

var (
	ErrEmptyMessage     = errors.New("message empty")
	ErrMessageTooLong   = errors.New("message too long")
	ErrInvalidRecipient = errors.New("invalid recipient")

	ErrMultipartUnsupported = errors.New("provider cannot send multi-part messages")
)

// Prepare runs raw through the pipeline and rejects messages that may not be
// sent: a body that is empty after substitution, or one over the pipeline's segment limit once the
// opt-out text has been added.
func Prepare(p *compose.Pipeline, raw string, vars map[string]string) (compose.Prepared, error) {
	if compose.IsBlank(raw, vars) {
		return compose.Prepared{}, ErrEmptyMessage
	}

	prepared := p.Prepare(raw, vars)
	if !prepared.WithinLimit {
		return prepared, fmt.Errorf("%w: %d segments, limit is %d", ErrMessageTooLong, prepared.Segmentation.Segments, p.MaxSegments)
	}
	return prepared, nil
}

// CheckProvider rejects prepared messages the provider cannot deliver. The
// hardware modem sends single segments only; Twilio concatenates itself.
func CheckProvider(provider string, prepared compose.Prepared) error {
	if provider == "hardware" && prepared.Segmentation.Segments > ModemMaxSegments {
		return fmt.Errorf("%w: %d segments over %s", ErrMultipartUnsupported, prepared.Segmentation.Segments, provider)
	}
	return nil
}

// ValidatePhone checks if the phone number is in a valid E.164 format
func ValidatePhone(phone string) bool {
	if len(phone) < 10 || len(phone) > 16 || !strings.HasPrefix(phone, "+") {
		return false
	}
	for _, c := range phone[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// maskPhone obfuscates the phone number for logging
func maskPhone(phone string) string {
	if len(phone) > 4 {
		return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
	}
	return "****"
}

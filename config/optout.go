package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"sms_composer/compose"
)

// LoadOptOut reads a YAML opt-out policy:
//
//	text: "Reply STOP to unsubscribe."
//	markers: ["STOP", "stop"]
//
// Blank fields keep the built-in defaults.
func LoadOptOut(path string) (compose.OptOutPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return compose.OptOutPolicy{}, fmt.Errorf("failed to read opt-out file: %w", err)
	}
	return ParseOptOut(data)
}

// ParseOptOut decodes a YAML opt-out policy document.
func ParseOptOut(data []byte) (compose.OptOutPolicy, error) {
	var policy compose.OptOutPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return compose.OptOutPolicy{}, fmt.Errorf("invalid opt-out file: %w", err)
	}
	return withDefaults(policy), nil
}

func withDefaults(policy compose.OptOutPolicy) compose.OptOutPolicy {
	def := compose.DefaultOptOutPolicy()
	if strings.TrimSpace(policy.Text) == "" {
		policy.Text = def.Text
	}

	var markers []string
	for _, m := range policy.Markers {
		if m != "" {
			markers = append(markers, m)
		}
	}
	if len(markers) == 0 {
		markers = def.Markers
	}
	policy.Markers = markers
	return policy
}

package compose

import "strings"

const (
	// DefaultOptOutText is appended when a message carries no opt-out marker.
	DefaultOptOutText = "Svara STOP för att avsluta."
	optOutSeparator   = "\n\n"
)

// DefaultOptOutMarkers suppress the opt-out suffix when found in a message.
// Matching is exact: "Stop" is not a marker.
var DefaultOptOutMarkers = []string{"STOP", "stop"}

// OptOutPolicy decides whether a message needs the opt-out instruction.
type OptOutPolicy struct {
	Text    string   `yaml:"text"`
	Markers []string `yaml:"markers"`
}

// DefaultOptOutPolicy returns the built-in wording and markers.
func DefaultOptOutPolicy() OptOutPolicy {
	return OptOutPolicy{
		Text:    DefaultOptOutText,
		Markers: append([]string(nil), DefaultOptOutMarkers...),
	}
}

// HasOptOut reports whether text already contains one of the markers.
func (p OptOutPolicy) HasOptOut(text string) bool {
	for _, marker := range p.Markers {
		if marker != "" && strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// Ensure appends the opt-out text, separated by a blank line, unless text
// already contains a marker.
func (p OptOutPolicy) Ensure(text string) string {
	if p.HasOptOut(text) {
		return text
	}
	return text + optOutSeparator + p.Text
}

// EnsureOptOut applies the default policy.
func EnsureOptOut(text string) string {
	return DefaultOptOutPolicy().Ensure(text)
}

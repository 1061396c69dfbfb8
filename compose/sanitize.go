package compose

import "strings"

// invisibles removes zero-width space, non-joiner, joiner and the byte order mark.
var invisibles = strings.NewReplacer(
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\ufeff", "",
)

// Sanitize strips invisible characters anywhere in text, then trims
// leading and trailing whitespace.
func Sanitize(text string) string {
	return strings.TrimSpace(invisibles.Replace(text))
}

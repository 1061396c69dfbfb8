package compose

// DefaultMaxSegments caps how many segments a single send may use.
const DefaultMaxSegments = 10

// IsWithinLimit reports whether text uses between 1 and maxSegments segments.
// Empty text is never within the limit.
func IsWithinLimit(text string, maxSegments int) bool {
	return segmentsWithin(Segments(text), maxSegments)
}

// ValidateForSend is the gate applied before a message is queued.
func ValidateForSend(text string, maxSegments int) bool {
	return IsWithinLimit(text, maxSegments)
}

func segmentsWithin(segments, maxSegments int) bool {
	return segments >= 1 && segments <= maxSegments
}

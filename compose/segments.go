package compose

const (
	StandardSingleLimit = 160
	StandardMultiLimit  = 153
	WideSingleLimit     = 70
	WideMultiLimit      = 67
)

// Segmentation describes how a message is split for transport.
type Segmentation struct {
	CharacterSet    CharacterSet `json:"characterSet" yaml:"characterSet"`
	Length          int          `json:"length" yaml:"length"`
	Segments        int          `json:"segments" yaml:"segments"`
	PerSegmentLimit int          `json:"perSegmentLimit" yaml:"perSegmentLimit"`
}

// limits returns the single and multi-part capacities for a character set.
func limits(set CharacterSet) (single, multi int) {
	if set == Wide {
		return WideSingleLimit, WideMultiLimit
	}
	return StandardSingleLimit, StandardMultiLimit
}

// Segment classifies text and counts its segments. PerSegmentLimit is the
// capacity that applied: the single-part limit when the message fits in one
// segment, otherwise the reduced multi-part limit.
func Segment(text string) Segmentation {
	set := Classify(text)
	single, multi := limits(set)
	length := Length(text)

	result := Segmentation{CharacterSet: set, Length: length, PerSegmentLimit: single}
	switch {
	case length == 0:
		result.Segments = 0
	case length <= single:
		result.Segments = 1
	default:
		result.PerSegmentLimit = multi
		result.Segments = (length + multi - 1) / multi
	}
	return result
}

// Segments returns the number of transport segments text occupies.
func Segments(text string) int {
	return Segment(text).Segments
}

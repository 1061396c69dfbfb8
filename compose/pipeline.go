package compose

// Pipeline holds the read-only settings of message preparation. A Pipeline
// must not be modified after it is handed out; it is then safe for
// concurrent use.
type Pipeline struct {
	OptOut      OptOutPolicy
	UnitPrice   float64
	MaxSegments int
}

// Prepared is the outcome of running a message through the pipeline.
type Prepared struct {
	Text         string       `json:"text" yaml:"text"`
	Segmentation Segmentation `json:"segmentation" yaml:"segmentation"`
	Quote        CostQuote    `json:"quote" yaml:"quote"`
	WithinLimit  bool         `json:"withinLimit" yaml:"withinLimit"`
}

// NewPipeline returns a pipeline using the default opt-out policy, price and
// segment cap.
func NewPipeline() *Pipeline {
	return &Pipeline{
		OptOut:      DefaultOptOutPolicy(),
		UnitPrice:   DefaultUnitPrice,
		MaxSegments: DefaultMaxSegments,
	}
}

// Prepare sanitizes raw, fills in vars when given, ensures the opt-out
// instruction and segments and prices the result. A nil vars map skips
// substitution.
func (p *Pipeline) Prepare(raw string, vars map[string]string) Prepared {
	text := Sanitize(raw)
	if vars != nil {
		text = Substitute(text, vars)
	}
	text = p.OptOut.Ensure(text)

	seg := Segment(text)
	return Prepared{
		Text:         text,
		Segmentation: seg,
		Quote:        quoteSegments(seg.Segments, p.UnitPrice),
		WithinLimit:  segmentsWithin(seg.Segments, p.MaxSegments),
	}
}

// IsBlank reports whether raw has nothing to say once sanitized and filled
// in with vars, before any opt-out text is added. A template whose variables
// all expand to whitespace is blank.
func IsBlank(raw string, vars map[string]string) bool {
	text := Sanitize(raw)
	if vars != nil {
		text = Sanitize(Substitute(text, vars))
	}
	return text == ""
}

// ValidateForSend checks text against the pipeline's segment cap.
func (p *Pipeline) ValidateForSend(text string) bool {
	return IsWithinLimit(text, p.MaxSegments)
}

// Quote prices text at the pipeline's unit price.
func (p *Pipeline) Quote(text string) CostQuote {
	return Quote(text, p.UnitPrice)
}
